package mock

import (
	"context"
	"math"

	"github.com/mikey/phishguard/internal/core"
)

// Analyst is the deterministic rule-based stand-in used whenever the real
// semantic analyst is unavailable or its output cannot be parsed.
type Analyst struct{}

// NewAnalyst creates the mock analyst.
func NewAnalyst() *Analyst {
	return &Analyst{}
}

// AnalyzeMessage scores a message feature record with fixed rule weights.
func (a *Analyst) AnalyzeMessage(_ context.Context, feats *core.MessageFeatures) core.SemanticAssessment {
	score := 0.0
	reasons := []string{}

	if feats.SuspiciousTokens {
		score += 0.45
		reasons = append(reasons, "Suspicious scam-related words detected.")
	}
	if feats.UrgencyFlag {
		score += 0.30
		reasons = append(reasons, "Urgency language present.")
	}
	if feats.NumbersPresent > 2 {
		score += 0.15
		reasons = append(reasons, "High number usage (OTP/ref IDs).")
	}

	scam := core.ScamTypeUnknown
	if feats.SuspiciousTokens {
		scam = "credential_harvesting"
	}
	if len(reasons) == 0 {
		reasons = []string{"No strong indicators."}
	}

	return core.SemanticAssessment{
		RiskLevel:  mockRisk(score),
		Confidence: round3(math.Min(score, 1)),
		ScamType:   scam,
		Reasons:    reasons,
	}
}

// AnalyzeURL scores a URL feature record with fixed rule weights.
func (a *Analyst) AnalyzeURL(_ context.Context, feats *core.URLFeatures) core.SemanticAssessment {
	score := 0.0
	reasons := []string{}
	scam := core.ScamTypeUnknown

	if feats.HomoglyphFlag {
		score += 0.35
		reasons = append(reasons, "Hostname contains look-alike Unicode characters.")
	}
	if core.BrandLookalike(feats) {
		score += 0.30
		reasons = append(reasons, "Hostname closely resembles a known brand domain.")
		scam = "brand_impersonation"
	}
	if feats.SuspiciousPathToken {
		score += 0.20
		reasons = append(reasons, "URL path or query carries credential-related words.")
		if scam == core.ScamTypeUnknown {
			scam = "credential_harvesting"
		}
	}
	if !feats.SSLValid {
		score += 0.15
		reasons = append(reasons, "HTTPS is unreachable or invalid for this host.")
	}

	if len(reasons) == 0 {
		reasons = []string{"No strong URL indicators."}
	}

	return core.SemanticAssessment{
		RiskLevel:  mockRisk(score),
		Confidence: round3(math.Min(score, 1)),
		ScamType:   scam,
		Reasons:    reasons,
	}
}

func mockRisk(score float64) core.RiskLevel {
	switch {
	case score >= 0.7:
		return core.RiskHigh
	case score >= 0.4:
		return core.RiskSuspicious
	default:
		return core.RiskLow
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

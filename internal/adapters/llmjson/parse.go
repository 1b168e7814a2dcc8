package llmjson

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mikey/phishguard/internal/core"
)

// assessmentResponse is the strict JSON shape every analyst prompt asks
// the model to return.
type assessmentResponse struct {
	RiskLevel  string   `json:"risk_level"`
	Confidence float64  `json:"confidence"`
	ScamType   string   `json:"scam_type"`
	Reasons    []string `json:"reasons"`
}

// ParseAssessment applies the analyst parsing policy: direct JSON parse of
// the raw response, then a parse of the first brace-delimited substring.
// An error means the caller must fall back to the mock analyst.
func ParseAssessment(raw string) (core.SemanticAssessment, error) {
	var resp assessmentResponse
	if err := json.Unmarshal([]byte(raw), &resp); err == nil {
		return toAssessment(resp), nil
	}

	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(raw[start:end+1]), &resp); err == nil {
			return toAssessment(resp), nil
		}
	}

	return core.SemanticAssessment{}, fmt.Errorf("response is not valid assessment JSON")
}

func toAssessment(resp assessmentResponse) core.SemanticAssessment {
	risk := core.RiskLevel(resp.RiskLevel)
	switch risk {
	case core.RiskLow, core.RiskSuspicious, core.RiskHigh:
	default:
		risk = core.RiskSuspicious
	}

	confidence := resp.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	scam := resp.ScamType
	if scam == "" {
		scam = core.ScamTypeUnknown
	}

	reasons := resp.Reasons
	if len(reasons) == 0 {
		reasons = []string{"No reasons provided."}
	}

	return core.SemanticAssessment{
		RiskLevel:  risk,
		Confidence: confidence,
		ScamType:   scam,
		Reasons:    reasons,
	}
}

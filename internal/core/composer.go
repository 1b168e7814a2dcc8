package core

import (
	"context"
	"math"
)

// Signal blend weights per channel. The message weights are fixed by the
// original scoring contract; the URL channel keeps the model and analyst
// dominant while giving the structural evidence a quarter of the mass.
const (
	messageModelWeight     = 0.45
	messageAnalystWeight   = 0.45
	messageHeuristicWeight = 0.10

	urlModelWeight     = 0.40
	urlAnalystWeight   = 0.35
	urlHeuristicWeight = 0.25
)

// Single-channel risk thresholds, inclusive at the lower bound.
const (
	channelHighThreshold       = 0.75
	channelSuspiciousThreshold = 0.45
)

// ChannelRisk maps a composed channel score to its risk level.
func ChannelRisk(score float64) RiskLevel {
	switch {
	case score >= channelHighThreshold:
		return RiskHigh
	case score >= channelSuspiciousThreshold:
		return RiskSuspicious
	default:
		return RiskLow
	}
}

// BrandLookalike reports whether the host resembles a reference brand
// without actually being that brand's registrable domain.
func BrandLookalike(feats *URLFeatures) bool {
	return feats.BrandSim >= 0.6 && feats.BrandBest != "" && feats.Domain != feats.BrandBest
}

// messageHeuristic is the deterministic rule score for the message channel.
func messageHeuristic(feats *MessageFeatures) float64 {
	h := 0.0
	if feats.SuspiciousTokens {
		h += 0.25
	}
	if feats.UrgencyFlag {
		h += 0.25
	}
	if feats.NumbersPresent >= 3 {
		h += 0.15
	}
	return h
}

// urlHeuristic is the deterministic structural rule score for the URL
// channel, clamped to [0,1].
func urlHeuristic(feats *URLFeatures) float64 {
	h := 0.0
	if feats.HomoglyphFlag {
		h += 0.20
	}
	if BrandLookalike(feats) {
		h += 0.20
	}
	if feats.WhoisAgeDays != nil && *feats.WhoisAgeDays <= 30 {
		h += 0.15
	}
	if !feats.SSLValid {
		h += 0.15
	}
	if feats.SuspiciousPathToken {
		h += 0.15
	}
	if feats.HyphenCount >= 2 {
		h += 0.05
	}
	if feats.DigitFlag {
		h += 0.05
	}
	if feats.Length >= 75 {
		h += 0.05
	}
	return clamp01(h)
}

// ComposeMessage blends the oracle probability, the analyst confidence and
// the rule heuristic into the message channel's verdict.
func ComposeMessage(ctx context.Context, feats *MessageFeatures, oracle ProbabilityOracle, analyst SemanticAnalyst) *ChannelResult {
	mlScore := oracle.PredictMessage(feats)
	llm := analyst.AnalyzeMessage(ctx, feats)
	heur := messageHeuristic(feats)

	final := Round3(clamp01(messageModelWeight*mlScore + messageAnalystWeight*llm.Confidence + messageHeuristicWeight*heur))

	return &ChannelResult{
		Channel:          ChannelMessage,
		RiskLevel:        ChannelRisk(final),
		FinalScore:       final,
		ModelProbability: mlScore,
		LLM:              llm,
		ScamType:         llm.ScamType,
		Indicators:       feats.TokensDetected,
	}
}

// ComposeURL blends the oracle probability, the analyst confidence and the
// structural heuristic into the URL channel's verdict.
func ComposeURL(ctx context.Context, feats *URLFeatures, structural []string, oracle ProbabilityOracle, analyst SemanticAnalyst) *ChannelResult {
	mlScore := oracle.PredictURL(feats)
	llm := analyst.AnalyzeURL(ctx, feats)
	heur := urlHeuristic(feats)

	final := Round3(clamp01(urlModelWeight*mlScore + urlAnalystWeight*llm.Confidence + urlHeuristicWeight*heur))

	// Structural reasons double as the URL channel's indicator list.
	indicators := make([]string, len(structural))
	copy(indicators, structural)

	return &ChannelResult{
		Channel:           ChannelURL,
		RiskLevel:         ChannelRisk(final),
		FinalScore:        final,
		ModelProbability:  mlScore,
		LLM:               llm,
		ScamType:          llm.ScamType,
		Indicators:        indicators,
		StructuralReasons: structural,
	}
}

// Round3 rounds to three decimal places.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

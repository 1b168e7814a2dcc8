package core

// Fusion weights and thresholds for the case where both channels produced
// a result. A URL verdict carries slightly more weight than the message
// verdict, and the Suspicious cut-off sits at 0.50 rather than the
// single-channel 0.45.
const (
	fusionURLWeight     = 0.55
	fusionMessageWeight = 0.45

	fusionHighThreshold       = 0.75
	fusionSuspiciousThreshold = 0.50
)

// Fuse merges an optional message-channel result and an optional
// URL-channel result into the final verdict. With neither present it
// returns a defined Unknown verdict rather than failing.
func Fuse(msg, url *ChannelResult) FusionVerdict {
	switch {
	case msg != nil && url == nil:
		score := msg.FinalScore
		return FusionVerdict{
			FinalRisk:       msg.RiskLevel,
			FinalScore:      &score,
			Source:          SourceMessageOnly,
			ScamType:        msg.ScamType,
			Explanation:     concat(msg.LLM.Reasons),
			MessageAnalysis: msg,
		}

	case url != nil && msg == nil:
		score := url.FinalScore
		return FusionVerdict{
			FinalRisk:   url.RiskLevel,
			FinalScore:  &score,
			Source:      SourceURLOnly,
			ScamType:    url.LLM.ScamType,
			Explanation: concat(url.LLM.Reasons, url.StructuralReasons),
			URLAnalysis: url,
		}

	case msg != nil && url != nil:
		score := Round3(fusionURLWeight*url.FinalScore + fusionMessageWeight*msg.FinalScore)

		var risk RiskLevel
		switch {
		case score >= fusionHighThreshold:
			risk = RiskHigh
		case score >= fusionSuspiciousThreshold:
			risk = RiskSuspicious
		default:
			risk = RiskLow
		}

		scam := url.LLM.ScamType
		if scam == ScamTypeUnknown {
			scam = msg.ScamType
		}

		return FusionVerdict{
			FinalRisk:       risk,
			FinalScore:      &score,
			Source:          SourceBoth,
			ScamType:        scam,
			Explanation:     concat(msg.LLM.Reasons, url.LLM.Reasons, url.StructuralReasons),
			MessageAnalysis: msg,
			URLAnalysis:     url,
		}

	default:
		return FusionVerdict{
			FinalRisk:   RiskUnknown,
			Source:      SourceNone,
			ScamType:    ScamTypeUnknown,
			Explanation: []string{"No input provided for analysis."},
		}
	}
}

// concat joins reason lists preserving their order.
func concat(lists ...[]string) []string {
	out := []string{}
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

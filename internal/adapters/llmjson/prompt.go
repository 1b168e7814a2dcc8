package llmjson

import (
	"encoding/json"

	"github.com/mikey/phishguard/internal/core"
)

// MessageInstruction is the fixed system prompt for the message channel.
const MessageInstruction = `You are an AI cybersecurity analyst specializing in scam message detection.
You will be given structured metadata from an SMS/WhatsApp message.

Your task:
1. Assess risk level: Low, Suspicious, or High.
2. Predict scam type (credential_harvesting, fake_kyc, otp_scam, payment_scam, refund_scam, unknown).
3. Provide a short list of reasons.
4. Output STRICT JSON only:
{
 "risk_level": "...",
 "confidence": float,
 "scam_type": "...",
 "reasons": ["...", "..."]
}`

// URLInstruction is the fixed system prompt for the URL channel.
const URLInstruction = `You are an AI cybersecurity analyst specializing in phishing URL detection.
You will be given structured metadata extracted from a URL.

Your task:
1. Assess risk level: Low, Suspicious, or High.
2. Predict scam type (credential_harvesting, brand_impersonation, fake_kyc, payment_scam, unknown).
3. Provide a short list of reasons.
4. Output STRICT JSON only:
{
 "risk_level": "...",
 "confidence": float,
 "scam_type": "...",
 "reasons": ["...", "..."]
}`

// MessagePayload is the structured record sent to the model for a message.
func MessagePayload(feats *core.MessageFeatures) string {
	payload := map[string]any{
		"message":           feats.Message,
		"suspicious_tokens": feats.SuspiciousTokens,
		"tokens_detected":   feats.TokensDetected,
		"has_urgency":       feats.UrgencyFlag,
		"numbers_present":   feats.NumbersPresent,
		"uppercase_ratio":   feats.UppercaseRatio,
	}
	return marshal(payload)
}

// URLPayload is the structured record sent to the model for a URL.
func URLPayload(feats *core.URLFeatures) string {
	payload := map[string]any{
		"url":                   feats.URL,
		"host":                  feats.Host,
		"domain":                feats.Domain,
		"subdomain":             feats.Subdomain,
		"brand_best":            feats.BrandBest,
		"brand_sim":             feats.BrandSim,
		"homoglyph_flag":        feats.HomoglyphFlag,
		"homoglyph_ratio":       feats.HomoglyphRatio,
		"whois_age_days":        feats.WhoisAgeDays,
		"ssl_valid":             feats.SSLValid,
		"suspicious_path_token": feats.SuspiciousPathToken,
	}
	return marshal(payload)
}

func marshal(payload map[string]any) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return "{}"
	}
	return string(data)
}

package llmjson

import (
	"testing"

	"github.com/mikey/phishguard/internal/core"
)

func TestParseAssessmentDirectJSON(t *testing.T) {
	raw := `{"risk_level":"High","confidence":0.92,"scam_type":"credential_harvesting","reasons":["Asks for OTP."]}`
	got, err := ParseAssessment(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.RiskLevel != core.RiskHigh {
		t.Errorf("expected High, got %s", got.RiskLevel)
	}
	if got.Confidence != 0.92 {
		t.Errorf("expected confidence 0.92, got %f", got.Confidence)
	}
	if got.ScamType != "credential_harvesting" {
		t.Errorf("unexpected scam type %q", got.ScamType)
	}
	if len(got.Reasons) != 1 || got.Reasons[0] != "Asks for OTP." {
		t.Errorf("unexpected reasons %v", got.Reasons)
	}
}

func TestParseAssessmentBraceExtraction(t *testing.T) {
	raw := "Here is my analysis:\n```json\n" +
		`{"risk_level":"Suspicious","confidence":0.6,"scam_type":"unknown","reasons":["Urgency language."]}` +
		"\n```\nLet me know if you need more."
	got, err := ParseAssessment(raw)
	if err != nil {
		t.Fatalf("expected brace extraction to succeed, got %v", err)
	}
	if got.RiskLevel != core.RiskSuspicious {
		t.Errorf("expected Suspicious, got %s", got.RiskLevel)
	}
}

func TestParseAssessmentInvalid(t *testing.T) {
	for _, raw := range []string{"", "not json at all", "{broken", "{}}{"} {
		if _, err := ParseAssessment(raw); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}

func TestParseAssessmentSanitizesFields(t *testing.T) {
	raw := `{"risk_level":"CATASTROPHIC","confidence":1.7,"scam_type":"","reasons":[]}`
	got, err := ParseAssessment(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Unknown risk labels degrade to Suspicious rather than being trusted.
	if got.RiskLevel != core.RiskSuspicious {
		t.Errorf("expected Suspicious for unknown label, got %s", got.RiskLevel)
	}
	if got.Confidence != 1.0 {
		t.Errorf("expected confidence clamped to 1.0, got %f", got.Confidence)
	}
	if got.ScamType != core.ScamTypeUnknown {
		t.Errorf("expected unknown scam type, got %q", got.ScamType)
	}
	if len(got.Reasons) != 1 || got.Reasons[0] != "No reasons provided." {
		t.Errorf("expected placeholder reason, got %v", got.Reasons)
	}

	raw = `{"risk_level":"Low","confidence":-0.3,"scam_type":"lottery","reasons":["x"]}`
	got, err = ParseAssessment(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Confidence != 0.0 {
		t.Errorf("expected confidence clamped to 0.0, got %f", got.Confidence)
	}
}

package mock

import (
	"context"
	"testing"

	"github.com/mikey/phishguard/internal/core"
)

func TestAnalyzeMessageScenario(t *testing.T) {
	a := NewAnalyst()
	feats := &core.MessageFeatures{
		SuspiciousTokens: true,
		UrgencyFlag:      true,
		NumbersPresent:   1,
	}

	got := a.AnalyzeMessage(context.Background(), feats)

	// 0.45 + 0.30 = 0.75
	if got.Confidence != 0.75 {
		t.Errorf("expected confidence 0.75, got %f", got.Confidence)
	}
	if got.RiskLevel != core.RiskHigh {
		t.Errorf("expected High, got %s", got.RiskLevel)
	}
	if got.ScamType != "credential_harvesting" {
		t.Errorf("expected credential_harvesting, got %q", got.ScamType)
	}
	want := []string{"Suspicious scam-related words detected.", "Urgency language present."}
	if len(got.Reasons) != len(want) {
		t.Fatalf("expected %d reasons, got %v", len(want), got.Reasons)
	}
	for i := range want {
		if got.Reasons[i] != want[i] {
			t.Errorf("reason %d: got %q, want %q", i, got.Reasons[i], want[i])
		}
	}
}

func TestAnalyzeMessageNumberRule(t *testing.T) {
	a := NewAnalyst()

	// Exactly 2 digit runs does not trigger the number rule.
	got := a.AnalyzeMessage(context.Background(), &core.MessageFeatures{NumbersPresent: 2})
	if got.Confidence != 0.0 {
		t.Errorf("expected 0.0 for 2 digit runs, got %f", got.Confidence)
	}

	got = a.AnalyzeMessage(context.Background(), &core.MessageFeatures{NumbersPresent: 3})
	if got.Confidence != 0.15 {
		t.Errorf("expected 0.15 for 3 digit runs, got %f", got.Confidence)
	}
}

func TestAnalyzeMessageBenign(t *testing.T) {
	a := NewAnalyst()
	got := a.AnalyzeMessage(context.Background(), &core.MessageFeatures{})

	if got.RiskLevel != core.RiskLow {
		t.Errorf("expected Low, got %s", got.RiskLevel)
	}
	if got.ScamType != core.ScamTypeUnknown {
		t.Errorf("expected unknown scam type, got %q", got.ScamType)
	}
	if len(got.Reasons) != 1 || got.Reasons[0] != "No strong indicators." {
		t.Errorf("expected the no-indicators reason, got %v", got.Reasons)
	}
}

func TestAnalyzeURLBrandImpersonation(t *testing.T) {
	a := NewAnalyst()
	feats := &core.URLFeatures{
		Domain:              "paytm-secure.com",
		BrandBest:           "paytm.com",
		BrandSim:            0.67,
		SSLValid:            false,
		SuspiciousPathToken: true,
	}

	got := a.AnalyzeURL(context.Background(), feats)

	// 0.30 brand + 0.20 path token + 0.15 ssl = 0.65
	if got.Confidence != 0.65 {
		t.Errorf("expected confidence 0.65, got %f", got.Confidence)
	}
	if got.RiskLevel != core.RiskSuspicious {
		t.Errorf("expected Suspicious, got %s", got.RiskLevel)
	}
	// Brand rule sets the scam type before the path-token rule can.
	if got.ScamType != "brand_impersonation" {
		t.Errorf("expected brand_impersonation, got %q", got.ScamType)
	}
}

func TestAnalyzeURLCredentialHarvesting(t *testing.T) {
	a := NewAnalyst()
	feats := &core.URLFeatures{
		Domain:              "random-site.com",
		SSLValid:            true,
		SuspiciousPathToken: true,
	}

	got := a.AnalyzeURL(context.Background(), feats)

	if got.ScamType != "credential_harvesting" {
		t.Errorf("expected credential_harvesting, got %q", got.ScamType)
	}
	if got.Confidence != 0.2 {
		t.Errorf("expected confidence 0.2, got %f", got.Confidence)
	}
}

func TestAnalyzeURLClean(t *testing.T) {
	a := NewAnalyst()
	got := a.AnalyzeURL(context.Background(), &core.URLFeatures{Domain: "example.com", SSLValid: true})

	if got.Confidence != 0.0 {
		t.Errorf("expected confidence 0.0, got %f", got.Confidence)
	}
	if len(got.Reasons) != 1 || got.Reasons[0] != "No strong URL indicators." {
		t.Errorf("expected the no-indicators reason, got %v", got.Reasons)
	}
}

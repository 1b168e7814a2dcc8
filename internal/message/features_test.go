package message

import (
	"reflect"
	"testing"
)

func TestExtractSuspiciousMessage(t *testing.T) {
	feats := Extract("URGENT: Your SBI account will be blocked! Verify now 12345")

	wantTokens := []string{"verify", "blocked", "urgent", "account", "sbi"}
	if !reflect.DeepEqual(feats.TokensDetected, wantTokens) {
		t.Errorf("tokens: got %v, want %v", feats.TokensDetected, wantTokens)
	}
	if !feats.SuspiciousTokens {
		t.Error("expected suspicious tokens flag")
	}
	if !feats.UrgencyFlag {
		t.Error("expected urgency flag")
	}
	if feats.NumbersPresent != 1 {
		t.Errorf("expected 1 digit run, got %d", feats.NumbersPresent)
	}
	if feats.Exclamations != 1 {
		t.Errorf("expected 1 exclamation, got %d", feats.Exclamations)
	}
}

func TestExtractBenignMessage(t *testing.T) {
	feats := Extract("see you at lunch tomorrow")

	if feats.SuspiciousTokens {
		t.Errorf("unexpected suspicious tokens: %v", feats.TokensDetected)
	}
	if feats.UrgencyFlag {
		t.Error("unexpected urgency flag")
	}
	if feats.NumbersPresent != 0 {
		t.Errorf("expected no digit runs, got %d", feats.NumbersPresent)
	}
	if feats.Exclamations != 0 {
		t.Errorf("expected no exclamations, got %d", feats.Exclamations)
	}
}

func TestExtractDigitRuns(t *testing.T) {
	testCases := []struct {
		msg  string
		want int
	}{
		{"otp 123456", 1},
		{"ref 12 and 34 and 56", 3},
		{"no digits here", 0},
	}
	for _, tc := range testCases {
		if got := Extract(tc.msg).NumbersPresent; got != tc.want {
			t.Errorf("Extract(%q).NumbersPresent = %d, want %d", tc.msg, got, tc.want)
		}
	}
}

func TestExtractUppercaseRatio(t *testing.T) {
	testCases := []struct {
		msg  string
		want float64
	}{
		{"ABCD", 1.0},
		{"abcd", 0.0},
		{"AbCd", 0.5},
		{"", 0.0},
	}
	for _, tc := range testCases {
		if got := Extract(tc.msg).UppercaseRatio; got != tc.want {
			t.Errorf("Extract(%q).UppercaseRatio = %f, want %f", tc.msg, got, tc.want)
		}
	}
}

func TestExtractLengthInRunes(t *testing.T) {
	if got := Extract("héllo").Length; got != 5 {
		t.Errorf("expected rune length 5, got %d", got)
	}
	if got := Extract("").Length; got != 0 {
		t.Errorf("expected length 0 for empty message, got %d", got)
	}
}

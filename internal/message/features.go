package message

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/mikey/phishguard/internal/core"
)

// SuspiciousKeywords are matched as case-insensitive substrings of the
// message text.
var SuspiciousKeywords = []string{
	"kyc", "verify", "update", "blocked", "expire", "deactivate",
	"urgent", "immediately", "otp", "password", "bank", "upi", "refund",
	"account", "secure", "amazon", "sbi", "hdfc", "icici", "loan", "offer",
}

var urgencyWords = []string{"urgent", "immediately", "expire", "now"}

var digitRun = regexp.MustCompile(`\d+`)

// Extract computes the lexical feature record for a message.
func Extract(msg string) *core.MessageFeatures {
	lower := strings.ToLower(msg)

	tokens := []string{}
	for _, k := range SuspiciousKeywords {
		if strings.Contains(lower, k) {
			tokens = append(tokens, k)
		}
	}

	urgency := false
	for _, w := range urgencyWords {
		if strings.Contains(lower, w) {
			urgency = true
			break
		}
	}

	runes := []rune(msg)
	upper := 0
	for _, r := range runes {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	denom := len(runes)
	if denom < 1 {
		denom = 1
	}

	return &core.MessageFeatures{
		Message:          msg,
		TokensDetected:   tokens,
		SuspiciousTokens: len(tokens) > 0,
		UrgencyFlag:      urgency,
		NumbersPresent:   len(digitRun.FindAllString(lower, -1)),
		UppercaseRatio:   round3(float64(upper) / float64(denom)),
		Length:           len(runes),
		Exclamations:     strings.Count(msg, "!"),
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

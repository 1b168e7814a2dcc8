package urlx

import (
	"strings"

	"golang.org/x/text/unicode/runenames"

	"github.com/mikey/phishguard/internal/core"
)

// Unicode blocks commonly abused for look-alike domains.
var suspiciousBlocks = map[string]bool{
	"CYRILLIC": true,
	"GREEK":    true,
	"ARMENIAN": true,
	"HEBREW":   true,
	"ARABIC":   true,
}

const maxReportedBlocks = 10

// DetectHomoglyphs flags non-ASCII characters and suspicious Unicode blocks
// in a decoded hostname. The ratio is 0 for an empty or pure-ASCII host.
func DetectHomoglyphs(host string) core.HomoglyphAssessment {
	if host == "" {
		return core.HomoglyphAssessment{UnicodeBlocks: []string{}}
	}

	runes := []rune(host)
	var nonASCII []rune
	blocks := make([]string, 0, maxReportedBlocks)
	seen := make(map[string]bool)

	for _, r := range runes {
		if r <= 127 {
			continue
		}
		nonASCII = append(nonASCII, r)
		block := blockName(r)
		if block == "" || seen[block] {
			continue
		}
		seen[block] = true
		if len(blocks) < maxReportedBlocks {
			blocks = append(blocks, block)
		}
	}

	flag := false
	for _, b := range blocks {
		if suspiciousBlocks[b] {
			flag = true
			break
		}
	}

	return core.HomoglyphAssessment{
		NonASCIIRatio: float64(len(nonASCII)) / float64(max(1, len(runes))),
		NonASCIIChars: string(nonASCII),
		UnicodeBlocks: blocks,
		BlockFlag:     flag,
	}
}

// blockName is the leading word of the character's Unicode name, e.g.
// CYRILLIC for U+0430 (CYRILLIC SMALL LETTER A).
func blockName(r rune) string {
	name := runenames.Name(r)
	if name == "" || strings.HasPrefix(name, "<") {
		return ""
	}
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i]
	}
	return name
}

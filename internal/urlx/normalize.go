package urlx

import (
	"net/url"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"

	"github.com/mikey/phishguard/internal/core"
)

var lookupProfile = idna.New(idna.MapForLookup(), idna.Transitional(false))

// safePunycodeDecode converts an ASCII-compatible hostname back to its
// Unicode form, returning the input unchanged when decoding fails.
func safePunycodeDecode(hostname string) string {
	decoded, err := lookupProfile.ToUnicode(hostname)
	if err != nil {
		return hostname
	}
	return decoded
}

// Normalize parses a URL-like string into its components. A missing scheme
// defaults to http. The only possible error is core.ErrEmptyInput.
func Normalize(raw string) (*core.NormalizedURL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, core.ErrEmptyInput
	}

	candidate := trimmed
	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		candidate = "http://" + trimmed
	}

	n := &core.NormalizedURL{
		Original:  raw,
		Candidate: candidate,
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return n, nil
	}

	host := safePunycodeDecode(strings.ToLower(parsed.Hostname()))
	n.Scheme = parsed.Scheme
	n.Host = host
	n.Path = parsed.Path
	n.Query = parsed.RawQuery
	n.Domain, n.Subdomain = splitHost(host)
	return n, nil
}

// splitHost derives the registrable domain (eTLD+1) and the subdomain part.
// Hosts without a recognized public suffix count entirely as the domain.
func splitHost(host string) (domain, subdomain string) {
	if host == "" {
		return "", ""
	}
	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host, ""
	}
	if len(host) > len(registrable) && strings.HasSuffix(host, "."+registrable) {
		subdomain = host[:len(host)-len(registrable)-1]
	}
	return registrable, subdomain
}

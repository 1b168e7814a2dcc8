package enrich

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
	"go.uber.org/zap"

	"github.com/mikey/phishguard/internal/core"
)

// TLDs that disproportionately host short-lived phishing domains.
var suspiciousTLDs = []string{
	".xyz", ".top", ".loan", ".info", ".pw", ".site", ".online", ".rest", ".space", ".ru",
}

// Enricher performs the network-dependent URL lookups. Every method is
// attempted once per request with a bounded timeout and converts failure
// into a fallback value.
type Enricher struct {
	whoisClient  *whois.Client
	httpClient   *http.Client
	whoisTimeout time.Duration
	probeTimeout time.Duration
	userAgent    string
	logger       *zap.Logger
}

// New creates an enricher with the given per-call timeouts.
func New(whoisTimeout, probeTimeout time.Duration, logger *zap.Logger) *Enricher {
	client := whois.NewClient()
	client.SetTimeout(whoisTimeout)

	return &Enricher{
		whoisClient:  client,
		httpClient:   &http.Client{Timeout: probeTimeout},
		whoisTimeout: whoisTimeout,
		probeTimeout: probeTimeout,
		userAgent:    "Mozilla/5.0 (compatible; phishguard)",
		logger:       logger,
	}
}

// AgeDays returns the WHOIS-derived domain age in days, or nil on any
// failure (lookup error, restricted record, unparsable creation date).
func (e *Enricher) AgeDays(ctx context.Context, domain string) *int {
	if domain == "" {
		return nil
	}

	raw, err := e.whoisClient.Whois(domain)
	if err != nil {
		e.logger.Debug("WHOIS lookup failed", zap.String("domain", domain), zap.Error(err))
		return nil
	}

	parsed, err := whoisparser.Parse(raw)
	if err != nil || parsed.Domain == nil || parsed.Domain.CreatedDateInTime == nil {
		e.logger.Debug("WHOIS record had no usable creation date", zap.String("domain", domain))
		return nil
	}

	days := int(time.Since(*parsed.Domain.CreatedDateInTime).Hours() / 24)
	if days < 0 {
		return nil
	}
	return &days
}

// AgeHeuristic is the deterministic fallback when WHOIS yields nothing:
// suspicious TLDs read as a week old, digit-bearing domains as two weeks.
func (e *Enricher) AgeHeuristic(domain string) *int {
	if domain == "" {
		return nil
	}
	for _, tld := range suspiciousTLDs {
		if strings.HasSuffix(domain, tld) {
			days := 7
			return &days
		}
	}
	if strings.ContainsAny(domain, "0123456789") {
		days := 14
		return &days
	}
	return nil
}

// SSLOK reports whether an HTTPS fetch of the host succeeds with a
// non-error status. False on any failure.
func (e *Enricher) SSLOK(ctx context.Context, host string) bool {
	if host == "" {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://"+host, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		e.logger.Debug("SSL probe failed", zap.String("host", host), zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode < 400
}

// RedirectChain follows redirects for a URL, recording every hop. On
// failure it returns a result with Err set and an empty chain.
func (e *Enricher) RedirectChain(ctx context.Context, rawurl string) *core.RedirectInfo {
	var hops []string

	client := &http.Client{
		Timeout: e.probeTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > 0 {
				hops = append(hops, via[len(via)-1].URL.String())
			}
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawurl, nil)
	if err != nil {
		return &core.RedirectInfo{Err: err.Error(), Chain: []string{}, Hosts: []string{}}
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := client.Do(req)
	if err != nil {
		e.logger.Debug("Redirect fetch failed", zap.String("url", rawurl), zap.Error(err))
		return &core.RedirectInfo{Err: err.Error(), Chain: []string{}, Hosts: []string{}}
	}
	defer resp.Body.Close()

	final := resp.Request.URL.String()
	chain := append(hops, final)

	hosts := make([]string, 0, len(chain))
	for _, u := range chain {
		if parsed, err := url.Parse(u); err == nil {
			hosts = append(hosts, parsed.Hostname())
		} else {
			hosts = append(hosts, "")
		}
	}

	return &core.RedirectInfo{
		Chain:      chain,
		Hosts:      hosts,
		FinalURL:   final,
		StatusCode: resp.StatusCode,
	}
}

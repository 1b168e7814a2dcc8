package whitelist

import (
	"strings"

	"go.uber.org/zap"
)

// Whitelist holds trusted registrable domains whose URLs skip risk
// analysis. Empty by default.
type Whitelist struct {
	domains []string
	logger  *zap.Logger
}

// New creates a whitelist over the given domains, lower-cased and trimmed.
func New(domains []string, logger *zap.Logger) *Whitelist {
	normalized := make([]string, 0, len(domains))
	for _, domain := range domains {
		d := strings.ToLower(strings.TrimSpace(domain))
		if d != "" {
			normalized = append(normalized, d)
		}
	}

	if len(normalized) > 0 && logger != nil {
		logger.Info("Initialized trusted domain list", zap.Strings("domains", normalized))
	}

	return &Whitelist{
		domains: normalized,
		logger:  logger,
	}
}

// Contains reports whether the registrable domain is trusted.
func (w *Whitelist) Contains(domain string) bool {
	if len(w.domains) == 0 || domain == "" {
		return false
	}

	d := strings.ToLower(domain)
	for _, trusted := range w.domains {
		if trusted == d {
			if w.logger != nil {
				w.logger.Debug("Domain is trusted", zap.String("domain", d))
			}
			return true
		}
	}

	return false
}

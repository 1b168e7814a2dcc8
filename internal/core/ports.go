package core

import (
	"context"
	"time"
)

// SemanticAnalyst gives a structured second opinion on a channel's feature
// record. Implementations must never fail: provider errors and unparsable
// output degrade to the deterministic mock assessment.
type SemanticAnalyst interface {
	// AnalyzeMessage assesses a message feature record.
	AnalyzeMessage(ctx context.Context, feats *MessageFeatures) SemanticAssessment

	// AnalyzeURL assesses a URL feature record.
	AnalyzeURL(ctx context.Context, feats *URLFeatures) SemanticAssessment
}

// ProviderAnalyst is the fallible contract implemented by the real LLM
// providers. The factory wraps it so that failures degrade to the mock
// analyst before reaching the pipeline.
type ProviderAnalyst interface {
	AnalyzeMessage(ctx context.Context, feats *MessageFeatures) (SemanticAssessment, error)
	AnalyzeURL(ctx context.Context, feats *URLFeatures) (SemanticAssessment, error)
}

// ProbabilityOracle is the trained classifier's contract. It returns a
// neutral 0.5 when no model is loaded and never fails.
type ProbabilityOracle interface {
	// PredictMessage returns the phishing probability for a message record.
	PredictMessage(feats *MessageFeatures) float64

	// PredictURL returns the phishing probability for a URL record.
	PredictURL(feats *URLFeatures) float64
}

// BrandMatcher scores a hostname's resemblance to the curated brand list.
type BrandMatcher interface {
	// Similarity never fails; with an empty brand list it returns Sim == -1.
	Similarity(ctx context.Context, host string) BrandMatch
}

// BrandEncoder turns a string into an embedding vector. Used by the
// embedding matcher strategy; availability is checked once at startup.
type BrandEncoder interface {
	Encode(ctx context.Context, text string) ([]float64, error)
}

// DomainReputation covers the network-dependent URL enrichment lookups.
// Every method converts failure into a typed fallback value.
type DomainReputation interface {
	// AgeDays returns the WHOIS-derived domain age, or nil on any failure.
	AgeDays(ctx context.Context, domain string) *int

	// AgeHeuristic is the deterministic fallback when WHOIS yields nothing.
	AgeHeuristic(domain string) *int

	// SSLOK reports whether an HTTPS fetch of the host succeeds.
	SSLOK(ctx context.Context, host string) bool

	// RedirectChain resolves the redirect chain for a URL.
	RedirectChain(ctx context.Context, rawurl string) *RedirectInfo
}

// ReputationCache stores per-domain enrichment results between requests.
type ReputationCache interface {
	Get(ctx context.Context, domain string) (*ReputationEntry, error)
	Set(ctx context.Context, entry *ReputationEntry) error
	Delete(ctx context.Context, domain string) error
	Cleanup(ctx context.Context) error
}

// QRDecoder extracts the payload of a QR image. It reports failure in the
// result value rather than an error.
type QRDecoder interface {
	Decode(ctx context.Context, image []byte) QRDecodeResult
}

// CacheTTL bundles the cache policy knobs resolved from configuration.
type CacheTTL struct {
	Enabled bool
	TTL     time.Duration
}

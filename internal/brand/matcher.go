package brand

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/mikey/phishguard/internal/core"
)

// DefaultReferenceDomains is the curated brand list checked for look-alike
// hostnames. Overridable via brand.reference_domains in the configuration.
var DefaultReferenceDomains = []string{
	"google.com", "amazon.in", "amazon.com", "paytm.com", "sbi.co.in", "icici.com", "axisbank.com",
	"flipkart.com", "airtel.in", "gmail.com", "facebook.com", "instagram.com", "phonepe.com",
	"hdfcbank.com", "paytm.in", "uidai.gov.in",
}

var tokenSplit = regexp.MustCompile(`[\W_]+`)

// tokenize lower-cases and splits on non-word runs, dropping empty tokens.
func tokenize(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range tokenSplit.Split(strings.ToLower(s), -1) {
		if t != "" {
			set[t] = true
		}
	}
	return set
}

// Jaccard is the token-set overlap between two strings: |a∩b| / |a∪b|,
// 0 when either side has no tokens.
func Jaccard(a, b string) float64 {
	at := tokenize(a)
	bt := tokenize(b)
	if len(at) == 0 || len(bt) == 0 {
		return 0.0
	}
	inter := 0
	for t := range at {
		if bt[t] {
			inter++
		}
	}
	union := len(at) + len(bt) - inter
	return float64(inter) / float64(union)
}

// TokenMatcher is the deterministic fallback strategy. Ties break toward
// the earliest brand in the reference list.
type TokenMatcher struct {
	brands []string
}

// NewTokenMatcher creates a Jaccard-based matcher over the given brands.
func NewTokenMatcher(brands []string) *TokenMatcher {
	return &TokenMatcher{brands: brands}
}

func (m *TokenMatcher) Similarity(_ context.Context, host string) core.BrandMatch {
	best := core.BrandMatch{Sim: -1.0}
	for _, b := range m.brands {
		if sim := Jaccard(host, b); sim > best.Sim {
			best = core.BrandMatch{BestBrand: b, Sim: sim}
		}
	}
	return best
}

// EmbeddingMatcher scores resemblance with an external vector encoder.
// Brand vectors are computed once at construction; an encoder failure at
// match time degrades to the token fallback for that call.
type EmbeddingMatcher struct {
	encoder   core.BrandEncoder
	brands    []string
	brandVecs [][]float64
	fallback  *TokenMatcher
	logger    *zap.Logger
}

// NewEmbeddingMatcher encodes the reference brands up front. Brands whose
// encoding fails are skipped; if none survive, the constructor fails so the
// factory can fall back to the token strategy.
func NewEmbeddingMatcher(ctx context.Context, encoder core.BrandEncoder, brands []string, logger *zap.Logger) (*EmbeddingMatcher, error) {
	m := &EmbeddingMatcher{
		encoder:  encoder,
		fallback: NewTokenMatcher(brands),
		logger:   logger,
	}
	for _, b := range brands {
		vec, err := encoder.Encode(ctx, b)
		if err != nil {
			logger.Warn("Failed to encode reference brand", zap.String("brand", b), zap.Error(err))
			continue
		}
		m.brands = append(m.brands, b)
		m.brandVecs = append(m.brandVecs, vec)
	}
	if len(brands) > 0 && len(m.brands) == 0 {
		return nil, errors.New("no reference brand could be encoded")
	}
	return m, nil
}

func (m *EmbeddingMatcher) Similarity(ctx context.Context, host string) core.BrandMatch {
	if len(m.brands) == 0 {
		return core.BrandMatch{Sim: -1.0}
	}
	hostVec, err := m.encoder.Encode(ctx, host)
	if err != nil {
		m.logger.Debug("Host embedding failed, using token fallback", zap.Error(err))
		return m.fallback.Similarity(ctx, host)
	}
	best := core.BrandMatch{Sim: -1.0}
	for i, b := range m.brands {
		if sim := cosine(hostVec, m.brandVecs[i]); sim > best.Sim {
			best = core.BrandMatch{BestBrand: b, Sim: sim}
		}
	}
	return best
}

func cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

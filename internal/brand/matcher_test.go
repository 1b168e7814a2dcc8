package brand

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"
)

func TestJaccardSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"secure-paytm.com", "paytm.com"},
		{"google.com", "mail.google.com"},
		{"a.b.c", "c.d.e"},
	}
	for _, p := range pairs {
		if Jaccard(p[0], p[1]) != Jaccard(p[1], p[0]) {
			t.Errorf("Jaccard not symmetric for %q / %q", p[0], p[1])
		}
	}
}

func TestJaccardIdentical(t *testing.T) {
	if got := Jaccard("paytm.com", "paytm.com"); got != 1.0 {
		t.Errorf("expected 1.0 for identical strings, got %f", got)
	}
}

func TestJaccardEmpty(t *testing.T) {
	if got := Jaccard("", "paytm.com"); got != 0.0 {
		t.Errorf("expected 0.0 when one side is empty, got %f", got)
	}
	if got := Jaccard("---", "..."); got != 0.0 {
		t.Errorf("expected 0.0 when neither side has tokens, got %f", got)
	}
}

func TestJaccardOverlap(t *testing.T) {
	// {secure, paytm, com} vs {paytm, com}: 2 shared of 3 total.
	got := Jaccard("secure-paytm.com", "paytm.com")
	want := 2.0 / 3.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected %f, got %f", want, got)
	}
}

func TestTokenMatcherEmptyBrandList(t *testing.T) {
	m := NewTokenMatcher(nil)
	got := m.Similarity(context.Background(), "paytm.com")
	if got.Sim != -1.0 {
		t.Errorf("expected Sim -1 with no brands, got %f", got.Sim)
	}
	if got.BestBrand != "" {
		t.Errorf("expected empty best brand, got %q", got.BestBrand)
	}
}

func TestTokenMatcherPicksClosest(t *testing.T) {
	m := NewTokenMatcher([]string{"google.com", "paytm.com", "sbi.co.in"})
	got := m.Similarity(context.Background(), "secure-paytm.com")
	if got.BestBrand != "paytm.com" {
		t.Errorf("expected paytm.com, got %q", got.BestBrand)
	}
	if got.Sim < 0.6 {
		t.Errorf("expected similarity >= 0.6, got %f", got.Sim)
	}
}

func TestTokenMatcherTieBreaksToFirst(t *testing.T) {
	// Zero overlap with every brand: the first one wins the tie.
	m := NewTokenMatcher([]string{"alpha.com", "beta.com"})
	got := m.Similarity(context.Background(), "unrelated.org")
	if got.BestBrand != "alpha.com" {
		t.Errorf("expected first brand on ties, got %q", got.BestBrand)
	}
	if got.Sim != 0.0 {
		t.Errorf("expected similarity 0, got %f", got.Sim)
	}
}

// stubEncoder returns fixed vectors per input and can be made to fail.
type stubEncoder struct {
	vectors map[string][]float64
	failOn  string
}

func (e *stubEncoder) Encode(_ context.Context, text string) ([]float64, error) {
	if text == e.failOn {
		return nil, errors.New("encoder unavailable")
	}
	vec, ok := e.vectors[text]
	if !ok {
		return nil, errors.New("unknown input")
	}
	return vec, nil
}

func TestEmbeddingMatcherCosine(t *testing.T) {
	enc := &stubEncoder{vectors: map[string][]float64{
		"paytm.com":  {1, 0},
		"google.com": {0, 1},
		"paytm.net":  {0.9, 0.1},
	}}
	m, err := NewEmbeddingMatcher(context.Background(), enc, []string{"paytm.com", "google.com"}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := m.Similarity(context.Background(), "paytm.net")
	if got.BestBrand != "paytm.com" {
		t.Errorf("expected paytm.com, got %q", got.BestBrand)
	}
	if got.Sim <= 0.9 {
		t.Errorf("expected high cosine similarity, got %f", got.Sim)
	}
}

func TestEmbeddingMatcherFallsBackOnEncodeError(t *testing.T) {
	enc := &stubEncoder{
		vectors: map[string][]float64{
			"paytm.com":  {1, 0},
			"google.com": {0, 1},
		},
		failOn: "secure-paytm.com",
	}
	m, err := NewEmbeddingMatcher(context.Background(), enc, []string{"paytm.com", "google.com"}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Host encoding fails, so the token strategy answers instead.
	got := m.Similarity(context.Background(), "secure-paytm.com")
	if got.BestBrand != "paytm.com" {
		t.Errorf("expected token fallback to pick paytm.com, got %q", got.BestBrand)
	}
}

func TestEmbeddingMatcherNoEncodableBrand(t *testing.T) {
	enc := &stubEncoder{vectors: map[string][]float64{}}
	if _, err := NewEmbeddingMatcher(context.Background(), enc, []string{"paytm.com"}, zap.NewNop()); err == nil {
		t.Error("expected constructor error when no brand can be encoded")
	}
}

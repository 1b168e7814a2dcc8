package pipeline

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/mikey/phishguard/internal/adapters/mock"
	"github.com/mikey/phishguard/internal/brand"
	"github.com/mikey/phishguard/internal/core"
	"github.com/mikey/phishguard/internal/mlmodel"
	"github.com/mikey/phishguard/internal/whitelist"
)

// stubReputation produces deterministic enrichment without any network
// calls.
type stubReputation struct {
	ageDays *int
	sslOK   bool
}

func (r *stubReputation) AgeDays(_ context.Context, _ string) *int { return r.ageDays }
func (r *stubReputation) AgeHeuristic(_ string) *int               { return nil }
func (r *stubReputation) SSLOK(_ context.Context, _ string) bool   { return r.sslOK }
func (r *stubReputation) RedirectChain(_ context.Context, _ string) *core.RedirectInfo {
	return nil
}

// stubQR returns a canned decode result.
type stubQR struct {
	result core.QRDecodeResult
}

func (q *stubQR) Decode(_ context.Context, _ []byte) core.QRDecodeResult { return q.result }

func newTestService(t *testing.T, rep core.DomainReputation, qr core.QRDecoder, trusted []string) *Service {
	t.Helper()
	if rep == nil {
		rep = &stubReputation{sslOK: true}
	}
	if qr == nil {
		qr = &stubQR{result: core.QRDecodeResult{OK: false, Error: "No QR code found / decoding failed"}}
	}
	return New(
		mlmodel.New("", "", zap.NewNop()),
		mock.NewAnalyst(),
		brand.NewTokenMatcher(brand.DefaultReferenceDomains),
		rep,
		nil,
		core.CacheTTL{},
		qr,
		whitelist.New(trusted, zap.NewNop()),
		false,
		zap.NewNop(),
	)
}

func TestAnalyzeMessageScenario(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	got := svc.AnalyzeMessage(context.Background(), "URGENT! Verify your bank OTP 123456 now!!!")

	// Neutral oracle 0.5, mock confidence 0.75, heuristic 0.50:
	// 0.45*0.5 + 0.45*0.75 + 0.10*0.50 = 0.6125 -> 0.613.
	if got.ModelProbability != 0.5 {
		t.Errorf("expected neutral model probability, got %f", got.ModelProbability)
	}
	if got.LLM.Confidence != 0.75 {
		t.Errorf("expected analyst confidence 0.75, got %f", got.LLM.Confidence)
	}
	if got.FinalScore != 0.613 {
		t.Errorf("expected final score 0.613, got %f", got.FinalScore)
	}
	if got.RiskLevel != core.RiskSuspicious {
		t.Errorf("expected Suspicious, got %s", got.RiskLevel)
	}
	if got.ScamType != "credential_harvesting" {
		t.Errorf("expected credential_harvesting, got %q", got.ScamType)
	}
}

func TestAnalyzeURLStructuralReasons(t *testing.T) {
	svc := newTestService(t, &stubReputation{sslOK: false}, nil, nil)

	got, err := svc.AnalyzeURL(context.Background(), "http://secure-login-update.example/verify")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantReasons := map[string]bool{}
	for _, r := range got.StructuralReasons {
		wantReasons[r] = true
	}
	for _, expect := range []string{
		"Domain age could not be established.",
		"HTTPS check failed for this host.",
		"URL path or query contains credential-related words.",
		"Hostname contains multiple hyphens.",
	} {
		if !wantReasons[expect] {
			t.Errorf("missing structural reason %q in %v", expect, got.StructuralReasons)
		}
	}
	if got.Channel != core.ChannelURL {
		t.Errorf("expected URL channel, got %s", got.Channel)
	}
}

func TestAnalyzeURLEmptyInput(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)
	if _, err := svc.AnalyzeURL(context.Background(), "   "); !errors.Is(err, core.ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestAnalyzeURLTrustedBypass(t *testing.T) {
	svc := newTestService(t, &stubReputation{sslOK: false}, nil, []string{"example.com"})

	got, err := svc.AnalyzeURL(context.Background(), "https://example.com/login")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.RiskLevel != core.RiskLow {
		t.Errorf("expected Low for trusted domain, got %s", got.RiskLevel)
	}
	if got.FinalScore != 0.0 {
		t.Errorf("expected score 0.0, got %f", got.FinalScore)
	}
	if got.LLM.Confidence != 1.0 {
		t.Errorf("expected confidence 1.0, got %f", got.LLM.Confidence)
	}
	if len(got.StructuralReasons) != 0 {
		t.Errorf("trusted bypass must not report structural reasons, got %v", got.StructuralReasons)
	}
}

func TestAnalyzeTextExtractsURL(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	got, err := svc.AnalyzeText(context.Background(), "URGENT verify your account at https://secure-login.example/verify today")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Source != core.SourceBoth {
		t.Errorf("expected both channels, got %s", got.Source)
	}
	if got.MessageAnalysis == nil || got.URLAnalysis == nil {
		t.Fatal("expected both channel analyses attached")
	}
	if got.URLAnalysis.LLM.Reasons == nil {
		t.Error("expected URL analyst reasons")
	}
	if got.FinalScore == nil {
		t.Error("expected a fused score")
	}
}

func TestAnalyzeTextMessageOnly(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	got, err := svc.AnalyzeText(context.Background(), "URGENT! Verify your bank OTP 123456 now!!!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Source != core.SourceMessageOnly {
		t.Errorf("expected message_only, got %s", got.Source)
	}
	if got.FinalScore == nil || *got.FinalScore != 0.613 {
		t.Errorf("expected score 0.613, got %v", got.FinalScore)
	}
	if got.FinalRisk != core.RiskSuspicious {
		t.Errorf("expected Suspicious, got %s", got.FinalRisk)
	}
}

func TestAnalyzeTextURLOnly(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)

	got, err := svc.AnalyzeText(context.Background(), "https://example.org/page")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Source != core.SourceURLOnly {
		t.Errorf("expected url_only, got %s", got.Source)
	}
	if got.MessageAnalysis != nil {
		t.Error("expected no message analysis for bare URL input")
	}
}

func TestAnalyzeTextEmpty(t *testing.T) {
	svc := newTestService(t, nil, nil, nil)
	if _, err := svc.AnalyzeText(context.Background(), " \n "); !errors.Is(err, core.ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestAnalyzeQRDecodeFailure(t *testing.T) {
	svc := newTestService(t, nil, &stubQR{result: core.QRDecodeResult{
		OK:    false,
		Error: "No QR code found / decoding failed",
	}}, nil)

	got := svc.AnalyzeQR(context.Background(), []byte("not an image"))

	if got.FinalRisk != core.RiskUnknown {
		t.Errorf("expected Unknown, got %s", got.FinalRisk)
	}
	if got.ScamType != "no_qr" {
		t.Errorf("expected no_qr, got %q", got.ScamType)
	}
	if got.DecodedData != nil {
		t.Errorf("expected nil decoded data, got %v", *got.DecodedData)
	}
	if len(got.Explanation) != 1 || got.Explanation[0] != "No QR code found / decoding failed" {
		t.Errorf("expected decoder error as explanation, got %v", got.Explanation)
	}
	if got.Analysis != nil {
		t.Error("expected no channel analysis on decode failure")
	}
}

func TestAnalyzeQRRoutesURL(t *testing.T) {
	svc := newTestService(t, nil, &stubQR{result: core.QRDecodeResult{
		OK:     true,
		Data:   "https://secure-login.example/verify",
		Source: "local",
	}}, nil)

	got := svc.AnalyzeQR(context.Background(), []byte("png bytes"))

	if got.Analysis == nil {
		t.Fatal("expected channel analysis")
	}
	if got.Analysis.Channel != core.ChannelURL {
		t.Errorf("expected URL channel, got %s", got.Analysis.Channel)
	}
	if got.Analysis.DecodedData != "https://secure-login.example/verify" {
		t.Errorf("unexpected decoded data %q", got.Analysis.DecodedData)
	}
	if got.Analysis.DecodedSource != "local" {
		t.Errorf("expected local decode source, got %q", got.Analysis.DecodedSource)
	}
	if got.DecodedData == nil || *got.DecodedData != "https://secure-login.example/verify" {
		t.Error("expected decoded data on the verdict")
	}
}

func TestAnalyzeQRRoutesMessage(t *testing.T) {
	svc := newTestService(t, nil, &stubQR{result: core.QRDecodeResult{
		OK:     true,
		Data:   "Your KYC is pending, share OTP 123456 immediately",
		Source: "qrserver",
	}}, nil)

	got := svc.AnalyzeQR(context.Background(), []byte("png bytes"))

	if got.Analysis == nil {
		t.Fatal("expected channel analysis")
	}
	if got.Analysis.Channel != core.ChannelMessage {
		t.Errorf("expected message channel, got %s", got.Analysis.Channel)
	}
	if got.Analysis.DecodedSource != "qrserver" {
		t.Errorf("expected qrserver decode source, got %q", got.Analysis.DecodedSource)
	}
}

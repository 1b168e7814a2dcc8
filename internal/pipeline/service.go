package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/phishguard/internal/core"
	"github.com/mikey/phishguard/internal/message"
	"github.com/mikey/phishguard/internal/urlx"
	"github.com/mikey/phishguard/internal/whitelist"
)

// suspiciousPathTokens are credential-related words checked against the
// URL path and query.
var suspiciousPathTokens = []string{
	"verify", "login", "secure", "update", "account", "confirm", "bank", "payment", "otp",
}

var urlPattern = regexp.MustCompile(`https?://\S+`)

// Service runs the multi-signal risk pipeline: per-channel feature
// extraction and scoring, fusion, and QR routing. All collaborators are
// read-only after construction; every request is independent.
type Service struct {
	oracle     core.ProbabilityOracle
	analyst    core.SemanticAnalyst
	matcher    core.BrandMatcher
	reputation core.DomainReputation
	repCache   core.ReputationCache
	cachePolicy core.CacheTTL
	qr         core.QRDecoder
	trusted    *whitelist.Whitelist
	followRedirects bool
	logger     *zap.Logger
}

// New creates the analysis service.
func New(
	oracle core.ProbabilityOracle,
	analyst core.SemanticAnalyst,
	matcher core.BrandMatcher,
	reputation core.DomainReputation,
	repCache core.ReputationCache,
	cachePolicy core.CacheTTL,
	qr core.QRDecoder,
	trusted *whitelist.Whitelist,
	followRedirects bool,
	logger *zap.Logger,
) *Service {
	return &Service{
		oracle:          oracle,
		analyst:         analyst,
		matcher:         matcher,
		reputation:      reputation,
		repCache:        repCache,
		cachePolicy:     cachePolicy,
		qr:              qr,
		trusted:         trusted,
		followRedirects: followRedirects,
		logger:          logger,
	}
}

// AnalyzeMessage runs the message channel pipeline.
func (s *Service) AnalyzeMessage(ctx context.Context, msg string) *core.ChannelResult {
	feats := message.Extract(msg)
	result := core.ComposeMessage(ctx, feats, s.oracle, s.analyst)
	s.logger.Debug("Message channel composed",
		zap.Float64("final_score", result.FinalScore),
		zap.String("risk", string(result.RiskLevel)))
	return result
}

// AnalyzeURL runs the URL channel pipeline. The only possible error is
// core.ErrEmptyInput.
func (s *Service) AnalyzeURL(ctx context.Context, rawurl string) (*core.ChannelResult, error) {
	parsed, err := urlx.Normalize(rawurl)
	if err != nil {
		return nil, err
	}

	if s.trusted.Contains(parsed.Domain) {
		s.logger.Info("Skipping URL analysis for trusted domain",
			zap.String("domain", parsed.Domain),
			zap.String("action", "trusted_bypass"))
		return trustedResult(parsed), nil
	}

	feats, structural := s.extractURLFeatures(ctx, parsed)
	result := core.ComposeURL(ctx, feats, structural, s.oracle, s.analyst)
	s.logger.Debug("URL channel composed",
		zap.String("host", parsed.Host),
		zap.Float64("final_score", result.FinalScore),
		zap.String("risk", string(result.RiskLevel)))
	return result, nil
}

// AnalyzeCombined runs whichever channels have input and fuses the results.
func (s *Service) AnalyzeCombined(ctx context.Context, msg, rawurl string) (core.FusionVerdict, error) {
	var msgResult, urlResult *core.ChannelResult

	if strings.TrimSpace(msg) != "" {
		msgResult = s.AnalyzeMessage(ctx, msg)
	}
	if strings.TrimSpace(rawurl) != "" {
		r, err := s.AnalyzeURL(ctx, rawurl)
		if err != nil {
			return core.FusionVerdict{}, err
		}
		urlResult = r
	}

	return core.Fuse(msgResult, urlResult), nil
}

// AnalyzeText splits raw text into an optional URL and a residual message,
// then analyzes whichever parts exist.
func (s *Service) AnalyzeText(ctx context.Context, raw string) (core.FusionVerdict, error) {
	if strings.TrimSpace(raw) == "" {
		return core.FusionVerdict{}, core.ErrEmptyInput
	}
	url := urlPattern.FindString(raw)
	msg := raw
	if url != "" {
		msg = strings.TrimSpace(strings.Replace(raw, url, "", 1))
	}
	return s.AnalyzeCombined(ctx, msg, url)
}

// AnalyzeQR routes decoded QR content to the matching channel. Decode
// failure yields the minimal Unknown verdict rather than an error.
func (s *Service) AnalyzeQR(ctx context.Context, image []byte) core.QRVerdict {
	decoded := s.qr.Decode(ctx, image)
	if !decoded.OK {
		return core.QRVerdict{
			FinalRisk:   core.RiskUnknown,
			ScamType:    "no_qr",
			Explanation: []string{decoded.Error},
			DecodedData: nil,
		}
	}

	var result *core.ChannelResult
	lower := strings.ToLower(decoded.Data)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		r, err := s.AnalyzeURL(ctx, decoded.Data)
		if err != nil {
			return core.QRVerdict{
				FinalRisk:   core.RiskUnknown,
				ScamType:    "no_qr",
				Explanation: []string{err.Error()},
				DecodedData: nil,
			}
		}
		result = r
	} else {
		result = s.AnalyzeMessage(ctx, decoded.Data)
	}

	attached := *result
	attached.DecodedData = decoded.Data
	attached.DecodedSource = decoded.Source

	return core.QRVerdict{
		FinalRisk:   attached.RiskLevel,
		ScamType:    attached.ScamType,
		Explanation: attached.LLM.Reasons,
		DecodedData: &decoded.Data,
		Analysis:    &attached,
	}
}

// extractURLFeatures composes normalization, homoglyph detection, brand
// similarity and domain reputation into the URL feature record plus the
// ordered structural reasons.
func (s *Service) extractURLFeatures(ctx context.Context, parsed *core.NormalizedURL) (*core.URLFeatures, []string) {
	homog := urlx.DetectHomoglyphs(parsed.Host)
	match := s.matcher.Similarity(ctx, parsed.Host)
	age, sslOK := s.lookupReputation(ctx, parsed)

	var redirect *core.RedirectInfo
	if s.followRedirects {
		redirect = s.reputation.RedirectChain(ctx, parsed.Candidate)
	}

	feats := &core.URLFeatures{
		URL:                 parsed.Original,
		Host:                parsed.Host,
		Domain:              parsed.Domain,
		Subdomain:           parsed.Subdomain,
		Path:                parsed.Path,
		Query:               parsed.Query,
		Length:              len(parsed.Original),
		HyphenCount:         strings.Count(parsed.Host, "-"),
		DigitFlag:           strings.ContainsAny(parsed.Host, "0123456789"),
		HomoglyphRatio:      homog.NonASCIIRatio,
		HomoglyphFlag:       homog.BlockFlag,
		BrandBest:           match.BestBrand,
		BrandSim:            match.Sim,
		WhoisAgeDays:        age,
		SSLValid:            sslOK,
		SuspiciousPathToken: hasSuspiciousPathToken(parsed.Path + " " + parsed.Query),
		Redirect:            redirect,
	}

	return feats, structuralReasons(feats)
}

// lookupReputation resolves WHOIS age and SSL reachability for the parsed
// URL, consulting the per-domain cache when enabled.
func (s *Service) lookupReputation(ctx context.Context, parsed *core.NormalizedURL) (*int, bool) {
	if parsed.Domain == "" {
		return nil, false
	}

	if s.cachePolicy.Enabled {
		if entry, err := s.repCache.Get(ctx, parsed.Domain); err == nil {
			s.logger.Debug("Reputation cache hit", zap.String("domain", parsed.Domain))
			return entry.AgeDays, entry.SSLValid
		}
	}

	age := s.reputation.AgeDays(ctx, parsed.Domain)
	if age == nil {
		age = s.reputation.AgeHeuristic(parsed.Domain)
	}
	sslOK := s.reputation.SSLOK(ctx, parsed.Host)

	if s.cachePolicy.Enabled {
		now := time.Now()
		entry := &core.ReputationEntry{
			Domain:    parsed.Domain,
			AgeDays:   age,
			SSLValid:  sslOK,
			LastSeen:  now,
			ExpiresAt: now.Add(s.cachePolicy.TTL),
		}
		if err := s.repCache.Set(ctx, entry); err != nil {
			s.logger.Error("Failed to update reputation cache", zap.Error(err))
		}
	}

	return age, sslOK
}

func hasSuspiciousPathToken(pathAndQuery string) bool {
	text := strings.ToLower(pathAndQuery)
	for _, t := range suspiciousPathTokens {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

// structuralReasons builds the ordered, deterministic explanation list for
// the URL channel's lexical/structural findings.
func structuralReasons(feats *core.URLFeatures) []string {
	reasons := []string{}
	if feats.HomoglyphFlag {
		reasons = append(reasons, "Hostname uses characters from suspicious Unicode blocks.")
	}
	if core.BrandLookalike(feats) {
		reasons = append(reasons, fmt.Sprintf("Hostname closely resembles %s.", feats.BrandBest))
	}
	if feats.WhoisAgeDays == nil {
		reasons = append(reasons, "Domain age could not be established.")
	} else if *feats.WhoisAgeDays <= 30 {
		reasons = append(reasons, fmt.Sprintf("Domain is very new (%d days).", *feats.WhoisAgeDays))
	}
	if !feats.SSLValid {
		reasons = append(reasons, "HTTPS check failed for this host.")
	}
	if feats.SuspiciousPathToken {
		reasons = append(reasons, "URL path or query contains credential-related words.")
	}
	if feats.HyphenCount >= 2 {
		reasons = append(reasons, "Hostname contains multiple hyphens.")
	}
	if feats.DigitFlag {
		reasons = append(reasons, "Hostname contains digits.")
	}
	if feats.Length >= 75 {
		reasons = append(reasons, "URL is unusually long.")
	}
	if feats.Redirect != nil && feats.Redirect.Err == "" && len(feats.Redirect.Hosts) > 0 {
		final := feats.Redirect.Hosts[len(feats.Redirect.Hosts)-1]
		if final != "" && final != feats.Host {
			reasons = append(reasons, fmt.Sprintf("Redirect chain ends on a different host (%s).", final))
		}
	}
	return reasons
}

// trustedResult is the short-circuit verdict for allowlisted domains.
func trustedResult(parsed *core.NormalizedURL) *core.ChannelResult {
	return &core.ChannelResult{
		Channel:    core.ChannelURL,
		RiskLevel:  core.RiskLow,
		FinalScore: 0.0,
		ModelProbability: 0.0,
		LLM: core.SemanticAssessment{
			RiskLevel:  core.RiskLow,
			Confidence: 1.0,
			ScamType:   core.ScamTypeUnknown,
			Reasons:    []string{fmt.Sprintf("Domain %s is on the trusted list.", parsed.Domain)},
		},
		ScamType:          core.ScamTypeUnknown,
		Indicators:        []string{},
		StructuralReasons: []string{},
	}
}

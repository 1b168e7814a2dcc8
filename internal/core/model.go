package core

import (
	"time"
)

// RiskLevel classifies how dangerous an input is judged to be.
type RiskLevel string

const (
	RiskLow        RiskLevel = "Low"
	RiskSuspicious RiskLevel = "Suspicious"
	RiskHigh       RiskLevel = "High"
	RiskUnknown    RiskLevel = "Unknown"
	RiskError      RiskLevel = "Error"
)

// Channel identifies one of the two independent analysis tracks.
type Channel string

const (
	ChannelMessage Channel = "message"
	ChannelURL     Channel = "url"
)

// Source records which channels contributed to a fused verdict.
type Source string

const (
	SourceMessageOnly Source = "message_only"
	SourceURLOnly     Source = "url_only"
	SourceBoth        Source = "message+url"
	SourceNone        Source = "none"
)

// ScamTypeUnknown is the neutral scam-type label.
const ScamTypeUnknown = "unknown"

// NormalizedURL is the parsed, punycode-decoded view of a raw URL string.
// Host is lower-cased; Domain is the registrable domain (eTLD+1).
type NormalizedURL struct {
	Original  string `json:"original"`
	Candidate string `json:"candidate"`
	Scheme    string `json:"scheme"`
	Host      string `json:"host"`
	Domain    string `json:"domain"`
	Subdomain string `json:"subdomain"`
	Path      string `json:"path"`
	Query     string `json:"query"`
}

// HomoglyphAssessment describes non-ASCII content found in a hostname.
type HomoglyphAssessment struct {
	NonASCIIRatio float64  `json:"non_ascii_ratio"`
	NonASCIIChars string   `json:"non_ascii_chars"`
	UnicodeBlocks []string `json:"unicode_blocks"`
	BlockFlag     bool     `json:"block_flag"`
}

// BrandMatch is the closest reference brand for a hostname. Sim is -1 only
// when there was no brand to compare against; 0 when the fallback strategy
// found no tokens on either side.
type BrandMatch struct {
	BestBrand string  `json:"best_brand"`
	Sim       float64 `json:"sim"`
}

// MessageFeatures is the lexical feature record extracted from message text.
type MessageFeatures struct {
	Message          string   `json:"message"`
	TokensDetected   []string `json:"tokens_detected"`
	SuspiciousTokens bool     `json:"suspicious_tokens"`
	UrgencyFlag      bool     `json:"urgency_flag"`
	NumbersPresent   int      `json:"numbers_present"`
	UppercaseRatio   float64  `json:"uppercase_ratio"`
	Length           int      `json:"length"`
	Exclamations     int      `json:"exclamations"`
}

// RedirectInfo is the resolved redirect chain for a URL. Err is set and the
// chain empty when the fetch failed.
type RedirectInfo struct {
	Chain      []string `json:"chain"`
	Hosts      []string `json:"hosts"`
	FinalURL   string   `json:"final_url"`
	StatusCode int      `json:"status_code"`
	Err        string   `json:"error,omitempty"`
}

// URLFeatures is the structural feature record extracted from a URL.
type URLFeatures struct {
	URL                 string        `json:"url"`
	Host                string        `json:"host"`
	Domain              string        `json:"domain"`
	Subdomain           string        `json:"subdomain"`
	Path                string        `json:"path"`
	Query               string        `json:"query"`
	Length              int           `json:"length"`
	HyphenCount         int           `json:"hyphen_count"`
	DigitFlag           bool          `json:"digit_flag"`
	HomoglyphRatio      float64       `json:"homoglyph_ratio"`
	HomoglyphFlag       bool          `json:"homoglyph_flag"`
	BrandBest           string        `json:"brand_best"`
	BrandSim            float64       `json:"brand_sim"`
	WhoisAgeDays        *int          `json:"whois_age_days"`
	SSLValid            bool          `json:"ssl_valid"`
	SuspiciousPathToken bool          `json:"suspicious_path_token"`
	Redirect            *RedirectInfo `json:"redirect_info,omitempty"`
}

// SemanticAssessment is the semantic analyst's structured opinion on one
// channel's feature record.
type SemanticAssessment struct {
	RiskLevel  RiskLevel `json:"risk_level"`
	Confidence float64   `json:"confidence"`
	ScamType   string    `json:"scam_type"`
	Reasons    []string  `json:"reasons"`
}

// ChannelResult is the composed verdict for a single channel. It is built
// once per request and never mutated afterwards.
type ChannelResult struct {
	Channel           Channel            `json:"channel"`
	RiskLevel         RiskLevel          `json:"risk_level"`
	FinalScore        float64            `json:"final_score"`
	ModelProbability  float64            `json:"model_probability"`
	LLM               SemanticAssessment `json:"llm"`
	ScamType          string             `json:"scam_type"`
	Indicators        []string           `json:"indicators"`
	StructuralReasons []string           `json:"structural_reasons,omitempty"`
	DecodedData       string             `json:"decoded_data,omitempty"`
	DecodedSource     string             `json:"decoded_source,omitempty"`
}

// FusionVerdict is the final reconciled output of the pipeline. FinalScore
// is nil when no channel produced a score.
type FusionVerdict struct {
	FinalRisk       RiskLevel      `json:"final_risk"`
	FinalScore      *float64       `json:"final_score"`
	Source          Source         `json:"source"`
	ScamType        string         `json:"scam_type"`
	Explanation     []string       `json:"explanation"`
	MessageAnalysis *ChannelResult `json:"message_analysis"`
	URLAnalysis     *ChannelResult `json:"url_analysis"`
}

// QRDecodeResult is the external decoder's report.
type QRDecodeResult struct {
	OK     bool   `json:"ok"`
	Data   string `json:"data,omitempty"`
	Source string `json:"source,omitempty"`
	Error  string `json:"error,omitempty"`
}

// QRVerdict is the minimal verdict returned when QR decoding fails, and the
// envelope around a channel result when it succeeds.
type QRVerdict struct {
	FinalRisk   RiskLevel      `json:"final_risk"`
	ScamType    string         `json:"scam_type"`
	Explanation []string       `json:"explanation"`
	DecodedData *string        `json:"decoded_data"`
	Analysis    *ChannelResult `json:"analysis,omitempty"`
}

// ReputationEntry is a cached domain-reputation lookup.
type ReputationEntry struct {
	Domain    string
	AgeDays   *int
	SSLValid  bool
	LastSeen  time.Time
	ExpiresAt time.Time
}

package mlmodel

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"go.uber.org/zap"

	"github.com/mikey/phishguard/internal/core"
)

// ModelFile is the on-disk weight format for a trained logistic model.
// Feature names mirror the numeric feature record the classifier was
// trained on.
type ModelFile struct {
	Bias    float64            `json:"bias"`
	Weights map[string]float64 `json:"weights"`
}

// Oracle is a file-backed logistic classifier. A nil message or URL model
// yields the neutral probability 0.5 for that channel.
type Oracle struct {
	messageModel *ModelFile
	urlModel     *ModelFile
	logger       *zap.Logger
}

// Neutral is the probability reported when no model is loaded.
const Neutral = 0.5

// New loads the message and URL models from the given paths. An empty path
// or an unreadable file leaves that channel's model unset; loading never
// fails the process.
func New(messagePath, urlPath string, logger *zap.Logger) *Oracle {
	o := &Oracle{logger: logger}
	o.messageModel = load(messagePath, "message", logger)
	o.urlModel = load(urlPath, "url", logger)
	return o
}

func load(path, channel string, logger *zap.Logger) *ModelFile {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Classifier model not loaded, using neutral probability",
			zap.String("channel", channel),
			zap.String("path", path),
			zap.Error(err))
		return nil
	}
	var m ModelFile
	if err := json.Unmarshal(data, &m); err != nil {
		logger.Warn("Classifier model file is invalid, using neutral probability",
			zap.String("channel", channel),
			zap.String("path", path),
			zap.Error(err))
		return nil
	}
	logger.Info("Loaded classifier model",
		zap.String("channel", channel),
		zap.String("path", path),
		zap.Int("weights", len(m.Weights)))
	return &m
}

// HasMessageModel reports whether a trained message classifier is loaded.
func (o *Oracle) HasMessageModel() bool { return o.messageModel != nil }

// HasURLModel reports whether a trained URL classifier is loaded.
func (o *Oracle) HasURLModel() bool { return o.urlModel != nil }

// PredictMessage returns the phishing probability for a message record.
func (o *Oracle) PredictMessage(feats *core.MessageFeatures) float64 {
	if o.messageModel == nil || feats == nil {
		return Neutral
	}
	return o.messageModel.predict(map[string]float64{
		"f_length":          float64(feats.Length),
		"f_numbers":         float64(feats.NumbersPresent),
		"f_upper_ratio":     feats.UppercaseRatio,
		"f_exclamations":    float64(feats.Exclamations),
		"f_suspicious_flag": boolFeature(feats.SuspiciousTokens),
		"f_urgency_flag":    boolFeature(feats.UrgencyFlag),
	})
}

// PredictURL returns the phishing probability for a URL record.
func (o *Oracle) PredictURL(feats *core.URLFeatures) float64 {
	if o.urlModel == nil || feats == nil {
		return Neutral
	}
	var age float64
	if feats.WhoisAgeDays != nil {
		age = float64(*feats.WhoisAgeDays)
	}
	return o.urlModel.predict(map[string]float64{
		"f_length":           float64(feats.Length),
		"f_hyphens":          float64(feats.HyphenCount),
		"f_digit_flag":       boolFeature(feats.DigitFlag),
		"f_homoglyph_ratio":  feats.HomoglyphRatio,
		"f_homoglyph_flag":   boolFeature(feats.HomoglyphFlag),
		"f_brand_sim":        feats.BrandSim,
		"f_age_days":         age,
		"f_ssl_valid":        boolFeature(feats.SSLValid),
		"f_suspicious_token": boolFeature(feats.SuspiciousPathToken),
	})
}

func (m *ModelFile) predict(features map[string]float64) float64 {
	z := m.Bias
	for name, w := range m.Weights {
		z += w * features[name]
	}
	return sigmoid(z)
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

func boolFeature(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

// Describe summarizes which models are loaded, for startup logging.
func (o *Oracle) Describe() string {
	return fmt.Sprintf("message=%t url=%t", o.messageModel != nil, o.urlModel != nil)
}

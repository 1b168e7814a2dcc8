package utils

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// TextProcessor bounds and sanitizes text before it is sent to an
// external language model provider.
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new text processor
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{
		logger: logger,
	}
}

// TruncateText truncates text to the given maximum size in bytes
func (tp *TextProcessor) TruncateText(text string, maxSize int) string {
	if len(text) <= maxSize {
		return text
	}

	truncated := text[:maxSize]

	// Avoid splitting a UTF-8 sequence at the cut point.
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}

	tp.logger.Debug("truncated text for analysis",
		zap.Int("original_size", len(text)),
		zap.Int("truncated_size", len(truncated)))

	return truncated
}

// SanitizeUTF8 replaces invalid UTF-8 sequences with the replacement character
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}
	return strings.ToValidUTF8(text, string(utf8.RuneError))
}

// ProcessText sanitizes and truncates text in one pass
func (tp *TextProcessor) ProcessText(text string, maxSize int) string {
	return tp.TruncateText(tp.SanitizeUTF8(text), maxSize)
}

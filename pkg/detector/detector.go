// Package detector guesses the language of chapter text so the content
// pane can carry an accurate lang attribute.
package detector

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Detector wraps a lingua detector restricted to the languages the
// course material actually occurs in.
type Detector struct {
	inner lingua.LanguageDetector
}

// New builds a Detector for German and English.
func New() *Detector {
	inner := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.German, lingua.English).
		Build()
	return &Detector{inner: inner}
}

// Code returns the ISO 639-1 code of the detected language of text, or
// fallback when the text is empty or detection is inconclusive.
func (d *Detector) Code(text, fallback string) string {
	if strings.TrimSpace(text) == "" {
		return fallback
	}
	lang, ok := d.inner.DetectLanguageOf(text)
	if !ok {
		return fallback
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}

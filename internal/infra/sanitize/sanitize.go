// Package sanitize strips markup from user supplied text before it is stored.
package sanitize

import (
	"html"
	"strings"

	"minex/internal/domain/service"

	"github.com/microcosm-cc/bluemonday"
)

type strictSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer returns a sanitizer that removes every HTML element and keeps text content.
func NewTextSanitizer() service.TextSanitizer {
	return &strictSanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize decodes entities first so encoded markup is stripped too, then decodes the
// policy's output back to plain text.
func (s *strictSanitizer) Sanitize(text string) string {
	if text == "" {
		return ""
	}

	cleaned := s.policy.Sanitize(html.UnescapeString(text))

	return strings.TrimSpace(html.UnescapeString(cleaned))
}

package validation

import (
	"net/url"
	"strconv"
	"strings"

	"wiki-quiz/internal/domain"
)

const maxURLLength = 2048

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateArticleURL checks that a URL was supplied and is absolute. Whether
// the host is acceptable is decided by the extractor.
func (v *Validator) ValidateArticleURL(rawURL string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return append(errors, domain.NewMissingFieldError("url"))
	}
	if len(rawURL) > maxURLLength {
		return append(errors, domain.ValidationError{Field: "url", Message: "URL is too long"})
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || u.Scheme == "" {
		errors = append(errors, domain.NewInvalidFormatError("url", rawURL))
	}
	return errors
}

// ParseQuizID parses a positive integer id.
func (v *Validator) ParseQuizID(raw string) (int64, domain.ValidationErrors) {
	if strings.TrimSpace(raw) == "" {
		return 0, domain.ValidationErrors{domain.NewMissingFieldError("id")}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError("id", raw)}
	}
	return id, nil
}

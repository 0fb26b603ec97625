// Package validation provides input validation utilities.
package validation

import (
	"regexp"
	"strings"

	"quill/internal/models"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9-]{3,24}$`)

var reservedSlugs = map[string]struct{}{
	"admin":   {},
	"api":     {},
	"auth":    {},
	"create":  {},
	"follow":  {},
	"group":   {},
	"groups":  {},
	"health":  {},
	"login":   {},
	"metrics": {},
	"posts":   {},
	"profile": {},
	"signup":  {},
	"users":   {},
}

// ValidateSlug validates group slug format and reserved names.
func ValidateSlug(slug string) error {
	if !slugRegex.MatchString(slug) {
		return models.NewValidationError("slug must be 3-24 characters and contain only lowercase letters, numbers, and hyphens")
	}

	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return models.NewValidationError("slug cannot start or end with a hyphen")
	}

	if _, exists := reservedSlugs[slug]; exists {
		return models.NewValidationError("slug is reserved")
	}

	return nil
}

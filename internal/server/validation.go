package server

import (
	"sort"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
)

// firstValidationMessage flattens an ozzo validation result into the single
// user-facing message the API contract expects, picking the first field in
// stable order.
func firstValidationMessage(err error) string {
	if err == nil {
		return ""
	}

	fieldErrors, ok := err.(validation.Errors)
	if !ok {
		return err.Error()
	}

	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		if fieldErr := fieldErrors[field]; fieldErr != nil {
			return fieldErr.Error()
		}
	}

	return err.Error()
}

// slugify derives a URL slug from a post title: spaces become hyphens,
// everything outside [a-zA-Z0-9-] is dropped, and the result is lowercased.
func slugify(title string) string {
	joined := strings.Join(strings.Fields(title), "-")

	var b strings.Builder
	for _, r := range strings.ToLower(joined) {
		if unicode.IsLetter(r) && r <= unicode.MaxASCII || unicode.IsDigit(r) || r == '-' {
			b.WriteRune(r)
		}
	}

	return b.String()
}

package server

import (
	"regexp"
	"strings"
)

var mobileRe = regexp.MustCompile(`^[0-9]{10}$`)

// validMobile reports whether s is exactly ten digits.
func validMobile(s string) bool {
	return mobileRe.MatchString(s)
}

// normalizeEmail trims and lower-cases an email for natural-key comparisons.
func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

type field struct {
	name  string
	value string
}

// missingFields returns the names of required fields that are empty after
// trimming, in declaration order.
func missingFields(fields []field) []string {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

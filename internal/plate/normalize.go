package plate

import "strings"

// CollapseWhitespace trims the string and collapses every run of whitespace
// into a single space
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizePlate canonicalizes a plate string for comparison.
// Province names are compared in Thai script and must not go through this;
// they only get CollapseWhitespace.
func NormalizePlate(s string) string {
	return strings.ToUpper(CollapseWhitespace(s))
}

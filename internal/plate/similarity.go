package plate

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Similarity returns the Ratcliff/Obershelp ratio between two strings in
// [0, 1]. The ratio is character-based, symmetric, and 1.0 only for
// identical strings. Splitting on "" yields one element per rune, so Thai
// text is compared character by character rather than byte by byte.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

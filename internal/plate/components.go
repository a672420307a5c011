package plate

import "regexp"

// Thai plates read like "กก 1234": Thai letter runs plus digit runs.
// The Thai range intentionally spans ก..๙ to mirror what the OCR allowlist
// can emit, Thai digits included.
var (
	thaiRunRe  = regexp.MustCompile(`[ก-๙]+`)
	digitRunRe = regexp.MustCompile(`[0-9]+`)
)

// Components is the decomposition of a detected text into plate parts
type Components struct {
	FullText    string
	ThaiLetters []string
	Numbers     []string
	HasThai     bool
	HasNumbers  bool
}

// ExtractComponents splits a detected text into Thai letter runs and digit
// runs after whitespace normalization
func ExtractComponents(text string) Components {
	cleaned := CollapseWhitespace(text)

	thaiLetters := thaiRunRe.FindAllString(cleaned, -1)
	numbers := digitRunRe.FindAllString(cleaned, -1)

	return Components{
		FullText:    cleaned,
		ThaiLetters: thaiLetters,
		Numbers:     numbers,
		HasThai:     len(thaiLetters) > 0,
		HasNumbers:  len(numbers) > 0,
	}
}

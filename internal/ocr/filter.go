package ocr

import (
	"regexp"
	"unicode/utf8"

	"github.com/MoosaTae/license-plate-ocr/internal/plate"
)

// Eight or more digits and nothing else is background or metadata, not a
// plate fragment
var longDigitRun = regexp.MustCompile(`^[0-9]{8,}$`)

// FilterDetections removes OCR noise from a detection list: long digit
// runs, low-confidence single characters, and text that is empty after
// whitespace normalization. Surviving detections keep their order and
// carry the normalized text, which makes the filter idempotent.
func FilterDetections(detections []Detection) []Detection {
	filtered := make([]Detection, 0, len(detections))

	for _, d := range detections {
		text := plate.CollapseWhitespace(d.Text)

		if longDigitRun.MatchString(text) {
			continue
		}

		if utf8.RuneCountInString(text) == 1 && d.Confidence < 0.7 {
			continue
		}

		if text == "" {
			continue
		}

		d.Text = text
		filtered = append(filtered, d)
	}

	return filtered
}

// CountHighConfidence counts filtered detections at or above the given
// confidence, the signal used to pick between OCR profiles
func CountHighConfidence(detections []Detection, threshold float64) int {
	n := 0
	for _, d := range detections {
		if d.Confidence >= threshold {
			n++
		}
	}
	return n
}

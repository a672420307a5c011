package ocr

import (
	"image"
	"strings"

	"github.com/MoosaTae/license-plate-ocr/internal/config"
)

// Detection is one OCR output unit: a bounding region, the recognized text,
// and a confidence score in [0, 1]. Detections carry no identity beyond
// their fields and their order within a run is whatever the engine emitted.
type Detection struct {
	Region     []image.Point `json:"region"`
	Text       string        `json:"text"`
	Confidence float64       `json:"confidence"`
}

// Params are the per-run engine parameters. Profile controls the image
// preprocessing applied before recognition; Rotations are the orientation
// hypotheses to try.
type Params struct {
	Language  string
	Whitelist string
	Profile   config.OCRProfile
	Rotations []int
}

// Engine is the OCR capability: an image plus parameters in, detections
// out. No ordering guarantee is required from implementations.
type Engine interface {
	Detect(img image.Image, params Params) ([]Detection, error)
}

// DefaultRotations are the orientation hypotheses tried on every run
var DefaultRotations = []int{0, 90, -90}

// ThaiAllowlist returns the recognition character set: Thai consonants,
// vowels and tone marks (U+0E01 to U+0E3A) plus ASCII digits
func ThaiAllowlist() string {
	var b strings.Builder
	for r := rune(0x0E01); r <= rune(0x0E3A); r++ {
		b.WriteRune(r)
	}
	b.WriteString("0123456789")
	return b.String()
}

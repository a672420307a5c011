//go:build ocr
// +build ocr

package ocr

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// Available indicates whether OCR support was compiled in
const Available = true

// TesseractEngine recognizes text with Tesseract via gosseract
type TesseractEngine struct{}

// NewTesseractEngine creates a Tesseract-backed engine
func NewTesseractEngine() *TesseractEngine {
	return &TesseractEngine{}
}

// Detect runs recognition under every rotation hypothesis and returns the
// detections of the orientation with the highest total confidence
func (e *TesseractEngine) Detect(img image.Image, params Params) ([]Detection, error) {
	rotations := params.Rotations
	if len(rotations) == 0 {
		rotations = DefaultRotations
	}

	var best []Detection
	bestScore := -1.0
	var lastErr error

	for _, angle := range rotations {
		detections, err := e.detectOnce(rotate(img, angle), params)
		if err != nil {
			lastErr = err
			continue
		}

		score := 0.0
		for _, d := range detections {
			score += d.Confidence
		}
		if score > bestScore {
			bestScore = score
			best = detections
		}
	}

	if bestScore < 0 {
		return nil, fmt.Errorf("OCR failed for all rotations: %w", lastErr)
	}
	return best, nil
}

// detectOnce runs a single Tesseract pass over the image
func (e *TesseractEngine) detectOnce(img image.Image, params Params) ([]Detection, error) {
	input := img
	if params.Profile.Binarize {
		input = Binarize(img)
	}

	client := gosseract.NewClient()
	defer client.Close()

	client.SetLanguage(params.Language)
	client.SetPageSegMode(gosseract.PSM_SPARSE_TEXT)
	if params.Whitelist != "" {
		client.SetWhitelist(params.Whitelist)
	}

	// Save the image to a temp file for Tesseract
	tmpfile, err := os.CreateTemp("", "plate-ocr-*.png")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpfile.Name())
	defer tmpfile.Close()

	if err := png.Encode(tmpfile, input); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	if err := client.SetImage(tmpfile.Name()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	detections := make([]Detection, 0, len(boxes))
	for _, box := range boxes {
		detections = append(detections, Detection{
			Region: []image.Point{
				{X: box.Box.Min.X, Y: box.Box.Min.Y},
				{X: box.Box.Max.X, Y: box.Box.Min.Y},
				{X: box.Box.Max.X, Y: box.Box.Max.Y},
				{X: box.Box.Min.X, Y: box.Box.Max.Y},
			},
			Text:       box.Word,
			Confidence: box.Confidence / 100.0,
		})
	}

	return detections, nil
}

// rotate applies a rotation hypothesis to the image
func rotate(img image.Image, angle int) image.Image {
	switch angle {
	case 90:
		return imaging.Rotate90(img)
	case -90, 270:
		return imaging.Rotate270(img)
	default:
		return img
	}
}

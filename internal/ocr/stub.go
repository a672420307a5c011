//go:build !ocr
// +build !ocr

package ocr

import (
	"fmt"
	"image"
)

// Available indicates whether OCR support was compiled in
const Available = false

// TesseractEngine is a stub when OCR support is not compiled in
type TesseractEngine struct{}

// NewTesseractEngine creates a stub engine
func NewTesseractEngine() *TesseractEngine {
	return &TesseractEngine{}
}

// Detect is a stub when OCR support is not compiled in
func (e *TesseractEngine) Detect(img image.Image, params Params) ([]Detection, error) {
	return nil, fmt.Errorf("OCR support not compiled in (use -tags=ocr to enable)")
}

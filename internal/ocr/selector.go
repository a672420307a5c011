package ocr

import (
	"fmt"
	"image"

	"github.com/MoosaTae/license-plate-ocr/internal/config"
	"github.com/MoosaTae/license-plate-ocr/internal/logger"
)

// Method labels for the winning OCR profile
const (
	MethodImproved = "improved"
	MethodStandard = "standard"
)

// SelectionResult is the outcome of a strategy run: the winning filtered
// detections, the preprocessed image they were found on (for annotation),
// and the label of the profile that won.
type SelectionResult struct {
	Detections []Detection
	Image      image.Image
	Method     string
}

// Selector runs the aggressive and standard OCR profiles against the same
// image and picks whichever yields more high-confidence detections.
// The aggressive profile short-circuits: if it finds any high-confidence
// detection at all, the standard pass is skipped entirely.
type Selector struct {
	engine Engine
	cfg    config.OCRConfig
}

// NewSelector creates a strategy selector around an engine
func NewSelector(engine Engine, cfg config.OCRConfig) *Selector {
	return &Selector{engine: engine, cfg: cfg}
}

// Run executes the selection strategy. An engine failure is terminal for
// the request; no retry.
func (s *Selector) Run(img image.Image) (*SelectionResult, error) {
	improved, improvedImg, err := s.pass(img, s.cfg.Aggressive)
	if err != nil {
		return nil, fmt.Errorf("aggressive OCR pass failed: %w", err)
	}

	highImproved := CountHighConfidence(improved, s.cfg.HighConfidence)
	if highImproved > 0 {
		logger.Infof("Using IMPROVED OCR: found %d high-confidence detections", highImproved)
		return &SelectionResult{Detections: improved, Image: improvedImg, Method: MethodImproved}, nil
	}

	standard, standardImg, err := s.pass(img, s.cfg.Standard)
	if err != nil {
		return nil, fmt.Errorf("standard OCR pass failed: %w", err)
	}

	highStandard := CountHighConfidence(standard, s.cfg.HighConfidence)

	// Ties favor the aggressive profile
	if highImproved >= highStandard {
		logger.Infof("Using IMPROVED OCR: %d vs %d detections", highImproved, highStandard)
		return &SelectionResult{Detections: improved, Image: improvedImg, Method: MethodImproved}, nil
	}

	logger.Infof("Using STANDARD OCR: %d vs %d detections", highStandard, highImproved)
	return &SelectionResult{Detections: standard, Image: standardImg, Method: MethodStandard}, nil
}

// pass preprocesses the image under one profile, runs the engine, and
// filters the raw detections
func (s *Selector) pass(img image.Image, profile config.OCRProfile) ([]Detection, image.Image, error) {
	processed := Preprocess(img, profile)

	detections, err := s.engine.Detect(processed, Params{
		Language:  s.cfg.Language,
		Whitelist: ThaiAllowlist(),
		Profile:   profile,
		Rotations: DefaultRotations,
	})
	if err != nil {
		return nil, nil, err
	}

	return FilterDetections(detections), processed, nil
}

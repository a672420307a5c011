package ocr

import (
	"errors"
	"image"
	"testing"

	"github.com/MoosaTae/license-plate-ocr/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine returns canned detections per profile, keyed on the contrast
// value that distinguishes the aggressive profile from the standard one
type fakeEngine struct {
	aggressive []Detection
	standard   []Detection
	err        error
	calls      int
}

func (f *fakeEngine) Detect(img image.Image, params Params) ([]Detection, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if params.Profile.Contrast == config.Default().OCR.Aggressive.Contrast {
		return f.aggressive, nil
	}
	return f.standard, nil
}

func testImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 60, 20))
}

func TestSelectorShortCircuitsOnAggressiveHit(t *testing.T) {
	engine := &fakeEngine{
		aggressive: []Detection{
			{Text: "กก 555", Confidence: 0.9},
			{Text: "กรุงเทพมหานคร", Confidence: 0.5},
		},
		standard: []Detection{
			{Text: "ขข 11", Confidence: 0.9},
		},
	}

	s := NewSelector(engine, config.Default().OCR)
	res, err := s.Run(testImage())
	require.NoError(t, err)

	assert.Equal(t, MethodImproved, res.Method)
	assert.Len(t, res.Detections, 2)
	// One high-confidence aggressive detection is enough; the standard
	// pass never runs
	assert.Equal(t, 1, engine.calls)
	assert.NotNil(t, res.Image)
}

func TestSelectorFallsBackToStandard(t *testing.T) {
	engine := &fakeEngine{
		aggressive: []Detection{
			{Text: "กก 555", Confidence: 0.25}, // below high-confidence
		},
		standard: []Detection{
			{Text: "กก 555", Confidence: 0.9},
			{Text: "เชียงใหม่", Confidence: 0.8},
		},
	}

	s := NewSelector(engine, config.Default().OCR)
	res, err := s.Run(testImage())
	require.NoError(t, err)

	assert.Equal(t, MethodStandard, res.Method)
	assert.Len(t, res.Detections, 2)
	assert.Equal(t, 2, engine.calls)
}

func TestSelectorTieFavorsAggressive(t *testing.T) {
	// Neither pass yields a high-confidence detection: 0 vs 0 is a tie
	// and ties go to the aggressive profile
	engine := &fakeEngine{
		aggressive: []Detection{{Text: "กก 11", Confidence: 0.25}},
		standard:   []Detection{{Text: "ขข 22", Confidence: 0.25}},
	}

	s := NewSelector(engine, config.Default().OCR)
	res, err := s.Run(testImage())
	require.NoError(t, err)

	assert.Equal(t, MethodImproved, res.Method)
	assert.Equal(t, "กก 11", res.Detections[0].Text)
}

func TestSelectorFiltersBeforeCounting(t *testing.T) {
	// The aggressive pass only finds noise; after filtering nothing is
	// left so the standard result wins
	engine := &fakeEngine{
		aggressive: []Detection{
			{Text: "123456789", Confidence: 0.95},
			{Text: "ก", Confidence: 0.4},
		},
		standard: []Detection{
			{Text: "กก 555", Confidence: 0.9},
		},
	}

	s := NewSelector(engine, config.Default().OCR)
	res, err := s.Run(testImage())
	require.NoError(t, err)

	assert.Equal(t, MethodStandard, res.Method)
	require.Len(t, res.Detections, 1)
	assert.Equal(t, "กก 555", res.Detections[0].Text)
}

func TestSelectorPropagatesEngineError(t *testing.T) {
	engine := &fakeEngine{err: errors.New("tesseract unavailable")}

	s := NewSelector(engine, config.Default().OCR)
	res, err := s.Run(testImage())

	assert.Nil(t, res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aggressive OCR pass failed")
}

func TestThaiAllowlist(t *testing.T) {
	allow := ThaiAllowlist()

	assert.Contains(t, allow, "ก")
	assert.Contains(t, allow, "ฮ")
	assert.Contains(t, allow, "0123456789")
	// Latin letters are never recognized
	assert.NotContains(t, allow, "A")
}

package ocr

import (
	"image"
	"image/color"
	"testing"

	"github.com/MoosaTae/license-plate-ocr/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestPlate draws dark glyph-like blocks on a light background
func createTestPlate(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 220, G: 220, B: 220, A: 255})
		}
	}
	for y := height / 4; y < 3*height/4; y++ {
		for x := width / 4; x < width/2; x++ {
			img.Set(x, y, color.RGBA{R: 30, G: 30, B: 30, A: 255})
		}
	}
	return img
}

func TestPreprocessKeepsDimensions(t *testing.T) {
	img := createTestPlate(120, 40)

	out := Preprocess(img, config.Default().OCR.Aggressive)

	require.NotNil(t, out)
	assert.Equal(t, img.Bounds().Dx(), out.Bounds().Dx())
	assert.Equal(t, img.Bounds().Dy(), out.Bounds().Dy())
}

func TestPreprocessWithoutSharpening(t *testing.T) {
	img := createTestPlate(60, 20)

	out := Preprocess(img, config.OCRProfile{Contrast: 25})

	require.NotNil(t, out)
	assert.Equal(t, img.Bounds().Dx(), out.Bounds().Dx())
}

func TestBinarizeProducesBitmap(t *testing.T) {
	img := createTestPlate(120, 40)

	out := Binarize(img)
	require.NotNil(t, out)

	bounds := out.Bounds()
	dark, light := 0, 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			v := out.GrayAt(x, y).Y
			// Every pixel ends up fully black or fully white
			assert.True(t, v == 0 || v == 255, "pixel (%d,%d) = %d", x, y, v)
			if v == 0 {
				dark++
			} else {
				light++
			}
		}
	}

	// The glyph blocks invert to white on a black background
	assert.Greater(t, dark, 0)
	assert.Greater(t, light, 0)
	t.Logf("Binarized: %d dark, %d light pixels", dark, light)
}

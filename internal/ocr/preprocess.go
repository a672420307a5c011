package ocr

import (
	"image"
	"image/color"

	"github.com/MoosaTae/license-plate-ocr/internal/config"
	"github.com/disintegration/imaging"
)

// Preprocess applies a profile's contrast and sharpening to the image.
// The returned image is also what downstream annotation draws on.
func Preprocess(img image.Image, profile config.OCRProfile) image.Image {
	out := imaging.AdjustContrast(img, profile.Contrast)
	if profile.SharpenSigma > 0 {
		out = imaging.Sharpen(out, profile.SharpenSigma)
	}
	return out
}

// Binarize converts the image to an inverted Otsu-thresholded bitmap,
// which Tesseract reads more reliably than raw photos
func Binarize(img image.Image) *image.Gray {
	gray := rgb2Gray(img)
	binary := otsuThreshold(gray)
	return invertGray(binary)
}

// rgb2Gray converts an image to grayscale using the luminance weights
func rgb2Gray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			lum := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			gray.SetGray(x, y, color.Gray{Y: uint8(lum)})
		}
	}

	return gray
}

// otsuThreshold binarizes a grayscale image with Otsu's method
func otsuThreshold(img *image.Gray) *image.Gray {
	histogram := make([]int, 256)
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			histogram[img.GrayAt(x, y).Y]++
		}
	}

	sum := 0
	for i := 0; i < 256; i++ {
		sum += i * histogram[i]
	}

	sumB := 0
	wB := 0
	maxVariance := 0.0
	threshold := uint8(0)

	for t := 0; t < 256; t++ {
		wB += histogram[t]
		if wB == 0 {
			continue
		}

		wF := total - wB
		if wF == 0 {
			break
		}

		sumB += t * histogram[t]
		mB := float64(sumB) / float64(wB)
		mF := float64(sum-sumB) / float64(wF)

		variance := float64(wB) * float64(wF) * (mB - mF) * (mB - mF)
		if variance > maxVariance {
			maxVariance = variance
			threshold = uint8(t)
		}
	}

	return applyThreshold(img, threshold)
}

// applyThreshold converts a grayscale image to a binary one
func applyThreshold(img *image.Gray, threshold uint8) *image.Gray {
	bounds := img.Bounds()
	binary := image.NewGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if img.GrayAt(x, y).Y > threshold {
				binary.SetGray(x, y, color.Gray{Y: 255})
			} else {
				binary.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}

	return binary
}

// invertGray inverts a grayscale image
func invertGray(img *image.Gray) *image.Gray {
	bounds := img.Bounds()
	inverted := image.NewGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			inverted.SetGray(x, y, color.Gray{Y: 255 - img.GrayAt(x, y).Y})
		}
	}

	return inverted
}

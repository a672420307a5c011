package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/MoosaTae/license-plate-ocr/internal/ocr"
	"github.com/MoosaTae/license-plate-ocr/internal/plate"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	passColor = color.NRGBA{G: 255, A: 255}
	failColor = color.NRGBA{R: 255, A: 255}
)

// Annotate draws each detection's bounding polygon and a verdict label on a
// copy of the image: green for PASS, red for FAIL. results[i] is the
// verdict for detections[i].
func Annotate(img image.Image, detections []ocr.Detection, results []plate.Result) *image.NRGBA {
	out := imaging.Clone(img)

	for i, d := range detections {
		col := failColor
		status := plate.StatusFail
		if i < len(results) && results[i].Pass() {
			col = passColor
			status = plate.StatusPass
		}

		drawPolygon(out, d.Region, col, 3)

		if len(d.Region) == 0 {
			continue
		}
		label := fmt.Sprintf("%s (%.2f) - %s", d.Text, d.Confidence, status)
		x := d.Region[0].X
		y := d.Region[0].Y - 8
		if y < 12 {
			y = 12
		}
		// basicfont has no Thai glyphs; the confidence and status part of
		// the label still renders
		drawLabel(out, x, y, label, col)
	}

	return out
}

// drawPolygon outlines the polygon by connecting consecutive vertices
func drawPolygon(img *image.NRGBA, pts []image.Point, col color.NRGBA, width int) {
	if len(pts) < 2 {
		return
	}
	for i := range pts {
		p1 := pts[i]
		p2 := pts[(i+1)%len(pts)]
		drawLine(img, p1, p2, col, width)
	}
}

// drawLine draws a thick line between two points with Bresenham stepping
func drawLine(img *image.NRGBA, p1, p2 image.Point, col color.NRGBA, width int) {
	dx := abs(p2.X - p1.X)
	dy := -abs(p2.Y - p1.Y)
	sx := 1
	if p1.X > p2.X {
		sx = -1
	}
	sy := 1
	if p1.Y > p2.Y {
		sy = -1
	}
	err := dx + dy

	x, y := p1.X, p1.Y
	for {
		setThick(img, x, y, col, width)
		if x == p2.X && y == p2.Y {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// setThick paints a width x width block centered on the pixel
func setThick(img *image.NRGBA, x, y int, col color.NRGBA, width int) {
	r := width / 2
	for oy := -r; oy <= r; oy++ {
		for ox := -r; ox <= r; ox++ {
			p := image.Pt(x+ox, y+oy)
			if p.In(img.Bounds()) {
				img.SetNRGBA(p.X, p.Y, col)
			}
		}
	}
}

// drawLabel renders the label text at the given baseline position
func drawLabel(img *image.NRGBA, x, y int, label string, col color.NRGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(label)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

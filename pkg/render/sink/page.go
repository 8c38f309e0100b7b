package sink

import (
	"image"
	"math"
)

// PageGeometry describes a page in points.
type PageGeometry struct {
	Width  float64
	Height float64
	Margin float64 // applied at top and bottom
}

// A4 returns a portrait A4 page with 40pt margins.
func A4() PageGeometry {
	return PageGeometry{Width: 595.28, Height: 841.89, Margin: 40}
}

// Usable returns the printable height between the margins.
func (g PageGeometry) Usable() float64 {
	return g.Height - 2*g.Margin
}

// Band is one page's slice of the source canvas.
type Band struct {
	Image        image.Image // rows [SourceY, SourceY+SourceHeight) of the source
	SourceY      int
	SourceHeight int
	DrawHeight   float64 // SourceHeight scaled to page units
}

// bandEpsilon absorbs floating point error, in source pixels, so that a
// canvas exactly one usable height tall fits on one page.
const bandEpsilon = 1e-6

// bands returns the [y0, y1) source rows of each page for a w×h canvas.
// Row bounds are floored, so no band is taller than the usable height.
func bands(w, h int, g PageGeometry) [][2]int {
	if w <= 0 || h <= 0 || g.Usable() <= 0 {
		return nil
	}
	slice := g.Usable() / (g.Width / float64(w))

	var out [][2]int
	for i, y0 := 0, 0; y0 < h; i++ {
		y1 := min(int(math.Floor(float64(i+1)*slice+bandEpsilon)), h)
		if y1 > y0 {
			out = append(out, [2]int{y0, y1})
			y0 = y1
		}
	}
	return out
}

// PageCount returns how many pages a canvas of w×h pixels needs.
func PageCount(w, h int, g PageGeometry) int {
	return len(bands(w, h, g))
}

// Paginate splits img into page bands. A nil or empty image yields nil.
func Paginate(img image.Image, g PageGeometry) []Band {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	rows := bands(b.Dx(), b.Dy(), g)
	if len(rows) == 0 {
		return nil
	}

	scale := g.Width / float64(b.Dx())
	sub, canSub := img.(interface {
		SubImage(image.Rectangle) image.Image
	})

	out := make([]Band, 0, len(rows))
	for _, row := range rows {
		y0, y1 := row[0], row[1]
		r := image.Rect(b.Min.X, b.Min.Y+y0, b.Max.X, b.Min.Y+y1)

		var band image.Image
		if canSub {
			band = sub.SubImage(r)
		} else {
			band = crop(img, r)
		}
		out = append(out, Band{
			Image:        band,
			SourceY:      y0,
			SourceHeight: y1 - y0,
			DrawHeight:   float64(y1-y0) * scale,
		})
	}
	return out
}

func crop(img image.Image, r image.Rectangle) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			out.Set(x-r.Min.X, y-r.Min.Y, img.At(x, y))
		}
	}
	return out
}

package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/penman/pkg/errors"
	"github.com/matzehuels/penman/pkg/observability"
)

// Default canvas geometry in pixels.
const (
	DefaultWidth      = 1400
	DefaultFontSize   = 48
	DefaultLineHeight = 60
	DefaultMargin     = 20
)

// Canvas bounds. MaxWidth is enforced by [Options.Validate]; the height
// and pixel limits are checked by [Renderer.Layout] once the text has been
// wrapped, before any canvas is allocated.
const (
	MaxWidth  = 8000
	MaxHeight = 40000
	MaxPixels = 64 << 20
)

// Options controls canvas geometry. Margin is split evenly between the
// left and right edges; the vertical padding is one Margin in total.
type Options struct {
	Width      int
	LineHeight int
	Margin     int
	Ink        color.Color // defaults to black
}

// DefaultOptions returns a 1400px canvas with 60px lines and a 20px margin.
func DefaultOptions() Options {
	return Options{
		Width:      DefaultWidth,
		LineHeight: DefaultLineHeight,
		Margin:     DefaultMargin,
		Ink:        color.Black,
	}
}

// Validate reports geometry that cannot hold any text.
func (o Options) Validate() error {
	switch {
	case o.Width <= o.Margin || o.Width > MaxWidth:
		return fmt.Errorf("canvas width %d out of range (%d, %d]", o.Width, o.Margin, MaxWidth)
	case o.LineHeight <= 0:
		return fmt.Errorf("line height must be positive")
	case o.Margin < 0:
		return fmt.Errorf("margin must not be negative")
	}
	return nil
}

// Request is a single rendering job.
type Request struct {
	Text string
	Face font.Face
}

// Layout is the measured result of wrapping a request.
type Layout struct {
	Lines  []string
	Width  int
	Height int
}

// IsNoOp reports whether req would render nothing: it has no face or
// contains only whitespace.
func IsNoOp(req Request) bool {
	return req.Face == nil || strings.TrimSpace(req.Text) == ""
}

// Renderer draws text onto RGBA canvases. It holds no mutable state and
// is safe for concurrent use, but a font.Face generally is not; callers
// must not share one face between concurrent renders.
type Renderer struct {
	opts Options
}

// New creates a Renderer. Zero fields in opts take their defaults.
func New(opts Options) *Renderer {
	d := DefaultOptions()
	if opts.Width == 0 {
		opts.Width = d.Width
	}
	if opts.LineHeight == 0 {
		opts.LineHeight = d.LineHeight
	}
	if opts.Margin == 0 {
		opts.Margin = d.Margin
	}
	if opts.Ink == nil {
		opts.Ink = d.Ink
	}
	return &Renderer{opts: opts}
}

// Options returns the renderer's effective options.
func (r *Renderer) Options() Options { return r.opts }

// Layout wraps req.Text to the canvas width and computes the canvas size.
// It returns nil for no-op requests.
func (r *Renderer) Layout(req Request) (*Layout, error) {
	if err := r.opts.Validate(); err != nil {
		return nil, err
	}
	if IsNoOp(req) {
		return nil, nil
	}

	lines := Wrap(req.Text, FaceMeasure(req.Face), float64(r.opts.Width-r.opts.Margin))
	l := &Layout{
		Lines:  lines,
		Width:  r.opts.Width,
		Height: len(lines)*r.opts.LineHeight + r.opts.Margin,
	}
	if l.Height > MaxHeight || l.Width*l.Height > MaxPixels {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"text too long: %d lines need a %dx%d canvas", len(lines), l.Width, l.Height)
	}
	return l, nil
}

// Render lays out and draws req on a transparent canvas. No-op requests
// return (nil, nil).
func (r *Renderer) Render(ctx context.Context, req Request) (*image.RGBA, error) {
	start := time.Now()

	l, err := r.Layout(req)
	if err != nil || l == nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, l.Width, l.Height))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(r.opts.Ink),
		Face: req.Face,
	}

	x := r.opts.Margin / 2
	for i, line := range l.Lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if line == "" {
			continue
		}
		baseline := (i+1)*r.opts.LineHeight - r.opts.Margin/2
		d.Dot = fixed.P(x, baseline)
		d.DrawString(line)
	}

	observability.Render().OnRender(ctx, len(l.Lines), l.Width, l.Height, time.Since(start))
	return img, nil
}

// Flatten composites img onto an opaque background.
func Flatten(img image.Image, bg color.Color) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Over)
	return out
}

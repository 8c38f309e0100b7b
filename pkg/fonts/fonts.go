// Package fonts loads font faces for the handwriting renderer.
//
// Fonts are parsed with golang.org/x/image/font/opentype. The Go Regular
// face bundled with x/image is available under the name [Builtin].
package fonts

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Font sizes in pixels.
const (
	DefaultSize = 48
	MaxSize     = 512
)

// Builtin names the bundled Go Regular font wherever a font path is
// accepted.
const Builtin = "go"

// Font is a parsed font file that can produce faces at any size.
type Font struct {
	f *opentype.Font
}

// Parse parses TrueType or OpenType font data.
func Parse(data []byte) (*Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Font{f: f}, nil
}

// ReadFile returns the raw font data at path, or the bundled font data
// for [Builtin].
func ReadFile(path string) ([]byte, error) {
	if path == Builtin {
		return goregular.TTF, nil
	}
	return os.ReadFile(path)
}

// Load reads and parses the font file at path.
func Load(path string) (*Font, error) {
	if path == Builtin {
		return Default()
	}
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Face returns a face at size pixels (72 DPI, so points equal pixels).
func (f *Font) Face(size float64) (font.Face, error) {
	if size <= 0 {
		size = DefaultSize
	}
	return opentype.NewFace(f.f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Cache for the parsed default font (computed once on first access).
var (
	defaultFont    *Font
	defaultFontErr error
	defaultOnce    sync.Once
)

// Default returns the bundled Go Regular font.
func Default() (*Font, error) {
	defaultOnce.Do(func() {
		defaultFont, defaultFontErr = Parse(goregular.TTF)
	})
	return defaultFont, defaultFontErr
}

// DefaultFace returns a Go Regular face at size pixels.
func DefaultFace(size float64) (font.Face, error) {
	f, err := Default()
	if err != nil {
		return nil, err
	}
	return f.Face(size)
}

// FaceFromFile loads path and returns a face at size. An empty path means
// no font was supplied and yields a nil face.
func FaceFromFile(path string, size float64) (font.Face, error) {
	if path == "" {
		return nil, nil
	}
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	return f.Face(size)
}

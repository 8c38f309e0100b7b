package sink

import (
	"bytes"
	"image"
	"image/png"
	"io"
)

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// RenderPNG encodes img as PNG and returns the bytes.
func RenderPNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

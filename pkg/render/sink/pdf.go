package sink

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/penman/pkg/render"
)

// ErrEmpty is returned when there is nothing to put on a page.
var ErrEmpty = errors.New("sink: empty canvas")

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	title   string
	created time.Time
	paper   color.Color
}

// WithTitle sets the document title metadata.
func WithTitle(title string) PDFOption {
	return func(r *pdfRenderer) { r.title = title }
}

// WithCreationDate fixes the creation timestamp, making output reproducible.
func WithCreationDate(t time.Time) PDFOption {
	return func(r *pdfRenderer) { r.created = t }
}

// WritePDF writes img as a PDF with one page per band from [Paginate].
// Transparent canvas regions are flattened onto white paper.
func WritePDF(w io.Writer, img image.Image, g PageGeometry, opts ...PDFOption) error {
	_, err := writePDF(w, img, g, opts...)
	return err
}

// RenderPDF is like WritePDF but returns the document and its page count.
func RenderPDF(img image.Image, g PageGeometry, opts ...PDFOption) ([]byte, int, error) {
	var buf bytes.Buffer
	pages, err := writePDF(&buf, img, g, opts...)
	if err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), pages, nil
}

func writePDF(w io.Writer, img image.Image, g PageGeometry, opts ...PDFOption) (int, error) {
	r := pdfRenderer{paper: color.White}
	for _, opt := range opts {
		opt(&r)
	}

	bands := Paginate(img, g)
	if len(bands) == 0 {
		return 0, ErrEmpty
	}

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: g.Width, Ht: g.Height},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	if r.title != "" {
		doc.SetTitle(r.title, true)
	}
	if !r.created.IsZero() {
		doc.SetCreationDate(r.created)
		doc.SetModificationDate(r.created)
	}

	opt := fpdf.ImageOptions{ImageType: "PNG"}
	for i, band := range bands {
		var buf bytes.Buffer
		if err := WritePNG(&buf, render.Flatten(band.Image, r.paper)); err != nil {
			return 0, fmt.Errorf("encode page %d: %w", i+1, err)
		}
		name := fmt.Sprintf("page-%d", i+1)
		doc.RegisterImageOptionsReader(name, opt, &buf)

		doc.AddPage()
		doc.ImageOptions(name, 0, g.Margin, g.Width, band.DrawHeight, false, opt, 0, "")
	}

	if err := doc.Output(w); err != nil {
		return 0, fmt.Errorf("write pdf: %w", err)
	}
	return len(bands), nil
}

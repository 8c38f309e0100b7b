// Package sink exports rendered canvases.
//
// # Formats
//
//   - PNG: [WritePNG] encodes the canvas as-is, keeping transparency.
//   - PDF: [WritePDF] slices the canvas into page-sized bands with
//     [Paginate] and writes one page per band using go-pdf/fpdf.
//
// # Pagination
//
// The canvas is scaled so that its width fills the page width. Each page
// has a usable height of page height minus the top and bottom margins; a
// band covers as many source rows as fit into that height at the current
// scale. Bands are taken top to bottom and the last one may be shorter.
// It is drawn at its natural scaled height, not stretched to fill the page.
//
//	err := sink.WritePDF(w, img, sink.A4())
package sink

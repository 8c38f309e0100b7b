// Package render draws text onto a raster canvas in a user-supplied font.
//
// # Overview
//
// Rendering is two-pass. [Renderer.Layout] wraps the text into lines that
// fit the canvas width, then [Renderer.Render] allocates a canvas sized to
// those lines and draws them:
//
//	face, _ := fonts.DefaultFace(48)
//	img, err := render.New(render.DefaultOptions()).Render(ctx, render.Request{
//	    Text: "The quick brown fox",
//	    Face: face,
//	})
//
// # Wrapping
//
// [Wrap] is a greedy left-to-right word wrap. Words are added to the
// current line while it fits; a word that does not fit starts a new line,
// and a word wider than the whole line sits on a line of its own. Explicit
// newlines start new paragraphs.
//
// # No-op Requests
//
// A request with no face or only whitespace renders nothing. Render then
// returns a nil image and a nil error; [IsNoOp] reports this case so that
// callers can skip exporting.
//
// # Export
//
// The [sink] subpackage encodes canvases as PNG or splits them into A4
// PDF pages.
//
// [sink]: github.com/matzehuels/penman/pkg/render/sink
package render

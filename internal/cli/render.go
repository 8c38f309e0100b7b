package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/penman/pkg/client"
	"github.com/matzehuels/penman/pkg/config"
	"github.com/matzehuels/penman/pkg/errors"
	"github.com/matzehuels/penman/pkg/fonts"
	"github.com/matzehuels/penman/pkg/render"
	"github.com/matzehuels/penman/pkg/render/sink"
	"github.com/matzehuels/penman/pkg/translate"
)

// Output formats.
const (
	formatPNG = "png"
	formatPDF = "pdf"
)

// renderOpts holds flags for the render command.
type renderOpts struct {
	font    string
	format  string
	output  string
	width   int
	size    float64
	from    string
	to      string
	server  string
	noCache bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [text]",
		Short: "Render text as handwriting (PNG or PDF)",
		Long: `Render text onto a handwriting canvas.

Text is wrapped to the canvas width and drawn with the font from --font
or render.font. Pass "--font go" for the bundled Go font. Without a font
nothing is rendered. PDF output is paginated onto A4 pages. With
--to the text is translated first. With --server the page is rendered by
a penman API using the session from 'penman account login'.`,
		Example: `  penman render --font go -o note.png "Dear diary"
  penman render --font Caveat.ttf --format pdf -o letter.pdf < letter.txt
  penman render --font go --to fr -o bonjour.png "Good morning"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateFormat(opts.format, formatPNG, formatPDF); err != nil {
				return err
			}
			if opts.size < 0 || opts.size > fonts.MaxSize {
				return errors.New(errors.ErrCodeInvalidInput, "font size must be between 0 and %d", fonts.MaxSize)
			}
			text, err := readText(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if opts.output == "" {
				opts.output = "handwriting." + opts.format
			}
			return c.runRender(cmd.Context(), text, opts)
		},
	}

	cmd.Flags().StringVar(&opts.font, "font", "", "TTF/OTF font file, or \"go\" for the bundled font")
	cmd.Flags().StringVar(&opts.format, "format", formatPNG, "output format: png or pdf")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default handwriting.<format>)")
	cmd.Flags().IntVarP(&opts.width, "width", "w", 0, "canvas width in pixels")
	cmd.Flags().Float64Var(&opts.size, "size", 0, "font size in pixels")
	cmd.Flags().StringVar(&opts.from, "from", "en", "source language when translating")
	cmd.Flags().StringVar(&opts.to, "to", "", "translate to this language before rendering")
	cmd.Flags().StringVar(&opts.server, "server", "", "render on a penman API at this URL")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "skip the local translation cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, text string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	spinner := newSpinner(ctx, "Rendering...")
	spinner.Start()
	defer spinner.Stop()

	if opts.to != "" {
		spinner.SetMessage(fmt.Sprintf("Translating to %s...", opts.to))
		res, err := c.translate(ctx, translate.Request{
			Text:       text,
			SourceLang: opts.from,
			TargetLang: opts.to,
		}, translateOpts{server: opts.server, noCache: opts.noCache})
		if err != nil {
			spinner.StopWithError("Translation failed")
			return err
		}
		logger.Debug("translated before rendering", "to", opts.to, "cached", res.Cached)
		text = res.TranslatedText
		spinner.SetMessage("Rendering...")
	}

	var (
		data  []byte
		pages int
	)
	if opts.server != "" {
		data, err = renderRemote(ctx, text, opts)
	} else {
		data, pages, err = renderLocal(ctx, cfg.Render, text, opts)
	}
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	if data == nil {
		printWarning("Nothing to render")
		if opts.font == "" && (opts.server != "" || cfg.Render.FontPath == "") {
			printDetail("no font supplied; pass --font or set render.font")
		}
		return nil
	}

	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}

	if pages > 1 {
		prog.done(fmt.Sprintf("Rendered %d pages", pages))
	} else {
		prog.done("Rendered handwriting")
	}
	printFile(opts.output)
	return nil
}

// renderLocal draws text with the local renderer. It returns nil data when
// there is nothing to draw.
func renderLocal(ctx context.Context, rc config.RenderConfig, text string, opts renderOpts) ([]byte, int, error) {
	size := rc.FontSize
	if opts.size > 0 {
		size = opts.size
	}
	fontPath := rc.FontPath
	if opts.font != "" {
		fontPath = opts.font
	}
	face, err := fonts.FaceFromFile(fontPath, size)
	if err != nil {
		return nil, 0, fmt.Errorf("load font: %w", err)
	}
	if face != nil {
		defer face.Close()
	}

	ro := render.Options{Width: rc.Width, LineHeight: rc.LineHeight, Margin: rc.Margin}
	if opts.width > 0 {
		ro.Width = opts.width
	}
	r := render.New(ro)
	if err := r.Options().Validate(); err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid canvas")
	}

	img, err := r.Render(ctx, render.Request{Text: text, Face: face})
	if err != nil || img == nil {
		return nil, 0, err
	}

	if opts.format == formatPDF {
		title := strings.TrimSuffix(filepath.Base(opts.output), filepath.Ext(opts.output))
		return sink.RenderPDF(img, sink.A4(), sink.WithTitle(title))
	}
	data, err := sink.RenderPNG(img)
	return data, 1, err
}

// renderRemote sends the job to a penman API with the stored session token.
func renderRemote(ctx context.Context, text string, opts renderOpts) ([]byte, error) {
	sess, err := loadSession(ctx, opts.server)
	if err != nil {
		return nil, err
	}

	req := client.RenderRequest{Text: text, Format: opts.format, Width: opts.width, Size: opts.size}
	if opts.font != "" {
		if req.Font, err = fonts.ReadFile(opts.font); err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		req.FontName = filepath.Base(opts.font)
	}

	return client.New(opts.server).WithToken(sess.Token).Render(ctx, req)
}

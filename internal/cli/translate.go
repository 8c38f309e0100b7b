package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/penman/pkg/client"
	"github.com/matzehuels/penman/pkg/styles"
	"github.com/matzehuels/penman/pkg/translate"
)

// translateOpts holds flags for the translate command.
type translateOpts struct {
	from    string
	to      string
	style   string
	pick    bool
	noCache bool
	server  string
}

// translateCommand creates the translate command.
func (c *CLI) translateCommand() *cobra.Command {
	opts := translateOpts{}

	cmd := &cobra.Command{
		Use:   "translate [text]",
		Short: "Translate text through the MyMemory relay",
		Long: `Translate text from one language to another.

Text is read from the arguments, or from stdin when none are given.
Results are cached locally unless --no-cache is set. With --server the
request is sent to a running penman API instead.`,
		Example: `  penman translate --to es "Hello, world"
  echo "Good morning" | penman translate --to fr
  penman translate --pick "Thank you"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if opts.pick {
				if err := pickLanguages(&opts); err != nil {
					return err
				}
			}
			req := translate.Request{
				Text:       text,
				SourceLang: opts.from,
				TargetLang: opts.to,
				Style:      opts.style,
			}
			return c.runTranslate(cmd.Context(), cmd.OutOrStdout(), req, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.from, "from", "f", "en", "source language code")
	cmd.Flags().StringVarP(&opts.to, "to", "t", "", "target language code")
	cmd.Flags().StringVarP(&opts.style, "style", "s", styles.None, "handwriting style id (see 'penman styles')")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "choose languages interactively")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "skip the local translation cache")
	cmd.Flags().StringVar(&opts.server, "server", "", "translate through a penman API at this URL")

	return cmd
}

func (c *CLI) runTranslate(ctx context.Context, w io.Writer, req translate.Request, opts translateOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	spinner := newSpinner(ctx, fmt.Sprintf("Translating %s → %s...", req.SourceLang, req.TargetLang))
	spinner.Start()

	res, err := c.translate(ctx, req, opts)
	if err != nil {
		spinner.StopWithError("Translation failed")
		return err
	}
	spinner.Stop()

	status := "fresh"
	if res.Cached {
		status = "cached"
	}
	prog.done(fmt.Sprintf("Translated %d characters (%s, attempts=%d)", len(req.Text), status, res.Attempts))

	fmt.Fprintln(w, res.TranslatedText)
	if req.Style != "" && req.Style != styles.None {
		printDetail("Font: %s", res.FontFamily)
	}
	return nil
}

func (c *CLI) translate(ctx context.Context, req translate.Request, opts translateOpts) (*translate.Result, error) {
	if opts.server != "" {
		return client.New(opts.server).Translate(ctx, req)
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	relay, err := c.newRelay(cfg, opts.noCache)
	if err != nil {
		return nil, err
	}
	return relay.Translate(ctx, req)
}

// pickLanguages prompts for both languages, keeping the current values as
// the initial selection.
func pickLanguages(opts *translateOpts) error {
	from, err := pickLanguage("Translate from", opts.from)
	if err != nil {
		return err
	}
	if from == "" {
		return fmt.Errorf("no source language selected")
	}
	to, err := pickLanguage("Translate to", opts.to)
	if err != nil {
		return err
	}
	if to == "" {
		return fmt.Errorf("no target language selected")
	}
	opts.from, opts.to = from, to
	return nil
}

// readText joins args, or reads all of r when args is empty.
func readText(r io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if f, ok := r.(*os.File); ok {
		if st, err := f.Stat(); err == nil && st.Mode()&os.ModeCharDevice != 0 {
			return "", fmt.Errorf("no text given: pass it as an argument or pipe it on stdin")
		}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

package translate

import (
	"context"

	"github.com/matzehuels/penman/pkg/errors"
	"github.com/matzehuels/penman/pkg/languages"
)

// Request is a single translation request.
type Request struct {
	Text       string `json:"text"`
	SourceLang string `json:"sourceLang"`
	TargetLang string `json:"targetLang"`
	Style      string `json:"handwritingStyle,omitempty"`
}

// Validate checks that the text and both language codes are present and
// that the codes are well-formed. Whitespace text counts as present and is
// passed to the provider; the source may be [languages.AutoDetect].
func (r Request) Validate() error {
	if r.Text == "" {
		return errors.New(errors.ErrCodeMissingField, "missing required field: text")
	}
	if err := errors.ValidateRequired(
		errors.Field{Name: "sourceLang", Value: r.SourceLang},
		errors.Field{Name: "targetLang", Value: r.TargetLang},
	); err != nil {
		return err
	}
	if err := languages.ValidateSource(r.SourceLang); err != nil {
		return err
	}
	return languages.Validate(r.TargetLang)
}

// Result is a successful translation.
type Result struct {
	TranslatedText string `json:"translatedText"`
	FontFamily     string `json:"fontFamily"`
	Attempts       int    `json:"-"`
	Cached         bool   `json:"-"`
}

// Provider translates text between two languages.
//
// Implementations return an [*errors.ProviderError] for upstream failures
// and must mark timeouts and rate limits so the relay can retry them.
type Provider interface {
	Name() string
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// ProviderFunc adapts a function to [Provider].
type ProviderFunc func(ctx context.Context, text, source, target string) (string, error)

// Name implements Provider.
func (ProviderFunc) Name() string { return "func" }

// Translate implements Provider.
func (f ProviderFunc) Translate(ctx context.Context, text, source, target string) (string, error) {
	return f(ctx, text, source, target)
}

// Package languages holds the fixed set of translation languages offered
// to users and validates language codes.
package languages

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/matzehuels/penman/pkg/errors"
)

// Language is a selectable translation language.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var offered = []Language{
	{"en", "English"},
	{"es", "Spanish"},
	{"fr", "French"},
	{"de", "German"},
	{"it", "Italian"},
	{"pt", "Portuguese"},
	{"ru", "Russian"},
	{"zh", "Chinese"},
	{"ar", "Arabic"},
	{"hi", "Hindi"},
	{"ja", "Japanese"},
	{"ko", "Korean"},
	{"nl", "Dutch"},
	{"pl", "Polish"},
	{"tr", "Turkish"},
	{"sv", "Swedish"},
	{"fi", "Finnish"},
	{"no", "Norwegian"},
	{"da", "Danish"},
}

var names = func() map[string]string {
	m := make(map[string]string, len(offered))
	for _, l := range offered {
		m[l.Code] = l.Name
	}
	return m
}()

// All returns the offered languages in display order.
func All() []Language {
	return append([]Language(nil), offered...)
}

// Codes returns the offered language codes in display order.
func Codes() []string {
	out := make([]string, len(offered))
	for i, l := range offered {
		out[i] = l.Code
	}
	return out
}

// Supported reports whether code's base language is one of the offered languages.
func Supported(code string) bool {
	tag, err := language.Parse(code)
	if err != nil {
		return false
	}
	base, _ := tag.Base()
	_, ok := names[base.String()]
	return ok
}

// Validate checks that code is a well-formed BCP 47 tag such as "en" or
// "zh-CN". Well-formed but unlisted codes are accepted: the provider
// supports more languages than the UI offers.
func Validate(code string) error {
	if strings.TrimSpace(code) == "" {
		return errors.New(errors.ErrCodeMissingField, "missing language code")
	}
	if _, err := language.Parse(code); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidLanguage, err, "invalid language code %q", code)
	}
	return nil
}

// AutoDetect asks the provider to detect the source language. It is only
// valid as a source.
const AutoDetect = "autodetect"

// ValidateSource is [Validate] for source languages, which also accept
// [AutoDetect].
func ValidateSource(code string) error {
	if strings.EqualFold(strings.TrimSpace(code), AutoDetect) {
		return nil
	}
	return Validate(code)
}

// Name returns the English display name for code, or code itself if it
// cannot be parsed. Offered languages use their listed names.
func Name(code string) string {
	if n, ok := names[code]; ok {
		return n
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if n := display.English.Tags().Name(tag); n != "" {
		return n
	}
	return code
}

package translate

import (
	"testing"

	"github.com/matzehuels/penman/pkg/errors"
)

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name     string
		req      Request
		wantCode errors.Code
	}{
		{"valid", Request{Text: "hello", SourceLang: "en", TargetLang: "es"}, ""},
		{"whitespace text is present", Request{Text: "  ", SourceLang: "en", TargetLang: "es"}, ""},
		{"autodetect source", Request{Text: "hola", SourceLang: "autodetect", TargetLang: "en"}, ""},
		{"missing text", Request{SourceLang: "en", TargetLang: "es"}, errors.ErrCodeMissingField},
		{"missing target", Request{Text: "hello", SourceLang: "en"}, errors.ErrCodeMissingField},
		{"autodetect target", Request{Text: "hello", SourceLang: "en", TargetLang: "autodetect"}, errors.ErrCodeInvalidLanguage},
		{"malformed source", Request{Text: "hello", SourceLang: "english!", TargetLang: "es"}, errors.ErrCodeInvalidLanguage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Validate() = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

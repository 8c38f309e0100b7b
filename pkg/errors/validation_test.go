package errors

import (
	"strings"
	"testing"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name    string
		fields  []Field
		wantErr string
	}{
		{"all present", []Field{{"text", "hello"}, {"sourceLang", "en"}}, ""},
		{"empty", []Field{{"text", ""}}, "text"},
		{"whitespace only", []Field{{"text", "   "}}, "text"},
		{"first missing wins", []Field{{"text", "hi"}, {"sourceLang", ""}, {"targetLang", ""}}, "sourceLang"},
		{"no fields", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fields...)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateRequired() error = %v, want nil", err)
				}
				return
			}
			if !Is(err, ErrCodeMissingField) {
				t.Fatalf("ValidateRequired() error = %v, want MISSING_FIELD", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should name field %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "alice", false},
		{"valid with dots", "alice.smith", false},
		{"valid unicode", "zoë", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 65), true},
		{"space", "alice smith", true},
		{"control char", "alice\x01", true},
		{"newline", "alice\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUsername(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("secret"); err != nil {
		t.Errorf("ValidatePassword() error = %v", err)
	}
	if err := ValidatePassword(""); !Is(err, ErrCodeMissingField) {
		t.Errorf("empty password error = %v, want MISSING_FIELD", err)
	}
	if err := ValidatePassword(strings.Repeat("p", 73)); !Is(err, ErrCodeInvalidInput) {
		t.Errorf("long password error = %v, want INVALID_INPUT", err)
	}
}

func TestValidateFormat(t *testing.T) {
	if err := ValidateFormat("png", "png", "pdf"); err != nil {
		t.Errorf("ValidateFormat(png) error = %v", err)
	}
	err := ValidateFormat("svg", "png", "pdf")
	if !Is(err, ErrCodeInvalidFormat) {
		t.Fatalf("ValidateFormat(svg) error = %v, want INVALID_FORMAT", err)
	}
	if !strings.Contains(err.Error(), "png, pdf") {
		t.Errorf("error should list allowed formats: %v", err)
	}
}

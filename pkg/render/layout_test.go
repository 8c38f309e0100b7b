package render

import (
	"slices"
	"strings"
	"testing"

	"golang.org/x/image/font/basicfont"
)

// Face7x13 advances every glyph by 7px, so widths are len(s)*7.
var measure7 = FaceMeasure(basicfont.Face7x13)

func TestFaceMeasure(t *testing.T) {
	if got := measure7("hello"); got != 35 {
		t.Errorf("measure(hello) = %v, want 35", got)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     []string
	}{
		{"fits on one line", "hello world", 100, []string{"hello world"}},
		{"exact fit", "hello world", 77, []string{"hello world"}},
		{"breaks between words", "hello world", 76, []string{"hello", "world"}},
		{"greedy fill", "a b c d e f", 35, []string{"a b c", "d e f"}},
		{"over-wide word alone", "hi extraordinarily ok", 50, []string{"hi", "extraordinarily", "ok"}},
		{"over-wide first word", "extraordinarily ok", 50, []string{"extraordinarily", "ok"}},
		{"collapses spaces", "  hello    world  ", 100, []string{"hello world"}},
		{"paragraphs", "one\ntwo", 100, []string{"one", "two"}},
		{"blank paragraph kept", "one\n\ntwo", 100, []string{"one", "", "two"}},
		{"crlf", "one\r\ntwo", 100, []string{"one", "two"}},
		{"trailing newlines dropped", "one\n\n", 100, []string{"one"}},
		{"empty", "", 100, nil},
		{"whitespace only", " \n \t ", 100, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, measure7, tt.maxWidth)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Wrap(%q, %v) = %q, want %q", tt.text, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestWrapDeterministic(t *testing.T) {
	first := Wrap("hello world", measure7, 100)
	for i := 0; i < 10; i++ {
		if got := Wrap("hello world", measure7, 100); !slices.Equal(got, first) {
			t.Fatalf("Wrap not deterministic: %q vs %q", got, first)
		}
	}
}

func TestWrapLinesFit(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet ", 40)
	const maxWidth = 200

	for _, line := range Wrap(text, measure7, maxWidth) {
		if measure7(line) > maxWidth && strings.Contains(line, " ") {
			t.Errorf("multi-word line %q exceeds %v", line, maxWidth)
		}
	}
}

package render

import (
	"strings"

	"golang.org/x/image/font"
)

// MeasureFunc returns the advance width of s in pixels.
type MeasureFunc func(s string) float64

// FaceMeasure returns a MeasureFunc backed by face.
func FaceMeasure(face font.Face) MeasureFunc {
	return func(s string) float64 {
		return float64(font.MeasureString(face, s)) / 64
	}
}

// Wrap breaks text into lines no wider than maxWidth. Each newline-separated
// paragraph is wrapped on its own; empty paragraphs yield empty lines.
// Words are never split, so a single over-wide word occupies its own line.
func Wrap(text string, measure MeasureFunc, maxWidth float64) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(para, measure, maxWidth)...)
	}

	// Trailing blank lines add height without content.
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func wrapParagraph(para string, measure MeasureFunc, maxWidth float64) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if measure(candidate) > maxWidth {
			lines = append(lines, line)
			line = w
			continue
		}
		line = candidate
	}
	return append(lines, line)
}

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Status lines go to stderr so that translated text and JSON listings on
// stdout stay pipeable.
var statusOut io.Writer = os.Stderr

var (
	colorAccent = lipgloss.Color("36")  // teal
	colorOK     = lipgloss.Color("35")  // green
	colorWarn   = lipgloss.Color("220") // amber
	colorFail   = lipgloss.Color("167") // soft red
	colorText   = lipgloss.Color("255")
	colorLabel  = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("240")
)

var (
	// StyleTitle renders headings such as the language picker title.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// StyleHighlight renders usernames, servers and language pairs.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)

	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorMuted)

	StyleValue   = lipgloss.NewStyle().Foreground(colorText)
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)

	styleLabel = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
)

// marker is a coloured one-glyph prefix for a status line.
type marker struct {
	glyph string
	style lipgloss.Style
}

var (
	markOK   = marker{"✓", lipgloss.NewStyle().Foreground(colorOK)}
	markFail = marker{"✗", lipgloss.NewStyle().Foreground(colorFail)}
	markWarn = marker{"!", lipgloss.NewStyle().Foreground(colorWarn)}
	markInfo = marker{"›", lipgloss.NewStyle().Foreground(colorLabel)}
	markSpin = lipgloss.NewStyle().Foreground(colorAccent)
)

func (m marker) printf(format string, args ...any) {
	fmt.Fprintln(statusOut, m.style.Render(m.glyph)+" "+fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { markOK.printf(format, args...) }

func printError(format string, args ...any) { markFail.printf(format, args...) }

func printInfo(format string, args ...any) { markInfo.printf(format, args...) }

func printWarning(format string, args ...any) {
	markWarn.printf("%s", StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, dimmed follow-up line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a file the command wrote.
func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

// printKeyValue prints one aligned "label value" row, as used by whoami.
func printKeyValue(key, value string) {
	fmt.Fprintln(statusOut, styleLabel.Render(key)+" "+StyleValue.Render(value))
}

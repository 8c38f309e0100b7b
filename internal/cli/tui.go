package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/penman/pkg/languages"
)

var (
	pickerCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	pickerRowStyle    = lipgloss.NewStyle().Foreground(colorText)
	pickerFilterStyle = lipgloss.NewStyle().Foreground(colorWarn)
)

// LanguagePicker is a bubbletea model listing languages. Typing narrows
// the list by code or English name.
type LanguagePicker struct {
	Title    string
	Selected *languages.Language

	all     []languages.Language
	visible []languages.Language
	filter  string
	cursor  int
	offset  int
	rows    int
}

// NewLanguagePicker returns a picker with the cursor on current, if listed.
func NewLanguagePicker(title string, langs []languages.Language, current string) LanguagePicker {
	p := LanguagePicker{Title: title, all: langs, visible: langs, rows: 12}
	for i, l := range langs {
		if l.Code == current {
			p.moveTo(i)
			break
		}
	}
	return p
}

// Highlighted returns the language under the cursor, or nil when the
// filter matches nothing.
func (p LanguagePicker) Highlighted() *languages.Language {
	if len(p.visible) == 0 {
		return nil
	}
	l := p.visible[p.cursor]
	return &l
}

func (p LanguagePicker) Init() tea.Cmd { return nil }

func (p LanguagePicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.rows = max(msg.Height-7, 5)
		p.moveTo(p.cursor)
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return p, tea.Quit
		case tea.KeyEnter:
			p.Selected = p.Highlighted()
			return p, tea.Quit
		case tea.KeyUp:
			p.moveTo(p.cursor - 1)
		case tea.KeyDown:
			p.moveTo(p.cursor + 1)
		case tea.KeyBackspace:
			if p.filter != "" {
				_, size := utf8.DecodeLastRuneInString(p.filter)
				p.setFilter(p.filter[:len(p.filter)-size])
			}
		case tea.KeyRunes:
			p.setFilter(p.filter + string(msg.Runes))
		}
	}
	return p, nil
}

func (p *LanguagePicker) setFilter(f string) {
	p.filter = f
	needle := strings.ToLower(f)
	p.visible = p.visible[:0:0]
	for _, l := range p.all {
		if strings.HasPrefix(l.Code, needle) || strings.Contains(strings.ToLower(l.Name), needle) {
			p.visible = append(p.visible, l)
		}
	}
	p.offset = 0
	p.moveTo(0)
}

// moveTo clamps the cursor to the visible list and scrolls to keep it shown.
func (p *LanguagePicker) moveTo(i int) {
	p.cursor = min(max(i, 0), max(len(p.visible)-1, 0))
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+p.rows {
		p.offset = p.cursor - p.rows + 1
	}
}

func (p LanguagePicker) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(p.Title) + "\n")
	b.WriteString(StyleDim.Render("type to filter  ↑/↓ move  ⏎ select  esc cancel") + "\n")
	if p.filter != "" {
		b.WriteString("filter: " + pickerFilterStyle.Render(p.filter))
	}
	b.WriteString("\n\n")

	if len(p.visible) == 0 {
		b.WriteString(StyleDim.Render("  no matching language") + "\n")
	}
	end := min(p.offset+p.rows, len(p.visible))
	for i := p.offset; i < end; i++ {
		l := p.visible[i]
		if i == p.cursor {
			b.WriteString(pickerCursorStyle.Render(fmt.Sprintf("▸ %-4s %s", l.Code, l.Name)))
		} else {
			b.WriteString(pickerRowStyle.Render(fmt.Sprintf("  %-4s %s", l.Code, l.Name)))
		}
		b.WriteString("\n")
	}
	if n := len(p.visible); n > 0 {
		b.WriteString("\n" + StyleDim.Render(fmt.Sprintf("  %d of %d", p.cursor+1, n)))
	}
	return b.String()
}

// pickLanguage runs a picker over the supported languages. It returns ""
// when the user cancels.
func pickLanguage(title, current string) (string, error) {
	final, err := tea.NewProgram(NewLanguagePicker(title, languages.All(), current)).Run()
	if err != nil {
		return "", err
	}
	if p, ok := final.(LanguagePicker); ok && p.Selected != nil {
		return p.Selected.Code, nil
	}
	return "", nil
}

// renderTable draws the rounded tables used by styles, languages and
// account list. The first column is the lookup key and is highlighted.
func renderTable(headers []string, rows [][]string) string {
	head := lipgloss.NewStyle().Foreground(colorLabel).Bold(true).Padding(0, 1)
	key := lipgloss.NewStyle().Foreground(colorAccent).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return head
			case col == 0:
				return key
			}
			return cell
		}).
		Render()
}

package palette

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles for the picker
type Styles struct {
	Title       lipgloss.Style // Menu title
	Row         lipgloss.Style // Unselected option
	RowSelected lipgloss.Style // Highlighted option
	Marker      lipgloss.Style // ▶ glyph in front of the highlighted option
	Tag         lipgloss.Style // Trailing [personal]/[builtin] tag
	Muted       lipgloss.Style // Hint line, page counter
	DotActive   lipgloss.Style
	DotInactive lipgloss.Style
	ErrorText   lipgloss.Style
}

// NewStyles creates styles from the palette
func NewStyles(p Palette) Styles {
	s := Styles{}

	s.Title = lipgloss.NewStyle().
		Foreground(p.Text).
		Bold(true)

	s.Row = lipgloss.NewStyle().
		Foreground(p.Text)

	s.RowSelected = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	s.Marker = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)

	s.Tag = lipgloss.NewStyle().Foreground(p.Tertiary)
	s.Muted = lipgloss.NewStyle().Foreground(p.Muted)

	s.DotActive = lipgloss.NewStyle().Foreground(p.Accent)
	s.DotInactive = lipgloss.NewStyle().Foreground(p.Faint)

	s.ErrorText = lipgloss.NewStyle().Foreground(p.Error)
	return s
}

// PlainStyles returns unstyled styles for --no-color and NO_COLOR.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:       plain,
		Row:         plain,
		RowSelected: plain,
		Marker:      plain,
		Tag:         plain,
		Muted:       plain,
		DotActive:   plain,
		DotInactive: plain,
		ErrorText:   plain,
	}
}

// DefaultStyles returns styles using the default palette
func DefaultStyles() Styles {
	return NewStyles(Mocha)
}

package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/vburojevic/poshtheme/internal/app/tui/palette"
)

// Outcome is the terminal state of a menu run.
type Outcome int

const (
	Pending Outcome = iota
	Selected
	Cancelled
)

// Options configures one menu run.
type Options struct {
	Title    string
	PageSize int
	Paginate bool
	Styles   palette.Styles

	// Input and Output default to the process stdin/stdout when nil.
	Input  io.Reader
	Output io.Writer
}

// Model is the bubbletea adapter around MenuState. All cursor arithmetic
// lives in MenuState; the model only maps keys and renders.
type Model struct {
	title  string
	labels []string
	state  MenuState
	keys   KeyMap
	pager  paginator.Model
	help   help.Model
	styles palette.Styles

	width   int
	outcome Outcome
}

// NewModel creates a menu positioned on page 0, index 0.
func NewModel(opts Options, labels []string) *Model {
	state := NewMenuState(len(labels), opts.PageSize, opts.Paginate)
	styles := opts.Styles

	pager := paginator.New()
	pager.Type = paginator.Dots
	pager.PerPage = state.PageSize()
	pager.SetTotalPages(len(labels))
	pager.ActiveDot = styles.DotActive.Render("•")
	pager.InactiveDot = styles.DotInactive.Render("○")

	h := help.New()
	h.Styles.ShortKey = styles.Row
	h.Styles.ShortDesc = styles.Muted
	h.Styles.ShortSeparator = styles.Muted
	h.Styles.FullKey = styles.Row
	h.Styles.FullDesc = styles.Muted
	h.Styles.FullSeparator = styles.Muted

	return &Model{
		title:  opts.Title,
		labels: labels,
		state:  state,
		keys:   DefaultKeyMap().withPaging(state.TotalPages() > 1),
		pager:  pager,
		help:   h,
		styles: styles,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.outcome != Pending {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.outcome = Cancelled
		return tea.Quit
	case key.Matches(msg, m.keys.Select):
		if m.state.Count() == 0 {
			m.outcome = Cancelled
		} else {
			m.outcome = Selected
		}
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.state = m.state.Move(-1)
	case key.Matches(msg, m.keys.Down):
		m.state = m.state.Move(1)
	case key.Matches(msg, m.keys.PrevPage):
		m.state = m.state.MovePage(-1)
	case key.Matches(msg, m.keys.NextPage):
		m.state = m.state.MovePage(1)
	case key.Matches(msg, m.keys.Home):
		m.state = m.state.First()
	case key.Matches(msg, m.keys.End):
		m.state = m.state.Last()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	m.pager.Page = m.state.Page()
	return nil
}

// View renders the visible page. Unused rows are blank so every page has
// the same height.
func (m *Model) View() string {
	if m.outcome != Pending {
		return ""
	}

	var b strings.Builder
	if m.title != "" {
		b.WriteString(m.styles.Title.Render(m.title))
		b.WriteString("\n")
	}

	start, end := m.state.Bounds()
	for i := start; i < start+m.state.PageSize(); i++ {
		if i < end {
			b.WriteString(m.renderRow(i))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderRow(i int) string {
	label := m.labels[i]
	if m.width > 4 {
		label = runewidth.Truncate(label, m.width-4, "…")
	}
	if i == m.state.Index() {
		return m.styles.Marker.Render("▶ ") + m.styles.RowSelected.Render(label)
	}
	return "  " + m.styles.Row.Render(label)
}

func (m *Model) renderFooter() string {
	counter := fmt.Sprintf("%d items", m.state.Count())
	if total := m.state.TotalPages(); total > 1 {
		counter = fmt.Sprintf("page %d/%d · %d items", m.state.Page()+1, total, m.state.Count())
	}
	return m.pager.View() + "  " + m.styles.Muted.Render(counter)
}

// State exposes the cursor for tests and callers.
func (m *Model) State() MenuState { return m.state }

// Outcome reports whether the run is still pending, selected or cancelled.
func (m *Model) Outcome() Outcome { return m.outcome }

// Choice returns the selected index, or -1 and false when nothing was chosen.
func (m *Model) Choice() (int, bool) {
	if m.outcome != Selected {
		return -1, false
	}
	return m.state.Index(), true
}

// Run shows labels and blocks until the user selects or cancels.
// An empty list returns immediately without touching the terminal.
func Run(opts Options, labels []string) (int, bool, error) {
	if len(labels) == 0 {
		return -1, false, nil
	}

	var progOpts []tea.ProgramOption
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	final, err := tea.NewProgram(NewModel(opts, labels), progOpts...).Run()
	if err != nil {
		return -1, false, err
	}
	fm, ok := final.(*Model)
	if !ok {
		return -1, false, fmt.Errorf("unexpected menu model %T", final)
	}
	idx, ok := fm.Choice()
	return idx, ok, nil
}

package app

import (
	"io"
	"os"

	"github.com/vburojevic/poshtheme/internal/app/tui"
	"github.com/vburojevic/poshtheme/internal/app/tui/palette"
	"golang.org/x/term"
)

// tuiPicker shows menus with the bubbletea menu. It renders on stderr so
// stdout stays usable for piping.
type tuiPicker struct {
	cfg    Config
	input  io.Reader
	output io.Writer
}

func newTUIPicker(cfg Config, input io.Reader, output io.Writer) *tuiPicker {
	return &tuiPicker{cfg: cfg, input: input, output: output}
}

// Pick refuses to start without a terminal on input: bubbletea keeps
// waiting for keys after EOF.
func (p *tuiPicker) Pick(title string, labels []string) (int, bool, error) {
	if !isTerminalReader(p.input) {
		return -1, false, ErrNoTerminal
	}
	styles := palette.NewStyles(palette.ByName(p.cfg.Palette))
	if p.cfg.NoColor {
		styles = palette.PlainStyles()
	}
	return tui.Run(tui.Options{
		Title:    title,
		PageSize: p.cfg.PageSize,
		Paginate: p.cfg.Paginate,
		Styles:   styles,
		Input:    p.input,
		Output:   p.output,
	}, labels)
}

func isTerminalReader(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

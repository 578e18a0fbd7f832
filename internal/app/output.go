package app

import (
	"encoding/json"
	"fmt"
	"io"

	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// -------------------------
// Output (non-interactive)
// -------------------------

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer, noColor bool) prettytable.Writer {
	tw := prettytable.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(prettytable.StyleLight)
	tw.Style().Options.SeparateRows = false
	if noColor {
		tw.Style().Color = prettytable.ColorOptions{}
		tw.Style().Format.Header = text.FormatUpper
	} else {
		tw.Style().Color.Header = text.Colors{text.Bold}
	}
	return tw
}

// renderThemeTable prints one row per theme. activePath marks the row of
// the saved theme, if any.
func renderThemeTable(w io.Writer, themes []ThemeDescriptor, activePath string, noColor bool) {
	tw := newTable(w, noColor)
	tw.AppendHeader(prettytable.Row{"NAME", "TYPE", "ACTIVE", "PATH"})
	tw.SetColumnConfigs([]prettytable.ColumnConfig{
		{Number: 3, Align: text.AlignCenter},
	})

	for _, d := range themes {
		active := ""
		if activePath != "" && d.Path == activePath {
			active = "*"
			if !noColor {
				active = text.Colors{text.FgGreen, text.Bold}.Sprint("*")
			}
		}
		tw.AppendRow(prettytable.Row{
			d.Name,
			d.Type.Label(),
			active,
			shortenPath(d.Path, 3),
		})
	}
	tw.Render()
}

func printApplied(w io.Writer, res ApplyResult) {
	fmt.Fprintf(w, "Applied %s (%s)\n", res.Theme.Name, res.Theme.Type.Label())
	if !res.Saved && res.SaveErr != nil {
		fmt.Fprintf(w, "  not saved: %v\n", res.SaveErr)
	}
	if res.InitScript != "" {
		fmt.Fprintf(w, "  init script: %s\n", res.InitScript)
	}
}

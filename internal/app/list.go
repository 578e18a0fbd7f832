package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

// -------------------------
// List
// -------------------------

func newListCmd(rt *appEnv) *cobra.Command {
	var (
		personal bool
		builtin  bool
		all      bool
		refresh  bool
		jsonOut  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available themes",
		Args:  maxArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := filterFromFlags(personal, builtin, all, FilterAll)
			if err != nil {
				return err
			}
			return runList(rt, filter, refresh, jsonOut)
		},
	}

	cmd.Flags().BoolVar(&personal, "personal", false, "Only personal themes")
	cmd.Flags().BoolVar(&builtin, "builtin", false, "Only built-in themes")
	cmd.Flags().BoolVar(&all, "all", false, "Personal and built-in themes (default)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Rescan theme folders instead of using the cache")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")
	return cmd
}

func runList(rt *appEnv, filter Filter, refresh, asJSON bool) error {
	themes := rt.ctrl.ListThemes(filter, refresh)
	if asJSON {
		return writeJSON(rt.stdout, themes)
	}

	if len(themes) == 0 {
		for _, src := range rt.ctrl.sources(filter) {
			if !dirExists(src.dir) {
				rt.logger.Warn("Theme folder not found", "type", src.typ, "dir", safe(src.dir, "(unset)"))
			}
		}
		fmt.Fprintln(rt.stdout, "No themes found.")
		return nil
	}

	active, _ := rt.ctrl.Store().Load()
	renderThemeTable(rt.stdout, themes, active, rt.cfg.NoColor)
	return nil
}

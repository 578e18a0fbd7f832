package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// -------------------------
// Select
// -------------------------

func newSelectCmd(rt *appEnv) *cobra.Command {
	var (
		personal bool
		builtin  bool
		all      bool
		noApply  bool
	)

	cmd := &cobra.Command{
		Use:   "select [name]",
		Short: "Select a theme by name or from a menu, then apply it",
		Long:  "Without a name, select asks for a source (personal, built-in or all) and then shows a paginated theme menu. Personal themes win over built-in themes of the same name.",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := filterFromFlags(personal, builtin, all, FilterUnset)
			if err != nil {
				return err
			}
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			if name != "" && filter == FilterUnset {
				filter = FilterAll
			}
			return runSelect(cmd.Context(), rt, name, filter, noApply)
		},
	}

	cmd.Flags().BoolVar(&personal, "personal", false, "Only consider personal themes")
	cmd.Flags().BoolVar(&builtin, "builtin", false, "Only consider built-in themes")
	cmd.Flags().BoolVar(&all, "all", false, "Consider every theme without asking for a source")
	cmd.Flags().BoolVar(&noApply, "no-apply", false, "Print the chosen theme path without saving or applying it")
	return cmd
}

func runSelect(ctx context.Context, rt *appEnv, name string, filter Filter, noApply bool) error {
	d, err := rt.ctrl.SelectTheme(ctx, name, filter)
	switch {
	case errors.Is(err, ErrCancelled):
		fmt.Fprintln(rt.stderr, "No theme selected.")
		return nil
	case errors.Is(err, ErrSourceUnavailable):
		rt.logger.Warn("Nothing to choose from", "err", err)
		return nil
	case errors.Is(err, ErrNoTerminal):
		rt.logger.Warn("Cannot show the theme menu", "err", err)
		return nil
	case err != nil:
		return err
	}

	if noApply {
		fmt.Fprintln(rt.stdout, d.Path)
		return nil
	}

	res, err := rt.ctrl.ApplyTheme(ctx, d)
	if errors.Is(err, ErrNotFound) {
		return err
	}
	// Tool and persistence failures were already logged; the selection
	// itself still counts.
	printApplied(rt.stdout, res)
	return nil
}

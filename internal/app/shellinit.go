package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// -------------------------
// Init (session start)
// -------------------------

// newShellInitCmd prints the prompt init text for the saved theme. It is
// meant for shell profiles, so it never fails: problems are logged and the
// tool's default prompt (or nothing) is printed instead.
func newShellInitCmd(rt *appEnv) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Re-apply the saved theme and print the shell init script",
		Long:  "Add `eval \"$(poshtheme init --shell zsh)\"` (or your shell's equivalent) to your profile. The script is also written to the init script path.",
		Args:  maxArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res, err := rt.ctrl.Reapply(ctx)
			script := res.Script
			switch {
			case err == nil:
			case errors.Is(err, ErrNotFound):
				rt.logger.Debug("No saved theme, using the tool default")
				s, terr := rt.ctrl.Tool().Init(ctx, rt.cfg.Shell, "")
				if terr != nil {
					rt.logger.Warn("Could not render default prompt", "err", terr)
					return nil
				}
				script = s
			default:
				// ApplyTheme already logged the warning.
				if script == "" {
					return nil
				}
			}
			if !quiet {
				fmt.Fprint(rt.stdout, script)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only write the init script file, print nothing")
	return cmd
}

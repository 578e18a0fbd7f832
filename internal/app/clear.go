package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// -------------------------
// Clear
// -------------------------

func newClearCmd(rt *appEnv) *cobra.Command {
	var (
		yes        bool
		initScript bool
	)

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget the saved theme",
		Args:  maxArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			marker := rt.ctrl.Store().Path()
			script := rt.ctrl.InitScript()
			hasMarker := fileExists(marker)
			hasScript := initScript && fileExists(script)
			if !hasMarker && !hasScript {
				fmt.Fprintln(rt.stdout, "No saved theme.")
				return nil
			}

			if !yes && rt.interactive() {
				ok, err := confirm(fmt.Sprintf("Forget the saved theme (%s)?", marker))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(rt.stdout, "Aborted.")
					return nil
				}
			}

			if hasMarker {
				if err := rt.ctrl.Store().Clear(); err != nil {
					return err
				}
				fmt.Fprintf(rt.stdout, "Cleared %s\n", marker)
			}
			if hasScript {
				if err := os.Remove(script); err != nil && !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("%w: %w", ErrPersistence, err)
				}
				fmt.Fprintf(rt.stdout, "Removed %s\n", script)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	cmd.Flags().BoolVar(&initScript, "init-script", false, "Also remove the generated init script")
	return cmd
}

func confirm(title string) (bool, error) {
	ok := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	)
	form.WithTheme(huh.ThemeDracula())
	if os.Getenv("ACCESSIBLE") != "" {
		form.WithAccessible(true)
	}
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

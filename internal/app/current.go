package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

// -------------------------
// Current
// -------------------------

func newCurrentCmd(rt *appEnv) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show the active theme and where it was found",
		Args:  maxArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cur, ok := rt.ctrl.CurrentTheme(cmd.Context())
			if jsonOut {
				return writeJSON(rt.stdout, cur)
			}
			if !ok {
				fmt.Fprintln(rt.stdout, "No active theme.")
				return nil
			}
			fmt.Fprintf(rt.stdout, "%s (%s)\n", cur.Name, cur.Type.Label())
			fmt.Fprintf(rt.stdout, "  path: %s\n", cur.Path)
			fmt.Fprintf(rt.stdout, "  found via: %s\n", cur.Provenance)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")
	return cmd
}

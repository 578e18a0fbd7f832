package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// -------------------------
// Doctor
// -------------------------

type doctorCheck struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail"`
}

func newDoctorCmd(rt *appEnv) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check theme folders, the prompt tool and the saved selection",
		Args:  maxArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := runDoctor(cmd, rt)
			if jsonOut {
				return writeJSON(rt.stdout, checks)
			}

			tw := newTable(rt.stdout, rt.cfg.NoColor)
			tw.AppendHeader(prettytable.Row{"CHECK", "STATUS", "DETAIL"})
			for _, c := range checks {
				status := "ok"
				if !c.OK {
					status = "missing"
				}
				tw.AppendRow(prettytable.Row{c.Name, status, c.Detail})
			}
			tw.Render()

			if !checks[0].OK {
				fmt.Fprintf(rt.stdout, "\nTip: run `%s config --init` to write a config file.\n", appName)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")
	return cmd
}

func runDoctor(cmd *cobra.Command, rt *appEnv) []doctorCheck {
	cfg := rt.cfg
	ctrl := rt.ctrl
	var checks []doctorCheck

	cp, _ := configFilePath()
	checks = append(checks, doctorCheck{Name: "config", OK: fileExists(cp), Detail: cp})

	for _, src := range ctrl.sources(FilterAll) {
		themes := ctrl.Catalog().List(src.dir, src.typ, true)
		detail := fmt.Sprintf("%s (%d themes)", safe(src.dir, "(unset)"), len(themes))
		if at, ok := ctrl.Catalog().Populated(src.dir, src.typ); ok {
			detail += ", scanned " + at.Format(time.Kitchen)
		}
		checks = append(checks, doctorCheck{
			Name:   strings.ToLower(src.typ.Label()) + " themes",
			OK:     dirExists(src.dir) && len(themes) > 0,
			Detail: detail,
		})
	}

	checks = append(checks, doctorCheck{Name: "marker", OK: fileExists(ctrl.Store().Path()), Detail: ctrl.Store().Path()})
	checks = append(checks, doctorCheck{Name: "init script", OK: fileExists(ctrl.InitScript()), Detail: ctrl.InitScript()})

	if p, err := ctrl.Tool().Locate(); err == nil {
		checks = append(checks, doctorCheck{Name: "tool", OK: true, Detail: p})
	} else {
		checks = append(checks, doctorCheck{Name: "tool", OK: false, Detail: err.Error()})
	}

	envVal := os.Getenv(cfg.EnvVar)
	checks = append(checks, doctorCheck{Name: "$" + cfg.EnvVar, OK: envVal != "", Detail: safe(envVal, "(unset)")})

	if cur, ok := ctrl.CurrentTheme(cmd.Context()); ok {
		checks = append(checks, doctorCheck{
			Name:   "current theme",
			OK:     true,
			Detail: fmt.Sprintf("%s [%s] via %s", cur.Name, cur.Type, cur.Provenance),
		})
	} else {
		checks = append(checks, doctorCheck{Name: "current theme", OK: false, Detail: "none"})
	}
	return checks
}

package app

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// -------------------------
// Help (agent-friendly)
// -------------------------

type helpFlag struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Default     string `json:"default"`
	Description string `json:"description"`
}

type helpCommand struct {
	Name        string     `json:"name"`
	Usage       string     `json:"usage"`
	Description string     `json:"description"`
	Flags       []helpFlag `json:"flags,omitempty"`
}

type helpDoc struct {
	Name        string            `json:"name"`
	OneLiner    string            `json:"one_liner"`
	Usage       []string          `json:"usage"`
	Commands    []helpCommand     `json:"commands"`
	GlobalFlags []helpFlag        `json:"global_flags"`
	IOContract  map[string]string `json:"io_contract"`
	ExitCodes   map[string]string `json:"exit_codes"`
	Env         map[string]string `json:"env"`
	Config      map[string]string `json:"config"`
	Notes       []string          `json:"notes"`
}

func newHelpCmd() *cobra.Command {
	var format string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "help",
		Short: "Show extended help (agent-friendly)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOut {
				format = "json"
			}
			format = strings.TrimSpace(strings.ToLower(format))
			if format == "" {
				format = "text"
			}

			doc := buildHelpDoc()

			switch format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			default:
				fmt.Fprint(cmd.OutOrStdout(), renderHelpText(doc))
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text|json")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")
	return cmd
}

func buildHelpDoc() helpDoc {
	global := []helpFlag{
		{Name: "--verbose, -v", Type: "bool", Default: "false", Description: "Log debug diagnostics to stderr"},
		{Name: "--no-color", Type: "bool", Default: "false", Description: "Disable colors in menus and tables"},
		{Name: "--shell", Type: "string", Default: "", Description: "Shell to render the init script for"},
		{Name: "--personal-dir", Type: "string", Default: "", Description: "Override the personal themes directory"},
		{Name: "--builtin-dir", Type: "string", Default: "", Description: "Override the built-in themes directory"},
		{Name: "--page-size", Type: "int", Default: "10", Description: "Themes per menu page"},
	}

	commands := []helpCommand{
		{Name: "list", Usage: "poshtheme list [--personal|--builtin|--all] [--refresh] [--json]", Description: "List themes (personal first, then built-in)"},
		{Name: "select", Usage: "poshtheme select [name] [--personal|--builtin|--all] [--no-apply]", Description: "Pick a theme by name or from a menu and apply it"},
		{Name: "current", Usage: "poshtheme current [--json]", Description: "Show the active theme and where it was found"},
		{Name: "clear", Usage: "poshtheme clear [--yes] [--init-script]", Description: "Forget the saved theme"},
		{Name: "init", Usage: "poshtheme init [--shell zsh] [--quiet]", Description: "Re-apply the saved theme and print the init script"},
		{Name: "watch", Usage: "poshtheme watch [--debounce 250ms]", Description: "Re-apply when the theme or selection changes"},
		{Name: "doctor", Usage: "poshtheme doctor [--json]", Description: "Check folders, tool and saved selection"},
		{Name: "config", Usage: "poshtheme config --show|--init", Description: "Show or initialize config"},
		{Name: "help", Usage: "poshtheme help [--format json]", Description: "Extended help for humans/agents"},
	}

	return helpDoc{
		Name:     appName,
		OneLiner: "Pick, apply and persist Oh My Posh prompt themes",
		Usage: []string{
			"poshtheme [flags]",
			"poshtheme list [flags]",
			"poshtheme select [name] [flags]",
			"poshtheme current [--json]",
			"poshtheme clear [--yes]",
			"poshtheme init [--shell <shell>]",
			"poshtheme watch",
			"poshtheme doctor [--json]",
			"poshtheme config --show|--init",
			"poshtheme help [--format json]",
		},
		Commands:    commands,
		GlobalFlags: global,
		IOContract: map[string]string{
			"stdout": "Primary data output (table/JSON/init script).",
			"stderr": "Menus, diagnostics and errors.",
		},
		ExitCodes: map[string]string{
			"0": "Success, cancelled menu, or a soft failure that was logged",
			"1": "Generic failure, including an unknown theme name",
			"2": "Invalid usage",
		},
		Env: map[string]string{
			"POSHTHEME_HOME":   "Override the app directory (config, marker, init script)",
			"POSHTHEME_<KEY>":  "Override any config key, e.g. POSHTHEME_SHELL=zsh",
			"POSH_THEMES_PATH": "Built-in themes directory exported by Oh My Posh",
			"POSH_THEME":       "Active theme path, used when nothing is saved",
			"NO_COLOR":         "Disable colors",
			"ACCESSIBLE":       "Enable accessible config wizard and prompts",
		},
		Config: map[string]string{
			"path": "$POSHTHEME_HOME/config.json (default ~/.config/poshtheme/config.json)",
			"keys": "personal_dir, builtin_dir, marker_file, init_script, shell, tool, env_var, patterns, page_size, paginate, palette, log_level",
		},
		Notes: []string{
			"Bare `poshtheme` opens the menu on a terminal and prints the table otherwise.",
			"Menu keys: up/down or j/k move, left/right or PgUp/PgDn change page, Enter selects, Esc or q cancels.",
			"After `select`, source the init script or start a new shell to see the new prompt.",
		},
	}
}

func renderHelpText(doc helpDoc) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s - %s\n\n", doc.Name, doc.OneLiner))

	b.WriteString("USAGE\n")
	for _, u := range doc.Usage {
		b.WriteString("  " + u + "\n")
	}
	b.WriteString("\nCOMMANDS\n")
	for _, c := range doc.Commands {
		b.WriteString(fmt.Sprintf("  %-8s %s\n", c.Name, c.Description))
	}
	b.WriteString("\nGLOBAL FLAGS\n")
	for _, f := range doc.GlobalFlags {
		b.WriteString(fmt.Sprintf("  %-18s %-7s %-6s %s\n", f.Name, f.Type, f.Default, f.Description))
	}
	b.WriteString("\nI/O CONTRACT\n")
	writeSection(&b, doc.IOContract)
	b.WriteString("\nEXIT CODES\n")
	writeSection(&b, doc.ExitCodes)
	b.WriteString("\nENV\n")
	writeSection(&b, doc.Env)
	b.WriteString("\nCONFIG\n")
	writeSection(&b, doc.Config)
	if len(doc.Notes) > 0 {
		b.WriteString("\nNOTES\n")
		for _, n := range doc.Notes {
			b.WriteString("  - " + n + "\n")
		}
	}
	return b.String()
}

func writeSection(b *strings.Builder, m map[string]string) {
	for _, k := range slices.Sorted(maps.Keys(m)) {
		fmt.Fprintf(b, "  %s: %s\n", k, m[k])
	}
}

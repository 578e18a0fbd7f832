package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vburojevic/poshtheme/internal/app/tui"
	"github.com/vburojevic/poshtheme/internal/app/tui/palette"
)

func defaultConfig() Config {
	return Config{
		PersonalDir: defaultPersonalDir(),
		BuiltinDir:  defaultBuiltinDir(),
		MarkerFile:  defaultMarkerPath(),
		Shell:       detectShell(),
		Tool:        defaultToolName,
		EnvVar:      defaultEnvVar,
		Patterns:    defaultPatterns(),
		PageSize:    tui.DefaultPageSize,
		Paginate:    true,
		Palette:     defaultPalette,
		LogLevel:    defaultLogLevel,
	}
}

// detectShell picks the login shell when oh-my-posh supports it.
func detectShell() string {
	sh := strings.TrimSuffix(filepath.Base(os.Getenv("SHELL")), ".exe")
	if sh != "" && sliceContains(supportedShells, sh) {
		return sh
	}
	return defaultShell
}

func newViper(base Config) *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("personal_dir", base.PersonalDir)
	v.SetDefault("builtin_dir", base.BuiltinDir)
	v.SetDefault("marker_file", base.MarkerFile)
	v.SetDefault("init_script", base.InitScript)
	v.SetDefault("shell", base.Shell)
	v.SetDefault("tool", base.Tool)
	v.SetDefault("env_var", base.EnvVar)
	v.SetDefault("patterns", base.Patterns)
	v.SetDefault("page_size", base.PageSize)
	v.SetDefault("paginate", base.Paginate)
	v.SetDefault("palette", base.Palette)
	v.SetDefault("log_level", base.LogLevel)
	return v
}

// loadConfig layers defaults, the optional config file and POSHTHEME_*
// environment variables. A missing file is not an error; a broken one is
// reported but the defaults still apply.
func loadConfig() (Config, error) {
	base := defaultConfig()
	v := newViper(base)

	var readErr error
	if p, err := configFilePath(); err == nil {
		v.SetConfigFile(p)
		if err := v.ReadInConfig(); err != nil && !isMissingConfig(err) {
			readErr = fmt.Errorf("reading %s: %w", p, err)
		}
	}
	return configFromViper(v, base), readErr
}

func isMissingConfig(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound)
}

func configFromViper(v *viper.Viper, base Config) Config {
	cfg := base
	cfg.PersonalDir = expandPath(v.GetString("personal_dir"))
	cfg.BuiltinDir = expandPath(v.GetString("builtin_dir"))
	cfg.MarkerFile = safe(expandPath(v.GetString("marker_file")), base.MarkerFile)
	cfg.InitScript = expandPath(v.GetString("init_script"))
	cfg.Shell = strings.ToLower(safe(v.GetString("shell"), base.Shell))
	cfg.Tool = safe(v.GetString("tool"), base.Tool)
	cfg.EnvVar = safe(v.GetString("env_var"), base.EnvVar)
	if patterns := normalizeList(v.GetStringSlice("patterns")); len(patterns) > 0 {
		cfg.Patterns = patterns
	}
	if n := v.GetInt("page_size"); n > 0 {
		cfg.PageSize = n
	}
	cfg.Paginate = v.GetBool("paginate")
	cfg.Palette = strings.ToLower(safe(v.GetString("palette"), base.Palette))
	cfg.LogLevel = safe(v.GetString("log_level"), base.LogLevel)
	cfg.NoColor = os.Getenv("NO_COLOR") != ""
	return cfg
}

// sanitizeConfig replaces shell and palette values from the config file or
// environment that cannot be used. Explicit flags are validated separately.
func sanitizeConfig(cfg Config) (Config, []error) {
	var problems []error
	if !sliceContains(supportedShells, cfg.Shell) {
		fallback := detectShell()
		problems = append(problems, fmt.Errorf("unsupported shell %q in config, using %s", cfg.Shell, fallback))
		cfg.Shell = fallback
	}
	if !sliceContains(palette.Names(), cfg.Palette) {
		problems = append(problems, fmt.Errorf("unknown palette %q in config, using %s", cfg.Palette, defaultPalette))
		cfg.Palette = defaultPalette
	}
	return cfg, problems
}

func cfgFromFlags(base Config, personalDir, builtinDir, shell string, pageSize int, noColor bool) (Config, error) {
	cfg := base

	if strings.TrimSpace(personalDir) != "" {
		cfg.PersonalDir = expandPath(personalDir)
	}
	if strings.TrimSpace(builtinDir) != "" {
		cfg.BuiltinDir = expandPath(builtinDir)
	}
	if strings.TrimSpace(shell) != "" {
		cfg.Shell = strings.TrimSpace(strings.ToLower(shell))
	}
	if pageSize < 0 {
		return Config{}, usageErrorf("invalid --page-size: %d", pageSize)
	}
	if pageSize > 0 {
		cfg.PageSize = pageSize
	}
	if noColor {
		cfg.NoColor = true
	}

	if !sliceContains(supportedShells, cfg.Shell) {
		return Config{}, usageErrorf("invalid --shell: %s (use %s)", cfg.Shell, strings.Join(supportedShells, "|"))
	}
	if !sliceContains(palette.Names(), cfg.Palette) {
		return Config{}, usageErrorf("invalid palette: %s (use %s)", cfg.Palette, strings.Join(palette.Names(), "|"))
	}
	return cfg, nil
}

func configFileFrom(cfg Config) ConfigFile {
	return ConfigFile{
		PersonalDir: cfg.PersonalDir,
		BuiltinDir:  cfg.BuiltinDir,
		MarkerFile:  cfg.MarkerFile,
		InitScript:  cfg.InitScript,
		Shell:       cfg.Shell,
		Tool:        cfg.Tool,
		EnvVar:      cfg.EnvVar,
		Patterns:    cfg.Patterns,
		PageSize:    ptrInt(cfg.PageSize),
		Paginate:    ptrBool(cfg.Paginate),
		Palette:     cfg.Palette,
		LogLevel:    cfg.LogLevel,
	}
}

func writeConfigFile(p string, cf ConfigFile) error {
	b, err := json.MarshalIndent(cf, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return err
	}
	return atomic.WriteFile(p, strings.NewReader(string(b)+"\n"))
}

func newConfigCmd(rt *appEnv) *cobra.Command {
	var (
		show     bool
		initFile bool
		force    bool
		noWizard bool
	)
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize poshtheme config",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := configFilePath()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if initFile {
				if err := ensureAppDirs(); err != nil {
					return err
				}
				if _, err := os.Stat(p); err == nil && !force {
					fmt.Fprintf(out, "Config already exists: %s (use --force to overwrite)\n", p)
					return nil
				}
				cf := configFileFrom(rt.cfg)
				if rt.interactive() && !noWizard {
					choices, err := runConfigWizard(rt.cfg)
					if err != nil {
						return err
					}
					if choices.Aborted {
						fmt.Fprintln(out, "Aborted.")
						return nil
					}
					cf = choices.File
				}
				if err := writeConfigFile(p, cf); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %s\n", p)
				return nil
			}
			if show {
				cfg := rt.cfg
				fmt.Fprintf(out, "Config file: %s (%s)\n", p, existsStr(p))
				fmt.Fprintf(out, "  personal_dir: %s\n", cfg.PersonalDir)
				fmt.Fprintf(out, "  builtin_dir: %s\n", cfg.BuiltinDir)
				fmt.Fprintf(out, "  marker_file: %s\n", cfg.MarkerFile)
				fmt.Fprintf(out, "  init_script: %s\n", initScriptPath(cfg))
				fmt.Fprintf(out, "  shell: %s\n", cfg.Shell)
				fmt.Fprintf(out, "  tool: %s\n", cfg.Tool)
				fmt.Fprintf(out, "  env_var: %s\n", cfg.EnvVar)
				fmt.Fprintf(out, "  patterns: %s\n", strings.Join(cfg.Patterns, ", "))
				fmt.Fprintf(out, "  page_size: %d\n", cfg.PageSize)
				fmt.Fprintf(out, "  paginate: %v\n", cfg.Paginate)
				fmt.Fprintf(out, "  palette: %s\n", cfg.Palette)
				fmt.Fprintf(out, "  log_level: %s\n", cfg.LogLevel)
				return nil
			}
			_ = cmd.Help()
			return nil
		},
	}
	cmd.Flags().BoolVar(&show, "show", true, "Show config (default)")
	cmd.Flags().BoolVar(&initFile, "init", false, "Write a config file if missing")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file with --init")
	cmd.Flags().BoolVar(&noWizard, "no-wizard", false, "Write defaults without the interactive wizard")
	return cmd
}

type configWizardChoices struct {
	File    ConfigFile
	Aborted bool
}

func runConfigWizard(cfg Config) (configWizardChoices, error) {
	var (
		personalDir = cfg.PersonalDir
		builtinDir  = cfg.BuiltinDir
		shell       = cfg.Shell
		paletteName = cfg.Palette
		pageSize    = strconv.Itoa(cfg.PageSize)
		paginate    = cfg.Paginate
		apply       = true
	)

	shellOptions := make([]huh.Option[string], 0, len(supportedShells))
	for _, s := range supportedShells {
		shellOptions = append(shellOptions, huh.NewOption(s, s))
	}
	paletteOptions := make([]huh.Option[string], 0, len(palette.Palettes))
	for _, name := range palette.Names() {
		paletteOptions = append(paletteOptions, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Personal themes directory").
				Description("Your own *.omp.json files. Created if missing.").
				Value(&personalDir),

			huh.NewInput().
				Title("Built-in themes directory").
				Description("Where oh-my-posh installed its themes ($POSH_THEMES_PATH).").
				Value(&builtinDir),

			huh.NewSelect[string]().
				Title("Shell to render the prompt for").
				Options(shellOptions...).
				Value(&shell),

			huh.NewSelect[string]().
				Title("Picker colors").
				Options(paletteOptions...).
				Value(&paletteName),

			huh.NewInput().
				Title("Themes per page").
				Value(&pageSize).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n <= 0 {
						return errors.New("enter a positive number")
					}
					return nil
				}),

			huh.NewConfirm().
				Title("Paginate the theme list?").
				Value(&paginate),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Write this config now?").
				Affirmative("Write").
				Negative("Cancel").
				Value(&apply),
		),
	)

	form.WithTheme(huh.ThemeDracula())
	if os.Getenv("ACCESSIBLE") != "" {
		form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return configWizardChoices{Aborted: true}, nil
		}
		return configWizardChoices{}, err
	}
	if !apply {
		return configWizardChoices{Aborted: true}, nil
	}

	n, _ := strconv.Atoi(strings.TrimSpace(pageSize))
	cf := configFileFrom(cfg)
	cf.PersonalDir = strings.TrimSpace(personalDir)
	cf.BuiltinDir = strings.TrimSpace(builtinDir)
	cf.Shell = shell
	cf.Palette = paletteName
	cf.PageSize = ptrInt(n)
	cf.Paginate = ptrBool(paginate)
	return configWizardChoices{File: cf}, nil
}

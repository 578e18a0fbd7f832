package app

import (
	"regexp"
)

const (
	appName = "poshtheme"

	defaultToolName    = "oh-my-posh"
	defaultEnvVar      = "POSH_THEME"
	defaultShell       = "pwsh"
	defaultPalette     = "mocha"
	defaultLogLevel    = "warn"
	defaultMarkerName  = "current-theme"
	defaultPersonalSub = "themes"
)

// Oh My Posh theme files are named <name>.omp.<ext>. The first matching
// suffix is stripped to derive the display name.
var themeSuffixes = []string{".omp.json", ".omp.yaml", ".omp.yml", ".omp.toml"}

func defaultPatterns() []string {
	return []string{"*.omp.json"}
}

// Shells accepted by `oh-my-posh init`.
var supportedShells = []string{"bash", "zsh", "fish", "pwsh", "powershell", "nu", "elvish", "xonsh", "tcsh", "cmd"}

type ThemeType string

const (
	ThemePersonal ThemeType = "personal"
	ThemeBuiltin  ThemeType = "builtin"
	ThemeCustom   ThemeType = "custom"
)

// Label is the human name shown in menus and tables.
func (t ThemeType) Label() string {
	switch t {
	case ThemePersonal:
		return "Personal"
	case ThemeBuiltin:
		return "Built-in"
	case ThemeCustom:
		return "Custom"
	default:
		return string(t)
	}
}

func typeRank(t ThemeType) int {
	switch t {
	case ThemePersonal:
		return 0
	case ThemeBuiltin:
		return 1
	default:
		return 2
	}
}

// Filter restricts which theme sources are consulted. FilterUnset means the
// caller did not choose; the interactive flow asks for a source first.
type Filter string

const (
	FilterUnset    Filter = ""
	FilterPersonal Filter = "personal"
	FilterBuiltin  Filter = "builtin"
	FilterAll      Filter = "all"
)

func (f Filter) includes(t ThemeType) bool {
	switch f {
	case FilterPersonal:
		return t == ThemePersonal
	case FilterBuiltin:
		return t == ThemeBuiltin
	default:
		return true
	}
}

// ThemeDescriptor identifies one prompt theme file. Unique by (Name, Type).
type ThemeDescriptor struct {
	Name string    `json:"name"`
	Path string    `json:"path"`
	Type ThemeType `json:"type"`
}

// Provenance records which detection step produced the active theme.
type Provenance string

const (
	ProvenanceConfigFile  Provenance = "config-file"
	ProvenanceEnvironment Provenance = "environment"
	ProvenanceToolDebug   Provenance = "tool-debug"
	ProvenanceNone        Provenance = "none"
)

type CurrentTheme struct {
	Name       string     `json:"name"`
	Path       string     `json:"path"`
	Type       ThemeType  `json:"type"`
	Provenance Provenance `json:"provenance"`
}

func (c CurrentTheme) Descriptor() ThemeDescriptor {
	return ThemeDescriptor{Name: c.Name, Path: c.Path, Type: c.Type}
}

type Config struct {
	PersonalDir string
	BuiltinDir  string
	MarkerFile  string
	InitScript  string // "" means <appDir>/init.<shell>
	Shell       string
	Tool        string
	EnvVar      string
	Patterns    []string
	PageSize    int
	Paginate    bool
	Palette     string
	NoColor     bool
	LogLevel    string
}

// ConfigFile is the on-disk shape written by `config --init`.
type ConfigFile struct {
	PersonalDir string   `json:"personal_dir,omitempty"`
	BuiltinDir  string   `json:"builtin_dir,omitempty"`
	MarkerFile  string   `json:"marker_file,omitempty"`
	InitScript  string   `json:"init_script,omitempty"`
	Shell       string   `json:"shell,omitempty"`
	Tool        string   `json:"tool,omitempty"`
	EnvVar      string   `json:"env_var,omitempty"`
	Patterns    []string `json:"patterns,omitempty"`
	PageSize    *int     `json:"page_size,omitempty"`
	Paginate    *bool    `json:"paginate,omitempty"`
	Palette     string   `json:"palette,omitempty"`
	LogLevel    string   `json:"log_level,omitempty"`
}

var (
	// `oh-my-posh debug` prints a line such as "Config path: /x/y.omp.json".
	configPathRe = regexp.MustCompile(`(?im)^[\s>*\-]*config\s*(?:path|file)?\s*[:=]\s*"?([^"\r\n]+?)"?\s*$`)
)

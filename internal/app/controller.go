package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/natefinch/atomic"
)

const maxSuggestions = 5

// Picker shows labels and returns the chosen index, or false on cancel.
type Picker interface {
	Pick(title string, labels []string) (int, bool, error)
}

// ApplyResult describes what ApplyTheme managed to do.
type ApplyResult struct {
	Theme      ThemeDescriptor
	Saved      bool
	SaveErr    error
	InitScript string // file the init text was written to
	Script     string // the init text itself
}

// Controller ties the catalog, the store, the menu and the prompt tool into
// the list / select / apply / current flows.
type Controller struct {
	cfg     Config
	catalog *Catalog
	store   *ThemeStore
	tool    PromptTool
	picker  Picker
	logger  *log.Logger
}

func NewController(cfg Config, tool PromptTool, picker Picker, logger *log.Logger) *Controller {
	return &Controller{
		cfg:     cfg,
		catalog: NewCatalog(cfg.Patterns, logger),
		store:   NewThemeStore(cfg.MarkerFile, cfg.EnvVar, tool, logger),
		tool:    tool,
		picker:  picker,
		logger:  logger,
	}
}

func (c *Controller) Catalog() *Catalog  { return c.catalog }
func (c *Controller) Store() *ThemeStore { return c.store }
func (c *Controller) Config() Config     { return c.cfg }
func (c *Controller) Tool() PromptTool   { return c.tool }
func (c *Controller) InitScript() string { return initScriptPath(c.cfg) }

type themeSource struct {
	dir string
	typ ThemeType
}

func (c *Controller) sources(filter Filter) []themeSource {
	var out []themeSource
	if filter.includes(ThemePersonal) {
		out = append(out, themeSource{dir: c.cfg.PersonalDir, typ: ThemePersonal})
	}
	if filter.includes(ThemeBuiltin) {
		out = append(out, themeSource{dir: c.cfg.BuiltinDir, typ: ThemeBuiltin})
	}
	return out
}

// ListThemes merges the requested sources, sorted by type (Personal first)
// and then by name. Same-named themes of different types are both listed.
func (c *Controller) ListThemes(filter Filter, refresh bool) []ThemeDescriptor {
	var out []ThemeDescriptor
	for _, src := range c.sources(filter) {
		out = append(out, c.catalog.List(src.dir, src.typ, refresh)...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if ri, rj := typeRank(out[i].Type), typeRank(out[j].Type); ri != rj {
			return ri < rj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// SelectTheme resolves name within filter, or runs the interactive flow
// when name is empty. It never touches the marker file.
func (c *Controller) SelectTheme(ctx context.Context, name string, filter Filter) (ThemeDescriptor, error) {
	if strings.TrimSpace(name) != "" {
		return c.findByName(strings.TrimSpace(name), filter)
	}
	return c.pickInteractively(ctx, filter)
}

func (c *Controller) findByName(name string, filter Filter) (ThemeDescriptor, error) {
	themes := c.ListThemes(filter, false)

	if d, ok := preferPersonal(themes, func(d ThemeDescriptor) bool { return d.Name == name }); ok {
		return d, nil
	}
	// Theme files on case-insensitive filesystems are often typed loosely.
	if d, ok := preferPersonal(themes, func(d ThemeDescriptor) bool { return strings.EqualFold(d.Name, name) }); ok {
		return d, nil
	}

	names := uniqueNames(themes)
	return ThemeDescriptor{}, &NotFoundError{
		Name:        name,
		Filter:      filter,
		Suggestions: suggest(name, names),
		Available:   names,
	}
}

// preferPersonal returns the first match, choosing Personal over BuiltIn.
func preferPersonal(themes []ThemeDescriptor, match func(ThemeDescriptor) bool) (ThemeDescriptor, bool) {
	var found *ThemeDescriptor
	for i := range themes {
		if !match(themes[i]) {
			continue
		}
		if themes[i].Type == ThemePersonal {
			return themes[i], true
		}
		if found == nil {
			found = &themes[i]
		}
	}
	if found == nil {
		return ThemeDescriptor{}, false
	}
	return *found, true
}

func uniqueNames(themes []ThemeDescriptor) []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range themes {
		if seen[d.Name] {
			continue
		}
		seen[d.Name] = true
		out = append(out, d.Name)
	}
	sort.Strings(out)
	return out
}

// suggest ranks names by fuzzy distance to query.
func suggest(query string, names []string) []string {
	ranks := fuzzy.RankFindFold(query, names)
	sort.Sort(ranks)
	var out []string
	for _, r := range ranks {
		out = append(out, r.Target)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

type sourceOption struct {
	filter Filter
	label  string
}

func (c *Controller) pickInteractively(ctx context.Context, filter Filter) (ThemeDescriptor, error) {
	if c.picker == nil {
		return ThemeDescriptor{}, errors.New("no interactive picker available")
	}

	if filter == FilterUnset {
		options := []sourceOption{
			{FilterPersonal, fmt.Sprintf("Personal themes (%d)", len(c.ListThemes(FilterPersonal, false)))},
			{FilterBuiltin, fmt.Sprintf("Built-in themes (%d)", len(c.ListThemes(FilterBuiltin, false)))},
			{FilterAll, "All themes"},
		}
		labels := make([]string, len(options))
		for i, o := range options {
			labels[i] = o.label
		}
		idx, ok, err := c.picker.Pick("Theme source", labels)
		if err != nil {
			return ThemeDescriptor{}, err
		}
		if !ok {
			return ThemeDescriptor{}, ErrCancelled
		}
		filter = options[idx].filter
	}

	if err := ctx.Err(); err != nil {
		return ThemeDescriptor{}, err
	}

	themes := c.ListThemes(filter, false)
	if len(themes) == 0 {
		return ThemeDescriptor{}, fmt.Errorf("%w: no %s themes found in %s", ErrSourceUnavailable, filter, c.describeDirs(filter))
	}

	labels := make([]string, len(themes))
	for i, d := range themes {
		labels[i] = d.Name
		if filter == FilterAll {
			labels[i] = fmt.Sprintf("%s [%s]", d.Name, d.Type)
		}
	}
	idx, ok, err := c.picker.Pick(fmt.Sprintf("Select a theme (%d)", len(themes)), labels)
	if err != nil {
		return ThemeDescriptor{}, err
	}
	if !ok {
		return ThemeDescriptor{}, ErrCancelled
	}
	return themes[idx], nil
}

func (c *Controller) describeDirs(filter Filter) string {
	var dirs []string
	for _, src := range c.sources(filter) {
		dirs = append(dirs, safe(src.dir, "(unset)"))
	}
	return strings.Join(dirs, ", ")
}

// ApplyTheme saves the selection and regenerates the init script. A save
// failure is logged and does not stop the apply; a tool failure does not
// roll back the save.
func (c *Controller) ApplyTheme(ctx context.Context, d ThemeDescriptor) (ApplyResult, error) {
	res := ApplyResult{Theme: d}
	if !fileExists(d.Path) {
		return res, fmt.Errorf("%w: %s does not exist", ErrNotFound, d.Path)
	}

	if err := c.store.Save(d.Path); err != nil {
		c.logger.Warn("Theme applies to this session only", "err", err)
		res.SaveErr = err
	} else {
		res.Saved = true
	}

	script, err := c.tool.Init(ctx, c.cfg.Shell, d.Path)
	if err != nil {
		if !errors.Is(err, ErrExternalTool) {
			err = fmt.Errorf("%w: %w", ErrExternalTool, err)
		}
		c.logger.Warn("Could not render prompt init", "theme", d.Name, "err", err)
		return res, err
	}
	res.Script = script

	target := c.InitScript()
	if err := writeInitScript(target, script); err != nil {
		c.logger.Warn("Could not write init script", "path", target, "err", err)
		return res, err
	}
	res.InitScript = target
	c.logger.Info("Applied theme", "theme", d.Name, "type", d.Type, "init", target)
	return res, nil
}

func writeInitScript(path, script string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if err := atomic.WriteFile(path, strings.NewReader(script)); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// CurrentTheme reports the active theme and which step found it.
func (c *Controller) CurrentTheme(ctx context.Context) (CurrentTheme, bool) {
	path, ok := c.store.Load()
	prov := ProvenanceConfigFile
	if !ok {
		path, prov, ok = c.store.DetectActive(ctx)
	}
	if !ok {
		return CurrentTheme{Provenance: ProvenanceNone}, false
	}
	return CurrentTheme{
		Name:       themeName(filepath.Base(path)),
		Path:       path,
		Type:       c.classify(path),
		Provenance: prov,
	}, true
}

func (c *Controller) classify(path string) ThemeType {
	switch {
	case isUnder(path, c.cfg.PersonalDir):
		return ThemePersonal
	case isUnder(path, c.cfg.BuiltinDir):
		return ThemeBuiltin
	default:
		return ThemeCustom
	}
}

// Reapply re-renders the init script for the current theme.
func (c *Controller) Reapply(ctx context.Context) (ApplyResult, error) {
	cur, ok := c.CurrentTheme(ctx)
	if !ok {
		return ApplyResult{}, fmt.Errorf("%w: no active theme", ErrNotFound)
	}
	return c.ApplyTheme(ctx, cur.Descriptor())
}

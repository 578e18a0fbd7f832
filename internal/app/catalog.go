package app

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
)

type catalogKey struct {
	typ    ThemeType
	folder string
}

type catalogEntry struct {
	themes    []ThemeDescriptor
	populated time.Time
}

// Catalog scans theme directories and caches the result per (type, folder).
// Entries never expire; they are replaced by a forced refresh or dropped by
// Invalidate. It is safe for use by the watcher goroutine.
type Catalog struct {
	patterns []string
	logger   *log.Logger
	now      func() time.Time

	mu      sync.Mutex
	entries map[catalogKey]catalogEntry
}

// NewCatalog returns a catalog matching file names against patterns.
// Invalid patterns are dropped with a warning.
func NewCatalog(patterns []string, logger *log.Logger) *Catalog {
	var valid []string
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			logger.Warn("Ignoring invalid theme pattern", "pattern", p)
			continue
		}
		valid = append(valid, p)
	}
	if len(valid) == 0 {
		valid = defaultPatterns()
	}
	return &Catalog{
		patterns: valid,
		logger:   logger,
		now:      time.Now,
		entries:  make(map[catalogKey]catalogEntry),
	}
}

// List returns the themes in folder, sorted by name. The cached slice is
// returned as-is unless forceRefresh is set. A missing or unreadable folder
// yields an empty list.
func (c *Catalog) List(folder string, typ ThemeType, forceRefresh bool) []ThemeDescriptor {
	if strings.TrimSpace(folder) == "" {
		return []ThemeDescriptor{}
	}
	key := catalogKey{typ: typ, folder: filepath.Clean(folder)}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !forceRefresh {
		if e, ok := c.entries[key]; ok {
			c.logger.Debug("Using cached theme list", "folder", key.folder, "type", typ, "count", len(e.themes))
			return e.themes
		}
	}

	themes := c.scan(key.folder, typ)
	c.entries[key] = catalogEntry{themes: themes, populated: c.now()}
	c.logger.Debug("Scanned theme folder", "folder", key.folder, "type", typ, "count", len(themes))
	return themes
}

// Invalidate drops every cached entry.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[catalogKey]catalogEntry)
}

// Populated reports when (folder, typ) was last scanned.
func (c *Catalog) Populated(folder string, typ ThemeType) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[catalogKey{typ: typ, folder: filepath.Clean(folder)}]
	return e.populated, ok
}

func (c *Catalog) scan(folder string, typ ThemeType) []ThemeDescriptor {
	out := []ThemeDescriptor{}

	entries, err := os.ReadDir(folder)
	if err != nil {
		c.logger.Debug("Theme folder not readable", "folder", folder, "err", err)
		return out
	}

	abs, err := filepath.Abs(folder)
	if err != nil {
		abs = folder
	}

	// Names are claimed by the first pattern that matches, so a folder with
	// both paradox.omp.json and paradox.omp.yaml yields one descriptor.
	byName := make(map[string]ThemeDescriptor)
	claimedBy := make(map[string]int)
	for _, e := range entries {
		if !c.isThemeFile(folder, e) {
			continue
		}
		rank, ok := c.matchRank(e.Name())
		if !ok {
			continue
		}
		name := themeName(e.Name())
		if prev, seen := claimedBy[name]; seen && prev <= rank {
			continue
		}
		claimedBy[name] = rank
		byName[name] = ThemeDescriptor{
			Name: name,
			Path: filepath.Join(abs, e.Name()),
			Type: typ,
		}
	}

	for _, d := range byName {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (c *Catalog) isThemeFile(folder string, e os.DirEntry) bool {
	if e.IsDir() {
		return false
	}
	if e.Type()&os.ModeSymlink != 0 {
		st, err := os.Stat(filepath.Join(folder, e.Name()))
		return err == nil && !st.IsDir()
	}
	return e.Type().IsRegular()
}

// matchRank returns the index of the first pattern matching name.
func (c *Catalog) matchRank(name string) (int, bool) {
	for i, p := range c.patterns {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return i, true
		}
	}
	return 0, false
}

// themeName strips the Oh My Posh suffix (or, failing that, the extension).
func themeName(file string) string {
	lower := strings.ToLower(file)
	for _, suffix := range themeSuffixes {
		if strings.HasSuffix(lower, suffix) && len(file) > len(suffix) {
			return file[:len(file)-len(suffix)]
		}
	}
	return strings.TrimSuffix(file, filepath.Ext(file))
}

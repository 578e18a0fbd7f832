package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/natefinch/atomic"
)

// ThemeStore persists the active theme path in a one-line marker file and
// knows how to discover the active theme when the marker is missing.
type ThemeStore struct {
	path   string
	envVar string
	tool   PromptTool
	logger *log.Logger
	getenv func(string) string
}

func NewThemeStore(path, envVar string, tool PromptTool, logger *log.Logger) *ThemeStore {
	return &ThemeStore{
		path:   path,
		envVar: safe(envVar, defaultEnvVar),
		tool:   tool,
		logger: logger,
		getenv: os.Getenv,
	}
}

// Path is the marker file location.
func (s *ThemeStore) Path() string { return s.path }

// Save overwrites the marker file with themePath.
func (s *ThemeStore) Save(themePath string) error {
	// Unchanged content is not rewritten, so watchers of the marker do not
	// see an event for a re-apply.
	if b, err := os.ReadFile(s.path); err == nil && string(b) == themePath {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if err := atomic.WriteFile(s.path, strings.NewReader(themePath)); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	s.logger.Debug("Saved theme path", "marker", s.path, "theme", themePath)
	return nil
}

// Load returns the saved theme path when the marker exists, is non-empty and
// points at an existing file.
func (s *ThemeStore) Load() (string, bool) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("Could not read theme marker", "marker", s.path, "err", err)
		}
		return "", false
	}
	p := strings.TrimSpace(strings.TrimPrefix(string(b), "\ufeff"))
	if p == "" {
		return "", false
	}
	if !fileExists(p) {
		s.logger.Debug("Saved theme no longer exists", "theme", p)
		return "", false
	}
	return p, true
}

// Clear removes the marker file. A missing marker is not an error.
func (s *ThemeStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// DetectActive is the fallback when Load finds nothing: first the prompt
// tool's environment variable, then its diagnostic output. Every candidate
// must exist on disk.
func (s *ThemeStore) DetectActive(ctx context.Context) (string, Provenance, bool) {
	if p := strings.TrimSpace(s.getenv(s.envVar)); p != "" {
		if fileExists(p) {
			return p, ProvenanceEnvironment, true
		}
		s.logger.Debug("Environment theme does not exist", "var", s.envVar, "theme", p)
	}

	if s.tool == nil {
		return "", ProvenanceNone, false
	}
	out, err := s.tool.Debug(ctx)
	if err != nil {
		s.logger.Debug("Prompt tool diagnostics unavailable", "err", err)
		return "", ProvenanceNone, false
	}
	if p, ok := parseConfigPath(out); ok && fileExists(p) {
		return p, ProvenanceToolDebug, true
	}
	return "", ProvenanceNone, false
}

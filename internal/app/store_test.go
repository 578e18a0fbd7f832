package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, tool PromptTool) (*ThemeStore, string) {
	t.Helper()
	marker := filepath.Join(t.TempDir(), "state", defaultMarkerName)
	s := NewThemeStore(marker, defaultEnvVar, tool, discardLogger())
	s.getenv = func(string) string { return "" }
	return s, marker
}

func TestStoreSaveLoadRoundtrip(t *testing.T) {
	s, marker := newTestStore(t, nil)
	theme := writeTheme(t, t.TempDir(), "paradox.omp.json")

	require.NoError(t, s.Save(theme))
	assert.FileExists(t, marker)

	got, ok := s.Load()
	require.True(t, ok)
	assert.Equal(t, theme, got)

	b, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, theme, string(b), "marker holds exactly the path")
}

func TestStoreLoadRejectsUnusableMarker(t *testing.T) {
	s, marker := newTestStore(t, nil)

	_, ok := s.Load()
	assert.False(t, ok, "missing marker")

	require.NoError(t, os.MkdirAll(filepath.Dir(marker), 0o700))
	require.NoError(t, os.WriteFile(marker, []byte("  \n"), 0o600))
	_, ok = s.Load()
	assert.False(t, ok, "blank marker")

	require.NoError(t, os.WriteFile(marker, []byte(filepath.Join(t.TempDir(), "gone.omp.json")), 0o600))
	_, ok = s.Load()
	assert.False(t, ok, "dangling path")
}

func TestStoreLoadTrimsBOMAndWhitespace(t *testing.T) {
	s, marker := newTestStore(t, nil)
	theme := writeTheme(t, t.TempDir(), "paradox.omp.json")

	require.NoError(t, os.MkdirAll(filepath.Dir(marker), 0o700))
	require.NoError(t, os.WriteFile(marker, []byte("\ufeff"+theme+"\r\n"), 0o600))

	got, ok := s.Load()
	require.True(t, ok)
	assert.Equal(t, theme, got)
}

func TestStoreSaveOverwritesAndSkipsUnchanged(t *testing.T) {
	s, marker := newTestStore(t, nil)
	dir := t.TempDir()
	first := writeTheme(t, dir, "a.omp.json")
	second := writeTheme(t, dir, "b.omp.json")

	require.NoError(t, s.Save(first))
	require.NoError(t, s.Save(second))
	got, ok := s.Load()
	require.True(t, ok)
	assert.Equal(t, second, got)

	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(marker, old, old))
	require.NoError(t, s.Save(second))
	st, err := os.Stat(marker)
	require.NoError(t, err)
	assert.True(t, st.ModTime().Equal(old), "unchanged content is not rewritten")
}

func TestStoreSaveFailureIsPersistenceError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	s := NewThemeStore(filepath.Join(blocker, defaultMarkerName), defaultEnvVar, nil, discardLogger())
	err := s.Save("/themes/a.omp.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPersistence))
}

func TestStoreClear(t *testing.T) {
	s, marker := newTestStore(t, nil)
	require.NoError(t, s.Clear(), "missing marker is fine")

	require.NoError(t, s.Save(writeTheme(t, t.TempDir(), "a.omp.json")))
	require.NoError(t, s.Clear())
	assert.NoFileExists(t, marker)
}

func TestStoreDetectActive(t *testing.T) {
	dir := t.TempDir()
	fromEnv := writeTheme(t, dir, "env.omp.json")
	fromTool := writeTheme(t, dir, "tool.omp.json")

	t.Run("environment", func(t *testing.T) {
		s, _ := newTestStore(t, &fakeTool{debugOut: "Config path: " + fromTool})
		s.getenv = func(k string) string {
			if k == defaultEnvVar {
				return fromEnv
			}
			return ""
		}
		p, prov, ok := s.DetectActive(context.Background())
		require.True(t, ok)
		assert.Equal(t, fromEnv, p)
		assert.Equal(t, ProvenanceEnvironment, prov)
	})

	t.Run("tool debug when env is dangling", func(t *testing.T) {
		s, _ := newTestStore(t, &fakeTool{debugOut: "Shell: zsh\nConfig path: " + fromTool + "\n"})
		s.getenv = func(string) string { return filepath.Join(dir, "missing.omp.json") }
		p, prov, ok := s.DetectActive(context.Background())
		require.True(t, ok)
		assert.Equal(t, fromTool, p)
		assert.Equal(t, ProvenanceToolDebug, prov)
	})

	t.Run("nothing", func(t *testing.T) {
		s, _ := newTestStore(t, &fakeTool{debugErr: ErrExternalTool})
		_, prov, ok := s.DetectActive(context.Background())
		assert.False(t, ok)
		assert.Equal(t, ProvenanceNone, prov)
	})

	t.Run("tool reports missing file", func(t *testing.T) {
		s, _ := newTestStore(t, &fakeTool{debugOut: "Config path: " + filepath.Join(dir, "nope.omp.json")})
		_, _, ok := s.DetectActive(context.Background())
		assert.False(t, ok)
	})
}

package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
)

type fakeTool struct {
	mu       sync.Mutex
	initErr  error
	debugOut string
	debugErr error
	inits    []string
}

func (f *fakeTool) Init(ctx context.Context, shell, configPath string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inits = append(f.inits, configPath)
	if f.initErr != nil {
		return "", f.initErr
	}
	return fmt.Sprintf("# %s prompt\nexport POSH_THEME=%q\n", shell, configPath), nil
}

func (f *fakeTool) Debug(ctx context.Context) (string, error) {
	return f.debugOut, f.debugErr
}

func (f *fakeTool) Locate() (string, error) {
	return "/usr/local/bin/oh-my-posh", nil
}

func (f *fakeTool) initCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.inits...)
}

type pickCall struct {
	title  string
	labels []string
}

// fakePicker answers menus from a script. A negative choice cancels.
type fakePicker struct {
	choices []int
	calls   []pickCall
}

func (p *fakePicker) Pick(title string, labels []string) (int, bool, error) {
	p.calls = append(p.calls, pickCall{title: title, labels: labels})
	if len(p.choices) == 0 {
		return -1, false, nil
	}
	c := p.choices[0]
	p.choices = p.choices[1:]
	if c < 0 {
		return -1, false, nil
	}
	return c, true, nil
}

type testEnv struct {
	home     string
	personal string
	builtin  string
	cfg      Config
	tool     *fakeTool
	picker   *fakePicker
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	home := filepath.Join(root, "home")
	personal := filepath.Join(root, "personal")
	builtin := filepath.Join(root, "builtin")
	for _, d := range []string{home, personal, builtin} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", d, err)
		}
	}
	t.Setenv("POSHTHEME_HOME", home)
	t.Setenv("POSH_THEME", "")

	return &testEnv{
		home:     home,
		personal: personal,
		builtin:  builtin,
		cfg: Config{
			PersonalDir: personal,
			BuiltinDir:  builtin,
			MarkerFile:  filepath.Join(home, defaultMarkerName),
			InitScript:  filepath.Join(home, "init.zsh"),
			Shell:       "zsh",
			Tool:        defaultToolName,
			EnvVar:      defaultEnvVar,
			Patterns:    defaultPatterns(),
			PageSize:    10,
			Paginate:    true,
			Palette:     defaultPalette,
			LogLevel:    defaultLogLevel,
		},
		tool:   &fakeTool{},
		picker: &fakePicker{},
	}
}

func (e *testEnv) controller() *Controller {
	return NewController(e.cfg, e.tool, e.picker, discardLogger())
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// writeTheme creates dir/file with a minimal theme body and returns its path.
func writeTheme(t *testing.T, dir, file string) string {
	t.Helper()
	p := filepath.Join(dir, file)
	if err := os.WriteFile(p, []byte(`{"version": 3}`), 0o644); err != nil {
		t.Fatalf("write theme: %v", err)
	}
	return p
}

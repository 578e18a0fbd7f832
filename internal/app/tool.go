package app

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// PromptTool is the external prompt renderer. It is only ever treated as a
// text generator: its output is written to a file, never evaluated here.
type PromptTool interface {
	// Init returns the shell initialization text for configPath. An empty
	// configPath lets the tool use its own default.
	Init(ctx context.Context, shell, configPath string) (string, error)
	// Debug returns the tool's self-diagnostic output.
	Debug(ctx context.Context) (string, error)
	// Locate returns the resolved executable path.
	Locate() (string, error)
}

// execTool runs the prompt tool as a subprocess.
type execTool struct {
	name string
}

func newExecTool(name string) *execTool {
	return &execTool{name: safe(name, defaultToolName)}
}

func (t *execTool) Locate() (string, error) {
	p, err := exec.LookPath(t.name)
	if err != nil {
		return "", fmt.Errorf("%w: %s not found on PATH", ErrExternalTool, t.name)
	}
	return p, nil
}

func (t *execTool) Init(ctx context.Context, shell, configPath string) (string, error) {
	args := []string{"init", shell}
	if strings.TrimSpace(configPath) != "" {
		args = append(args, "--config", configPath)
	}
	args = append(args, "--print")
	out, err := t.run(ctx, args...)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("%w: %s init printed nothing", ErrExternalTool, t.name)
	}
	return out, nil
}

func (t *execTool) Debug(ctx context.Context) (string, error) {
	return t.run(ctx, "debug", "--plain")
}

func (t *execTool) run(ctx context.Context, args ...string) (string, error) {
	bin, err := t.Locate()
	if err != nil {
		return "", err
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%w: %s %s: %s", ErrExternalTool, t.name, strings.Join(args, " "), msg)
	}
	return stdout.String(), nil
}

// parseConfigPath extracts the config path line from diagnostic output.
func parseConfigPath(output string) (string, bool) {
	m := configPathRe.FindStringSubmatch(output)
	if m == nil {
		return "", false
	}
	p := strings.TrimSpace(m[1])
	return p, p != ""
}

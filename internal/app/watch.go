package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// -------------------------
// Watch
// -------------------------

const defaultWatchDebounce = 250 * time.Millisecond

// ThemeWatcher re-applies the active theme when the marker file or the theme
// file itself changes, and drops the catalog cache when a theme folder
// changes. All work happens on the goroutine that calls Run.
type ThemeWatcher struct {
	ctrl     *Controller
	logger   *log.Logger
	debounce time.Duration
	watcher  *fsnotify.Watcher

	// OnApply, when set, is called after every re-apply.
	OnApply func(ApplyResult, error)
}

func NewThemeWatcher(ctrl *Controller, logger *log.Logger, debounce time.Duration) (*ThemeWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = defaultWatchDebounce
	}
	return &ThemeWatcher{ctrl: ctrl, logger: logger, debounce: debounce, watcher: w}, nil
}

// Watch registers the directories to observe. The marker directory is
// created if needed; missing theme folders are skipped.
func (w *ThemeWatcher) Watch() error {
	markerDir := filepath.Dir(w.ctrl.Store().Path())
	if err := os.MkdirAll(markerDir, 0o700); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	dirs := []string{markerDir, w.ctrl.Config().PersonalDir, w.ctrl.Config().BuiltinDir}
	if p, ok := w.ctrl.Store().Load(); ok {
		dirs = append(dirs, filepath.Dir(p))
	}

	seen := make(map[string]bool)
	for _, d := range dirs {
		if !dirExists(d) {
			continue
		}
		d = filepath.Clean(d)
		if seen[d] {
			continue
		}
		seen[d] = true
		if err := w.watcher.Add(d); err != nil {
			return err
		}
		w.logger.Debug("Watching", "dir", d)
	}
	return nil
}

// Run processes events until ctx is done. It closes the underlying watcher
// on return.
func (w *ThemeWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.handle(ev) {
				pending = time.After(w.debounce)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", "err", err)
		case <-pending:
			pending = nil
			res, err := w.ctrl.Reapply(ctx)
			if err != nil && !errors.Is(err, ErrNotFound) {
				w.logger.Warn("Re-apply failed", "err", err)
			}
			if w.OnApply != nil {
				w.OnApply(res, err)
			}
		}
	}
}

// handle reports whether ev should trigger a re-apply.
func (w *ThemeWatcher) handle(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	name := filepath.Clean(ev.Name)
	cfg := w.ctrl.Config()
	if isUnder(name, cfg.PersonalDir) || isUnder(name, cfg.BuiltinDir) {
		w.ctrl.Catalog().Invalidate()
	}

	if name == filepath.Clean(w.ctrl.Store().Path()) {
		w.logger.Debug("Marker changed", "op", ev.Op)
		return true
	}
	if p, ok := w.ctrl.Store().Load(); ok && name == filepath.Clean(p) {
		if ev.Has(fsnotify.Remove) {
			return false
		}
		w.logger.Debug("Active theme changed", "theme", p, "op", ev.Op)
		return true
	}
	return false
}

func newWatchCmd(rt *appEnv) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-apply the theme whenever it or the saved selection changes",
		Args:  maxArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := NewThemeWatcher(rt.ctrl, rt.logger, debounce)
			if err != nil {
				return err
			}
			if err := w.Watch(); err != nil {
				return err
			}
			w.OnApply = func(res ApplyResult, err error) {
				if err == nil {
					printApplied(rt.stdout, res)
				}
			}
			fmt.Fprintln(rt.stderr, "Watching for theme changes (Ctrl+C to stop)...")
			return w.Run(cmd.Context())
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", defaultWatchDebounce, "Wait this long after the last change before re-applying")
	return cmd
}

package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// debounceWindow coalesces bursts of filesystem events into one re-run.
const debounceWindow = 250 * time.Millisecond

// Directories never worth watching.
var watchIgnoredDirs = map[string]struct{}{
	".git":         {},
	".venv":        {},
	"node_modules": {},
	"__pycache__":  {},
}

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	Paths []string
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <target>",
		Short: "Re-run a target whenever watched files change",
		Long: `Run a target, then watch the given paths and re-run the full target
on every change until interrupted. Targets stay phony: every trigger
re-runs all of the target's commands, there is no staleness tracking.`,
		Example: `  # Re-run lint on every change under the current directory
  crank watch lint

  # Watch only the source tree
  crank watch test-unit --path src`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Paths, "path", []string{"."}, "Paths to watch (repeatable)")

	return cmd
}

func runWatch(cmd *cobra.Command, name string, opts *WatchOptions) error {
	st := StateFrom(cmd.Context())
	if _, err := st.Registry.Lookup(name); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, path := range opts.Paths {
		if err := watchTree(watcher, path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
	}

	out := cmd.OutOrStdout()
	runOnce := func() {
		if err := RunTarget(cmd, name); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", st.Styles.Error.Render("Error: "+err.Error()))
		}
	}

	runOnce()
	fmt.Fprintln(out, st.Styles.Muted.Render("Watching for changes... (Ctrl-C to stop)"))

	ctx := cmd.Context()
	var debounce *time.Timer
	trigger := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-trigger:
			runOnce()
			fmt.Fprintln(out, st.Styles.Muted.Render("Watching for changes..."))
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// New directories join the watch set.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watchTree(watcher, event.Name)
				}
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceWindow, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			st.Logger.Error("watch error", "error", werr)
		}
	}
}

// watchTree adds path and every non-ignored directory under it.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if _, ignored := watchIgnoredDirs[base]; ignored {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

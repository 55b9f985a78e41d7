package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/docsmiths/wikigen/internal/ignore"
	"github.com/docsmiths/wikigen/internal/output"
	"github.com/docsmiths/wikigen/internal/store"
)

// watchDebounce coalesces bursts of filesystem events into one pass.
const watchDebounce = 500 * time.Millisecond

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <dir>",
		Short: "Watch a directory and keep the index in sync",
		Long: `Watch a directory for markdown changes and incrementally update
the page store and search index. Runs until interrupted.

Examples:
  wikigen watch docs/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), cmd, args[0])
		},
	}
}

func runWatch(ctx context.Context, cmd *cobra.Command, dir string) error {
	e, err := openEnv(ctx, true)
	if err != nil {
		return err
	}
	defer e.close()

	rules, err := ignore.Load(dir)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := addWatchDirs(watcher, dir, rules); err != nil {
		return err
	}

	out := output.New(cmd.OutOrStdout())
	out.Successf("Watching %s (%d pages indexed), Ctrl-C to stop", dir, e.engine.DocumentCount())

	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			rel := relPath(dir, event.Name)
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !rules.Match(rel, true) {
						_ = addWatchDirs(watcher, event.Name, rules)
					}
					continue
				}
			}
			if !strings.HasSuffix(event.Name, ".md") || rules.Match(rel, false) {
				continue
			}
			pending[event.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", slog.String("error", err.Error()))

		case <-fire:
			fire = nil
			batch := pending
			pending = make(map[string]struct{})
			for path := range batch {
				if err := syncPage(ctx, e, dir, path, out); err != nil {
					slog.Warn("sync page failed",
						slog.String("path", path),
						slog.String("error", err.Error()))
				}
			}
		}
	}
}

// relPath normalizes path relative to dir with forward slashes.
func relPath(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// addWatchDirs registers dir and all its non-excluded subdirectories.
func addWatchDirs(watcher *fsnotify.Watcher, dir string, rules *ignore.Ruleset) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if rules.Match(relPath(dir, path), true) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// syncPage re-indexes one changed file, or removes it when the file is gone.
func syncPage(ctx context.Context, e *env, dir, path string, out *output.Writer) error {
	rel := relPath(dir, path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		e.engine.RemoveDocument(rel)
		if err := e.pages.DeletePage(ctx, rel); err != nil {
			return err
		}
		out.Muted(fmt.Sprintf("removed %s", rel))
		return nil
	}

	page, err := loadPage(dir, path)
	if err != nil {
		return err
	}
	if err := e.pages.SavePages(ctx, []*store.Page{page}); err != nil {
		return err
	}
	if err := e.engine.IndexDocument(ctx, page.Document()); err != nil {
		return err
	}
	out.Muted(fmt.Sprintf("indexed %s", rel))
	return nil
}

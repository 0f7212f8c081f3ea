// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/api2spec/ktbridge/internal/config"
	"github.com/api2spec/ktbridge/internal/logging"
	"github.com/api2spec/ktbridge/internal/scanner"
)

var (
	watchMode     string
	watchDebounce int
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Watch Kotlin sources and regenerate the OpenAPI document",
	Long: `Watch for file changes and automatically regenerate the OpenAPI document.

This command monitors your Kotlin sources and regenerates the document when
files matching the include patterns change. Bursts of changes are collapsed
into one regeneration.

Example:
  ktbridge watch                          # Watch configured paths
  ktbridge watch ./app/src/main/kotlin    # Watch specific paths
  ktbridge watch --debounce 1000          # Wait 1s before regenerating`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchMode, "mode", "m", "", "generation mode: full, routes-only, schemas-only")
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 0, "debounce duration in milliseconds")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if watchMode != "" {
		cfg.Generation.Mode = watchMode
	}
	if watchDebounce > 0 {
		cfg.Watch.Debounce = watchDebounce
	}

	paths := args
	if len(paths) == 0 {
		paths = cfg.Source.Paths
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	printVerbose("Watch configuration:")
	printVerbose("  Mode: %s", cfg.Generation.Mode)
	printVerbose("  Debounce: %dms", cfg.Watch.Debounce)
	printVerbose("  Paths: %s", strings.Join(paths, ", "))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	var matchers []*scanner.Scanner
	for _, path := range paths {
		s, err := addWatchPath(watcher, cfg, path)
		if err != nil {
			return err
		}
		matchers = append(matchers, s)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	regenerate := func() {
		if err := generate(ctx, cfg, paths, false); err != nil {
			printError("%v", err)
		}
	}

	// Generate once up front so the document exists while watching.
	regenerate()

	printInfo("Watching for changes in: %s", strings.Join(paths, ", "))
	printInfo("Press Ctrl+C to stop")

	changes := make(chan string)
	go forwardEvents(ctx, watcher, matchers, changes)

	debounce := time.Duration(cfg.Watch.Debounce) * time.Millisecond
	debounceLoop(ctx, changes, debounce, func(changed []string) {
		printInfo("Changed: %s", strings.Join(changed, ", "))
		regenerate()
	})
	return nil
}

// addWatchPath registers path and every directory under it that the
// scanner would not skip. It returns a scanner rooted at path for
// filtering events.
func addWatchPath(w *fsnotify.Watcher, cfg *config.Config, path string) (*scanner.Scanner, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("cannot watch %s: %w", path, err)
	}

	base := absPath
	if !info.IsDir() {
		base = filepath.Dir(absPath)
	}
	s := scanner.New(scanner.Config{
		BasePath:        base,
		IncludePatterns: cfg.Source.Include,
		ExcludePatterns: cfg.Source.Exclude,
	})

	if !info.IsDir() {
		return s, w.Add(base)
	}

	err = filepath.WalkDir(absPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		rel, _ := filepath.Rel(absPath, p)
		if s.ExcludesDir(filepath.ToSlash(rel)) {
			return filepath.SkipDir
		}
		return w.Add(p)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}
	return s, nil
}

// forwardEvents sends the relative paths of relevant changes until ctx is
// done. New directories are added to the watcher as they appear.
func forwardEvents(ctx context.Context, w *fsnotify.Watcher, matchers []*scanner.Scanner, out chan<- string) {
	log := logging.FromContext(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Warn("watch error", "err", err)
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.Add(ev.Name); err != nil {
						log.Warn("cannot watch new directory", "dir", ev.Name, "err", err)
					}
					continue
				}
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			rel, ok := matchEvent(matchers, ev.Name)
			if !ok {
				continue
			}
			log.Debug("change", "file", rel, "op", ev.Op.String())
			select {
			case out <- rel:
			case <-ctx.Done():
				return
			}
		}
	}
}

// matchEvent returns the path relative to the first scanner that would read
// it.
func matchEvent(matchers []*scanner.Scanner, name string) (string, bool) {
	for _, s := range matchers {
		rel, err := filepath.Rel(s.Base(), name)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		rel = filepath.ToSlash(rel)
		if s.Match(rel) {
			return rel, true
		}
	}
	return "", false
}

// debounceLoop collects changes and calls fire with the distinct paths once
// no change has arrived for the debounce interval. It returns when ctx is
// done or changes is closed.
func debounceLoop(ctx context.Context, changes <-chan string, debounce time.Duration, fire func([]string)) {
	var (
		pending []string
		seen    = make(map[string]bool)
		timer   *time.Timer
		timerC  <-chan time.Time
	)

	flush := func() {
		if len(pending) > 0 {
			fire(pending)
		}
		pending = nil
		seen = make(map[string]bool)
		timerC = nil
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case path, ok := <-changes:
			if !ok {
				if timer != nil {
					timer.Stop()
				}
				flush()
				return
			}
			if !seen[path] {
				seen[path] = true
				pending = append(pending, path)
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			timerC = timer.C
		case <-timerC:
			flush()
		}
	}
}

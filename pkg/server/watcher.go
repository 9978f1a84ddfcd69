package server

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval is how long to wait after a file event before
// reloading, so editors that write in several steps trigger one reload.
const debounceInterval = 200 * time.Millisecond

// watchLoop watches the schema file for changes and refreshes the server
// when it is modified. The parent directory is watched rather than the
// file itself because editors typically replace files on save, which
// would drop a direct file watch.
func (s *Server) watchLoop(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.opts.SchemaPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", dir, err)
	}

	s.logger.Info("watching schema for changes", "path", s.opts.SchemaPath)

	target := filepath.Clean(s.opts.SchemaPath)
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceInterval, func() {
				s.refresh("file change")
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			s.logger.Warn("schema watcher error", "error", err)
		}
	}
}

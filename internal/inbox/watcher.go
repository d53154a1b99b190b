package inbox

import (
	"context"
	"fmt"
	"os"
	"strings"
	gosync "sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch runs the inbox watcher until ctx is cancelled.
//
// It performs an initial Scan, then watches the inbox directory with
// fsnotify. File events are debounced so that an editor's
// write-then-rename dance produces a single import attempt.
func (im *Importer) Watch(ctx context.Context) error {
	if err := os.MkdirAll(im.dir, 0755); err != nil {
		return fmt.Errorf("failed to create inbox directory: %w", err)
	}

	if _, err := im.Scan(ctx); err != nil {
		return fmt.Errorf("initial inbox scan failed: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(im.dir); err != nil {
		return fmt.Errorf("failed to watch inbox directory: %w", err)
	}

	im.logger.Printf("Watching inbox: %s", im.dir)

	const debounce = 200 * time.Millisecond

	var (
		pendingMu gosync.Mutex
		pending   = make(map[string]time.Time)
	)

	ticker := time.NewTicker(debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".json") {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				pendingMu.Lock()
				pending[event.Name] = time.Now()
				pendingMu.Unlock()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			im.logger.Printf("Watcher error: %v", err)

		case <-ticker.C:
			now := time.Now()

			pendingMu.Lock()
			var due []string
			for path, ts := range pending {
				if now.Sub(ts) >= debounce {
					due = append(due, path)
					delete(pending, path)
				}
			}
			pendingMu.Unlock()

			for _, path := range due {
				if _, err := os.Stat(path); os.IsNotExist(err) {
					continue
				}
				if err := im.ImportFile(ctx, path); err != nil {
					im.logger.Printf("WARNING: failed to import %s: %v", path, err)
				}
			}
		}
	}
}

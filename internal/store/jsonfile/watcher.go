package jsonfile

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/colonyops/codeblocks/internal/core/logging"
)

const debounceDelay = 50 * time.Millisecond

// Watch invalidates the store's cache whenever its file is written, created,
// renamed, or removed by anyone, including other processes editing it by hand.
// It blocks until ctx is cancelled. The parent directory is watched because
// atomic saves replace the file inode.
func (s *BlockStore) Watch(ctx context.Context, onChange func()) error {
	log := logging.Component("jsonfile")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	name := filepath.Base(s.path)

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDelay, func() {
				s.invalidate()
				log.Debug().Str("path", s.path).Msg("storage file changed")
				if onChange != nil {
					onChange()
				}
			})
			mu.Unlock()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watch storage file")
		}
	}
}

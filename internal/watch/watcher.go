// Package watch connects filesystem notifications to the incremental
// index: a background watcher goroutine owns the OS subscription and
// debounces raw events into settled batches; a single consumer loop
// drives the index and emits WatchEvents.
package watch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/steveyegge/todoscan/internal/debug"
)

// EventKind distinguishes paths whose burst has settled from paths that
// are still receiving writes past the debounce window.
type EventKind int

const (
	// KindSettled is the final, coalesced notification for a path.
	KindSettled EventKind = iota
	// KindOngoing marks a path still changing; consumers skip these.
	KindOngoing
)

// Event is one debounced filesystem notification.
type Event struct {
	Path string // absolute
	Kind EventKind
}

// Batch groups the events that settled in one debounce flush.
type Batch []Event

// ongoingAfter is how many windows a path may stay continuously dirty
// before an Ongoing notice is emitted for it.
const ongoingAfter = 4

// Watcher owns the fsnotify subscription and the debounce window. It
// shares no state with its consumer; batches flow over a channel.
type Watcher struct {
	fsw      *fsnotify.Watcher
	batches  chan Batch
	done     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
	root     string
	debounce time.Duration
}

// NewWatcher subscribes recursively to root and starts the debouncing
// goroutine. Directory registration is retried with exponential backoff
// since inotify watch slots can be transiently exhausted.
func NewWatcher(root string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		batches:  make(chan Batch, 64),
		done:     make(chan struct{}),
		stop:     make(chan struct{}),
		root:     root,
		debounce: debounce,
	}

	if err := w.addRecursive(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	go w.run()
	return w, nil
}

// Batches is the channel the consumer loop receives from. It is closed
// when the watcher shuts down.
func (w *Watcher) Batches() <-chan Batch { return w.batches }

// Close stops the watcher and closes the batch channel. The stop
// channel is closed first so a debouncer blocked on a full batch
// buffer unblocks even when nothing is draining it.
func (w *Watcher) Close() error {
	w.stopOnce.Do(func() { close(w.stop) })
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || !d.IsDir() {
			return nil
		}
		return w.addDir(path)
	})
}

func (w *Watcher) addDir(path string) error {
	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 4)
	return backoff.Retry(func() error {
		return w.fsw.Add(path)
	}, policy)
}

// run coalesces raw fsnotify events into one settled event per path
// per debounce window and flushes them as batches.
func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.batches)

	type pending struct {
		last    time.Time
		windows int
	}
	dirty := make(map[string]*pending)

	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			// New directories must be registered to keep the
			// subscription recursive.
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(ev.Name); err != nil {
						debug.Logf("watch: cannot watch new dir %s: %v\n", ev.Name, err)
					}
					continue
				}
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			if p, ok := dirty[ev.Name]; ok {
				p.last = time.Now()
			} else {
				dirty[ev.Name] = &pending{last: time.Now()}
			}

		case now := <-ticker.C:
			if len(dirty) == 0 {
				continue
			}
			var batch Batch
			for path, p := range dirty {
				if now.Sub(p.last) >= w.debounce {
					batch = append(batch, Event{Path: path, Kind: KindSettled})
					delete(dirty, path)
					continue
				}
				p.windows++
				if p.windows >= ongoingAfter {
					batch = append(batch, Event{Path: path, Kind: KindOngoing})
					p.windows = 0
				}
			}
			if len(batch) > 0 {
				select {
				case w.batches <- batch:
				case <-w.stop:
					return
				}
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			debug.Logf("watch: watcher error: %v\n", err)
		}
	}
}

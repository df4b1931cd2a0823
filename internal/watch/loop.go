package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/steveyegge/todoscan/internal/debug"
	"github.com/steveyegge/todoscan/internal/index"
	"github.com/steveyegge/todoscan/internal/telemetry"
	"github.com/steveyegge/todoscan/internal/types"
)

// Sink receives assembled watch events. The CLI plugs a renderer in
// here; tests plug a collector.
type Sink interface {
	Emit(types.WatchEvent)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(types.WatchEvent)

func (f SinkFunc) Emit(ev types.WatchEvent) { f(ev) }

// Options tunes the consumer loop.
type Options struct {
	// FilterTags, when non-empty, restricts the added/removed lists of
	// emitted events to the listed tags. Events left empty by the
	// filter are suppressed.
	FilterTags []types.Tag
}

// collectChanged deduplicates a batch to distinct relative paths,
// discarding non-settled kinds and paths outside the watched root.
func collectChanged(batch Batch, root string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, ev := range batch {
		if ev.Kind != KindSettled {
			continue
		}
		rel, err := filepath.Rel(root, ev.Path)
		if err != nil || rel == "." || filepath.IsAbs(rel) || rel == ".." || len(rel) > 1 && rel[:2] == ".."+string(filepath.Separator) {
			continue
		}
		rel = filepath.ToSlash(rel)
		if _, ok := seen[rel]; ok {
			continue
		}
		seen[rel] = struct{}{}
		out = append(out, rel)
	}
	return out
}

// buildEvent snapshots the index state immediately after one file's
// update.
func buildEvent(file string, update types.FileUpdate, ix *index.Index, previousTotal int) types.WatchEvent {
	total := ix.TotalCount()
	return types.WatchEvent{
		Timestamp:  time.Now().UTC(),
		File:       file,
		Added:      update.Added,
		Removed:    update.Removed,
		TagSummary: ix.TagCounts(),
		Total:      total,
		TotalDelta: total - previousTotal,
	}
}

// filterByTags restricts the event's item lists to wanted tags.
// Reports whether anything is left to show.
func filterByTags(ev *types.WatchEvent, wanted []types.Tag) bool {
	if len(wanted) == 0 {
		return true
	}
	keep := func(items []types.TodoItem) []types.TodoItem {
		var out []types.TodoItem
		for _, item := range items {
			for _, tag := range wanted {
				if item.Tag == tag {
					out = append(out, item)
					break
				}
			}
		}
		return out
	}
	ev.Added = keep(ev.Added)
	ev.Removed = keep(ev.Removed)
	return len(ev.Added) > 0 || len(ev.Removed) > 0
}

// Run is the single-threaded consumer over debounced batches. It owns
// the index for its whole lifetime: no other goroutine touches it.
//
// Per-file errors are logged and skipped; the next event for the same
// path naturally retries. Cancellation is cooperative: the context is
// observed between iterations, never mid-update.
func Run(ctx context.Context, ix *index.Index, batches <-chan Batch, sink Sink, opts Options) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case batch, ok := <-batches:
			if !ok {
				return nil
			}
			for _, file := range collectChanged(batch, ix.Root()) {
				if ix.ShouldExclude(file) {
					continue
				}

				previousTotal := ix.TotalCount()
				absPath := filepath.Join(ix.Root(), file)

				var update types.FileUpdate
				if info, err := os.Stat(absPath); err == nil && info.Mode().IsRegular() {
					update, err = ix.UpdateFile(file)
					if err != nil {
						debug.Logf("watch: update %s: %v\n", file, err)
						continue
					}
				} else {
					update = types.FileUpdate{Removed: ix.RemoveFile(file)}
				}

				if update.Empty() {
					continue
				}

				event := buildEvent(file, update, ix, previousTotal)
				if !filterByTags(&event, opts.FilterTags) {
					continue
				}

				telemetry.CountWatchEvent(ctx, len(event.Added), len(event.Removed))
				sink.Emit(event)
			}
		}
	}
}

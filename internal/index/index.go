// Package index maintains the live in-memory annotation store used by
// the watch subsystem. One Index is owned by a single consumer loop;
// it is never shared across goroutines and needs no locking.
package index

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/steveyegge/todoscan/internal/config"
	"github.com/steveyegge/todoscan/internal/scanner"
	"github.com/steveyegge/todoscan/internal/types"
)

// Index maps relative file paths to their current annotation lists.
// A path is either absent or maps to a non-empty list; empty lists are
// never retained (they would accumulate as stale keys).
type Index struct {
	items      map[string][]types.TodoItem
	pattern    *regexp.Regexp
	root       string
	cfg        *config.Config
	excludeRes []*regexp.Regexp
}

// New builds an index from one full directory scan.
func New(root string, cfg *config.Config) (*Index, error) {
	pattern, err := cfg.CompilePattern()
	if err != nil {
		return nil, err
	}

	scan, err := scanner.ScanDirectory(root, cfg)
	if err != nil {
		return nil, fmt.Errorf("initial scan of %s: %w", root, err)
	}

	items := make(map[string][]types.TodoItem)
	for _, item := range scan.Items {
		items[item.File] = append(items[item.File], item)
	}

	return &Index{
		items:      items,
		pattern:    pattern,
		root:       root,
		cfg:        cfg,
		excludeRes: cfg.ExcludeRegexps(),
	}, nil
}

// UpdateFile re-scans one file and reconciles the result against the
// file's prior entry by identity key.
//
// Files over the size ceiling are treated as having zero annotations
// without reading the body, so everything previously indexed for the
// path comes back as removed. A stat or read failure propagates and
// leaves the index entry untouched.
func (ix *Index) UpdateFile(relPath string) (types.FileUpdate, error) {
	absPath := filepath.Join(ix.root, relPath)

	info, err := os.Stat(absPath)
	if err != nil {
		return types.FileUpdate{}, fmt.Errorf("stat %s: %w", absPath, err)
	}
	if info.Size() > scanner.MaxFileSize {
		removed := ix.items[relPath]
		delete(ix.items, relPath)
		return types.FileUpdate{Removed: removed}, nil
	}

	content, err := os.ReadFile(absPath) // #nosec G304 - path is relative to the watched root
	if err != nil {
		return types.FileUpdate{}, fmt.Errorf("read %s: %w", absPath, err)
	}

	newItems := scanner.ScanContent(string(content), relPath, ix.pattern)
	oldItems := ix.items[relPath]
	delete(ix.items, relPath)

	oldKeys := make(map[string]struct{}, len(oldItems))
	for _, item := range oldItems {
		oldKeys[item.MatchKey()] = struct{}{}
	}
	newKeys := make(map[string]struct{}, len(newItems))
	for _, item := range newItems {
		newKeys[item.MatchKey()] = struct{}{}
	}

	var update types.FileUpdate
	for _, item := range newItems {
		if _, ok := oldKeys[item.MatchKey()]; !ok {
			update.Added = append(update.Added, item)
		}
	}
	for _, item := range oldItems {
		if _, ok := newKeys[item.MatchKey()]; !ok {
			update.Removed = append(update.Removed, item)
		}
	}

	if len(newItems) > 0 {
		ix.items[relPath] = newItems
	}

	return update, nil
}

// RemoveFile evicts a path and returns its former items. Removing an
// unknown path returns nil and never errors.
func (ix *Index) RemoveFile(relPath string) []types.TodoItem {
	removed := ix.items[relPath]
	delete(ix.items, relPath)
	return removed
}

// TotalCount sums annotation counts across all files. Recomputed on
// demand; there is no cached counter to desynchronize.
func (ix *Index) TotalCount() int {
	total := 0
	for _, items := range ix.items {
		total += len(items)
	}
	return total
}

// TagCounts returns per-tag totals sorted descending by count. Tie
// order is unspecified.
func (ix *Index) TagCounts() []types.TagCount {
	counts := make(map[types.Tag]int)
	for _, items := range ix.items {
		for _, item := range items {
			counts[item.Tag]++
		}
	}

	out := make([]types.TagCount, 0, len(counts))
	for tag, count := range counts {
		out = append(out, types.TagCount{Tag: tag, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// ShouldExclude applies the configured exclusion rules to a relative
// path: directory names match whole components, regexes match the path
// string.
func (ix *Index) ShouldExclude(relPath string) bool {
	return scanner.Excluded(relPath, ix.cfg, ix.excludeRes)
}

// Root returns the watched root the index was built from.
func (ix *Index) Root() string { return ix.root }

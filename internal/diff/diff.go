// Package diff turns two annotation snapshots into an added/removed
// delta, and drives the git-scoped comparison between a base ref and
// the working tree.
package diff

import (
	"github.com/steveyegge/todoscan/internal/types"
)

// Partition computes the added/removed split between two snapshots
// using identity-key set membership. An annotation present in both
// snapshots with an unchanged key never appears in the result, even if
// it moved to a different line. O(|base| + |current|).
func Partition(base, current []types.TodoItem) []types.DiffEntry {
	baseKeys := make(map[string]struct{}, len(base))
	for _, item := range base {
		baseKeys[item.MatchKey()] = struct{}{}
	}
	currentKeys := make(map[string]struct{}, len(current))
	for _, item := range current {
		currentKeys[item.MatchKey()] = struct{}{}
	}

	var entries []types.DiffEntry
	for _, item := range current {
		if _, ok := baseKeys[item.MatchKey()]; !ok {
			entries = append(entries, types.DiffEntry{Status: types.DiffAdded, Item: item})
		}
	}
	for _, item := range base {
		if _, ok := currentKeys[item.MatchKey()]; !ok {
			entries = append(entries, types.DiffEntry{Status: types.DiffRemoved, Item: item})
		}
	}
	return entries
}

// Result assembles a DiffResult from entries, deriving the counts from
// the entry statuses so they can never drift.
func Result(entries []types.DiffEntry, baseRef string) *types.DiffResult {
	added, removed := 0, 0
	for _, e := range entries {
		switch e.Status {
		case types.DiffAdded:
			added++
		case types.DiffRemoved:
			removed++
		}
	}
	return &types.DiffResult{
		Entries:      entries,
		AddedCount:   added,
		RemovedCount: removed,
		BaseRef:      baseRef,
	}
}

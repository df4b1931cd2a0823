package diff

import (
	"testing"

	"github.com/steveyegge/todoscan/internal/types"
)

func item(file string, line int, tag types.Tag, message string) types.TodoItem {
	return types.TodoItem{
		File:     file,
		Line:     line,
		Tag:      tag,
		Message:  message,
		Priority: types.PriorityNormal,
	}
}

func TestPartitionIdempotent(t *testing.T) {
	snapshot := []types.TodoItem{
		item("a.go", 1, types.TagTodo, "one"),
		item("a.go", 2, types.TagFixme, "two"),
		item("b.go", 7, types.TagBug, "three"),
	}
	if entries := Partition(snapshot, snapshot); len(entries) != 0 {
		t.Errorf("diff(S, S) = %d entries, want 0", len(entries))
	}
}

func TestPartitionEmptySnapshots(t *testing.T) {
	if entries := Partition(nil, nil); len(entries) != 0 {
		t.Errorf("diff of empty snapshots = %d entries, want 0", len(entries))
	}
}

func TestPartitionLineShiftInvariance(t *testing.T) {
	base := []types.TodoItem{item("a.go", 1, types.TagTodo, "stable task")}
	current := []types.TodoItem{item("a.go", 42, types.TagTodo, "stable task")}

	if entries := Partition(base, current); len(entries) != 0 {
		t.Errorf("line shift produced %d entries, want 0", len(entries))
	}
}

func TestPartitionTagChangeIsAddRemove(t *testing.T) {
	base := []types.TodoItem{item("a.go", 1, types.TagTodo, "fix something")}
	current := []types.TodoItem{item("a.go", 1, types.TagFixme, "fix something")}

	result := Result(Partition(base, current), "HEAD")
	if result.AddedCount != 1 || result.RemovedCount != 1 {
		t.Fatalf("added=%d removed=%d, want 1/1", result.AddedCount, result.RemovedCount)
	}
}

func TestPartitionMessageChangeIsAddRemove(t *testing.T) {
	base := []types.TodoItem{item("a.go", 1, types.TagTodo, "original message")}
	current := []types.TodoItem{item("a.go", 1, types.TagTodo, "updated message")}

	result := Result(Partition(base, current), "HEAD")
	if result.AddedCount != 1 || result.RemovedCount != 1 {
		t.Fatalf("added=%d removed=%d, want 1/1", result.AddedCount, result.RemovedCount)
	}

	for _, e := range result.Entries {
		switch e.Status {
		case types.DiffAdded:
			if e.Item.Message != "updated message" {
				t.Errorf("added message = %q", e.Item.Message)
			}
		case types.DiffRemoved:
			if e.Item.Message != "original message" {
				t.Errorf("removed message = %q", e.Item.Message)
			}
		}
	}
}

func TestPartitionMessageNormalization(t *testing.T) {
	base := []types.TodoItem{item("a.go", 1, types.TagTodo, "Fix This ")}
	current := []types.TodoItem{item("a.go", 9, types.TagTodo, "fix this")}

	if entries := Partition(base, current); len(entries) != 0 {
		t.Errorf("normalized-equal messages produced %d entries, want 0", len(entries))
	}
}

func TestResultCountConsistency(t *testing.T) {
	base := []types.TodoItem{
		item("a.go", 1, types.TagTodo, "a"),
		item("a.go", 2, types.TagTodo, "b"),
		item("b.go", 3, types.TagFixme, "c"),
	}
	current := []types.TodoItem{
		item("a.go", 1, types.TagTodo, "a"),
		item("a.go", 2, types.TagHack, "d"),
		item("c.go", 1, types.TagBug, "e"),
	}

	result := Result(Partition(base, current), "HEAD~3")

	added, removed := 0, 0
	for _, e := range result.Entries {
		switch e.Status {
		case types.DiffAdded:
			added++
		case types.DiffRemoved:
			removed++
		}
	}
	if result.AddedCount != added || result.RemovedCount != removed {
		t.Errorf("counts (%d/%d) drift from entries (%d/%d)",
			result.AddedCount, result.RemovedCount, added, removed)
	}
	if len(result.Entries) != added+removed {
		t.Errorf("entries = %d, want %d", len(result.Entries), added+removed)
	}
	if result.BaseRef != "HEAD~3" {
		t.Errorf("BaseRef = %q, want HEAD~3", result.BaseRef)
	}
}

package check

import (
	"testing"

	"github.com/steveyegge/todoscan/internal/config"
	"github.com/steveyegge/todoscan/internal/types"
)

func intp(n int) *int { return &n }

func scanOf(tags ...types.Tag) *types.ScanResult {
	var items []types.TodoItem
	for i, tag := range tags {
		items = append(items, types.TodoItem{
			File:    "main.go",
			Line:    i + 1,
			Tag:     tag,
			Message: "item",
		})
	}
	return &types.ScanResult{Items: items, FilesScanned: 1}
}

func TestRunPassesWithNoRules(t *testing.T) {
	result := Run(scanOf(types.TagTodo, types.TagFixme), nil, config.Default(), Overrides{})
	if !result.Passed {
		t.Errorf("expected pass, got violations %+v", result.Violations)
	}
	if result.Total != 2 {
		t.Errorf("Total = %d, want 2", result.Total)
	}
}

func TestRunMaxExceeded(t *testing.T) {
	result := Run(scanOf(types.TagTodo, types.TagTodo, types.TagTodo), nil, config.Default(),
		Overrides{Max: intp(2)})
	if result.Passed {
		t.Fatal("expected failure")
	}
	if len(result.Violations) != 1 || result.Violations[0].Rule != "max" {
		t.Errorf("Violations = %+v", result.Violations)
	}
}

func TestRunMaxExactLimitPasses(t *testing.T) {
	result := Run(scanOf(types.TagTodo, types.TagTodo), nil, config.Default(),
		Overrides{Max: intp(2)})
	if !result.Passed {
		t.Errorf("expected pass at exact limit, got %+v", result.Violations)
	}
}

func TestRunBlockTagsCaseInsensitive(t *testing.T) {
	result := Run(scanOf(types.TagFixme, types.TagHack), nil, config.Default(),
		Overrides{BlockTags: []string{"fixme", " hack "}})
	if result.Passed {
		t.Fatal("expected failure")
	}
	if len(result.Violations) != 2 {
		t.Fatalf("got %d violations, want 2: %+v", len(result.Violations), result.Violations)
	}
	for _, v := range result.Violations {
		if v.Rule != "block_tags" {
			t.Errorf("Rule = %q, want block_tags", v.Rule)
		}
	}
}

func TestRunBlockTagsUnionWithConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Check.BlockTags = []string{"BUG"}
	result := Run(scanOf(types.TagBug, types.TagXxx), nil, cfg,
		Overrides{BlockTags: []string{"XXX"}})
	if result.Passed {
		t.Fatal("expected failure")
	}
	if len(result.Violations) != 2 {
		t.Errorf("got %d violations, want 2: %+v", len(result.Violations), result.Violations)
	}
}

func TestRunUnknownBlockTagIgnored(t *testing.T) {
	result := Run(scanOf(types.TagTodo), nil, config.Default(),
		Overrides{BlockTags: []string{"WONTFIX"}})
	if !result.Passed {
		t.Errorf("unknown tag should not block: %+v", result.Violations)
	}
}

func TestRunMaxNewRequiresDiff(t *testing.T) {
	result := Run(scanOf(types.TagTodo), nil, config.Default(),
		Overrides{MaxNew: intp(0)})
	if !result.Passed {
		t.Errorf("max_new without a diff should not fire: %+v", result.Violations)
	}
}

func TestRunMaxNewExceeded(t *testing.T) {
	diff := &types.DiffResult{AddedCount: 3, BaseRef: "HEAD~1"}
	result := Run(scanOf(types.TagTodo), diff, config.Default(),
		Overrides{MaxNew: intp(2)})
	if result.Passed {
		t.Fatal("expected failure")
	}
	if result.Violations[0].Rule != "max_new" {
		t.Errorf("Rule = %q, want max_new", result.Violations[0].Rule)
	}
}

func TestRunOverrideTakesPrecedence(t *testing.T) {
	cfg := config.Default()
	cfg.Check.Max = intp(1)
	result := Run(scanOf(types.TagTodo, types.TagTodo), nil, cfg, Overrides{Max: intp(5)})
	if !result.Passed {
		t.Errorf("flag override should relax the config limit: %+v", result.Violations)
	}
}

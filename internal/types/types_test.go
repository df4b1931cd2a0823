package types

import (
	"testing"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		in   string
		want Tag
		ok   bool
	}{
		{"TODO", TagTodo, true},
		{"todo", TagTodo, true},
		{"Fixme", TagFixme, true},
		{"HACK", TagHack, true},
		{"xxx", TagXxx, true},
		{"BUG", TagBug, true},
		{"note", TagNote, true},
		{"WONTFIX", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseTag(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseTag(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTagSeverityOrdering(t *testing.T) {
	order := []Tag{TagNote, TagTodo, TagHack, TagXxx, TagFixme, TagBug}
	for i, tag := range order {
		if tag.Severity() != i {
			t.Errorf("%s.Severity() = %d, want %d", tag, tag.Severity(), i)
		}
	}
}

func TestPriorityRank(t *testing.T) {
	if !(PriorityNormal.Rank() < PriorityHigh.Rank() && PriorityHigh.Rank() < PriorityUrgent.Rank()) {
		t.Error("priority ranks must order normal < high < urgent")
	}
}

func TestMatchKeyExcludesLine(t *testing.T) {
	a := TodoItem{File: "main.go", Line: 3, Tag: TagTodo, Message: "fix this"}
	b := TodoItem{File: "main.go", Line: 99, Tag: TagTodo, Message: "fix this"}
	if a.MatchKey() != b.MatchKey() {
		t.Errorf("line number must not affect MatchKey: %q != %q", a.MatchKey(), b.MatchKey())
	}
}

func TestMatchKeyNormalizesMessage(t *testing.T) {
	a := TodoItem{File: "main.go", Tag: TagTodo, Message: "  Fix This  "}
	b := TodoItem{File: "main.go", Tag: TagTodo, Message: "fix this"}
	if a.MatchKey() != b.MatchKey() {
		t.Errorf("MatchKey must trim and lowercase: %q != %q", a.MatchKey(), b.MatchKey())
	}
}

func TestMatchKeySensitiveToTagAndFile(t *testing.T) {
	base := TodoItem{File: "main.go", Tag: TagTodo, Message: "fix this"}

	tagChanged := base
	tagChanged.Tag = TagFixme
	if base.MatchKey() == tagChanged.MatchKey() {
		t.Error("tag change must change MatchKey")
	}

	fileChanged := base
	fileChanged.File = "other.go"
	if base.MatchKey() == fileChanged.MatchKey() {
		t.Error("file change must change MatchKey")
	}
}

func TestMatchKeyIgnoresMetadata(t *testing.T) {
	a := TodoItem{File: "main.go", Tag: TagBug, Message: "crash", Author: "alice", Priority: PriorityUrgent, IssueRef: "#12"}
	b := TodoItem{File: "main.go", Tag: TagBug, Message: "crash", Priority: PriorityNormal}
	if a.MatchKey() != b.MatchKey() {
		t.Error("author/priority/issue ref must not affect MatchKey")
	}
}

func TestFileUpdateEmpty(t *testing.T) {
	if !(FileUpdate{}).Empty() {
		t.Error("zero FileUpdate should be empty")
	}
	u := FileUpdate{Added: []TodoItem{{File: "a.go"}}}
	if u.Empty() {
		t.Error("update with additions should not be empty")
	}
}

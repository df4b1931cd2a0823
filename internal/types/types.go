// Package types defines the data model shared across todoscan:
// tagged annotations, scan results, diffs, and watch events.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Tag is one of the recognized annotation markers. The vocabulary is
// closed: severity ordering and terminal coloring depend on the full set.
type Tag string

const (
	TagTodo  Tag = "TODO"
	TagFixme Tag = "FIXME"
	TagHack  Tag = "HACK"
	TagXxx   Tag = "XXX"
	TagBug   Tag = "BUG"
	TagNote  Tag = "NOTE"
)

// AllTags lists every known tag in declaration order.
var AllTags = []Tag{TagTodo, TagFixme, TagHack, TagXxx, TagBug, TagNote}

// ParseTag resolves a tag name case-insensitively. Returns false for
// anything outside the closed vocabulary.
func ParseTag(s string) (Tag, bool) {
	switch strings.ToUpper(s) {
	case "TODO":
		return TagTodo, true
	case "FIXME":
		return TagFixme, true
	case "HACK":
		return TagHack, true
	case "XXX":
		return TagXxx, true
	case "BUG":
		return TagBug, true
	case "NOTE":
		return TagNote, true
	}
	return "", false
}

// Severity maps a tag to its ordinal. Higher is more severe.
func (t Tag) Severity() int {
	switch t {
	case TagNote:
		return 0
	case TagTodo:
		return 1
	case TagHack:
		return 2
	case TagXxx:
		return 3
	case TagFixme:
		return 4
	case TagBug:
		return 5
	}
	return -1
}

func (t Tag) String() string { return string(t) }

// Priority is derived from bang markers in the annotation: "!" is high,
// "!!" is urgent, anything else is normal.
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Rank orders priorities for comparisons (normal < high < urgent).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityUrgent:
		return 2
	}
	return 0
}

// TodoItem is one recognized annotation extracted from a source line.
// Immutable once created by the scanner.
type TodoItem struct {
	File     string     `json:"file" yaml:"file"`
	Line     int        `json:"line" yaml:"line"`
	Tag      Tag        `json:"tag" yaml:"tag"`
	Message  string     `json:"message" yaml:"message"`
	Author   string     `json:"author,omitempty" yaml:"author,omitempty"`
	IssueRef string     `json:"issue_ref,omitempty" yaml:"issue_ref,omitempty"`
	Priority Priority   `json:"priority" yaml:"priority"`
	Deadline *time.Time `json:"deadline,omitempty" yaml:"deadline,omitempty"`
}

// MatchKey derives the identity used to decide "same annotation" across
// snapshots. Line number is deliberately excluded so that moving an
// annotation never shows up as a change; message text is trimmed and
// lowercased so trailing-whitespace churn doesn't either.
func (i TodoItem) MatchKey() string {
	normalized := strings.ToLower(strings.TrimSpace(i.Message))
	return fmt.Sprintf("%s:%s:%s", i.File, i.Tag, normalized)
}

// ScanResult is the full set of annotations found at one point in time.
type ScanResult struct {
	Items        []TodoItem `json:"items" yaml:"items"`
	FilesScanned int        `json:"files_scanned" yaml:"files_scanned"`
}

// DiffStatus marks a diff entry as an addition or removal. There is no
// "updated" status: an identity change manifests as removed+added.
type DiffStatus string

const (
	DiffAdded   DiffStatus = "added"
	DiffRemoved DiffStatus = "removed"
)

// DiffEntry is one annotation that appeared or disappeared.
type DiffEntry struct {
	Status DiffStatus `json:"status" yaml:"status"`
	Item   TodoItem   `json:"item" yaml:"item"`
}

// DiffResult aggregates the added/removed partition between two
// snapshots. AddedCount and RemovedCount always equal the tally of
// entry statuses; they carry no independent bookkeeping.
type DiffResult struct {
	Entries      []DiffEntry `json:"entries" yaml:"entries"`
	AddedCount   int         `json:"added_count" yaml:"added_count"`
	RemovedCount int         `json:"removed_count" yaml:"removed_count"`
	BaseRef      string      `json:"base_ref" yaml:"base_ref"`
}

// FileUpdate is the per-file delta produced by reconciling a fresh scan
// of one file against that file's prior index entry.
type FileUpdate struct {
	Added   []TodoItem `json:"added" yaml:"added"`
	Removed []TodoItem `json:"removed" yaml:"removed"`
}

// Empty reports whether the update carries no changes at all.
func (u FileUpdate) Empty() bool {
	return len(u.Added) == 0 && len(u.Removed) == 0
}

// TagCount pairs a tag with its current total.
type TagCount struct {
	Tag   Tag `json:"tag" yaml:"tag"`
	Count int `json:"count" yaml:"count"`
}

// WatchEvent is a read-only snapshot of the index state immediately
// after one file's update.
type WatchEvent struct {
	Timestamp  time.Time  `json:"timestamp" yaml:"timestamp"`
	File       string     `json:"file" yaml:"file"`
	Added      []TodoItem `json:"added" yaml:"added"`
	Removed    []TodoItem `json:"removed" yaml:"removed"`
	TagSummary []TagCount `json:"tag_summary" yaml:"tag_summary"`
	Total      int        `json:"total" yaml:"total"`
	TotalDelta int        `json:"total_delta" yaml:"total_delta"`
}

// CheckViolation is one failed policy rule.
type CheckViolation struct {
	Rule    string `json:"rule" yaml:"rule"`
	Message string `json:"message" yaml:"message"`
}

// CheckResult is the outcome of policy checks over a scan.
type CheckResult struct {
	Passed     bool             `json:"passed" yaml:"passed"`
	Total      int              `json:"total" yaml:"total"`
	Violations []CheckViolation `json:"violations" yaml:"violations"`
}

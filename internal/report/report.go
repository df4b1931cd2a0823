// Package report derives summaries from scan results: the brief
// one-screen digest, aggregate statistics, and the sampled history of
// annotation counts across git commits.
package report

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/steveyegge/todoscan/internal/config"
	"github.com/steveyegge/todoscan/internal/debug"
	"github.com/steveyegge/todoscan/internal/gitcmd"
	"github.com/steveyegge/todoscan/internal/scanner"
	"github.com/steveyegge/todoscan/internal/types"
)

// PriorityCounts tallies items per priority level.
type PriorityCounts struct {
	Normal int `json:"normal" yaml:"normal"`
	High   int `json:"high" yaml:"high"`
	Urgent int `json:"urgent" yaml:"urgent"`
}

// Trend carries the diff-derived direction of travel for the brief.
type Trend struct {
	Added   int    `json:"added" yaml:"added"`
	Removed int    `json:"removed" yaml:"removed"`
	BaseRef string `json:"base_ref" yaml:"base_ref"`
}

// BriefResult is the compact digest shown by the stats command.
type BriefResult struct {
	TotalItems     int             `json:"total_items" yaml:"total_items"`
	TotalFiles     int             `json:"total_files" yaml:"total_files"`
	PriorityCounts PriorityCounts  `json:"priority_counts" yaml:"priority_counts"`
	TopUrgent      *types.TodoItem `json:"top_urgent,omitempty" yaml:"top_urgent,omitempty"`
	Trend          *Trend          `json:"trend,omitempty" yaml:"trend,omitempty"`
}

// Brief condenses a scan into headline numbers. The top urgent item is
// the highest-priority annotation, tag severity breaking ties; items at
// normal priority never qualify. diff may be nil.
func Brief(scan *types.ScanResult, diff *types.DiffResult) BriefResult {
	result := BriefResult{TotalItems: len(scan.Items)}

	files := make(map[string]struct{})
	var top *types.TodoItem
	for i := range scan.Items {
		item := &scan.Items[i]
		files[item.File] = struct{}{}

		switch item.Priority {
		case types.PriorityHigh:
			result.PriorityCounts.High++
		case types.PriorityUrgent:
			result.PriorityCounts.Urgent++
		default:
			result.PriorityCounts.Normal++
			continue
		}
		if top == nil || beats(item, top) {
			top = item
		}
	}
	result.TotalFiles = len(files)
	if top != nil {
		copied := *top
		result.TopUrgent = &copied
	}
	result.Trend = trendFrom(diff)
	return result
}

func beats(a, b *types.TodoItem) bool {
	if a.Priority.Rank() != b.Priority.Rank() {
		return a.Priority.Rank() > b.Priority.Rank()
	}
	return a.Tag.Severity() > b.Tag.Severity()
}

func trendFrom(diff *types.DiffResult) *Trend {
	if diff == nil {
		return nil
	}
	return &Trend{
		Added:   diff.AddedCount,
		Removed: diff.RemovedCount,
		BaseRef: diff.BaseRef,
	}
}

// NameCount pairs an arbitrary grouping key with its item count.
type NameCount struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// StatsResult is the full aggregate breakdown of one scan.
type StatsResult struct {
	TotalItems     int              `json:"total_items" yaml:"total_items"`
	TotalFiles     int              `json:"total_files" yaml:"total_files"`
	TagCounts      []types.TagCount `json:"tag_counts" yaml:"tag_counts"`
	PriorityCounts PriorityCounts   `json:"priority_counts" yaml:"priority_counts"`
	AuthorCounts   []NameCount      `json:"author_counts" yaml:"author_counts"`
	HotspotFiles   []NameCount      `json:"hotspot_files" yaml:"hotspot_files"`
}

// Stats aggregates per-tag, per-author and per-file counts, each
// sorted by count descending (name ascending on ties). Items with no
// author annotation are excluded from the author breakdown.
func Stats(scan *types.ScanResult) StatsResult {
	result := StatsResult{TotalItems: len(scan.Items)}

	tags := make(map[types.Tag]int)
	authors := make(map[string]int)
	files := make(map[string]int)
	for _, item := range scan.Items {
		tags[item.Tag]++
		files[item.File]++
		if item.Author != "" {
			authors[item.Author]++
		}
		switch item.Priority {
		case types.PriorityHigh:
			result.PriorityCounts.High++
		case types.PriorityUrgent:
			result.PriorityCounts.Urgent++
		default:
			result.PriorityCounts.Normal++
		}
	}
	result.TotalFiles = len(files)

	for _, tag := range types.AllTags {
		if n := tags[tag]; n > 0 {
			result.TagCounts = append(result.TagCounts, types.TagCount{Tag: tag, Count: n})
		}
	}
	sort.SliceStable(result.TagCounts, func(i, j int) bool {
		return result.TagCounts[i].Count > result.TagCounts[j].Count
	})

	result.AuthorCounts = sortedCounts(authors)
	result.HotspotFiles = sortedCounts(files)
	return result
}

func sortedCounts(m map[string]int) []NameCount {
	out := make([]NameCount, 0, len(m))
	for name, count := range m {
		out = append(out, NameCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// HistoryPoint is the annotation count at one sampled commit.
type HistoryPoint struct {
	Commit string `json:"commit" yaml:"commit"`
	Date   string `json:"date" yaml:"date"`
	Count  int    `json:"count" yaml:"count"`
}

// historyWindow bounds how far back history sampling looks.
const historyWindow = "500"

// SampleIndices selects n evenly spaced indices from [0, total). When
// n covers the whole range every index is returned.
func SampleIndices(total, n int) []int {
	if total == 0 || n == 0 {
		return nil
	}
	if n >= total {
		out := make([]int, total)
		for i := range out {
			out[i] = i
		}
		return out
	}
	if n == 1 {
		return []int{0}
	}
	step := float64(total-1) / float64(n-1)
	out := make([]int, n)
	for i := range out {
		out[i] = int(math.Round(float64(i) * step))
	}
	return out
}

// History samples up to n first-parent, non-merge commits and counts
// annotations in each sampled tree. Commits whose tree cannot be
// listed are skipped, as are individual unreadable files; points come
// back oldest first.
func History(ctx context.Context, root string, cfg *config.Config, n int, git gitcmd.Runner) ([]HistoryPoint, error) {
	if n <= 0 {
		return nil, nil
	}

	logOut, err := git.Run(ctx, root, "log", "--format=%H %aI", "--first-parent", "--no-merges", "-n", historyWindow)
	if err != nil {
		return nil, fmt.Errorf("listing commits: %w", err)
	}

	type commit struct{ hash, date string }
	var commits []commit
	for _, line := range strings.Split(logOut, "\n") {
		hash, date, ok := strings.Cut(strings.TrimSpace(line), " ")
		if !ok {
			continue
		}
		commits = append(commits, commit{hash, date})
	}
	if len(commits) == 0 {
		return nil, nil
	}

	pattern, err := cfg.CompilePattern()
	if err != nil {
		return nil, err
	}

	var points []HistoryPoint
	for _, idx := range SampleIndices(len(commits), n) {
		c := commits[idx]
		count, err := countAtCommit(ctx, root, c.hash, pattern, git)
		if err != nil {
			debug.Logf("report: skipping commit %s: %v\n", c.hash, err)
			continue
		}
		points = append(points, HistoryPoint{
			Commit: shortHash(c.hash),
			Date:   dateOnly(c.date),
			Count:  count,
		})
	}

	// Log order is newest first; flip to chronological.
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points, nil
}

func countAtCommit(ctx context.Context, root, hash string, pattern *regexp.Regexp, git gitcmd.Runner) (int, error) {
	listing, err := git.Run(ctx, root, "ls-tree", "-r", "--name-only", "--", hash)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, path := range strings.Split(listing, "\n") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		content, err := git.Run(ctx, root, "show", hash+":"+path)
		if err != nil {
			continue
		}
		count += len(scanner.ScanContent(content, path, pattern))
	}
	return count, nil
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}

func dateOnly(iso string) string {
	if date, _, ok := strings.Cut(iso, "T"); ok {
		return date
	}
	return iso
}

// ReportResult is the full report payload: the aggregate breakdown,
// the sampled trend line, and the raw items.
type ReportResult struct {
	GeneratedAt    time.Time        `json:"generated_at" yaml:"generated_at"`
	Summary        BriefResult      `json:"summary" yaml:"summary"`
	TagCounts      []types.TagCount `json:"tag_counts" yaml:"tag_counts"`
	AuthorCounts   []NameCount      `json:"author_counts" yaml:"author_counts"`
	HotspotFiles   []NameCount      `json:"hotspot_files" yaml:"hotspot_files"`
	History        []HistoryPoint   `json:"history" yaml:"history"`
	Items          []types.TodoItem `json:"items" yaml:"items"`
}

// Full builds the complete report. History sampling failures degrade
// to an empty trend rather than failing the report.
func Full(ctx context.Context, scan *types.ScanResult, root string, cfg *config.Config, historyN int, git gitcmd.Runner) ReportResult {
	stats := Stats(scan)

	history, err := History(ctx, root, cfg, historyN, git)
	if err != nil {
		debug.Logf("report: history unavailable: %v\n", err)
		history = nil
	}

	return ReportResult{
		GeneratedAt:  time.Now().UTC(),
		Summary:      Brief(scan, nil),
		TagCounts:    stats.TagCounts,
		AuthorCounts: stats.AuthorCounts,
		HotspotFiles: stats.HotspotFiles,
		History:      history,
		Items:        scan.Items,
	}
}

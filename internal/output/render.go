package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/steveyegge/todoscan/internal/report"
	"github.com/steveyegge/todoscan/internal/types"
	"github.com/steveyegge/todoscan/internal/ui"
)

// List renders a scan grouped by file, items in scan order within each
// group.
func List(w io.Writer, scan *types.ScanResult, format Format) error {
	if format != FormatText {
		return writeStructured(w, format, scan)
	}

	var order []string
	groups := make(map[string][]types.TodoItem)
	for _, item := range scan.Items {
		if _, ok := groups[item.File]; !ok {
			order = append(order, item.File)
		}
		groups[item.File] = append(groups[item.File], item)
	}

	for _, file := range order {
		fmt.Fprintln(w, ui.RenderHeader(Sanitize(file)))
		for _, item := range groups[file] {
			fmt.Fprintf(w, "  L%d: %s %s%s\n",
				item.Line, ui.RenderTag(item.Tag), Sanitize(item.Message), itemSuffix(item))
		}
	}
	fmt.Fprintf(w, "%d items in %d files\n", len(scan.Items), len(order))
	return nil
}

// itemSuffix appends author, issue, and deadline details when present.
func itemSuffix(item types.TodoItem) string {
	var b strings.Builder
	if item.Author != "" {
		fmt.Fprintf(&b, " (@%s)", Sanitize(item.Author))
	}
	if item.IssueRef != "" {
		fmt.Fprintf(&b, " (%s)", Sanitize(item.IssueRef))
	}
	if p := ui.RenderPriority(item.Priority); p != "" {
		b.WriteString(" " + p)
	}
	if item.Deadline != nil {
		fmt.Fprintf(&b, " [deadline: %s]", item.Deadline.Format("2006-01-02"))
	}
	return b.String()
}

// Diff renders the added/removed entries with a +A -R footer naming
// the base ref.
func Diff(w io.Writer, result *types.DiffResult, format Format) error {
	if format != FormatText {
		return writeStructured(w, format, result)
	}

	for _, entry := range result.Entries {
		prefix, style := "+", ui.RenderPass
		if entry.Status == types.DiffRemoved {
			prefix, style = "-", ui.RenderFail
		}
		line := fmt.Sprintf("%s %s:%d [%s] %s",
			prefix, Sanitize(entry.Item.File), entry.Item.Line,
			entry.Item.Tag, Sanitize(entry.Item.Message))
		fmt.Fprintln(w, style(line))
	}

	fmt.Fprintf(w, "\n+%d -%d (base: %s)\n",
		result.AddedCount, result.RemovedCount, result.BaseRef)
	return nil
}

// WatchEvent renders one emitted watch event. Structured formats emit
// one document per event so the stream stays parseable.
func WatchEvent(w io.Writer, event types.WatchEvent, format Format) error {
	if format != FormatText {
		return writeStructured(w, format, event)
	}

	fmt.Fprintf(w, "%s %s\n",
		ui.RenderMuted(event.Timestamp.Format("15:04:05")),
		ui.RenderHeader(Sanitize(event.File)))

	for _, item := range event.Added {
		fmt.Fprintf(w, "  %s L%d: %s %s\n",
			ui.RenderPass("+"), item.Line, ui.RenderTag(item.Tag), Sanitize(item.Message))
	}
	for _, item := range event.Removed {
		fmt.Fprintf(w, "  %s L%d: %s %s\n",
			ui.RenderFail("-"), item.Line, ui.RenderTag(item.Tag), Sanitize(item.Message))
	}

	fmt.Fprintf(w, "  %d total (%s)\n\n", event.Total, deltaLabel(event.TotalDelta))
	return nil
}

func deltaLabel(delta int) string {
	switch {
	case delta > 0:
		return ui.RenderPass(fmt.Sprintf("+%d", delta))
	case delta < 0:
		return ui.RenderFail(fmt.Sprintf("%d", delta))
	}
	return "±0"
}

// Brief renders the compact digest: a summary line, the top urgent
// item when one exists, and the trend when a diff was computed.
func Brief(w io.Writer, result report.BriefResult, format Format) error {
	if format != FormatText {
		return writeStructured(w, format, result)
	}

	var priorityParts []string
	if result.PriorityCounts.Urgent > 0 {
		priorityParts = append(priorityParts, fmt.Sprintf("%d urgent", result.PriorityCounts.Urgent))
	}
	if result.PriorityCounts.High > 0 {
		priorityParts = append(priorityParts, fmt.Sprintf("%d high", result.PriorityCounts.High))
	}
	summary := fmt.Sprintf("%d TODOs across %d files", result.TotalItems, result.TotalFiles)
	if len(priorityParts) > 0 {
		summary += " (" + strings.Join(priorityParts, ", ") + ")"
	}
	fmt.Fprintln(w, summary)

	if item := result.TopUrgent; item != nil {
		marker := ""
		switch item.Priority {
		case types.PriorityUrgent:
			marker = "!!"
		case types.PriorityHigh:
			marker = "!"
		}
		suffix := ""
		if item.IssueRef != "" {
			suffix = fmt.Sprintf(" (%s)", Sanitize(item.IssueRef))
		}
		fmt.Fprintf(w, "Top urgent: %s:%d %s%s %s%s\n",
			Sanitize(item.File), item.Line, item.Tag, marker, Sanitize(item.Message), suffix)
	}

	if trend := result.Trend; trend != nil {
		fmt.Fprintf(w, "Trends vs %s: +%d added, -%d removed\n",
			trend.BaseRef, trend.Added, trend.Removed)
	}
	return nil
}

// barWidth is how many cells the count bars in stats output occupy.
const barWidth = 20

func bar(count, max int) string {
	if max == 0 {
		return ""
	}
	filled := (count*barWidth + max - 1) / max
	return strings.Repeat("█", filled)
}

// Stats renders tag, priority, author and hotspot breakdowns.
func Stats(w io.Writer, result report.StatsResult, format Format) error {
	if format != FormatText {
		return writeStructured(w, format, result)
	}

	fmt.Fprintln(w, ui.RenderHeader("Tags"))
	tagMax := 0
	if len(result.TagCounts) > 0 {
		tagMax = result.TagCounts[0].Count
	}
	for _, tc := range result.TagCounts {
		fmt.Fprintf(w, "  %-7s %4d  %s\n", ui.RenderTag(tc.Tag), tc.Count,
			ui.RenderMuted(bar(tc.Count, tagMax)))
	}

	fmt.Fprintf(w, "\n%s normal: %d | high: %d | urgent: %d\n",
		ui.RenderHeader("Priority"),
		result.PriorityCounts.Normal, result.PriorityCounts.High, result.PriorityCounts.Urgent)

	if len(result.AuthorCounts) > 0 {
		fmt.Fprintf(w, "\n%s\n", ui.RenderHeader("Authors"))
		authorMax := result.AuthorCounts[0].Count
		for _, ac := range result.AuthorCounts {
			fmt.Fprintf(w, "  %-20s %4d  %s\n", Sanitize(ac.Name), ac.Count,
				ui.RenderMuted(bar(ac.Count, authorMax)))
		}
	}

	if len(result.HotspotFiles) > 0 {
		fmt.Fprintf(w, "\n%s\n", ui.RenderHeader("Hotspots"))
		for _, hc := range result.HotspotFiles {
			fmt.Fprintf(w, "  %s (%d)\n", Sanitize(hc.Name), hc.Count)
		}
	}

	fmt.Fprintf(w, "\n%d items across %d files\n", result.TotalItems, result.TotalFiles)
	return nil
}

// Report renders the full report: markdown through glamour for
// terminals, the structured encoders otherwise.
func Report(w io.Writer, result report.ReportResult, format Format) error {
	if format != FormatText {
		return writeStructured(w, format, result)
	}
	_, err := io.WriteString(w, ui.RenderMarkdown(ReportMarkdown(result)))
	return err
}

// Check renders PASS/FAIL plus the violated rules.
func Check(w io.Writer, result types.CheckResult, format Format) error {
	if format != FormatText {
		return writeStructured(w, format, result)
	}

	if result.Passed {
		fmt.Fprintln(w, ui.RenderPass("PASS"))
		fmt.Fprintf(w, "%d items checked, no violations\n", result.Total)
		return nil
	}

	fmt.Fprintln(w, ui.RenderFail("FAIL"))
	for _, v := range result.Violations {
		fmt.Fprintf(w, "  %s: %s\n", Sanitize(v.Rule), Sanitize(v.Message))
	}
	return nil
}

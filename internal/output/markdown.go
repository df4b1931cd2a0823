package output

import (
	"fmt"
	"strings"

	"github.com/steveyegge/todoscan/internal/report"
	"github.com/steveyegge/todoscan/internal/types"
)

// escapeCell escapes characters that break markdown table cells.
func escapeCell(s string) string {
	r := strings.NewReplacer(
		"|", "\\|",
		"\n", " ",
		"\r", "",
		"[", "\\[",
		"]", "\\]",
		"`", "\\`",
	)
	return r.Replace(s)
}

func priorityMarker(p types.Priority) string {
	switch p {
	case types.PriorityHigh:
		return "!"
	case types.PriorityUrgent:
		return "!!"
	}
	return ""
}

// ReportMarkdown builds the markdown document for a full report. The
// CLI renders it with glamour for terminals and emits it raw
// otherwise.
func ReportMarkdown(r report.ReportResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# TODO Report\n\nGenerated %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04 MST"))

	s := r.Summary
	fmt.Fprintf(&b, "**%d items across %d files**", s.TotalItems, s.TotalFiles)
	if s.PriorityCounts.Urgent > 0 || s.PriorityCounts.High > 0 {
		fmt.Fprintf(&b, " (%d urgent, %d high)", s.PriorityCounts.Urgent, s.PriorityCounts.High)
	}
	b.WriteString("\n\n")

	if len(r.TagCounts) > 0 {
		b.WriteString("## Tags\n\n| Tag | Count |\n|-----|-------|\n")
		for _, tc := range r.TagCounts {
			fmt.Fprintf(&b, "| %s | %d |\n", tc.Tag, tc.Count)
		}
		b.WriteString("\n")
	}

	if len(r.AuthorCounts) > 0 {
		b.WriteString("## Authors\n\n| Author | Count |\n|--------|-------|\n")
		for _, ac := range r.AuthorCounts {
			fmt.Fprintf(&b, "| %s | %d |\n", escapeCell(ac.Name), ac.Count)
		}
		b.WriteString("\n")
	}

	if len(r.HotspotFiles) > 0 {
		b.WriteString("## Hotspots\n\n| File | Count |\n|------|-------|\n")
		for _, hc := range r.HotspotFiles {
			fmt.Fprintf(&b, "| %s | %d |\n", escapeCell(hc.Name), hc.Count)
		}
		b.WriteString("\n")
	}

	if len(r.History) > 0 {
		b.WriteString("## History\n\n| Commit | Date | Count |\n|--------|------|-------|\n")
		for _, hp := range r.History {
			fmt.Fprintf(&b, "| %s | %s | %d |\n", hp.Commit, hp.Date, hp.Count)
		}
		b.WriteString("\n")
	}

	if len(r.Items) > 0 {
		b.WriteString("## Items\n\n| File | Line | Tag | Priority | Message | Author | Issue | Deadline |\n")
		b.WriteString("|------|------|-----|----------|---------|--------|-------|----------|\n")
		for _, item := range r.Items {
			deadline := ""
			if item.Deadline != nil {
				deadline = item.Deadline.Format("2006-01-02")
			}
			fmt.Fprintf(&b, "| %s | %d | %s | %s | %s | %s | %s | %s |\n",
				escapeCell(item.File), item.Line, item.Tag,
				priorityMarker(item.Priority), escapeCell(item.Message),
				escapeCell(item.Author), escapeCell(item.IssueRef), deadline)
		}
		b.WriteString("\n")
	}

	return b.String()
}

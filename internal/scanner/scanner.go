// Package scanner extracts tagged annotations (TODO/FIXME/etc.) from
// source text and directory trees.
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/steveyegge/todoscan/internal/config"
	"github.com/steveyegge/todoscan/internal/debug"
	"github.com/steveyegge/todoscan/internal/types"
)

// MaxFileSize is the safety ceiling above which file bodies are never
// read. Pathological inputs (generated bundles, core dumps renamed .c)
// would otherwise blow up memory for zero useful annotations.
const MaxFileSize = 10 * 1024 * 1024

var issueRefRe = regexp.MustCompile(`([A-Z]+-\d+)|#(\d+)`)

// deadline parser, initialized once. Relative phrases ("by: friday")
// resolve against the scan time.
var deadlineParser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// extractIssueRef pulls an issue reference like JIRA-456 or #123 out of
// the message text. Numeric refs keep their leading '#'.
func extractIssueRef(message string) string {
	m := issueRefRe.FindStringSubmatch(message)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return m[1]
	}
	return "#" + m[2]
}

// extractDeadline parses an optional "by:" marker in the message into a
// concrete time. Unparseable phrases yield nil; the marker stays part
// of the message either way so identity keys are unaffected.
func extractDeadline(message string, now time.Time) *time.Time {
	idx := strings.Index(strings.ToLower(message), "by:")
	if idx < 0 {
		return nil
	}
	phrase := strings.TrimSpace(message[idx+len("by:"):])
	if phrase == "" {
		return nil
	}
	r, err := deadlineParser.Parse(phrase, now)
	if err != nil || r == nil {
		return nil
	}
	t := r.Time
	return &t
}

// ScanContent scans text line by line for tagged annotations.
//
// Pure over (content, filePath, pattern): malformed input never panics,
// unknown tags are skipped. Capture groups follow config.TagsPattern:
// 1=tag, 2=author, 3=priority bangs, 4=message.
func ScanContent(content, filePath string, pattern *regexp.Regexp) []types.TodoItem {
	var items []types.TodoItem
	now := time.Now()

	lineNo := 0
	for _, line := range strings.Split(content, "\n") {
		lineNo++
		m := pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		tag, ok := types.ParseTag(m[1])
		if !ok {
			continue
		}

		priority := types.PriorityNormal
		switch m[3] {
		case "!":
			priority = types.PriorityHigh
		case "!!":
			priority = types.PriorityUrgent
		}

		message := strings.TrimSpace(m[4])

		items = append(items, types.TodoItem{
			File:     filePath,
			Line:     lineNo,
			Tag:      tag,
			Message:  message,
			Author:   m[2],
			IssueRef: extractIssueRef(message),
			Priority: priority,
			Deadline: extractDeadline(message, now),
		})
	}

	return items
}

// ScanDirectory walks root and scans every regular file, applying the
// configured exclusion rules and any .gitignore files found along the
// way. Unreadable and oversized files are skipped, not fatal. Paths in
// the result are slash-separated and relative to root.
func ScanDirectory(root string, cfg *config.Config) (*types.ScanResult, error) {
	pattern, err := cfg.CompilePattern()
	if err != nil {
		return nil, err
	}
	excludeRes := cfg.ExcludeRegexps()
	ignores := &ignoreSet{}

	result := &types.ScanResult{}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			debug.Logf("scan: skipping %s: %v\n", path, walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				ignores.add(rel, path)
				return nil
			}
			if excludedDir(rel, cfg.ExcludeDirs) || ignores.Match(rel, true) {
				return filepath.SkipDir
			}
			ignores.add(rel, path)
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if excludedDir(rel, cfg.ExcludeDirs) || excludedPattern(rel, excludeRes) || ignores.Match(rel, false) {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil || info.Size() > MaxFileSize {
			return nil
		}

		content, readErr := os.ReadFile(path) // #nosec G304 - path comes from the walk
		if readErr != nil {
			return nil
		}

		result.Items = append(result.Items, ScanContent(string(content), rel, pattern)...)
		result.FilesScanned++
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// excludedDir reports whether any whole path component matches one of
// the configured directory names. Substring matches don't count.
func excludedDir(relPath string, dirs []string) bool {
	if len(dirs) == 0 {
		return false
	}
	for _, comp := range strings.Split(relPath, "/") {
		for _, dir := range dirs {
			if comp == dir {
				return true
			}
		}
	}
	return false
}

func excludedPattern(relPath string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(relPath) {
			return true
		}
	}
	return false
}

// Excluded is the exclusion contract shared with the incremental index:
// directory names match whole components, regexes match the relative
// path string.
func Excluded(relPath string, cfg *config.Config, excludeRes []*regexp.Regexp) bool {
	return excludedDir(relPath, cfg.ExcludeDirs) || excludedPattern(relPath, excludeRes)
}

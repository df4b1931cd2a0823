// Package check evaluates policy rules over a scan: hard caps on
// annotation counts and tags that must never appear. Intended for CI
// gates; the CLI exits nonzero when a check fails.
package check

import (
	"fmt"
	"strings"

	"github.com/steveyegge/todoscan/internal/config"
	"github.com/steveyegge/todoscan/internal/types"
)

// Overrides are flag-level settings layered on top of the config file.
// Nil pointers and empty slices leave the config values in effect;
// BlockTags from both sources are unioned.
type Overrides struct {
	Max       *int
	MaxNew    *int
	BlockTags []string
}

// Run applies the policy rules to a scan. diff may be nil; the max_new
// rule is only evaluated when a diff against a base ref is available.
func Run(scan *types.ScanResult, diff *types.DiffResult, cfg *config.Config, ov Overrides) types.CheckResult {
	result := types.CheckResult{
		Passed: true,
		Total:  len(scan.Items),
	}
	fail := func(rule, msg string) {
		result.Passed = false
		result.Violations = append(result.Violations, types.CheckViolation{Rule: rule, Message: msg})
	}

	blocked := blockedTags(cfg.Check.BlockTags, ov.BlockTags)
	if len(blocked) > 0 {
		counts := make(map[types.Tag]int)
		for _, item := range scan.Items {
			if _, ok := blocked[item.Tag]; ok {
				counts[item.Tag]++
			}
		}
		for _, tag := range types.AllTags {
			if n := counts[tag]; n > 0 {
				fail("block_tags", fmt.Sprintf("%d %s annotation(s) present (blocked)", n, tag))
			}
		}
	}

	if max := pick(ov.Max, cfg.Check.Max); max != nil && len(scan.Items) > *max {
		fail("max", fmt.Sprintf("%d annotations exceed limit of %d", len(scan.Items), *max))
	}

	if maxNew := pick(ov.MaxNew, cfg.Check.MaxNew); maxNew != nil && diff != nil && diff.AddedCount > *maxNew {
		fail("max_new", fmt.Sprintf("%d new annotations since %s exceed limit of %d",
			diff.AddedCount, diff.BaseRef, *maxNew))
	}

	return result
}


// blockedTags resolves the case-insensitive union of configured and
// overridden blocked tags, dropping names outside the tag vocabulary.
func blockedTags(fromConfig, fromFlags []string) map[types.Tag]struct{} {
	out := make(map[types.Tag]struct{})
	for _, name := range append(append([]string{}, fromConfig...), fromFlags...) {
		if tag, ok := types.ParseTag(strings.TrimSpace(name)); ok {
			out[tag] = struct{}{}
		}
	}
	return out
}

func pick(override, fallback *int) *int {
	if override != nil {
		return override
	}
	return fallback
}

package diff

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/steveyegge/todoscan/internal/config"
	"github.com/steveyegge/todoscan/internal/debug"
	"github.com/steveyegge/todoscan/internal/gitcmd"
	"github.com/steveyegge/todoscan/internal/scanner"
	"github.com/steveyegge/todoscan/internal/types"
)

// ErrInvalidRef rejects user-supplied refs that could be parsed as
// options by git.
var ErrInvalidRef = errors.New("invalid git ref")

// showConcurrency bounds parallel `git show` subprocesses.
const showConcurrency = 8

// detectChangedFiles returns the set of paths that could possibly
// differ between baseRef and the working tree: files git reports as
// changed (ref..index and index..worktree) plus files present in the
// current scan but absent from the base listing.
//
// When the diff subcommands themselves fail (shallow clone, detached
// state) it degrades to every base-known path plus every current path:
// correctness over performance.
func detectChangedFiles(ctx context.Context, git gitcmd.Runner, baseRef, root string, baseFiles map[string]struct{}, current *types.ScanResult) map[string]struct{} {
	changed := make(map[string]struct{})

	diffRef, errRef := git.Run(ctx, root, "diff", "--name-only", baseRef, "--")
	diffUnstaged, errUnstaged := git.Run(ctx, root, "diff", "--name-only")

	if errRef != nil || errUnstaged != nil {
		debug.Logf("diff: change detection unavailable, falling back to all files\n")
		for path := range baseFiles {
			changed[path] = struct{}{}
		}
		for _, item := range current.Items {
			changed[item.File] = struct{}{}
		}
		return changed
	}

	for _, line := range strings.Split(diffRef+"\n"+diffUnstaged, "\n") {
		if path := strings.TrimSpace(line); path != "" {
			changed[path] = struct{}{}
		}
	}

	// New or untracked files won't show up in either diff listing.
	for _, item := range current.Items {
		if _, ok := baseFiles[item.File]; !ok {
			changed[item.File] = struct{}{}
		}
	}

	return changed
}

// Compute diffs the current working-tree scan against the annotation
// snapshot at baseRef.
//
// Only files in the changed set are re-read at the base ref, so the
// cost is bounded by the size of the change, not the repository.
// Per-file fetch failures (binary content, permissions) silently skip
// that file; a failure to list the base tree is fatal.
func Compute(ctx context.Context, current *types.ScanResult, baseRef, root string, cfg *config.Config, git gitcmd.Runner) (*types.DiffResult, error) {
	if strings.HasPrefix(baseRef, "-") {
		return nil, fmt.Errorf("%w %q: must not start with '-'", ErrInvalidRef, baseRef)
	}

	pattern, err := cfg.CompilePattern()
	if err != nil {
		return nil, err
	}

	fileList, err := git.Run(ctx, root, "ls-tree", "-r", "--name-only", "--", baseRef)
	if err != nil {
		return nil, fmt.Errorf("listing files at ref %s: %w", baseRef, err)
	}

	baseFiles := make(map[string]struct{})
	for _, line := range strings.Split(fileList, "\n") {
		if path := strings.TrimSpace(line); path != "" {
			baseFiles[path] = struct{}{}
		}
	}

	changed := detectChangedFiles(ctx, git, baseRef, root, baseFiles, current)

	// Fetch base-side content only for changed paths that existed at
	// the base ref, in parallel but reconciled in path order.
	var toFetch []string
	for path := range changed {
		if _, ok := baseFiles[path]; ok {
			toFetch = append(toFetch, path)
		}
	}
	sort.Strings(toFetch)

	perFile := make([][]types.TodoItem, len(toFetch))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(showConcurrency)
	for i, path := range toFetch {
		g.Go(func() error {
			content, showErr := git.Run(gctx, root, "show", baseRef+":"+path)
			if showErr != nil {
				debug.Logf("diff: skipping %s at %s: %v\n", path, baseRef, showErr)
				return nil // binary or inaccessible, skip just this file
			}
			perFile[i] = scanner.ScanContent(content, path, pattern)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var baseItems []types.TodoItem
	for _, items := range perFile {
		baseItems = append(baseItems, items...)
	}

	// Annotations in untouched files cannot have changed.
	var currentChanged []types.TodoItem
	for _, item := range current.Items {
		if _, ok := changed[item.File]; ok {
			currentChanged = append(currentChanged, item)
		}
	}

	return Result(Partition(baseItems, currentChanged), baseRef), nil
}

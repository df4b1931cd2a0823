// Package gitcmd wraps git subprocess invocations. The only "wire"
// surface is argv/stdout/exit-code; everything above it consumes the
// Runner interface so it can be tested without a real repository.
package gitcmd

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"
)

// GitError carries the failing argument list and whatever git wrote to
// stderr, so callers can surface a useful message.
type GitError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *GitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("git %s failed: %s", strings.Join(e.Args, " "), e.Stderr)
	}
	return fmt.Sprintf("git %s failed: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *GitError) Unwrap() error { return e.Err }

// Runner executes git commands in a working directory. The diff driver
// and report history depend on this rather than on exec directly.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// CLI is the exec-backed Runner.
type CLI struct{}

// Run executes `git args...` in dir and returns stdout. A non-zero exit
// or non-UTF8 output is a *GitError.
func (CLI) Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &GitError{Args: args, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}

	out := stdout.String()
	if !utf8.ValidString(out) {
		return "", &GitError{Args: args, Stderr: "output is not valid UTF-8", Err: fmt.Errorf("invalid encoding")}
	}
	return out, nil
}

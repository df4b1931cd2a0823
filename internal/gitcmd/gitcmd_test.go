package gitcmd

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRunSuccess(t *testing.T) {
	out, err := CLI{}.Run(context.Background(), ".", "--version")
	if err != nil {
		t.Fatalf("git --version should succeed: %v", err)
	}
	if !strings.Contains(out, "git version") {
		t.Errorf("stdout = %q, want 'git version'", out)
	}
}

func TestRunFailureCarriesArgsAndStderr(t *testing.T) {
	dir := t.TempDir()
	_, err := CLI{}.Run(context.Background(), dir, "log")
	if err == nil {
		t.Fatal("git log outside a repo should fail")
	}

	var gitErr *GitError
	if !errors.As(err, &gitErr) {
		t.Fatalf("error should be *GitError, got %T", err)
	}
	if len(gitErr.Args) == 0 || gitErr.Args[0] != "log" {
		t.Errorf("Args = %v, want [log]", gitErr.Args)
	}
	if !strings.Contains(err.Error(), "git log failed") {
		t.Errorf("error message = %q, want 'git log failed' prefix", err.Error())
	}
}

func TestRunInvalidSubcommand(t *testing.T) {
	_, err := CLI{}.Run(context.Background(), ".", "not-a-real-subcommand")
	if err == nil {
		t.Fatal("invalid subcommand should fail")
	}
	if !strings.Contains(err.Error(), "not-a-real-subcommand") {
		t.Errorf("error should mention the subcommand: %v", err)
	}
}

func TestRunRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (CLI{}).Run(ctx, ".", "--version"); err == nil {
		t.Error("cancelled context should fail the command")
	}
}

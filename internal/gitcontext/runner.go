// Package gitcontext gathers optional prompt context from the checkout the
// plan was produced in: the Terraform file diff against the base branch and
// the current configuration files. Everything here is best-effort; a
// missing git repository never fails an analysis.
package gitcontext

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

type Runner interface {
	Run(ctx context.Context, dir string, args ...string) ([]byte, error)
}

type ExecRunner struct{}

func (r ExecRunner) Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git %s failed: %w\n%s", strings.Join(args, " "), err, stderr.String())
	}
	return stdout.Bytes(), nil
}

// FixtureRunner serves canned git output from a directory, keyed by the
// first meaningful subcommand.
type FixtureRunner struct {
	Root string
}

func NewFixtureRunner(root string) FixtureRunner {
	return FixtureRunner{Root: root}
}

func (f FixtureRunner) Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	_ = ctx
	_ = dir
	key := strings.Join(args, " ")
	var file string
	switch {
	case strings.HasPrefix(key, "fetch"):
		return nil, nil
	case strings.HasPrefix(key, "rev-parse"):
		file = "toplevel.txt"
	case strings.Contains(key, "--name-only"):
		file = "names.txt"
	case strings.HasPrefix(key, "diff"):
		file = "diff.txt"
	default:
		return nil, fmt.Errorf("no fixture for git args: %s", key)
	}
	return os.ReadFile(filepath.Join(f.Root, file))
}

// NullRunner reports no git repository, disabling diff context.
type NullRunner struct{}

func (NullRunner) Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return nil, fmt.Errorf("git context disabled")
}

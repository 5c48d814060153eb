package gitcontext

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const diffTruncationNote = "\n... [diff truncated]"

// Diff returns the unified diff of Terraform files between the base branch
// and HEAD, bounded to maxBytes. An empty string means no usable context,
// never an error the caller has to handle.
func Diff(ctx context.Context, r Runner, workdir, baseBranch string, maxBytes int) string {
	_, _ = r.Run(ctx, workdir, "fetch", "--all", "--prune", "-q")

	toplevel, err := r.Run(ctx, workdir, "rev-parse", "--show-toplevel")
	if err != nil {
		return ""
	}
	root := strings.TrimSpace(string(toplevel))
	relDir, err := filepath.Rel(root, workdir)
	if err != nil {
		relDir = "."
	}

	rangeSpec := fmt.Sprintf("origin/%s...HEAD", baseBranch)
	names, err := r.Run(ctx, root, "diff", rangeSpec, "--name-only", "--", relDir)
	if err != nil {
		return ""
	}

	var changed []string
	for _, line := range strings.Split(string(names), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasSuffix(line, ".tf") || strings.HasSuffix(line, ".tfvars") {
			changed = append(changed, line)
		}
	}
	if len(changed) == 0 {
		return ""
	}

	args := append([]string{"diff", rangeSpec, "--no-color", "--unified=3", "--"}, changed...)
	diff, err := r.Run(ctx, root, args...)
	if err != nil {
		return ""
	}

	text := strings.TrimSpace(string(diff))
	if maxBytes > 0 && len(text) > maxBytes {
		return text[:maxBytes] + diffTruncationNote
	}
	return text
}

// CollectConfig gathers the workspace's .tf and .tfvars files into one
// annotated block, bounded to maxBytes. Sorted walk order keeps the output
// deterministic.
func CollectConfig(workdir string, maxBytes int) string {
	var blocks []string
	total := 0

	_ = filepath.WalkDir(workdir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".terraform" || d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".tf") && !strings.HasSuffix(d.Name(), ".tfvars") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(workdir, path)
		if err != nil {
			rel = path
		}
		block := fmt.Sprintf("=== %s ===\n%s", rel, string(content))
		if maxBytes > 0 && total+len(block) > maxBytes {
			return filepath.SkipAll
		}
		blocks = append(blocks, block)
		total += len(block)
		return nil
	})

	sort.Strings(blocks)
	return strings.Join(blocks, "\n\n")
}

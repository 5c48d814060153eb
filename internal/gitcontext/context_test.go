package gitcontext

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
}

func TestDiffFromFixtures(t *testing.T) {
	workdir := t.TempDir()
	fixtures := t.TempDir()
	writeFixture(t, fixtures, "toplevel.txt", workdir+"\n")
	writeFixture(t, fixtures, "names.txt", "main.tf\nREADME.md\nvars.tfvars\n")
	writeFixture(t, fixtures, "diff.txt", "diff --git a/main.tf b/main.tf\n+resource \"aws_s3_bucket\" \"logs\" {}\n")

	out := Diff(context.Background(), NewFixtureRunner(fixtures), workdir, "main", 0)
	if !strings.Contains(out, "aws_s3_bucket") {
		t.Fatalf("expected diff content, got %q", out)
	}
}

func TestDiffNoTerraformChanges(t *testing.T) {
	workdir := t.TempDir()
	fixtures := t.TempDir()
	writeFixture(t, fixtures, "toplevel.txt", workdir+"\n")
	writeFixture(t, fixtures, "names.txt", "README.md\nmain.go\n")

	if out := Diff(context.Background(), NewFixtureRunner(fixtures), workdir, "main", 0); out != "" {
		t.Fatalf("expected empty diff when no terraform files changed, got %q", out)
	}
}

func TestDiffWithoutRepo(t *testing.T) {
	if out := Diff(context.Background(), NullRunner{}, t.TempDir(), "main", 0); out != "" {
		t.Fatalf("missing repo must yield empty context, got %q", out)
	}
}

func TestDiffTruncation(t *testing.T) {
	workdir := t.TempDir()
	fixtures := t.TempDir()
	writeFixture(t, fixtures, "toplevel.txt", workdir+"\n")
	writeFixture(t, fixtures, "names.txt", "main.tf\n")
	writeFixture(t, fixtures, "diff.txt", strings.Repeat("x", 500))

	out := Diff(context.Background(), NewFixtureRunner(fixtures), workdir, "main", 100)
	if !strings.HasSuffix(out, "[diff truncated]") {
		t.Fatalf("expected truncation note, got %q", out)
	}
}

func TestCollectConfig(t *testing.T) {
	workdir := t.TempDir()
	writeFixture(t, workdir, "main.tf", "resource \"aws_s3_bucket\" \"logs\" {}\n")
	writeFixture(t, workdir, "notes.md", "not terraform\n")
	if err := os.MkdirAll(filepath.Join(workdir, ".terraform", "modules"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFixture(t, filepath.Join(workdir, ".terraform", "modules"), "cached.tf", "ignored\n")

	out := CollectConfig(workdir, 0)
	if !strings.Contains(out, "=== main.tf ===") {
		t.Fatalf("expected main.tf block, got %q", out)
	}
	if strings.Contains(out, "ignored") {
		t.Fatalf(".terraform contents must be skipped")
	}
	if strings.Contains(out, "not terraform") {
		t.Fatalf("non-terraform files must be skipped")
	}
}

func TestCollectConfigBounded(t *testing.T) {
	workdir := t.TempDir()
	writeFixture(t, workdir, "a.tf", strings.Repeat("a", 100))
	writeFixture(t, workdir, "b.tf", strings.Repeat("b", 100))

	out := CollectConfig(workdir, 120)
	if strings.Contains(out, "b.tf") {
		t.Fatalf("budget should cut the second file, got %q", out)
	}
	if !strings.Contains(out, "a.tf") {
		t.Fatalf("first file should fit the budget")
	}
}

package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func snapshot() Snapshot {
	return Snapshot{
		Repo:            "acme/app",
		PRNumber:        "42",
		Workspace:       "default",
		Project:         "app",
		TotalChanges:    3,
		CriticalCount:   1,
		HighCount:       1,
		LocalRisk:       "critical",
		CriticalChanges: "- aws_rds_cluster.main (aws_rds_cluster): delete [critical]",
		Plan:            "Plan: 1 to add, 1 to change, 1 to destroy.",
	}
}

func TestRenderDeterministic(t *testing.T) {
	template, err := Load("analyze", "")
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	first := Render(template, snapshot())
	second := Render(template, snapshot())
	if first != second {
		t.Fatalf("identical snapshots rendered differently")
	}
}

func TestRenderSubstitutesPlaceholders(t *testing.T) {
	template, err := Load("analyze", "")
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	out := Render(template, snapshot())

	for _, want := range []string{"acme/app", "#42", "Plan: 1 to add", "aws_rds_cluster.main"} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered prompt missing %q", want)
		}
	}
	for _, placeholder := range []string{"{REPO}", "{PLAN}", "{CRITICAL_CHANGES}", "{TOTAL_CHANGES}"} {
		if strings.Contains(out, placeholder) {
			t.Fatalf("unsubstituted placeholder %s", placeholder)
		}
	}
}

func TestRenderEmptyFieldsBecomeNone(t *testing.T) {
	out := Render("diff: {CODE_DIFF} config: {TF_CONFIG}", Snapshot{})
	if out != "diff: <none> config: <none>" {
		t.Fatalf("unexpected rendering of empty fields: %q", out)
	}
}

func TestLoadOverrideDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "analyze.txt"), []byte("custom {PLAN}"), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}
	template, err := Load("analyze", dir)
	if err != nil {
		t.Fatalf("load override: %v", err)
	}
	if template != "custom {PLAN}" {
		t.Fatalf("override not used: %q", template)
	}

	embedded, err := Load("context", dir)
	if err != nil {
		t.Fatalf("fallback to embedded failed: %v", err)
	}
	if !strings.Contains(embedded, "Blast Radius") {
		t.Fatalf("unexpected embedded template content")
	}
}

func TestLoadUnknownTemplate(t *testing.T) {
	if _, err := Load("nope", ""); err == nil {
		t.Fatalf("expected error for unknown template")
	}
}

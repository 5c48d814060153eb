package analysis

import (
	"strings"
	"testing"
)

func TestRenderStableOutput(t *testing.T) {
	res := Result{
		Risk:    RiskLow,
		Summary: "One bucket added.",
		Findings: []Finding{
			{Severity: RiskLow, Category: "best-practice", Resource: "aws_s3_bucket.logs", Detail: "Enable versioning."},
		},
		Guidance: "Safe to apply.",
	}
	hdr := Header{
		Repo: "acme/app", PullNum: "42", Workspace: "default",
		Project: "app", Timestamp: "2026-02-04 00:00:00 UTC",
	}

	first := Render(res, hdr)
	second := Render(res, hdr)
	if first != second {
		t.Fatalf("rendering is not deterministic")
	}
	for _, want := range []string{"risk: low", "Safe to apply.", "RISK: LOW", "aws_s3_bucket.logs"} {
		if !strings.Contains(first, want) {
			t.Fatalf("rendered output missing %q:\n%s", want, first)
		}
	}
}

func TestRenderUnparsed(t *testing.T) {
	res := Result{Risk: RiskLow, Raw: "The plan looks mostly fine.", Unparsed: true}
	out := Render(res, Header{Repo: "acme/app", PullNum: "1", Workspace: "default", Project: "app", Timestamp: "t"})
	if !strings.Contains(out, "The plan looks mostly fine.") {
		t.Fatalf("raw text must survive in the unparsed rendering")
	}
	if !strings.Contains(out, "could not be parsed") {
		t.Fatalf("unparsed rendering must say so")
	}
}

func TestSortFindingsDeterministic(t *testing.T) {
	findings := []Finding{
		{Severity: RiskLow, Resource: "b", Detail: "z"},
		{Severity: RiskCritical, Resource: "c", Detail: "y"},
		{Severity: RiskCritical, Resource: "a", Detail: "x"},
		{Severity: RiskHigh, Resource: "a", Detail: "w"},
	}
	SortFindings(findings)

	got := make([]string, len(findings))
	for i, f := range findings {
		got[i] = string(f.Severity) + "/" + f.Resource
	}
	want := []string{"critical/a", "critical/c", "high/a", "low/b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: %v", got)
		}
	}
}

func TestRenderTextFormat(t *testing.T) {
	res := Result{Risk: RiskHigh, Summary: "s", Guidance: "g", Findings: []Finding{
		{Severity: RiskHigh, Category: "security", Resource: "r", Detail: "d"},
	}}
	out := RenderText(res)
	if !strings.HasPrefix(out, "risk: high\n") {
		t.Fatalf("text output must start with the risk line:\n%s", out)
	}
	if !strings.Contains(out, "finding: [high/security] r d") {
		t.Fatalf("finding line missing:\n%s", out)
	}
}

package plan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const jsonPlan = `{
  "format_version": "1.2",
  "terraform_version": "1.7.0",
  "resource_changes": [
    {
      "address": "aws_iam_role.admin",
      "mode": "managed",
      "type": "aws_iam_role",
      "name": "admin",
      "change": {"actions": ["delete"], "before": {}, "after": null}
    },
    {
      "address": "aws_s3_bucket.logs",
      "mode": "managed",
      "type": "aws_s3_bucket",
      "name": "logs",
      "change": {"actions": ["create"], "before": null, "after": {}}
    }
  ]
}`

func TestLoadEmptyStdin(t *testing.T) {
	_, err := Load(context.Background(), "", Options{Stdin: strings.NewReader("  \n")})
	if err == nil {
		t.Fatalf("expected error for empty input")
	}
	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError, got %T: %v", err, err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.tfplan"), Options{})
	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError, got %v", err)
	}
}

func TestLoadTextPlan(t *testing.T) {
	doc, err := Load(context.Background(), "", Options{Stdin: strings.NewReader("Plan: 1 to add, 0 to change, 0 to destroy.\n")})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if doc.Format != FormatText {
		t.Fatalf("expected text format, got %s", doc.Format)
	}
	if len(doc.Changes) != 0 {
		t.Fatalf("expected no extracted changes for text plan")
	}
	if doc.Truncated {
		t.Fatalf("small plan should not be truncated")
	}
}

func TestLoadJSONPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	if err := os.WriteFile(path, []byte(jsonPlan), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := Load(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if doc.Format != FormatJSON {
		t.Fatalf("expected json format, got %s", doc.Format)
	}
	if len(doc.Changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(doc.Changes))
	}
	if doc.Changes[0].Address != "aws_iam_role.admin" {
		t.Fatalf("unexpected first change: %+v", doc.Changes[0])
	}
	if doc.Changes[0].Criticality != CritCritical {
		t.Fatalf("deleting an IAM role should be critical, got %s", doc.Changes[0].Criticality)
	}
	if doc.Changes[1].Criticality != CritLow {
		t.Fatalf("creating a bucket should be low, got %s", doc.Changes[1].Criticality)
	}
}

func TestLoadDeterministic(t *testing.T) {
	input := strings.Repeat("resource \"aws_instance\" \"web\" {}\n", 100)

	first, err := Load(context.Background(), "", Options{Stdin: strings.NewReader(input), MaxBytes: 500})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	second, err := Load(context.Background(), "", Options{Stdin: strings.NewReader(input), MaxBytes: 500})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if first.Raw != second.Raw {
		t.Fatalf("identical input produced different documents")
	}
	if !first.Truncated {
		t.Fatalf("expected truncation flag for oversized input")
	}
}

package plan

import (
	"strings"
	"testing"
)

func TestTruncateBelowCeiling(t *testing.T) {
	out, truncated := Truncate("short plan", 100)
	if truncated || out != "short plan" {
		t.Fatalf("small input must pass through unchanged")
	}
}

func TestTruncateDisabled(t *testing.T) {
	input := strings.Repeat("x", 1000)
	out, truncated := Truncate(input, 0)
	if truncated || out != input {
		t.Fatalf("ceiling 0 must disable truncation")
	}
}

func TestTruncateKeepsHeadAndTail(t *testing.T) {
	input := "HEAD" + strings.Repeat("m", 5000) + "TAIL"
	out, truncated := Truncate(input, 1000)
	if !truncated {
		t.Fatalf("expected truncation")
	}
	if len(out) > 1000 {
		t.Fatalf("output exceeds ceiling: %d", len(out))
	}
	if !strings.HasPrefix(out, "HEAD") {
		t.Fatalf("head of plan lost")
	}
	if !strings.HasSuffix(out, "TAIL") {
		t.Fatalf("tail of plan lost")
	}
	if !strings.Contains(out, "[truncated]") {
		t.Fatalf("missing truncation marker")
	}
}

// Package prompt renders the analyzer's model prompts from placeholder
// templates. Default templates are compiled into the binary; a directory of
// overrides can be configured for prompt tuning without a rebuild.
package prompt

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed templates/*.txt
var templates embed.FS

// Snapshot carries everything a template may reference. All fields are
// plain strings or counts derived from the plan; nothing time-dependent is
// allowed here, so rendering is deterministic for identical plan input.
type Snapshot struct {
	Repo              string
	PRNumber          string
	Workspace         string
	Project           string
	TotalChanges      int
	CriticalCount     int
	HighCount         int
	LocalRisk         string
	AffectedServices  string
	EstimatedDowntime string
	Truncated         bool
	CriticalChanges   string
	Plan              string
	CodeDiff          string
	TFConfig          string
	PriorAnalysis     string
}

// Load returns the named template ("analyze", "context", "technical").
// When overrideDir is set, <overrideDir>/<name>.txt takes precedence over
// the embedded copy.
func Load(name, overrideDir string) (string, error) {
	if overrideDir != "" {
		path := filepath.Join(overrideDir, name+".txt")
		content, err := os.ReadFile(path)
		if err == nil {
			return string(content), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to read prompt template override: %w", err)
		}
	}
	content, err := templates.ReadFile("templates/" + name + ".txt")
	if err != nil {
		return "", fmt.Errorf("unknown prompt template %q: %w", name, err)
	}
	return string(content), nil
}

func Render(template string, snap Snapshot) string {
	out := template
	out = strings.ReplaceAll(out, "{REPO}", snap.Repo)
	out = strings.ReplaceAll(out, "{PR_NUMBER}", snap.PRNumber)
	out = strings.ReplaceAll(out, "{WORKSPACE}", snap.Workspace)
	out = strings.ReplaceAll(out, "{PROJECT}", snap.Project)
	out = strings.ReplaceAll(out, "{TOTAL_CHANGES}", fmt.Sprintf("%d", snap.TotalChanges))
	out = strings.ReplaceAll(out, "{CRITICAL_COUNT}", fmt.Sprintf("%d", snap.CriticalCount))
	out = strings.ReplaceAll(out, "{HIGH_COUNT}", fmt.Sprintf("%d", snap.HighCount))
	out = strings.ReplaceAll(out, "{LOCAL_RISK}", orNone(snap.LocalRisk))
	out = strings.ReplaceAll(out, "{AFFECTED_SERVICES}", orNone(snap.AffectedServices))
	out = strings.ReplaceAll(out, "{ESTIMATED_DOWNTIME}", orNone(snap.EstimatedDowntime))
	out = strings.ReplaceAll(out, "{TRUNCATED}", fmt.Sprintf("%t", snap.Truncated))
	out = strings.ReplaceAll(out, "{CRITICAL_CHANGES}", orNone(snap.CriticalChanges))
	out = strings.ReplaceAll(out, "{PLAN}", orNone(snap.Plan))
	out = strings.ReplaceAll(out, "{CODE_DIFF}", orNone(snap.CodeDiff))
	out = strings.ReplaceAll(out, "{TF_CONFIG}", orNone(snap.TFConfig))
	out = strings.ReplaceAll(out, "{PRIOR_ANALYSIS}", orNone(snap.PriorAnalysis))
	return out
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "<none>"
	}
	return s
}

package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Header carries per-invocation metadata for the rendered comment. The
// timestamp lives only here, never in the prompt or the verdict JSON, so
// everything derived from the plan stays deterministic.
type Header struct {
	Repo      string
	PullNum   string
	Workspace string
	Project   string
	Timestamp string
	Services  []string
	Downtime  string
	Truncated bool
}

var riskEmoji = map[RiskLevel]string{
	RiskCritical: "🚨",
	RiskHigh:     "⚠️",
	RiskMedium:   "📋",
	RiskLow:      "✅",
}

// Render produces the markdown body the host tool posts verbatim as a
// pull-request comment. Field order is fixed; findings must be sorted by
// the caller. The embedded JSON block round-trips through Parse.
func Render(res Result, hdr Header) string {
	var b strings.Builder

	b.WriteString("## 🤖 AI Terraform Plan Analysis\n\n")

	services := "None"
	if len(hdr.Services) > 0 {
		services = strings.Join(hdr.Services, ", ")
	}
	downtime := hdr.Downtime
	if downtime == "" {
		downtime = "None expected"
	}
	fmt.Fprintf(&b, "%s **RISK: %s** | 🎯 **SERVICES: %s** | ⏱️ **DOWNTIME: %s**\n\n",
		riskEmoji[res.Risk], strings.ToUpper(string(res.Risk)), services, downtime)

	fmt.Fprintf(&b, "Repository: %s | PR: #%s | Workspace: %s | Project: %s\n",
		hdr.Repo, hdr.PullNum, hdr.Workspace, hdr.Project)
	fmt.Fprintf(&b, "Timestamp: %s\n\n", hdr.Timestamp)

	fmt.Fprintf(&b, "risk: %s\n", res.Risk)
	if hdr.Truncated {
		b.WriteString("note: plan content was truncated before analysis\n")
	}
	b.WriteString("\n")

	if res.Unparsed {
		b.WriteString("### Raw Analysis\n\n")
		b.WriteString(strings.TrimSpace(res.Raw))
		b.WriteString("\n\n_The model response could not be parsed into a structured verdict._\n")
		return b.String()
	}

	b.WriteString("### Summary\n\n")
	b.WriteString(strings.TrimSpace(res.Summary))
	b.WriteString("\n\n")

	b.WriteString("### Findings\n\n")
	if len(res.Findings) == 0 {
		b.WriteString("No findings.\n")
	} else {
		for _, f := range res.Findings {
			if f.Resource != "" {
				fmt.Fprintf(&b, "- **%s** [%s] `%s`: %s\n", f.Severity, f.Category, f.Resource, f.Detail)
			} else {
				fmt.Fprintf(&b, "- **%s** [%s]: %s\n", f.Severity, f.Category, f.Detail)
			}
		}
	}
	b.WriteString("\n")

	b.WriteString("### Deployment Guidance\n\n")
	b.WriteString(strings.TrimSpace(res.Guidance))
	b.WriteString("\n")

	if res.ContextAnalysis != "" {
		b.WriteString("\n### Operational Impact\n\n")
		b.WriteString(strings.TrimSpace(res.ContextAnalysis))
		b.WriteString("\n")
	}
	if res.TechnicalAnalysis != "" {
		b.WriteString("\n### Technical Analysis\n\n")
		b.WriteString(strings.TrimSpace(res.TechnicalAnalysis))
		b.WriteString("\n")
	}

	b.WriteString("\n<details>\n<summary>Verdict JSON</summary>\n\n```json\n")
	b.WriteString(verdictJSON(res))
	b.WriteString("\n```\n\n</details>\n")

	return b.String()
}

// RenderText is the plain variant for --format text.
func RenderText(res Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "risk: %s\n", res.Risk)
	if res.Unparsed {
		b.WriteString("unparsed: true\n")
		b.WriteString(strings.TrimSpace(res.Raw))
		b.WriteString("\n")
		return b.String()
	}
	fmt.Fprintf(&b, "summary: %s\n", res.Summary)
	for _, f := range res.Findings {
		fmt.Fprintf(&b, "finding: [%s/%s] %s %s\n", f.Severity, f.Category, f.Resource, f.Detail)
	}
	fmt.Fprintf(&b, "guidance: %s\n", res.Guidance)
	return b.String()
}

func verdictJSON(res Result) string {
	if res.Findings == nil {
		res.Findings = []Finding{}
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

package cli

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/evilvant/ai-terraform-atlantis/internal/analysis"
	"github.com/evilvant/ai-terraform-atlantis/internal/gitcontext"
	"github.com/evilvant/ai-terraform-atlantis/internal/plan"
	"github.com/evilvant/ai-terraform-atlantis/internal/prompt"
	"github.com/evilvant/ai-terraform-atlantis/internal/provider"
	"github.com/evilvant/ai-terraform-atlantis/internal/redact"
	"github.com/evilvant/ai-terraform-atlantis/internal/store"
)

const (
	maxDiffBytes   = 10000
	maxConfigBytes = 20000
	// Critical changes listed in the prompt, matching the original
	// analyzer's context window budget.
	maxPromptChanges = 10
)

func NewAnalyzeCmd() *cobra.Command {
	var format string
	var deep bool
	var noContext bool

	cmd := &cobra.Command{
		Use:   "analyze [planfile]",
		Short: "Analyze a Terraform plan and print the risk verdict",
		Long: "Reads a Terraform plan from the given path, $PLANFILE, or stdin, asks the\n" +
			"configured Bedrock model for a risk assessment, and prints a verdict the\n" +
			"host tool can post as a pull-request comment.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			source := ""
			if len(args) > 0 {
				source = args[0]
			} else if app.Config.PlanFile != "" {
				source = app.Config.PlanFile
			}

			doc, err := plan.Load(ctx, source, plan.Options{
				TerraformBin: app.Config.TerraformBin,
				MaxBytes:     app.Config.MaxPlanBytes,
				Stdin:        cmd.InOrStdin(),
			})
			if err != nil {
				return err
			}

			progress(cmd, "loaded plan (%d resource changes)", len(doc.Changes))

			blast := plan.AssessBlastRadius(doc.Changes)

			workdir := ""
			if source != "" && source != "-" {
				if abs, err := filepath.Abs(source); err == nil {
					workdir = filepath.Dir(abs)
				}
			}

			var diffText, cfgText string
			if !noContext && workdir != "" {
				diffText = gitcontext.Diff(ctx, app.Git, workdir, app.Config.BaseBranch, maxDiffBytes)
				cfgText = gitcontext.CollectConfig(workdir, maxConfigBytes)
			}

			redactOn := app.Config.Redact
			snap := prompt.Snapshot{
				Repo:              app.Config.RepoOwner + "/" + app.Config.RepoName,
				PRNumber:          app.Config.PullNum,
				Workspace:         app.Config.Workspace,
				Project:           app.Config.ProjectName,
				TotalChanges:      len(doc.Changes),
				CriticalCount:     countCriticality(doc.Changes, plan.CritCritical),
				HighCount:         countCriticality(doc.Changes, plan.CritHigh),
				LocalRisk:         string(blast.Level),
				AffectedServices:  strings.Join(blast.AffectedServices, ", "),
				EstimatedDowntime: blast.EstimatedDowntime,
				Truncated:         doc.Truncated,
				CriticalChanges:   renderChanges(blast.CriticalChanges, maxPromptChanges),
				Plan:              redact.Optional(doc.Raw, redactOn),
				CodeDiff:          redact.Optional(diffText, redactOn),
				TFConfig:          redact.Optional(cfgText, redactOn),
			}

			template, err := prompt.Load("analyze", app.Config.PromptDir)
			if err != nil {
				return err
			}
			promptText := prompt.Render(template, snap)

			progress(cmd, "requesting analysis from %s", app.Config.TargetModelID())

			raw, err := app.Provider.Analyze(ctx, provider.Request{
				Prompt:    promptText,
				ModelID:   app.Config.ModelID,
				MaxTokens: app.Config.MaxTokens,
			})
			if err != nil {
				return err
			}

			res := analysis.Parse(raw)
			res.Risk = analysis.MaxRisk(res.Risk, analysis.ParseRiskLevel(string(blast.Level)))
			analysis.SortFindings(res.Findings)

			if deep {
				runDeepPasses(ctx, cmd, app, snap, &res)
			}

			hdr := analysis.Header{
				Repo:      snap.Repo,
				PullNum:   app.Config.PullNum,
				Workspace: app.Config.Workspace,
				Project:   app.Config.ProjectName,
				Timestamp: now(),
				Services:  blast.AffectedServices,
				Downtime:  blast.EstimatedDowntime,
				Truncated: doc.Truncated,
			}

			if err := appendAudit(app, doc, res); err != nil {
				progress(cmd, "warning: audit record not written: %v", err)
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			case "text":
				fmt.Fprint(out, analysis.RenderText(res))
				return nil
			default:
				fmt.Fprint(out, analysis.Render(res, hdr))
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "md", "md|text|json")
	cmd.Flags().BoolVar(&deep, "deep", false, "Add narrative context and technical passes")
	cmd.Flags().BoolVar(&noContext, "no-context", false, "Skip git diff and config collection")
	return cmd
}

// runDeepPasses adds the narrative sections of the original multi-pass
// analysis. They enrich the comment but never change the structured verdict
// or the exit code, so failures here only log.
func runDeepPasses(ctx context.Context, cmd *cobra.Command, app *App, snap prompt.Snapshot, res *analysis.Result) {
	contextTmpl, err := prompt.Load("context", app.Config.PromptDir)
	if err != nil {
		progress(cmd, "warning: deep pass skipped: %v", err)
		return
	}
	contextOut, err := app.Provider.Analyze(ctx, provider.Request{
		Prompt:    prompt.Render(contextTmpl, snap),
		ModelID:   app.Config.ModelID,
		MaxTokens: app.Config.MaxTokens,
	})
	if err != nil {
		progress(cmd, "warning: context pass failed: %v", err)
		return
	}
	res.ContextAnalysis = contextOut

	technicalTmpl, err := prompt.Load("technical", app.Config.PromptDir)
	if err != nil {
		progress(cmd, "warning: technical pass skipped: %v", err)
		return
	}
	snap.PriorAnalysis = contextOut
	technicalOut, err := app.Provider.Analyze(ctx, provider.Request{
		Prompt:    prompt.Render(technicalTmpl, snap),
		ModelID:   app.Config.ModelID,
		MaxTokens: app.Config.MaxTokens,
	})
	if err != nil {
		progress(cmd, "warning: technical pass failed: %v", err)
		return
	}
	res.TechnicalAnalysis = technicalOut
}

func appendAudit(app *App, doc *plan.Document, res analysis.Result) error {
	sum := sha256.Sum256([]byte(doc.Raw))
	verdict, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return app.Store.Append(store.Record{
		CreatedAt:  time.Now().UTC(),
		PlanSHA256: hex.EncodeToString(sum[:]),
		Repo:       app.Config.RepoOwner + "/" + app.Config.RepoName,
		PullNum:    app.Config.PullNum,
		Workspace:  app.Config.Workspace,
		Project:    app.Config.ProjectName,
		Risk:       string(res.Risk),
		Unparsed:   res.Unparsed,
		Verdict:    string(verdict),
		Raw:        res.Raw,
	})
}

func countCriticality(changes []plan.ResourceChange, level plan.Criticality) int {
	n := 0
	for _, rc := range changes {
		if rc.Criticality == level {
			n++
		}
	}
	return n
}

func renderChanges(changes []plan.ResourceChange, limit int) string {
	if len(changes) == 0 {
		return ""
	}
	if limit > 0 && len(changes) > limit {
		changes = changes[:limit]
	}
	var b strings.Builder
	for _, rc := range changes {
		fmt.Fprintf(&b, "- %s (%s): %s [%s]\n", rc.Address, rc.Type, strings.Join(rc.Actions, ", "), rc.Criticality)
	}
	return strings.TrimSpace(b.String())
}

// now returns the banner timestamp. TFRISK_NOW pins it for reproducible
// output in tests.
func now() string {
	if fixed := os.Getenv("TFRISK_NOW"); fixed != "" {
		return fixed
	}
	return time.Now().UTC().Format("2006-01-02 15:04:05 UTC")
}

var progressColor = color.New(color.FgCyan)

func progress(cmd *cobra.Command, format string, args ...any) {
	progressColor.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
}

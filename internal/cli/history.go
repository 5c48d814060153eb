package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var historyHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))

func NewHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent analyses from the local audit log",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			records, err := app.Store.Recent(limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "no analyses recorded")
				return nil
			}
			fmt.Fprintln(out, historyHeaderStyle.Render("WHEN                  RISK      PR                    PLAN"))
			for _, rec := range records {
				sha := rec.PlanSHA256
				if len(sha) > 12 {
					sha = sha[:12]
				}
				unparsed := ""
				if rec.Unparsed {
					unparsed = " (unparsed)"
				}
				fmt.Fprintf(out, "%s  %-8s  %s#%s %s  %s%s\n",
					rec.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
					rec.Risk, rec.Repo, rec.PullNum, rec.Workspace, sha, unparsed)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of records to show")
	return cmd
}

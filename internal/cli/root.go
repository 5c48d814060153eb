package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "tfrisk",
		Short:         "AI risk analysis for Terraform plans",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(configPath)
			if err != nil {
				return err
			}
			cmd.SetContext(withApp(cmd.Context(), app))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Override config path")

	root.AddCommand(NewAnalyzeCmd())
	root.AddCommand(NewDoctorCmd())
	root.AddCommand(NewHistoryCmd())
	root.AddCommand(NewVersionCmd())

	return root
}

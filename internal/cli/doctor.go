package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/spf13/cobra"
)

func NewDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check dependencies and configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			fmt.Fprintln(cmd.OutOrStdout(), "tfrisk doctor")

			if _, err := exec.LookPath(app.Config.TerraformBin); err != nil {
				return fmt.Errorf("terraform binary not found: %s", app.Config.TerraformBin)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "- terraform: ok")

			fmt.Fprintf(cmd.OutOrStdout(), "- region: %s\n", app.Config.Region)
			fmt.Fprintf(cmd.OutOrStdout(), "- model: %s\n", app.Config.TargetModelID())

			if hasEnvCredentials() {
				fmt.Fprintln(cmd.OutOrStdout(), "- credentials: environment")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "- credentials: not in environment (instance role may apply)")
			}

			if err := app.Provider.Ping(ctx); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "- provider: failed\n%v\n", err)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "- provider: ok")
			fmt.Fprintln(cmd.OutOrStdout(), "doctor checks passed")
			return nil
		},
	}
	return cmd
}

func hasEnvCredentials() bool {
	for _, key := range []string{"AWS_ACCESS_KEY_ID", "AWS_PROFILE", "AWS_ROLE_ARN", "AWS_CONTAINER_CREDENTIALS_RELATIVE_URI"} {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}

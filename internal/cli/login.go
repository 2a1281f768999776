package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noelruault/ecsh/internal/config"
	"github.com/noelruault/ecsh/internal/resolve"
	"github.com/noelruault/ecsh/internal/session"
)

var loginEnvironment string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Logs in to AWS",
	Long:  `Open the AWS console for a profile with 'aws-vault login'.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogin(cmd.Context(), cfg, loginEnvironment)
	},
}

func runLogin(ctx context.Context, c *config.Config, environment string) error {
	if err := session.CheckDependencies(rt.lookPath, c.VaultBinary, c.AWSBinary); err != nil {
		return err
	}

	profiles, err := rt.loadProfiles()
	if err != nil {
		return err
	}
	prof, err := resolve.Identity(ctx, rt.selector, profiles, environment)
	if err != nil {
		return fmt.Errorf("resolving profile: %w", err)
	}

	return rt.launcher(c).Login(ctx, prof.Name)
}

func init() {
	addEnvironmentFlag(loginCmd, &loginEnvironment)
	rootCmd.AddCommand(loginCmd)
}

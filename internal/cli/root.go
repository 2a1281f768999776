// Package cli implements the ecsh command-line interface using Cobra.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/noelruault/ecsh/internal/config"
	"github.com/noelruault/ecsh/internal/log"
	"github.com/noelruault/ecsh/internal/ui"
)

var (
	verbose    bool
	jsonOut    bool
	configPath string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ecsh",
	Short: "Open a shell in an ECS container using aws-vault credentials",
	Long: `ecsh picks an aws-vault profile, a cluster, a running task and one of its
containers, prompting only for what was not given on the command line and
cannot be inferred, then opens an interactive session with the AWS CLI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.Init(log.Options{
			Verbose:    verbose,
			JSONFormat: jsonOut,
		})

		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute runs the root command, printing any error to stderr.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		ui.Error(err.Error())
		return err
	}
	return nil
}

// addEnvironmentFlag registers --environment/-e with its --profile/-p alias.
func addEnvironmentFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "environment", "e", "", "aws-vault profile to use (prompted when omitted)")
	cmd.Flags().StringVarP(target, "profile", "p", "", "alias for --environment")
	_ = cmd.Flags().MarkHidden("profile")
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "log in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file")
}

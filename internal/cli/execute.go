package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/noelruault/ecsh/internal/aws"
	"github.com/noelruault/ecsh/internal/config"
	"github.com/noelruault/ecsh/internal/log"
	"github.com/noelruault/ecsh/internal/resolve"
	"github.com/noelruault/ecsh/internal/session"
	"github.com/noelruault/ecsh/internal/ui"
	"github.com/noelruault/ecsh/internal/vault"
)

// expiryWarning is how close to expiry bridged credentials trigger a warning.
const expiryWarning = 5 * time.Minute

// ExecuteOptions are the inputs to the execute cascade. Empty fields are
// resolved from the API or by prompting.
type ExecuteOptions struct {
	Environment string
	Cluster     string
	Task        string
	Container   string
	Region      string
	Command     string
	EndpointURL string
}

var executeOpts ExecuteOptions

var executeCmd = &cobra.Command{
	Use:   "execute [flags] [TASK]",
	Short: "Execute bash in an ECS container",
	Long: `Resolve a profile, cluster, task and container, then open an interactive
session in the container with 'aws ecs execute-command'.

Anything not given is listed and offered as a menu. A task with a single
container is entered directly.`,
	Example: `  ecsh execute
  ecsh execute -e staging -c api-cluster --con web
  ecsh execute -e production arn:aws:ecs:eu-west-1:123456789012:task/api-cluster/0f1e2d3c`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := executeOpts
		if len(args) == 1 {
			opts.Task = args[0]
		}
		return runExecute(cmd.Context(), cfg, opts)
	},
}

func runExecute(ctx context.Context, c *config.Config, opts ExecuteOptions) error {
	if err := session.CheckDependencies(rt.lookPath, c.VaultBinary, c.AWSBinary); err != nil {
		return err
	}

	profiles, err := rt.loadProfiles()
	if err != nil {
		return err
	}
	prof, err := resolve.Identity(ctx, rt.selector, profiles, opts.Environment)
	if err != nil {
		return fmt.Errorf("resolving profile: %w", err)
	}
	if chain := profiles.Associated(prof.Name); len(chain) > 0 {
		log.Debug("profile draws credentials from", "profile", prof.Name, "sources", chain)
	}

	bridged, err := rt.bridge(c).Exec(ctx, prof.Name)
	if err != nil {
		return err
	}
	// The bridged variables stay visible to anything this process spawns.
	if err := vault.Apply(bridged.Env, rt.setenv); err != nil {
		return err
	}
	creds := bridged.Credentials
	if !creds.Expires.IsZero() && time.Until(creds.Expires) < expiryWarning {
		ui.Warnf("credentials for %s expire at %s", prof.Name, creds.Expires.Local().Format(time.Kitchen))
	}

	region := c.ResolveRegion(opts.Region, creds.Region)
	endpoint := opts.EndpointURL
	if endpoint == "" {
		endpoint = c.EndpointURL
	}
	client, err := rt.newClient(ctx, aws.Options{
		Region:      region,
		EndpointURL: endpoint,
		Credentials: &creds,
	})
	if err != nil {
		return err
	}

	id, err := client.GetCallerIdentity(ctx)
	if err != nil {
		return fmt.Errorf("credentials for profile %q were rejected: %w", prof.Name, err)
	}
	log.Info("using identity", "profile", prof.Name, "account", id.Account, "arn", id.ARN, "region", client.GetRegion())

	cluster, err := resolve.Cluster(ctx, rt.selector, client, opts.Cluster)
	if err != nil {
		return fmt.Errorf("resolving cluster: %w", err)
	}
	t, err := resolve.Task(ctx, rt.selector, client, cluster, opts.Task)
	if err != nil {
		return fmt.Errorf("resolving task in %s: %w", resolve.ClusterName(cluster), err)
	}
	ctr, err := resolve.Container(ctx, rt.selector, t, opts.Container)
	if err != nil {
		return fmt.Errorf("resolving container: %w", err)
	}

	command := opts.Command
	if command == "" {
		command = c.ShellCommand
	}
	ui.Infof("Connecting to %s in %s (%s)", ui.Bold(ctr.Name), ui.Bold(t.Name), t.ARN)
	return rt.launcher(c).Exec(ctx, session.Target{
		Cluster:   cluster,
		TaskARN:   t.ARN,
		Container: ctr.Name,
		Region:    region,
	}, &creds, command)
}

func init() {
	f := executeCmd.Flags()
	addEnvironmentFlag(executeCmd, &executeOpts.Environment)
	f.StringVar(&executeOpts.Container, "container", "", "name or ARN of the container to connect to")
	f.StringVar(&executeOpts.Container, "con", "", "alias for --container")
	f.StringVarP(&executeOpts.Cluster, "cluster", "c", "", "name or ARN of the cluster")
	f.StringVarP(&executeOpts.Region, "region", "r", "", "AWS region (defaults to the profile's region)")
	f.StringVar(&executeOpts.Command, "command", "", "command to run in the container (default from config, /usr/bin/env bash)")
	f.StringVar(&executeOpts.EndpointURL, "endpoint-url", "", "custom ECS/STS endpoint")

	rootCmd.AddCommand(executeCmd)
}

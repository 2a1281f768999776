package cli

import (
	"context"
	"os"
	"os/exec"

	"github.com/noelruault/ecsh/internal/aws"
	"github.com/noelruault/ecsh/internal/config"
	"github.com/noelruault/ecsh/internal/profile"
	"github.com/noelruault/ecsh/internal/resolve"
	"github.com/noelruault/ecsh/internal/session"
	"github.com/noelruault/ecsh/internal/ui/prompt"
	"github.com/noelruault/ecsh/internal/vault"
)

// orchestrator is what the cascade needs from the AWS client.
type orchestrator interface {
	resolve.ClusterLister
	resolve.TaskAPI
	GetCallerIdentity(ctx context.Context) (*aws.CallerIdentity, error)
	GetRegion() string
}

type credentialBridge interface {
	Exec(ctx context.Context, profile string) (*vault.Result, error)
}

type launcher interface {
	Exec(ctx context.Context, t session.Target, creds *vault.Credentials, command string) error
	Login(ctx context.Context, profile string) error
}

// runtime holds the collaborators commands talk to, swapped out in tests.
type runtime struct {
	lookPath     func(string) (string, error)
	setenv       func(key, value string) error
	selector     resolve.Selector
	loadProfiles func() (resolve.Profiles, error)
	bridge       func(c *config.Config) credentialBridge
	newClient    func(ctx context.Context, opts aws.Options) (orchestrator, error)
	launcher     func(c *config.Config) launcher
}

func defaultRuntime() *runtime {
	return &runtime{
		lookPath: exec.LookPath,
		setenv:   os.Setenv,
		selector: prompt.NewMenu(),
		loadProfiles: func() (resolve.Profiles, error) {
			return profile.LoadDefault()
		},
		bridge: func(c *config.Config) credentialBridge {
			return vault.NewBridge(c.VaultBinary)
		},
		newClient: func(ctx context.Context, opts aws.Options) (orchestrator, error) {
			return aws.NewClient(ctx, opts)
		},
		launcher: func(c *config.Config) launcher {
			return session.NewLauncher(c.AWSBinary, c.VaultBinary)
		},
	}
}

var rt = defaultRuntime()

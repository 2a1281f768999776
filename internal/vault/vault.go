// Package vault bridges short-lived AWS credentials out of aws-vault.
//
// aws-vault is asked to run `env | grep ^AWS_` inside its credential-injected
// subshell. The captured dump is parsed into key/value pairs, which become
// both an explicit Credentials value and, once applied, process environment
// variables.
package vault

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/noelruault/ecsh/internal/log"
)

// DefaultBinary is the executable name looked up on PATH.
const DefaultBinary = "aws-vault"

// dumpScript runs inside the vault subshell; the grep keeps everything but
// the AWS_ variables out of our process.
const dumpScript = "env | grep ^AWS_"

// Runner executes a command and returns its standard output.
type Runner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Stderr receives the command's stderr as it is written, so prompts for
	// an MFA token or keyring passphrase reach the operator. Defaults to
	// os.Stderr.
	Stderr io.Writer
}

// Output runs the command, returning stdout. A non-zero exit is reported with
// the command's stderr.
func (r ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	passthrough := r.Stderr
	if passthrough == nil {
		passthrough = os.Stderr
	}

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = io.MultiWriter(passthrough, &stderr)
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
	}
	return stdout.Bytes(), nil
}

// Bridge runs aws-vault to obtain credentials for a profile.
type Bridge struct {
	Binary string
	Runner Runner
}

// NewBridge returns a Bridge for the given vault executable. An empty binary
// selects DefaultBinary.
func NewBridge(binary string) *Bridge {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Bridge{Binary: binary, Runner: ExecRunner{}}
}

// Exec runs the vault in exec mode for profile and parses the dump it prints.
// The environment is not modified; call Apply with the result for that.
func (b *Bridge) Exec(ctx context.Context, profile string) (*Result, error) {
	args := []string{"exec", profile, "--", "sh", "-c", dumpScript}
	log.Debug("running vault", "binary", b.Binary, "profile", profile)

	out, err := b.Runner.Output(ctx, b.Binary, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain credentials for profile %q: %w", profile, err)
	}

	res, err := ParseDump(string(out))
	if err != nil {
		return nil, fmt.Errorf("credentials for profile %q: %w", profile, err)
	}
	log.Debug("bridged credentials", "profile", profile, "variables", len(res.Env), "expires", res.Credentials.Expires)
	return res, nil
}

// Apply merges env into the process environment, overwriting variables that
// already exist. setenv is usually os.Setenv.
func Apply(env map[string]string, setenv func(key, value string) error) error {
	for k, v := range env {
		if err := setenv(k, v); err != nil {
			return fmt.Errorf("failed to set %s: %w", k, err)
		}
	}
	return nil
}

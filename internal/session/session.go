// Package session hands the terminal over to the AWS CLI or aws-vault once
// the cascade has resolved everything.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"

	"github.com/containerd/errdefs"

	"github.com/noelruault/ecsh/internal/log"
	"github.com/noelruault/ecsh/internal/vault"
)

// DefaultCommand is run in the container when none is configured.
const DefaultCommand = "/usr/bin/env bash"

// DependencyError reports a required executable missing from PATH.
type DependencyError struct {
	Binary string
	Name   string
	Fix    string
}

func (e *DependencyError) Error() string {
	msg := fmt.Sprintf("failed to find %s (%s). Is it installed and in your PATH?", e.Name, e.Binary)
	if e.Fix != "" {
		msg += "\n\n  " + e.Fix
	}
	return msg
}

// Unwrap classifies the error as a failed precondition.
func (e *DependencyError) Unwrap() error {
	return errdefs.ErrFailedPrecondition
}

// CheckDependencies verifies both executables can be found. lookPath is
// usually exec.LookPath.
func CheckDependencies(lookPath func(string) (string, error), vaultBinary, awsBinary string) error {
	deps := []DependencyError{
		{Binary: vaultBinary, Name: "aws-vault", Fix: "Install from https://github.com/99designs/aws-vault"},
		{Binary: awsBinary, Name: "the AWS CLI", Fix: "Install from https://aws.amazon.com/cli/"},
	}
	for _, d := range deps {
		path, err := lookPath(d.Binary)
		if err != nil {
			return &d
		}
		log.Debug("found dependency", "binary", d.Binary, "path", path)
	}
	return nil
}

// Target is the resolved container to open a session in.
type Target struct {
	Cluster   string
	TaskARN   string
	Container string
	Region    string
}

// Launcher spawns interactive child processes attached to the terminal.
type Launcher struct {
	AWSBinary   string
	VaultBinary string
	// Run starts cmd and waits for it; defaults to (*exec.Cmd).Run.
	Run func(cmd *exec.Cmd) error
}

// NewLauncher returns a Launcher for the given executables.
func NewLauncher(awsBinary, vaultBinary string) *Launcher {
	return &Launcher{
		AWSBinary:   awsBinary,
		VaultBinary: vaultBinary,
		Run:         (*exec.Cmd).Run,
	}
}

// ExecArgs returns the aws CLI arguments for an interactive execute-command.
func ExecArgs(t Target, command string) []string {
	if command == "" {
		command = DefaultCommand
	}
	args := []string{
		"ecs", "execute-command",
		"--cluster", t.Cluster,
		"--task", t.TaskARN,
		"--container", t.Container,
		"--command", command,
		"--interactive",
	}
	if t.Region != "" {
		args = append(args, "--region", t.Region)
	}
	return args
}

// Exec opens an interactive command in the target container. The bridged
// credentials are passed to the child explicitly, on top of the process
// environment. ctx only gates the start; once running, the child owns the
// terminal until it exits.
func (l *Launcher) Exec(ctx context.Context, t Target, creds *vault.Credentials, command string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cmd := exec.Command(l.AWSBinary, ExecArgs(t, command)...)
	cmd.Env = os.Environ()
	if creds != nil {
		cmd.Env = append(cmd.Env, creds.Environ()...)
	}
	log.Debug("starting session", "cluster", t.Cluster, "task", t.TaskARN, "container", t.Container)
	return l.attach(cmd)
}

// Login opens the AWS console for profile through aws-vault.
func (l *Launcher) Login(ctx context.Context, profile string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cmd := exec.Command(l.VaultBinary, "login", profile)
	log.Debug("logging in", "profile", profile)
	return l.attach(cmd)
}

// attach runs cmd on the terminal. Ctrl+C reaches the whole foreground
// process group; the child decides what to do with it (the aws CLI forwards
// it to the remote shell) while this process keeps waiting.
func (l *Launcher) attach(cmd *exec.Cmd) error {
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	go func() {
		for range interrupts {
			log.Debug("interrupt left to child", "binary", cmd.Args[0])
		}
	}()
	defer func() {
		signal.Stop(interrupts)
		close(interrupts)
	}()

	run := l.Run
	if run == nil {
		run = (*exec.Cmd).Run
	}
	if err := run(cmd); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.ExitCode() < 0 {
				return fmt.Errorf("%s was terminated (%s)", cmd.Args[0], exitErr.ProcessState)
			}
			return fmt.Errorf("%s exited with status %d", cmd.Args[0], exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run %s: %w", cmd.Args[0], err)
	}
	return nil
}

//go:build unix

package vault

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunnerPassesStderrThrough(t *testing.T) {
	var stderr bytes.Buffer
	r := ExecRunner{Stderr: &stderr}

	out, err := r.Output(context.Background(), "sh", "-c",
		"printf 'Enter MFA code for arn:aws:iam::1:mfa/ops: ' >&2; echo AWS_ACCESS_KEY_ID=X")
	require.NoError(t, err)

	assert.Equal(t, "AWS_ACCESS_KEY_ID=X\n", string(out))
	assert.Equal(t, "Enter MFA code for arn:aws:iam::1:mfa/ops: ", stderr.String())
}

func TestExecRunnerFailureKeepsStderr(t *testing.T) {
	var stderr bytes.Buffer
	r := ExecRunner{Stderr: &stderr}

	_, err := r.Output(context.Background(), "sh", "-c", "echo 'profile nope not found' >&2; exit 3")
	require.Error(t, err)

	assert.Contains(t, err.Error(), "profile nope not found")
	assert.Contains(t, stderr.String(), "profile nope not found")
}

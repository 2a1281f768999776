package vault

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	out  string
	err  error
	name string
	args []string
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	f.name = name
	f.args = args
	return []byte(f.out), f.err
}

func TestParseDumpTwoPairs(t *testing.T) {
	res, err := ParseDump("AWS_ACCESS_KEY_ID=X\nAWS_SECRET_ACCESS_KEY=Y\n")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"AWS_ACCESS_KEY_ID":     "X",
		"AWS_SECRET_ACCESS_KEY": "Y",
	}, res.Env)
	assert.Equal(t, "X", res.Credentials.AccessKeyID)
	assert.Equal(t, "Y", res.Credentials.SecretAccessKey)
	assert.Empty(t, res.Credentials.SessionToken)
}

func TestParseDumpFullSession(t *testing.T) {
	dump := "AWS_VAULT=prod\n" +
		"AWS_REGION=eu-west-1\n" +
		"AWS_ACCESS_KEY_ID=ASIAEXAMPLE\n" +
		"AWS_SECRET_ACCESS_KEY=abc/def+ghi\n" +
		"AWS_SESSION_TOKEN=FwoGZXIvYXdzEJr//////////wEaDA==\n" +
		"AWS_CREDENTIAL_EXPIRATION=2026-10-15T12:00:00Z\n"

	res, err := ParseDump(dump)
	require.NoError(t, err)

	assert.Len(t, res.Env, 6)
	assert.Equal(t, "abc/def+ghi", res.Credentials.SecretAccessKey)
	assert.Equal(t, "FwoGZXIvYXdzEJr//////////wEaDA==", res.Credentials.SessionToken)
	assert.Equal(t, "eu-west-1", res.Credentials.Region)
	assert.Equal(t, time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC), res.Credentials.Expires.UTC())
}

func TestParseDumpDefaultRegionFallback(t *testing.T) {
	res, err := ParseDump("AWS_ACCESS_KEY_ID=X\nAWS_SECRET_ACCESS_KEY=Y\nAWS_DEFAULT_REGION=us-west-2\n")
	require.NoError(t, err)
	assert.Equal(t, "us-west-2", res.Credentials.Region)
}

func TestParseDumpEmpty(t *testing.T) {
	for _, dump := range []string{"", "\n", "   \n\n"} {
		_, err := ParseDump(dump)
		require.Error(t, err)
		assert.True(t, errdefs.IsInvalidArgument(err))
		assert.True(t, errors.Is(err, ErrEmptyDump))
	}
}

func TestParseDumpWithoutKeys(t *testing.T) {
	_, err := ParseDump("AWS_VAULT=prod\n")
	require.Error(t, err)
	assert.True(t, errdefs.IsInvalidArgument(err))
}

func TestCredentialsEnviron(t *testing.T) {
	c := Credentials{AccessKeyID: "A", SecretAccessKey: "S", SessionToken: "T", Region: "eu-west-1"}
	assert.Equal(t, []string{
		"AWS_ACCESS_KEY_ID=A",
		"AWS_SECRET_ACCESS_KEY=S",
		"AWS_SESSION_TOKEN=T",
		"AWS_REGION=eu-west-1",
		"AWS_DEFAULT_REGION=eu-west-1",
	}, c.Environ())

	bare := Credentials{AccessKeyID: "A", SecretAccessKey: "S"}
	assert.Len(t, bare.Environ(), 2)
}

func TestBridgeExecAndApply(t *testing.T) {
	runner := &fakeRunner{out: "AWS_ACCESS_KEY_ID=X\nAWS_SECRET_ACCESS_KEY=Y\n"}
	b := &Bridge{Binary: "aws-vault", Runner: runner}

	res, err := b.Exec(context.Background(), "staging")
	require.NoError(t, err)

	assert.Equal(t, "aws-vault", runner.name)
	assert.Equal(t, []string{"exec", "staging", "--", "sh", "-c", "env | grep ^AWS_"}, runner.args)

	t.Setenv("AWS_ACCESS_KEY_ID", "stale")
	require.NoError(t, Apply(res.Env, func(k, v string) error {
		t.Setenv(k, v)
		return nil
	}))
	assert.Equal(t, "X", os.Getenv("AWS_ACCESS_KEY_ID"))
	assert.Equal(t, "Y", os.Getenv("AWS_SECRET_ACCESS_KEY"))
}

func TestBridgeExecEmptyDumpFails(t *testing.T) {
	b := &Bridge{Binary: "aws-vault", Runner: &fakeRunner{}}
	_, err := b.Exec(context.Background(), "staging")
	require.Error(t, err)
	assert.True(t, errdefs.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), `"staging"`)
}

func TestBridgeExecRunnerFailure(t *testing.T) {
	b := &Bridge{Binary: "aws-vault", Runner: &fakeRunner{err: errors.New("exit status 1: profile not found")}}
	_, err := b.Exec(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile not found")
}

func TestApplyStopsOnError(t *testing.T) {
	err := Apply(map[string]string{"AWS_X": "1"}, func(string, string) error {
		return errors.New("boom")
	})
	assert.ErrorContains(t, err, "AWS_X")
}

func TestNewBridgeDefaultBinary(t *testing.T) {
	assert.Equal(t, DefaultBinary, NewBridge("").Binary)
	assert.Equal(t, "/opt/bin/aws-vault", NewBridge("/opt/bin/aws-vault").Binary)
}

func TestParseDumpKeepsValuesVerbatim(t *testing.T) {
	t.Setenv("HOME", "/root")

	tests := []struct {
		name   string
		secret string
	}{
		{"dollar", "abc $HOME"},
		{"braced dollar", "abc${HOME}def"},
		{"hash", "abc#def"},
		{"spaced hash", "x #y"},
		{"single quotes", "'quoted'"},
		{"double quotes", `"quoted"`},
		{"equals", "a=b=="},
		{"surrounding spaces", "  padded  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseDump("AWS_ACCESS_KEY_ID=X\nAWS_SECRET_ACCESS_KEY=" + tt.secret + "\n")
			require.NoError(t, err)
			assert.Equal(t, tt.secret, res.Credentials.SecretAccessKey)
			assert.Equal(t, tt.secret, res.Env["AWS_SECRET_ACCESS_KEY"])
		})
	}
}

func TestParseDumpRejectsLineWithoutDelimiter(t *testing.T) {
	_, err := ParseDump("AWS_ACCESS_KEY_ID=X\ngarbage\n")
	require.Error(t, err)
	assert.True(t, errdefs.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseDumpCRLF(t *testing.T) {
	res, err := ParseDump("AWS_ACCESS_KEY_ID=X\r\nAWS_SECRET_ACCESS_KEY=Y\r\n")
	require.NoError(t, err)
	assert.Equal(t, "Y", res.Credentials.SecretAccessKey)
}

func TestParseDumpExpiry(t *testing.T) {
	base := "AWS_ACCESS_KEY_ID=X\nAWS_SECRET_ACCESS_KEY=Y\n"
	want := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		dump string
		want time.Time
	}{
		{"credential expiration", base + "AWS_CREDENTIAL_EXPIRATION=2026-10-16T09:30:00Z\n", want},
		{"session expiration", base + "AWS_SESSION_EXPIRATION=2026-10-16T09:30:00Z\n", want},
		{"malformed falls back", base + "AWS_CREDENTIAL_EXPIRATION=soon\nAWS_SESSION_EXPIRATION=2026-10-16T09:30:00Z\n", want},
		{"malformed only", base + "AWS_CREDENTIAL_EXPIRATION=soon\n", time.Time{}},
		{"absent", base, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseDump(tt.dump)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(res.Credentials.Expires), "got %v", res.Credentials.Expires)
		})
	}
}

package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `[default]
region = eu-west-1

[profile staging]
region = eu-west-2
source_profile = base
role_arn = arn:aws:iam::111111111111:role/Developer

[profile base]

[profile production]
source_profile = staging
role_arn = arn:aws:iam::222222222222:role/Admin

[sso-session corp]
sso_start_url = https://corp.awsapps.com/start
`

const sampleCredentials = `[default]
aws_access_key_id = AKIADEFAULT

[legacy]
aws_access_key_id = AKIALEGACY

[base]
aws_access_key_id = AKIABASE
`

func writeFiles(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config")
	creds := filepath.Join(dir, "credentials")
	require.NoError(t, os.WriteFile(cfg, []byte(sampleConfig), 0600))
	require.NoError(t, os.WriteFile(creds, []byte(sampleCredentials), 0600))
	return cfg, creds
}

func TestNamesExcludeDefaultAndSort(t *testing.T) {
	set, err := Load(writeFiles(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"base", "legacy", "production", "staging"}, set.Names())
}

func TestGet(t *testing.T) {
	set, err := Load(writeFiles(t))
	require.NoError(t, err)

	p, err := set.Get("staging")
	require.NoError(t, err)
	assert.Equal(t, Profile{
		Name:          "staging",
		Region:        "eu-west-2",
		RoleARN:       "arn:aws:iam::111111111111:role/Developer",
		SourceProfile: "base",
	}, p)

	d, err := set.Get(DefaultName)
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", d.Region)

	_, err = set.Get("typo")
	require.Error(t, err)
	assert.True(t, errdefs.IsNotFound(err))
}

func TestAssociated(t *testing.T) {
	set, err := Load(writeFiles(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"staging", "base"}, set.Associated("production"))
	assert.Empty(t, set.Associated("legacy"))
}

func TestLoadMissingFiles(t *testing.T) {
	dir := t.TempDir()
	set, err := Load(filepath.Join(dir, "nope"), filepath.Join(dir, "nope-either"))
	require.NoError(t, err)
	assert.Empty(t, set.Names())
}

func TestFilesHonourEnvironment(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/tmp/cfg")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/tmp/creds")

	cfg, creds := Files()
	assert.Equal(t, "/tmp/cfg", cfg)
	assert.Equal(t, "/tmp/creds", creds)
}

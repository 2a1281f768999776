package vault

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/containerd/errdefs"

	"github.com/noelruault/ecsh/internal/log"
)

// ErrEmptyDump is returned when the vault printed no assignments at all.
var ErrEmptyDump = fmt.Errorf("vault produced no AWS_ variables: %w", errdefs.ErrInvalidArgument)

// expiryKeys are tried in order. aws-vault before 6.x only sets the second.
var expiryKeys = []string{"AWS_CREDENTIAL_EXPIRATION", "AWS_SESSION_EXPIRATION"}

// Credentials is the explicit credential set extracted from a dump.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Region          string
	Expires         time.Time // zero when the vault did not report one
}

// Environ renders the credentials as KEY=value pairs for a child process.
func (c Credentials) Environ() []string {
	env := []string{
		"AWS_ACCESS_KEY_ID=" + c.AccessKeyID,
		"AWS_SECRET_ACCESS_KEY=" + c.SecretAccessKey,
	}
	if c.SessionToken != "" {
		env = append(env, "AWS_SESSION_TOKEN="+c.SessionToken)
	}
	if c.Region != "" {
		env = append(env, "AWS_REGION="+c.Region, "AWS_DEFAULT_REGION="+c.Region)
	}
	return env
}

// Result is a parsed dump.
type Result struct {
	// Env holds every assignment from the dump, verbatim.
	Env         map[string]string
	Credentials Credentials
}

// ParseDump parses `env | grep AWS_` output: one KEY=value per line, split
// on the first '='. Values are taken as printed; there is no quoting,
// comment or variable expansion. At least one assignment and a key pair are
// required.
func ParseDump(dump string) (*Result, error) {
	env := make(map[string]string)

	sc := bufio.NewScanner(strings.NewReader(dump))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("malformed credential dump: line %d is not KEY=value: %w", n, errdefs.ErrInvalidArgument)
		}
		env[key] = value
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("malformed credential dump: %v: %w", err, errdefs.ErrInvalidArgument)
	}
	if len(env) == 0 {
		return nil, ErrEmptyDump
	}

	creds := Credentials{
		AccessKeyID:     env["AWS_ACCESS_KEY_ID"],
		SecretAccessKey: env["AWS_SECRET_ACCESS_KEY"],
		SessionToken:    env["AWS_SESSION_TOKEN"],
		Region:          firstNonEmpty(env["AWS_REGION"], env["AWS_DEFAULT_REGION"]),
		Expires:         expiry(env),
	}
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return nil, fmt.Errorf("credential dump lacks AWS_ACCESS_KEY_ID or AWS_SECRET_ACCESS_KEY: %w", errdefs.ErrInvalidArgument)
	}

	return &Result{Env: env, Credentials: creds}, nil
}

// expiry returns the first parseable expiration, or the zero time.
func expiry(env map[string]string) time.Time {
	for _, key := range expiryKeys {
		raw := env[key]
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			log.Debug("ignoring unparseable credential expiry", "key", key, "value", raw, "error", err)
			continue
		}
		return t
	}
	return time.Time{}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Package profile discovers the named AWS profiles an operator can pick from.
//
// Profiles come from the shared config file (sections "profile NAME" and
// "default") and the shared credentials file (sections "NAME").
package profile

import (
	"fmt"
	"os"
	"sort"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/containerd/errdefs"
	"gopkg.in/ini.v1"
)

// DefaultName is the reserved profile excluded from selection menus.
const DefaultName = "default"

// Profile is a named identity record.
type Profile struct {
	Name          string
	Region        string
	RoleARN       string
	SourceProfile string // the profile this one assumes a role from, if any
}

// Set is the collection of discovered profiles.
type Set struct {
	profiles map[string]Profile
}

// Files returns the shared config and credentials paths, honouring
// AWS_CONFIG_FILE and AWS_SHARED_CREDENTIALS_FILE.
func Files() (configFile, credentialsFile string) {
	configFile = os.Getenv("AWS_CONFIG_FILE")
	if configFile == "" {
		configFile = awsconfig.DefaultSharedConfigFilename()
	}
	credentialsFile = os.Getenv("AWS_SHARED_CREDENTIALS_FILE")
	if credentialsFile == "" {
		credentialsFile = awsconfig.DefaultSharedCredentialsFilename()
	}
	return configFile, credentialsFile
}

// Load reads both files. A missing file contributes nothing.
func Load(configFile, credentialsFile string) (*Set, error) {
	set := &Set{profiles: make(map[string]Profile)}

	cfg, err := ini.LoadSources(ini.LoadOptions{Loose: true}, configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", configFile, err)
	}
	for _, sec := range cfg.Sections() {
		name, ok := configSectionProfile(sec.Name())
		if !ok {
			continue
		}
		set.merge(name, sec)
	}

	creds, err := ini.LoadSources(ini.LoadOptions{Loose: true}, credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", credentialsFile, err)
	}
	for _, sec := range creds.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		set.merge(sec.Name(), sec)
	}

	return set, nil
}

// LoadDefault loads profiles from the standard locations.
func LoadDefault() (*Set, error) {
	return Load(Files())
}

// configSectionProfile maps a config file section to a profile name.
func configSectionProfile(section string) (string, bool) {
	if section == DefaultName {
		return DefaultName, true
	}
	name, ok := strings.CutPrefix(section, "profile ")
	if !ok {
		return "", false // sso-session, services, DEFAULT, ...
	}
	name = strings.TrimSpace(name)
	return name, name != ""
}

func (s *Set) merge(name string, sec *ini.Section) {
	p := s.profiles[name]
	p.Name = name
	if v := sec.Key("region").String(); v != "" {
		p.Region = v
	}
	if v := sec.Key("role_arn").String(); v != "" {
		p.RoleARN = v
	}
	if v := sec.Key("source_profile").String(); v != "" {
		p.SourceProfile = v
	}
	s.profiles[name] = p
}

// Names returns every profile name except DefaultName, sorted ascending.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		if name == DefaultName {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get looks up a profile by exact name.
func (s *Set) Get(name string) (Profile, error) {
	p, ok := s.profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("couldn't find profile %q: %w", name, errdefs.ErrNotFound)
	}
	return p, nil
}

// Associated returns the names of profiles this one draws credentials from,
// following source_profile links until a profile without one is reached.
func (s *Set) Associated(name string) []string {
	var chain []string
	seen := map[string]bool{name: true}
	for p, ok := s.profiles[name]; ok && p.SourceProfile != ""; p, ok = s.profiles[p.SourceProfile] {
		if seen[p.SourceProfile] {
			break
		}
		seen[p.SourceProfile] = true
		chain = append(chain, p.SourceProfile)
	}
	return chain
}

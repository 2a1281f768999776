package resolve

import (
	"context"

	"github.com/noelruault/ecsh/internal/log"
	"github.com/noelruault/ecsh/internal/profile"
)

// Profiles is the discovered identity set.
type Profiles interface {
	// Names lists selectable profiles, sorted, without the default profile.
	Names() []string
	Get(name string) (profile.Profile, error)
	// Associated lists the profiles name draws credentials from.
	Associated(name string) []string
}

// Identity picks a profile. An explicit name is used verbatim and only has to
// exist in profiles.
func Identity(ctx context.Context, sel Selector, profiles Profiles, explicit string) (profile.Profile, error) {
	name, err := Choose(ctx, sel, Choice[string]{
		Title:    "Pick your environment",
		Noun:     "profiles",
		Explicit: optional(explicit),
		List: func(context.Context) ([]string, error) {
			return profiles.Names(), nil
		},
		Label: func(s string) string { return s },
	})
	if err != nil {
		return profile.Profile{}, err
	}
	log.Debug("resolved profile", "profile", name, "explicit", explicit != "")

	return profiles.Get(name)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

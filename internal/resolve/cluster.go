package resolve

import (
	"context"
	"sort"
	"strings"

	"github.com/noelruault/ecsh/internal/log"
)

const clusterDelimiter = ":cluster/"

// ClusterLister lists cluster ARNs.
type ClusterLister interface {
	ListClusterARNs(ctx context.Context) ([]string, error)
}

// Option pairs a menu label with the value it stands for.
type Option struct {
	Label string
	Value string
}

// ClusterName returns the part of a cluster ARN after ":cluster/", or the
// whole string when it has no such segment.
func ClusterName(arn string) string {
	if _, name, ok := strings.Cut(arn, clusterDelimiter); ok {
		return name
	}
	return arn
}

// ClusterOptions pairs every ARN with its friendly name and sorts the pairs
// by that name, so a label and its ARN can never drift apart.
func ClusterOptions(arns []string) []Option {
	opts := make([]Option, 0, len(arns))
	for _, arn := range arns {
		opts = append(opts, Option{Label: ClusterName(arn), Value: arn})
	}
	sort.SliceStable(opts, func(i, j int) bool {
		return opts[i].Label < opts[j].Label
	})
	return opts
}

// Cluster picks a cluster ARN. An explicit value is returned without
// contacting the API; a cluster that does not exist surfaces when its tasks
// are queried.
func Cluster(ctx context.Context, sel Selector, api ClusterLister, explicit string) (string, error) {
	var pinned *Option
	if explicit != "" {
		pinned = &Option{Label: explicit, Value: explicit}
	}

	opt, err := Choose(ctx, sel, Choice[Option]{
		Title:    "Pick your cluster",
		Noun:     "clusters",
		Explicit: pinned,
		List: func(ctx context.Context) ([]Option, error) {
			arns, err := api.ListClusterARNs(ctx)
			if err != nil {
				return nil, err
			}
			return ClusterOptions(arns), nil
		},
		Label: func(o Option) string { return o.Label },
	})
	if err != nil {
		return "", err
	}
	log.Debug("resolved cluster", "cluster", opt.Value)
	return opt.Value, nil
}

// Package resolve implements the cascade that turns optional operator input
// into one profile, cluster, task and container.
//
// Every step follows the same shape: an explicit value wins, otherwise the
// candidates are listed and the operator picks one from a menu.
package resolve

import (
	"context"
	"fmt"

	"github.com/containerd/errdefs"

	"github.com/noelruault/ecsh/internal/log"
)

// Selector reads one choice from the operator.
type Selector interface {
	Select(ctx context.Context, title string, items []string) (int, error)
}

// Choice describes one explicit-or-prompt decision.
type Choice[T any] struct {
	// Title is the menu prompt.
	Title string
	// Noun names the candidates in not-found errors, e.g. "clusters".
	Noun string
	// Explicit, when non-nil, is returned as is and List is never called.
	Explicit *T
	// List produces the candidates, already in menu order.
	List func(ctx context.Context) ([]T, error)
	// Label renders a candidate for the menu.
	Label func(T) string
	// AutoSelectSingle skips the menu when there is exactly one candidate.
	AutoSelectSingle bool
}

// Choose resolves c. The value returned for a menu choice is the candidate
// at the chosen index of the listed slice.
func Choose[T any](ctx context.Context, sel Selector, c Choice[T]) (T, error) {
	var zero T
	if c.Explicit != nil {
		return *c.Explicit, nil
	}

	candidates, err := c.List(ctx)
	if err != nil {
		return zero, err
	}
	if len(candidates) == 0 {
		return zero, fmt.Errorf("no %s found: %w", c.Noun, errdefs.ErrNotFound)
	}
	if c.AutoSelectSingle && len(candidates) == 1 {
		log.Debug("only one candidate, skipping menu", "noun", c.Noun)
		return candidates[0], nil
	}

	labels := make([]string, len(candidates))
	for i, cand := range candidates {
		labels[i] = c.Label(cand)
	}

	idx, err := sel.Select(ctx, c.Title, labels)
	if err != nil {
		return zero, err
	}
	if idx < 0 || idx >= len(candidates) {
		return zero, fmt.Errorf("selection %d out of range for %d %s", idx, len(candidates), c.Noun)
	}
	return candidates[idx], nil
}

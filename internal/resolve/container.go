package resolve

import (
	"context"
	"fmt"

	"github.com/containerd/errdefs"

	"github.com/noelruault/ecsh/internal/log"
	"github.com/noelruault/ecsh/internal/task"
)

// Container picks a container of t. An explicit reference must equal a
// container's name or ARN. A task with a single container needs no menu.
// Menu entries keep the task's container order.
func Container(ctx context.Context, sel Selector, t task.Task, explicit string) (task.Container, error) {
	if explicit != "" {
		c, ok := t.FindContainer(explicit)
		if !ok {
			return task.Container{}, fmt.Errorf("no container matching %q in task %s (have %v): %w",
				explicit, t.ARN, t.ContainerNames(), errdefs.ErrNotFound)
		}
		return c, nil
	}

	c, err := Choose(ctx, sel, Choice[task.Container]{
		Title: "Pick your container",
		Noun:  "containers in task " + t.ARN,
		List: func(context.Context) ([]task.Container, error) {
			return t.Containers, nil
		},
		Label:            func(c task.Container) string { return c.Name },
		AutoSelectSingle: true,
	})
	if err != nil {
		return task.Container{}, err
	}
	log.Debug("resolved container", "container", c.Name)
	return c, nil
}

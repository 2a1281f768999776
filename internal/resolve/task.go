package resolve

import (
	"context"
	"fmt"

	ecsTypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/containerd/errdefs"

	"github.com/noelruault/ecsh/internal/log"
	"github.com/noelruault/ecsh/internal/task"
)

// TaskAPI lists and describes tasks. DescribeTasks reports per-task failures
// as an error.
type TaskAPI interface {
	ListTaskARNs(ctx context.Context, cluster string) ([]string, error)
	DescribeTasks(ctx context.Context, cluster string, tasks []string) ([]ecsTypes.Task, error)
}

// Task resolves one task in cluster. A named task is described directly;
// otherwise every running task is described and the operator picks one.
func Task(ctx context.Context, sel Selector, api TaskAPI, cluster, explicit string) (task.Task, error) {
	if explicit != "" {
		return namedTask(ctx, api, cluster, explicit)
	}

	t, err := Choose(ctx, sel, Choice[task.Task]{
		Title: "Pick your task",
		Noun:  "tasks in cluster " + cluster,
		List: func(ctx context.Context) ([]task.Task, error) {
			return listTasks(ctx, api, cluster)
		},
		Label: task.Task.FriendlyOutput,
	})
	if err != nil {
		return task.Task{}, err
	}
	log.Debug("resolved task", "task", t.ARN, "name", t.Name)
	return t, nil
}

func namedTask(ctx context.Context, api TaskAPI, cluster, name string) (task.Task, error) {
	records, err := api.DescribeTasks(ctx, cluster, []string{name})
	if err != nil {
		return task.Task{}, err
	}
	if len(records) == 0 {
		return task.Task{}, fmt.Errorf("no task %q found in cluster %s: %w", name, cluster, errdefs.ErrNotFound)
	}
	if len(records) > 1 {
		log.Warn("describe returned extra tasks, using the first", "task", name, "count", len(records))
	}

	t, err := task.FromECS(records[0])
	if err != nil {
		return task.Task{}, err
	}
	log.Debug("resolved task", "task", t.ARN, "name", t.Name)
	return t, nil
}

// listTasks describes every task in the cluster in one pass. A single
// malformed record fails the whole listing.
func listTasks(ctx context.Context, api TaskAPI, cluster string) ([]task.Task, error) {
	arns, err := api.ListTaskARNs(ctx, cluster)
	if err != nil {
		return nil, err
	}
	if len(arns) == 0 {
		return nil, nil
	}

	records, err := api.DescribeTasks(ctx, cluster, arns)
	if err != nil {
		return nil, err
	}
	tasks, err := task.FromECSAll(records)
	if err != nil {
		return nil, err
	}
	task.SortByName(tasks)
	return tasks, nil
}

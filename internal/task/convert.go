package task

import (
	"fmt"
	"strings"

	ecsTypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/containerd/errdefs"
)

const taskDefinitionDelimiter = ":task-definition/"

// DefinitionName extracts the family name from a task definition ARN such as
// arn:aws:ecs:eu-west-1:123456789012:task-definition/my-task:7.
func DefinitionName(definitionArn string) (string, error) {
	_, rest, ok := strings.Cut(definitionArn, taskDefinitionDelimiter)
	if !ok {
		return "", fmt.Errorf("task definition %q has no %q segment: %w", definitionArn, taskDefinitionDelimiter, errdefs.ErrInvalidArgument)
	}
	name, _, ok := strings.Cut(rest, ":")
	if !ok || name == "" {
		return "", fmt.Errorf("task definition %q has no family:revision pair: %w", definitionArn, errdefs.ErrInvalidArgument)
	}
	return name, nil
}

// FromECS converts a DescribeTasks record. Every field the menus rely on is
// required; a malformed record is an error, never a partially filled Task.
func FromECS(t ecsTypes.Task) (Task, error) {
	if t.TaskArn == nil {
		return Task{}, fmt.Errorf("task record has no ARN: %w", errdefs.ErrInvalidArgument)
	}
	arn := *t.TaskArn

	if t.TaskDefinitionArn == nil {
		return Task{}, fmt.Errorf("task %s has no task definition ARN: %w", arn, errdefs.ErrInvalidArgument)
	}
	name, err := DefinitionName(*t.TaskDefinitionArn)
	if err != nil {
		return Task{}, fmt.Errorf("task %s: %w", arn, err)
	}

	if len(t.Containers) == 0 {
		return Task{}, fmt.Errorf("task %s has no containers: %w", arn, errdefs.ErrInvalidArgument)
	}
	containers := make([]Container, 0, len(t.Containers))
	for i, c := range t.Containers {
		switch {
		case c.ContainerArn == nil:
			return Task{}, fmt.Errorf("task %s: container %d has no ARN: %w", arn, i, errdefs.ErrInvalidArgument)
		case c.Name == nil:
			return Task{}, fmt.Errorf("task %s: container %s has no name: %w", arn, *c.ContainerArn, errdefs.ErrInvalidArgument)
		case c.LastStatus == nil:
			return Task{}, fmt.Errorf("task %s: container %s has no status: %w", arn, *c.Name, errdefs.ErrInvalidArgument)
		}
		containers = append(containers, Container{
			ARN:    *c.ContainerArn,
			Name:   *c.Name,
			Status: *c.LastStatus,
		})
	}

	if t.LastStatus == nil {
		return Task{}, fmt.Errorf("task %s has no status: %w", arn, errdefs.ErrInvalidArgument)
	}
	status, err := ParseStatus(*t.LastStatus)
	if err != nil {
		return Task{}, fmt.Errorf("task %s: %w", arn, err)
	}

	return Task{
		Name:       name,
		ARN:        arn,
		Containers: containers,
		Status:     status,
	}, nil
}

// FromECSAll converts every record, failing on the first malformed one.
func FromECSAll(records []ecsTypes.Task) ([]Task, error) {
	tasks := make([]Task, 0, len(records))
	for _, r := range records {
		t, err := FromECS(r)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

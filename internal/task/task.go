// Package task holds the ECS task and container values shown in selection
// menus, and the conversion from raw ECS API records.
package task

import (
	"sort"
	"strings"
)

// Container is one process unit inside a task.
type Container struct {
	ARN    string
	Name   string
	Status string // free-form, straight from the API
}

// Pretty renders the container for a task label.
func (c Container) Pretty() string {
	if c.Status == "RUNNING" {
		return c.Name
	}
	return c.Name + " " + c.Status
}

// Task is a running ECS task with at least one container.
type Task struct {
	Name       string
	ARN        string
	Containers []Container
	Status     Status
}

// FriendlyOutput renders the task as a menu label:
//
//	<name><status-suffix> (<arn>) [<container>, <container>, ...]
//
// Containers are rendered in stored order.
func (t Task) FriendlyOutput() string {
	parts := make([]string, 0, len(t.Containers))
	for _, c := range t.Containers {
		parts = append(parts, c.Pretty())
	}
	return t.Name + t.Status.Suffix() + " (" + t.ARN + ") [" + strings.Join(parts, ", ") + "]"
}

// ContainerNames returns the container names in stored order.
func (t Task) ContainerNames() []string {
	names := make([]string, 0, len(t.Containers))
	for _, c := range t.Containers {
		names = append(names, c.Name)
	}
	return names
}

// FindContainer returns the container whose name or ARN equals ref.
func (t Task) FindContainer(ref string) (Container, bool) {
	for _, c := range t.Containers {
		if c.Name == ref || c.ARN == ref {
			return c, true
		}
	}
	return Container{}, false
}

// SortByName orders tasks by name. The sort is stable so tasks sharing a
// definition keep their API order.
func SortByName(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Name < tasks[j].Name
	})
}

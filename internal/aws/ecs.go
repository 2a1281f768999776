package aws

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ecs"
	ecsTypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/containerd/errdefs"

	"github.com/noelruault/ecsh/internal/log"
)

// describeTasksLimit is the most task identifiers DescribeTasks accepts.
const describeTasksLimit = 100

const defaultCallTimeout = 20 * time.Second

// DescribeFailureError reports the per-item failures ECS returned for a
// DescribeTasks request. The failures are kept as returned.
type DescribeFailureError struct {
	Cluster  string
	Failures []ecsTypes.Failure
}

func (e *DescribeFailureError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		s := fmt.Sprintf("{arn: %s, reason: %s", getString(f.Arn), getString(f.Reason))
		if f.Detail != nil {
			s += ", detail: " + *f.Detail
		}
		parts = append(parts, s+"}")
	}
	return fmt.Sprintf("ECS failed to describe tasks in cluster %s: [%s]", e.Cluster, strings.Join(parts, ", "))
}

// Unwrap classifies the failure as an upstream error.
func (e *DescribeFailureError) Unwrap() error {
	return errdefs.ErrUnavailable
}

func withDefaultTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, defaultCallTimeout)
}

// ListClusterARNs returns every cluster ARN visible to the caller, in API order.
func (c *Client) ListClusterARNs(ctx context.Context) ([]string, error) {
	if c.ECS == nil {
		return nil, fmt.Errorf("ECS client not initialized")
	}

	ctx, cancel := withDefaultTimeout(ctx)
	defer cancel()

	var arns []string
	var nextToken *string
	for {
		out, err := c.ECS.ListClusters(ctx, &ecs.ListClustersInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, wrapAPIError("list ECS clusters", err)
		}
		arns = append(arns, out.ClusterArns...)

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	log.Debug("listed clusters", "count", len(arns))
	return arns, nil
}

// ListTaskARNs returns the ARNs of running tasks in cluster.
func (c *Client) ListTaskARNs(ctx context.Context, cluster string) ([]string, error) {
	if c.ECS == nil {
		return nil, fmt.Errorf("ECS client not initialized")
	}

	ctx, cancel := withDefaultTimeout(ctx)
	defer cancel()

	var arns []string
	var nextToken *string
	for {
		out, err := c.ECS.ListTasks(ctx, &ecs.ListTasksInput{
			Cluster:   &cluster,
			NextToken: nextToken,
		})
		if err != nil {
			return nil, wrapAPIError("list ECS tasks", err)
		}
		arns = append(arns, out.TaskArns...)

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	log.Debug("listed tasks", "cluster", cluster, "count", len(arns))
	return arns, nil
}

// DescribeTasks describes the given tasks, splitting the request into
// sequential batches the API accepts. Any reported failure aborts the call
// with a *DescribeFailureError; nothing is retried.
func (c *Client) DescribeTasks(ctx context.Context, cluster string, tasks []string) ([]ecsTypes.Task, error) {
	if c.ECS == nil {
		return nil, fmt.Errorf("ECS client not initialized")
	}

	ctx, cancel := withDefaultTimeout(ctx)
	defer cancel()

	var described []ecsTypes.Task
	for start := 0; start < len(tasks); start += describeTasksLimit {
		end := min(start+describeTasksLimit, len(tasks))

		out, err := c.ECS.DescribeTasks(ctx, &ecs.DescribeTasksInput{
			Cluster: &cluster,
			Tasks:   tasks[start:end],
		})
		if err != nil {
			return nil, wrapAPIError("describe ECS tasks", err)
		}
		if len(out.Failures) > 0 {
			return nil, &DescribeFailureError{Cluster: cluster, Failures: out.Failures}
		}
		described = append(described, out.Tasks...)
	}

	return described, nil
}

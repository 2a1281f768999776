package aws

import (
	"context"
	"errors"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"

	"github.com/noelruault/ecsh/internal/vault"
)

// ECSAPI is the subset of the ECS client the resolvers use.
type ECSAPI interface {
	ListClusters(ctx context.Context, in *ecs.ListClustersInput, optFns ...func(*ecs.Options)) (*ecs.ListClustersOutput, error)
	ListTasks(ctx context.Context, in *ecs.ListTasksInput, optFns ...func(*ecs.Options)) (*ecs.ListTasksOutput, error)
	DescribeTasks(ctx context.Context, in *ecs.DescribeTasksInput, optFns ...func(*ecs.Options)) (*ecs.DescribeTasksOutput, error)
}

// STSAPI is the subset of the STS client used to confirm the bridged identity.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, in *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// Client wraps AWS service clients
type Client struct {
	ECS    ECSAPI
	STS    STSAPI
	Region string
}

// Options controls client construction.
type Options struct {
	// Region overrides the SDK's region resolution when set.
	Region string
	// EndpointURL points the ECS and STS clients at a custom endpoint.
	EndpointURL string
	// Credentials, when set, are used instead of the default provider chain.
	Credentials *vault.Credentials
}

// NewClient creates a new AWS client. Credentials are taken from opts rather
// than the ambient environment when provided.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if c := opts.Credentials; c != nil {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, c.SessionToken),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return newClientFromConfig(cfg, opts.EndpointURL), nil
}

func newClientFromConfig(cfg sdkaws.Config, endpoint string) *Client {
	if endpoint == "" {
		return &Client{
			ECS:    ecs.NewFromConfig(cfg),
			STS:    sts.NewFromConfig(cfg),
			Region: cfg.Region,
		}
	}
	return &Client{
		ECS:    ecs.NewFromConfig(cfg, func(o *ecs.Options) { o.BaseEndpoint = sdkaws.String(endpoint) }),
		STS:    sts.NewFromConfig(cfg, func(o *sts.Options) { o.BaseEndpoint = sdkaws.String(endpoint) }),
		Region: cfg.Region,
	}
}

// GetRegion returns the configured AWS region
func (c *Client) GetRegion() string {
	return c.Region
}

// wrapAPIError prefixes err with the operation and, for service errors, the
// AWS error code.
func wrapAPIError(op string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("failed to %s (%s): %w", op, apiErr.ErrorCode(), err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// CallerIdentity is the principal the bridged credentials belong to.
type CallerIdentity struct {
	Account string
	ARN     string
	UserID  string
}

// GetCallerIdentity asks STS who the current credentials belong to.
func (c *Client) GetCallerIdentity(ctx context.Context) (*CallerIdentity, error) {
	if c.STS == nil {
		return nil, fmt.Errorf("STS client not initialized")
	}

	ctx, cancel := withDefaultTimeout(ctx)
	defer cancel()

	out, err := c.STS.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, wrapAPIError("get caller identity", err)
	}

	return &CallerIdentity{
		Account: getString(out.Account),
		ARN:     getString(out.Arn),
		UserID:  getString(out.UserId),
	}, nil
}

package pubsub

import (
	"context"
	"fmt"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/modabuy/storefront-backend/pkg/config"
	"github.com/modabuy/storefront-backend/pkg/logger"
)

// Client wraps the Pub/Sub connection for the publisher and indexer workers.
type Client struct {
	inner     *gcppubsub.Client
	projectID string
	logg      *logger.Logger
}

func NewClient(ctx context.Context, cfg config.GCPConfig, logg *logger.Logger) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("pubsub: project id is required")
	}

	var opts []option.ClientOption
	if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	inner, err := gcppubsub.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("pubsub: new client: %w", err)
	}
	return &Client{inner: inner, projectID: cfg.ProjectID, logg: logg}, nil
}

// Publisher returns a publisher for the topic. EnsureTopic should be called
// once at startup so misconfiguration fails fast.
func (c *Client) Publisher(topicID string) *gcppubsub.Publisher {
	return c.inner.Publisher(topicID)
}

// Subscriber returns a receiver for the subscription.
func (c *Client) Subscriber(subscriptionID string) *gcppubsub.Subscriber {
	return c.inner.Subscriber(subscriptionID)
}

func (c *Client) EnsureTopic(ctx context.Context, topicID string) error {
	name := fmt.Sprintf("projects/%s/topics/%s", c.projectID, topicID)
	_, err := c.inner.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: name})
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("pubsub: topic %s does not exist", name)
	}
	if err != nil {
		return fmt.Errorf("pubsub: get topic %s: %w", name, err)
	}
	return nil
}

func (c *Client) EnsureSubscription(ctx context.Context, subscriptionID string) error {
	name := fmt.Sprintf("projects/%s/subscriptions/%s", c.projectID, subscriptionID)
	_, err := c.inner.SubscriptionAdminClient.GetSubscription(ctx, &pubsubpb.GetSubscriptionRequest{Subscription: name})
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("pubsub: subscription %s does not exist", name)
	}
	if err != nil {
		return fmt.Errorf("pubsub: get subscription %s: %w", name, err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.inner.Close()
}

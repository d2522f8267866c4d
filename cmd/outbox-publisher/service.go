package main

import (
	"context"
	"math/rand"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/modabuy/storefront-backend/models"
	"github.com/modabuy/storefront-backend/pkg/config"
	"github.com/modabuy/storefront-backend/pkg/enums"
	"github.com/modabuy/storefront-backend/pkg/logger"
	"github.com/modabuy/storefront-backend/pkg/pubsub"
)

type eventStore interface {
	FetchUnpublished(ctx context.Context, limit, maxAttempts int) ([]models.OutboxEvent, error)
	MarkPublished(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, cause error) error
}

type sender interface {
	Send(ctx context.Context, topic string, event models.OutboxEvent) error
}

// publisherService drains the outbox on a jittered interval. Rows that fail
// to publish keep their place and are retried until attempts run out.
type publisherService struct {
	store  eventStore
	sender sender
	cfg    config.OutboxConfig
	topics config.PubSubConfig
	logg   *logger.Logger
}

func newPublisherService(store eventStore, sender sender, cfg config.OutboxConfig, topics config.PubSubConfig, logg *logger.Logger) *publisherService {
	return &publisherService{store: store, sender: sender, cfg: cfg, topics: topics, logg: logg}
}

func (s *publisherService) Run(ctx context.Context) error {
	for {
		published, err := s.drain(ctx)
		if err != nil {
			s.logg.Error(ctx, "outbox drain failed", err)
		} else if published > 0 {
			s.logg.Info(ctx, "outbox drained")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.jitteredInterval()):
		}
	}
}

// drain publishes one batch. A single bad row does not block the rest.
func (s *publisherService) drain(ctx context.Context) (int, error) {
	events, err := s.store.FetchUnpublished(ctx, s.cfg.BatchSize, s.cfg.MaxAttempts)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, event := range events {
		if err := s.sender.Send(ctx, s.topicFor(event), event); err != nil {
			s.logg.Warn(ctx, "publish event "+event.ID.String()+" failed: "+err.Error())
			if markErr := s.store.MarkFailed(ctx, event.ID, err); markErr != nil {
				return published, markErr
			}
			continue
		}
		if err := s.store.MarkPublished(ctx, event.ID); err != nil {
			return published, err
		}
		published++
	}
	return published, nil
}

func (s *publisherService) topicFor(event models.OutboxEvent) string {
	if event.AggregateType == enums.AggregateOrder {
		return s.topics.OrdersTopic
	}
	return s.topics.CatalogTopic
}

func (s *publisherService) jitteredInterval() time.Duration {
	base := s.cfg.PollInterval
	if base <= 0 {
		base = 5 * time.Second
	}
	span := int64(base) / 5
	if span <= 0 {
		return base
	}
	return base + time.Duration(rand.Int63n(span))
}

// pubsubSender publishes outbox rows to Pub/Sub, one cached publisher per
// topic.
type pubsubSender struct {
	client     *pubsub.Client
	publishers map[string]*gcppubsub.Publisher
}

func newPubsubSender(client *pubsub.Client) *pubsubSender {
	return &pubsubSender{
		client:     client,
		publishers: map[string]*gcppubsub.Publisher{},
	}
}

func (p *pubsubSender) Send(ctx context.Context, topic string, event models.OutboxEvent) error {
	pub, ok := p.publishers[topic]
	if !ok {
		pub = p.client.Publisher(topic)
		p.publishers[topic] = pub
	}

	res := pub.Publish(ctx, &gcppubsub.Message{
		Data: event.Payload,
		Attributes: map[string]string{
			"event_id":       event.ID.String(),
			"event_type":     string(event.EventType),
			"aggregate_type": string(event.AggregateType),
			"aggregate_id":   event.AggregateID.String(),
		},
	})
	_, err := res.Get(ctx)
	return err
}

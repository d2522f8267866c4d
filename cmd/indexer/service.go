package main

import (
	"context"
	"encoding/json"
	"fmt"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/modabuy/storefront-backend/pkg/enums"
	"github.com/modabuy/storefront-backend/pkg/logger"
	"github.com/modabuy/storefront-backend/pkg/outbox"
)

type stockApplier interface {
	ApplyStock(ctx context.Context, id uuid.UUID, stock int, soldOut bool) error
}

// indexerService applies catalog events to the search index, keeping the
// read model in step with the authoritative store.
type indexerService struct {
	search stockApplier
	logg   *logger.Logger
}

func newIndexerService(search stockApplier, logg *logger.Logger) *indexerService {
	return &indexerService{search: search, logg: logg}
}

// handle processes one event. Unknown event types are dropped, not retried;
// redelivering them would never succeed.
func (s *indexerService) handle(ctx context.Context, data []byte, attributes map[string]string) error {
	eventType := enums.OutboxEventType(attributes["event_type"])
	switch eventType {
	case enums.EventStockConsumed:
		var payload outbox.StockConsumedPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("decode stock event: %w", err)
		}
		return s.search.ApplyStock(ctx, payload.ProductID, payload.StockRemaining, payload.SoldOut)
	default:
		s.logg.Warn(ctx, "dropping event of unknown type "+string(eventType))
		return nil
	}
}

// Run consumes the subscription until ctx is canceled. Failed messages are
// nacked for redelivery.
func (s *indexerService) Run(ctx context.Context, sub *gcppubsub.Subscriber) error {
	return sub.Receive(ctx, func(ctx context.Context, msg *gcppubsub.Message) {
		if err := s.handle(ctx, msg.Data, msg.Attributes); err != nil {
			s.logg.Error(ctx, "apply catalog event", err)
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

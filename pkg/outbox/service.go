package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/modabuy/storefront-backend/models"
)

// Service writes domain events into the outbox inside the caller's
// transaction, making event emission atomic with the state change.
type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Emit marshals the event and inserts it via tx. The row becomes visible to
// the publisher only when the surrounding transaction commits.
func (s *Service) Emit(ctx context.Context, tx *gorm.DB, event DomainEvent) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", event.EventType, err)
	}

	row := &models.OutboxEvent{
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		EventType:     event.EventType,
		Payload:       payload,
	}
	return s.repo.WithTx(tx).Insert(ctx, row)
}

package outbox

import (
	"github.com/google/uuid"
	"github.com/modabuy/storefront-backend/pkg/enums"
)

// DomainEvent is what callers hand to Emit. The payload is marshaled into the
// outbox row and later onto the wire unchanged.
type DomainEvent struct {
	AggregateType enums.OutboxAggregateType
	AggregateID   uuid.UUID
	EventType     enums.OutboxEventType
	Payload       any
}

// OrderCreatedPayload announces a freshly confirmed order.
type OrderCreatedPayload struct {
	OrderID    uuid.UUID                 `json:"order_id"`
	OrderNo    string                    `json:"order_no"`
	UserID     uuid.UUID                 `json:"user_id"`
	TotalPrice int                       `json:"total_price"`
	Items      []OrderCreatedPayloadItem `json:"items"`
}

type OrderCreatedPayloadItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Price     int       `json:"price"`
}

// StockConsumedPayload announces a stock decrement. The indexer applies the
// remaining stock and sold-out flag to the search index.
type StockConsumedPayload struct {
	ProductID      uuid.UUID `json:"product_id"`
	Quantity       int       `json:"quantity"`
	StockRemaining int       `json:"stock_remaining"`
	SoldOut        bool      `json:"sold_out"`
}

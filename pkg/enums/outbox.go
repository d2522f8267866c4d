package enums

// OutboxEventType names a domain event written to the transactional outbox.
type OutboxEventType string

const (
	EventOrderCreated  OutboxEventType = "order.created"
	EventStockConsumed OutboxEventType = "catalog.stock_consumed"
)

// OutboxAggregateType names the aggregate an event belongs to.
type OutboxAggregateType string

const (
	AggregateOrder   OutboxAggregateType = "order"
	AggregateProduct OutboxAggregateType = "product"
)

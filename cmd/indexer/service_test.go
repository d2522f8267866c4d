package main

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modabuy/storefront-backend/pkg/logger"
	"github.com/modabuy/storefront-backend/pkg/outbox"
)

type stubApplier struct {
	applied []outbox.StockConsumedPayload
}

func (s *stubApplier) ApplyStock(_ context.Context, id uuid.UUID, stock int, soldOut bool) error {
	s.applied = append(s.applied, outbox.StockConsumedPayload{
		ProductID:      id,
		StockRemaining: stock,
		SoldOut:        soldOut,
	})
	return nil
}

func newTestIndexer(applier *stubApplier) *indexerService {
	return newIndexerService(applier,
		logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled}))
}

func TestHandleStockConsumed(t *testing.T) {
	applier := &stubApplier{}
	svc := newTestIndexer(applier)

	productID := uuid.New()
	data, err := json.Marshal(outbox.StockConsumedPayload{
		ProductID:      productID,
		Quantity:       2,
		StockRemaining: 0,
		SoldOut:        true,
	})
	require.NoError(t, err)

	err = svc.handle(context.Background(), data, map[string]string{
		"event_type": "catalog.stock_consumed",
	})
	require.NoError(t, err)

	require.Len(t, applier.applied, 1)
	assert.Equal(t, productID, applier.applied[0].ProductID)
	assert.Zero(t, applier.applied[0].StockRemaining)
	assert.True(t, applier.applied[0].SoldOut)
}

func TestHandleMalformedPayload(t *testing.T) {
	applier := &stubApplier{}
	svc := newTestIndexer(applier)

	err := svc.handle(context.Background(), []byte("not json"), map[string]string{
		"event_type": "catalog.stock_consumed",
	})
	require.Error(t, err)
	assert.Empty(t, applier.applied)
}

func TestHandleUnknownEventTypeIsDropped(t *testing.T) {
	applier := &stubApplier{}
	svc := newTestIndexer(applier)

	err := svc.handle(context.Background(), []byte(`{}`), map[string]string{
		"event_type": "order.created",
	})
	require.NoError(t, err)
	assert.Empty(t, applier.applied)
}

package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modabuy/storefront-backend/api/middleware"
	"github.com/modabuy/storefront-backend/internal/cart"
	"github.com/modabuy/storefront-backend/internal/checkout"
	"github.com/modabuy/storefront-backend/models"
	"github.com/modabuy/storefront-backend/pkg/enums"
	pkgerrors "github.com/modabuy/storefront-backend/pkg/errors"
	"github.com/modabuy/storefront-backend/pkg/logger"
	"github.com/modabuy/storefront-backend/pkg/types"
)

type stubCheckoutService struct {
	preview *checkout.Preview
	order   *models.Order
	err     error
}

func (s *stubCheckoutService) GetCheckout(_ context.Context, _ uuid.UUID) (*checkout.Preview, error) {
	return s.preview, s.err
}

func (s *stubCheckoutService) CreateOrder(_ context.Context, _ uuid.UUID) (*models.Order, error) {
	return s.order, s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
}

func authedRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return req.WithContext(middleware.WithUserID(req.Context(), uuid.New()))
}

func TestGetCheckoutRendersPreview(t *testing.T) {
	userID := uuid.New()
	svc := &stubCheckoutService{preview: &checkout.Preview{
		UserID: userID,
		ShippingInfo: checkout.ShippingInfo{
			RecipientName:   "Kim",
			ContactNumber:   "010-0000-0000",
			DeliveryAddress: "1 Main St",
		},
		Items: []cart.ItemView{
			{ProductID: uuid.New(), Price: 80, Quantity: 2, LineTotal: 160},
			{ProductID: uuid.New(), Price: 50, Quantity: 1, LineTotal: 50},
		},
		TotalPrice: 210,
	}}

	rec := httptest.NewRecorder()
	GetCheckout(svc, testLogger())(rec, authedRequest(http.MethodGet, "/cart/checkout"))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, userID.String(), body["user_id"])
	assert.EqualValues(t, 210, body["total_price"])
	shipping, ok := body["shipping_info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Kim", shipping["recipient_name"])
	assert.Len(t, body["items"], 2)
}

func TestGetCheckoutEmptyCartIs400(t *testing.T) {
	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")}

	rec := httptest.NewRecorder()
	GetCheckout(svc, testLogger())(rec, authedRequest(http.MethodGet, "/cart/checkout"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, string(pkgerrors.CodeValidation), envelope.Error.Code)
	assert.Equal(t, "cart is empty", envelope.Error.Message)
}

func TestGetCheckoutNoSessionInContext(t *testing.T) {
	rec := httptest.NewRecorder()
	GetCheckout(&stubCheckoutService{}, testLogger())(rec, httptest.NewRequest(http.MethodGet, "/cart/checkout", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateOrderCompleted(t *testing.T) {
	svc := &stubCheckoutService{order: &models.Order{
		ID:      uuid.New(),
		OrderNo: "Y260829093015-1a2b3c4d-9f3e",
		Status:  enums.OrderStatusPending,
	}}

	rec := httptest.NewRecorder()
	CreateOrder(svc, testLogger())(rec, authedRequest(http.MethodPost, "/cart/order"))

	require.Equal(t, http.StatusCreated, rec.Code)
	var body orderCompletedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "order completed", body.Message)
	assert.Equal(t, "Y260829093015-1a2b3c4d-9f3e", body.OrderNo)
}

func TestCreateOrderInternalFailureIsOpaque(t *testing.T) {
	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeInternal, "tx deadlock detail")}

	rec := httptest.NewRecorder()
	CreateOrder(svc, testLogger())(rec, authedRequest(http.MethodPost, "/cart/order"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	// Internal details never reach clients.
	assert.Equal(t, "internal error", envelope.Error.Message)
}

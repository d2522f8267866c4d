package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modabuy/storefront-backend/api/middleware"
	"github.com/modabuy/storefront-backend/internal/cart"
	pkgerrors "github.com/modabuy/storefront-backend/pkg/errors"
)

type stubCartService struct {
	items   []cart.ItemView
	addErr  error
	added   []int
	removed []uuid.UUID
	cleared bool
}

func (s *stubCartService) AddToCart(_ context.Context, _, _ uuid.UUID, qty int) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.added = append(s.added, qty)
	return nil
}

func (s *stubCartService) GetCart(_ context.Context, _ uuid.UUID) ([]cart.ItemView, error) {
	return s.items, nil
}

func (s *stubCartService) RemoveLine(_ context.Context, _, productID uuid.UUID) error {
	s.removed = append(s.removed, productID)
	return nil
}

func (s *stubCartService) ClearCart(_ context.Context, _ uuid.UUID) error {
	s.cleared = true
	return nil
}

func authedJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(middleware.WithUserID(req.Context(), uuid.New()))
}

func TestAddToCartSuccess(t *testing.T) {
	svc := &stubCartService{}
	body := `{"product_id":"` + uuid.NewString() + `","quantity":2}`

	rec := httptest.NewRecorder()
	AddToCart(svc, testLogger())(rec, authedJSONRequest(http.MethodPost, "/cart", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []int{2}, svc.added)
}

func TestAddToCartRejectsBadBody(t *testing.T) {
	svc := &stubCartService{}

	cases := map[string]string{
		"missing body":    ``,
		"unknown field":   `{"product_id":"` + uuid.NewString() + `","quantity":1,"color":"red"}`,
		"zero quantity":   `{"product_id":"` + uuid.NewString() + `","quantity":0}`,
		"not a uuid":      `{"product_id":"abc","quantity":1}`,
		"missing product": `{"quantity":1}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			AddToCart(svc, testLogger())(rec, authedJSONRequest(http.MethodPost, "/cart", body))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	assert.Empty(t, svc.added)
}

func TestAddToCartInsufficientStock(t *testing.T) {
	svc := &stubCartService{addErr: pkgerrors.New(pkgerrors.CodeValidation, "insufficient stock: have 1, want 3")}
	body := `{"product_id":"` + uuid.NewString() + `","quantity":3}`

	rec := httptest.NewRecorder()
	AddToCart(svc, testLogger())(rec, authedJSONRequest(http.MethodPost, "/cart", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCartEmptyRendersEmptyList(t *testing.T) {
	svc := &stubCartService{items: []cart.ItemView{}}

	rec := httptest.NewRecorder()
	GetCart(svc, testLogger())(rec, authedRequest(http.MethodGet, "/cart"))

	require.Equal(t, http.StatusOK, rec.Code)
	var body cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotNil(t, body.Items)
	assert.Empty(t, body.Items)
}

func TestRemoveCartLine(t *testing.T) {
	svc := &stubCartService{}
	productID := uuid.New()

	req := authedRequest(http.MethodDelete, "/cart/"+productID.String())
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("productId", productID.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	RemoveCartLine(svc, testLogger())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uuid.UUID{productID}, svc.removed)
}

func TestClearCart(t *testing.T) {
	svc := &stubCartService{}

	rec := httptest.NewRecorder()
	ClearCart(svc, testLogger())(rec, authedRequest(http.MethodDelete, "/cart"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.cleared)
}

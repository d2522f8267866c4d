package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modabuy/storefront-backend/internal/catalog"
	pkgerrors "github.com/modabuy/storefront-backend/pkg/errors"
)

type stubCatalogService struct {
	listQueries   []catalog.PageQuery
	searchKeyword string
	doc           *catalog.ProductDoc
	closedPIT     string
}

func (s *stubCatalogService) GetItem(_ context.Context, id uuid.UUID) (*catalog.ProductDoc, error) {
	if s.doc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return s.doc, nil
}

func (s *stubCatalogService) GetItems(_ context.Context, _ []uuid.UUID) (map[uuid.UUID]catalog.ProductDoc, error) {
	return nil, nil
}

func (s *stubCatalogService) ListGoods(_ context.Context, q catalog.PageQuery) (*catalog.Page, error) {
	s.listQueries = append(s.listQueries, q)
	return &catalog.Page{Items: []catalog.ProductDoc{}, PITID: "pit-1"}, nil
}

func (s *stubCatalogService) SearchGoods(_ context.Context, keyword string, q catalog.PageQuery) (*catalog.Page, error) {
	if keyword == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "keyword is required")
	}
	s.searchKeyword = keyword
	return &catalog.Page{Items: []catalog.ProductDoc{}, PITID: "pit-1"}, nil
}

func (s *stubCatalogService) ClosePIT(_ context.Context, pitID string) error {
	s.closedPIT = pitID
	return nil
}

func TestListGoodsWithCategory(t *testing.T) {
	svc := &stubCatalogService{}

	rec := httptest.NewRecorder()
	ListGoods(svc, testLogger())(rec, httptest.NewRequest(http.MethodGet, "/goods?category=CT1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.listQueries, 1)
	assert.Equal(t, "CT1", svc.listQueries[0].Category)
}

func TestListGoodsMalformedCategory(t *testing.T) {
	svc := &stubCatalogService{}

	rec := httptest.NewRecorder()
	ListGoods(svc, testLogger())(rec, httptest.NewRequest(http.MethodGet, "/goods?category=123abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.listQueries)
}

func TestListGoodsPassesPaging(t *testing.T) {
	svc := &stubCatalogService{}

	target := "/goods?pit_id=pit-7&search_after=1700000000,abc&limit=10"
	rec := httptest.NewRecorder()
	ListGoods(svc, testLogger())(rec, httptest.NewRequest(http.MethodGet, target, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.listQueries, 1)
	q := svc.listQueries[0]
	assert.Equal(t, "pit-7", q.PITID)
	assert.Equal(t, []any{int64(1700000000), "abc"}, q.SearchAfter)
	assert.Equal(t, 10, q.Size)
}

func TestSearchGoodsEmptyKeywordIs422(t *testing.T) {
	svc := &stubCatalogService{}

	rec := httptest.NewRecorder()
	SearchGoods(svc, testLogger())(rec, httptest.NewRequest(http.MethodGet, "/goods/search?keyword=", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetGoodsDetailMalformedID(t *testing.T) {
	svc := &stubCatalogService{}

	req := httptest.NewRequest(http.MethodGet, "/goods/not-a-uuid", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("goodsId", "not-a-uuid")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	GetGoodsDetail(svc, testLogger())(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetGoodsDetailNotFound(t *testing.T) {
	svc := &stubCatalogService{}

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/goods/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("goodsId", id)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	GetGoodsDetail(svc, testLogger())(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

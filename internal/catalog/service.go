package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	pkgerrors "github.com/modabuy/storefront-backend/pkg/errors"
	"github.com/modabuy/storefront-backend/pkg/logger"
)

// SearchStore is the slice of the search repository the service needs.
type SearchStore interface {
	GetDoc(ctx context.Context, id uuid.UUID) (*ProductDoc, error)
	GetDocs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]ProductDoc, error)
	Page(ctx context.Context, q PageQuery) (*Page, error)
	ClosePIT(ctx context.Context, pitID string) error
}

// Service serves catalog reads for browsing, search and enrichment.
type Service interface {
	GetItem(ctx context.Context, id uuid.UUID) (*ProductDoc, error)
	GetItems(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]ProductDoc, error)
	ListGoods(ctx context.Context, q PageQuery) (*Page, error)
	SearchGoods(ctx context.Context, keyword string, q PageQuery) (*Page, error)
	ClosePIT(ctx context.Context, pitID string) error
}

type service struct {
	search SearchStore
	logg   *logger.Logger
}

func NewService(search SearchStore, logg *logger.Logger) Service {
	if search == nil {
		panic("catalog: search store is required")
	}
	if logg == nil {
		panic("catalog: logger is required")
	}
	return &service{search: search, logg: logg}
}

func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*ProductDoc, error) {
	return s.search.GetDoc(ctx, id)
}

func (s *service) GetItems(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]ProductDoc, error) {
	return s.search.GetDocs(ctx, ids)
}

func (s *service) ListGoods(ctx context.Context, q PageQuery) (*Page, error) {
	q.Keyword = ""
	return s.search.Page(ctx, q)
}

func (s *service) SearchGoods(ctx context.Context, keyword string, q PageQuery) (*Page, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "keyword is required")
	}
	q.Keyword = keyword
	q.Category = ""
	return s.search.Page(ctx, q)
}

func (s *service) ClosePIT(ctx context.Context, pitID string) error {
	if strings.TrimSpace(pitID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "pit id is required")
	}
	return s.search.ClosePIT(ctx, pitID)
}

package cart

import (
	"context"

	"github.com/google/uuid"

	"github.com/modabuy/storefront-backend/internal/catalog"
	"github.com/modabuy/storefront-backend/models"
	pkgerrors "github.com/modabuy/storefront-backend/pkg/errors"
	"github.com/modabuy/storefront-backend/pkg/logger"
)

// ItemView is a cart line enriched with catalog display data. Price is the
// effective unit price (discounted when a discount applies).
type ItemView struct {
	ProductID   uuid.UUID `json:"product_id"`
	BrandName   string    `json:"brand_name"`
	ProductName string    `json:"product_name"`
	Price       int       `json:"price"`
	Quantity    int       `json:"quantity"`
	LineTotal   int       `json:"line_total"`
}

type lineStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
	FindLine(ctx context.Context, userID, productID uuid.UUID) (*models.CartLine, error)
	Upsert(ctx context.Context, userID, productID uuid.UUID, qty int) error
	DeleteLine(ctx context.Context, userID, productID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type stockReader interface {
	GetStock(ctx context.Context, id uuid.UUID) (int, error)
}

type docGetter interface {
	GetItems(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]catalog.ProductDoc, error)
}

type Service interface {
	AddToCart(ctx context.Context, userID, productID uuid.UUID, qty int) error
	GetCart(ctx context.Context, userID uuid.UUID) ([]ItemView, error)
	RemoveLine(ctx context.Context, userID, productID uuid.UUID) error
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	lines   lineStore
	stock   stockReader
	catalog docGetter
	logg    *logger.Logger
}

func NewService(lines lineStore, stock stockReader, catalog docGetter, logg *logger.Logger) Service {
	if lines == nil {
		panic("cart: line store is required")
	}
	if stock == nil {
		panic("cart: stock reader is required")
	}
	if catalog == nil {
		panic("cart: catalog getter is required")
	}
	if logg == nil {
		panic("cart: logger is required")
	}
	return &service{lines: lines, stock: stock, catalog: catalog, logg: logg}
}

// AddToCart verifies stock against the requested total quantity (existing
// line plus delta) before mutating. The check is a snapshot; the confirm
// transaction is where stock is actually reserved.
func (s *service) AddToCart(ctx context.Context, userID, productID uuid.UUID, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	stock, err := s.stock.GetStock(ctx, productID)
	if err != nil {
		return err
	}

	existing, err := s.lines.FindLine(ctx, userID, productID)
	if err != nil {
		return err
	}
	want := qty
	if existing != nil {
		want += existing.Quantity
	}
	if stock < want {
		return pkgerrors.Newf(pkgerrors.CodeValidation,
			"insufficient stock: have %d, want %d", stock, want)
	}

	return s.lines.Upsert(ctx, userID, productID, qty)
}

// GetCart returns the user's lines enriched from the catalog in one batched
// lookup. Lines whose product is no longer available are omitted.
func (s *service) GetCart(ctx context.Context, userID uuid.UUID) ([]ItemView, error) {
	lines, err := s.lines.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return []ItemView{}, nil
	}

	ids := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
	}
	docs, err := s.catalog.GetItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]ItemView, 0, len(lines))
	for _, line := range lines {
		doc, ok := docs[line.ProductID]
		if !ok || doc.SoldOut {
			continue
		}
		unit := doc.UnitPrice()
		views = append(views, ItemView{
			ProductID:   line.ProductID,
			BrandName:   doc.BrandName,
			ProductName: doc.ProductName,
			Price:       unit,
			Quantity:    line.Quantity,
			LineTotal:   unit * line.Quantity,
		})
	}
	return views, nil
}

func (s *service) RemoveLine(ctx context.Context, userID, productID uuid.UUID) error {
	return s.lines.DeleteLine(ctx, userID, productID)
}

func (s *service) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return s.lines.Clear(ctx, userID)
}

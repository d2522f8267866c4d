package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/modabuy/storefront-backend/models"
	pkgerrors "github.com/modabuy/storefront-backend/pkg/errors"
)

// Repository is the authoritative product store. Stock movements happen here;
// the search index follows via outbox events.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return &product, nil
}

func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]models.Product{}, nil
	}

	var rows []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find products by ids: %w", err)
	}

	products := make(map[uuid.UUID]models.Product, len(rows))
	for _, p := range rows {
		products[p.ID] = p
	}
	return products, nil
}

// GetStock returns the available stock of an active product.
func (r *Repository) GetStock(ctx context.Context, id uuid.UUID) (int, error) {
	product, err := r.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if !product.IsActive {
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product.Stock, nil
}

// ConsumeStock decrements stock by qty with a conditional update, so two
// concurrent decrements can never drive stock negative. Returns the remaining
// stock and whether the product just sold out.
func (r *Repository) ConsumeStock(ctx context.Context, id uuid.UUID, qty int) (int, bool, error) {
	if qty <= 0 {
		return 0, false, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND is_active = ? AND stock >= ?", id, true, qty).
		Updates(map[string]any{
			"stock":       gorm.Expr("stock - ?", qty),
			"is_sold_out": gorm.Expr("stock - ? <= 0", qty),
		})
	if res.Error != nil {
		return 0, false, fmt.Errorf("consume stock: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		product, err := r.FindByID(ctx, id)
		if err != nil {
			return 0, false, err
		}
		if !product.IsActive {
			return 0, false, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return 0, false, pkgerrors.Newf(pkgerrors.CodeConflict,
			"insufficient stock for product %s: have %d, want %d", id, product.Stock, qty)
	}

	product, err := r.FindByID(ctx, id)
	if err != nil {
		return 0, false, err
	}
	return product.Stock, product.IsSoldOut, nil
}

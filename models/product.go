package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product is the authoritative catalog row. Stock and pricing live here; the
// search index is a derived read model.
type Product struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	BrandName       string         `gorm:"column:brand_name;type:varchar(100);not null" json:"brand_name"`
	ProductName     string         `gorm:"column:product_name;type:varchar(200);not null" json:"product_name"`
	Categories      pq.StringArray `gorm:"column:categories;type:text[]" json:"categories"`
	Price           int            `gorm:"column:price;not null" json:"price"`
	DiscountedPrice *int           `gorm:"column:discounted_price" json:"discounted_price,omitempty"`
	Stock           int            `gorm:"column:stock;not null;default:0" json:"stock"`
	IsActive        bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	IsSoldOut       bool           `gorm:"column:is_sold_out;not null;default:false" json:"is_sold_out"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string { return "products" }

// UnitPrice returns the discounted price when one is set, the base price
// otherwise.
func (p *Product) UnitPrice() int {
	if p.DiscountedPrice != nil {
		return *p.DiscountedPrice
	}
	return p.Price
}

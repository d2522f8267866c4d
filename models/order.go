package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/modabuy/storefront-backend/pkg/enums"
)

// Order is a confirmed checkout. Shipping fields and total_price are
// snapshots taken at confirm time and never re-derived.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderNo         string            `gorm:"column:order_no;type:varchar(40);not null;uniqueIndex:ux_orders_order_no" json:"order_no"`
	UserID          uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	RecipientName   string            `gorm:"column:recipient_name;type:varchar(50);not null" json:"recipient_name"`
	ContactNumber   string            `gorm:"column:contact_number;type:varchar(20);not null" json:"contact_number"`
	DeliveryAddress string            `gorm:"column:delivery_address;type:varchar(200);not null" json:"delivery_address"`
	DeliveryMessage *string           `gorm:"column:delivery_message;type:varchar(100)" json:"delivery_message,omitempty"`
	TotalPrice      int               `gorm:"column:total_price;not null" json:"total_price"`
	Status          enums.OrderStatus `gorm:"column:status;type:varchar(20);not null;default:'PENDING'" json:"status"`
	Items           []OrderItem       `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

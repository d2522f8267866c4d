package models

import (
	"time"

	"github.com/google/uuid"
)

// User carries identity plus the buyer shipping profile snapshotted onto
// orders at confirm time.
type User struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:ux_users_email" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(100);not null" json:"-"`
	Name         string    `gorm:"column:name;type:varchar(50);not null" json:"name"`
	PhoneNumber  string    `gorm:"column:phone_number;type:varchar(20);not null" json:"phone_number"`
	Address      string    `gorm:"column:address;type:varchar(200);not null" json:"address"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

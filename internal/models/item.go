package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item represents a catalog entry that can be sold from the sales screen.
type Item struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string          `json:"name" gorm:"type:varchar(100);index" validate:"required,min=1,max=100"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(12,2)"`
	Stock     int             `json:"stock" validate:"gte=0"`
	Category  string          `json:"category" gorm:"type:varchar(100);index" validate:"omitempty,max=100"`
	ImageURL  string          `json:"image_url" validate:"omitempty,url"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// GridSlot pins a catalog item to a position on a page of the sales screen.
type GridSlot struct {
	Page     int    `json:"page" gorm:"primaryKey;autoIncrement:false"`
	Position int    `json:"position" gorm:"primaryKey;autoIncrement:false"`
	ItemID   string `json:"item_id" gorm:"type:varchar(36);index"`
}

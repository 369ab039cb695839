package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettingsID is the primary key of the single settings row.
const SettingsID = 1

// Settings holds store-wide configuration used by the engines.
type Settings struct {
	ID            uint            `json:"-" gorm:"primaryKey"`
	TaxEnabled    bool            `json:"tax_enabled"`
	TaxRate       decimal.Decimal `json:"tax_rate" gorm:"type:decimal(6,3)"` // Percentage
	MorningStart  string          `json:"morning_start" gorm:"type:varchar(5)" validate:"required,len=5"`
	MorningEnd    string          `json:"morning_end" gorm:"type:varchar(5)" validate:"required,len=5"`
	NightEnd      string          `json:"night_end" gorm:"type:varchar(5)" validate:"required,len=5"`
	ReportPINHash string          `json:"-" gorm:"type:varchar(255)"` // No json tag for security
	StoreName     string          `json:"store_name" gorm:"type:varchar(100)" validate:"max=100"`
	StoreAddress  string          `json:"store_address" gorm:"type:varchar(255)" validate:"max=255"`
	StorePhone    string          `json:"store_phone" gorm:"type:varchar(50)" validate:"max=50"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// HasPIN reports whether the reports screen is PIN-gated.
func (s Settings) HasPIN() bool {
	return s.ReportPINHash != ""
}

// CashPaymentTypeID identifies the distinguished, non-removable cash entry.
const CashPaymentTypeID = "cash"

// PaymentType is an entry of the payment-type registry.
type PaymentType struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name     string `json:"name" gorm:"type:varchar(50)" validate:"required,min=1,max=50"`
	Icon     string `json:"icon" gorm:"type:varchar(50)" validate:"max=50"`
	Enabled  bool   `json:"enabled"`
	Position int    `json:"position"`
}

// IsCash reports whether this is the distinguished cash entry.
func (p PaymentType) IsCash() bool {
	return p.ID == CashPaymentTypeID
}

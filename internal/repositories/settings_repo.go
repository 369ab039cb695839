package repositories

import (
	"context"

	"restopos/internal/models"
)

// SettingsRepository defines the interface for the single settings row.
type SettingsRepository interface {
	// Get returns ErrNotFound until settings are first saved.
	Get(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, settings *models.Settings) error
}

// PaymentTypeRepository defines the interface for the payment-type registry.
type PaymentTypeRepository interface {
	// GetAll returns every payment type ordered by position.
	GetAll(ctx context.Context) ([]models.PaymentType, error)
	GetByID(ctx context.Context, id string) (*models.PaymentType, error)
	Create(ctx context.Context, pt *models.PaymentType) error
	Update(ctx context.Context, pt *models.PaymentType) error
	Delete(ctx context.Context, id string) error
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"restopos/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMSettingsRepository is a GORM implementation of SettingsRepository.
type GORMSettingsRepository struct {
	db *gorm.DB
}

// NewGORMSettingsRepository creates a new instance of GORMSettingsRepository.
func NewGORMSettingsRepository(db *gorm.DB) *GORMSettingsRepository {
	return &GORMSettingsRepository{db: db}
}

// Get loads the settings row.
func (r *GORMSettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	var s models.Settings
	if err := r.db.WithContext(ctx).First(&s, models.SettingsID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("settings: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &s, nil
}

// Save writes the settings row, creating it on first use.
func (r *GORMSettingsRepository) Save(ctx context.Context, settings *models.Settings) error {
	settings.ID = models.SettingsID
	if err := r.db.WithContext(ctx).Save(settings).Error; err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// GORMPaymentTypeRepository is a GORM implementation of PaymentTypeRepository.
type GORMPaymentTypeRepository struct {
	db *gorm.DB
}

// NewGORMPaymentTypeRepository creates a new instance of GORMPaymentTypeRepository.
func NewGORMPaymentTypeRepository(db *gorm.DB) *GORMPaymentTypeRepository {
	return &GORMPaymentTypeRepository{db: db}
}

// GetAll returns every payment type ordered by position.
func (r *GORMPaymentTypeRepository) GetAll(ctx context.Context) ([]models.PaymentType, error) {
	var types []models.PaymentType
	if err := r.db.WithContext(ctx).Order("position, name").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to get payment types: %w", err)
	}
	return types, nil
}

// GetByID retrieves a payment type by its ID.
func (r *GORMPaymentTypeRepository) GetByID(ctx context.Context, id string) (*models.PaymentType, error) {
	var pt models.PaymentType
	if err := r.db.WithContext(ctx).First(&pt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment type with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get payment type by ID %s: %w", id, err)
	}
	return &pt, nil
}

// Create stores a new payment type.
func (r *GORMPaymentTypeRepository) Create(ctx context.Context, pt *models.PaymentType) error {
	if pt.ID == "" {
		pt.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(pt).Error; err != nil {
		return fmt.Errorf("failed to create payment type: %w", err)
	}
	return nil
}

// Update overwrites a payment type.
func (r *GORMPaymentTypeRepository) Update(ctx context.Context, pt *models.PaymentType) error {
	res := r.db.WithContext(ctx).Model(&models.PaymentType{}).Where("id = ?", pt.ID).
		Select("name", "icon", "enabled", "position").
		Updates(pt)
	if res.Error != nil {
		return fmt.Errorf("failed to update payment type: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("payment type with ID %s: %w", pt.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a payment type by its ID.
func (r *GORMPaymentTypeRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.PaymentType{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete payment type: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("payment type with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

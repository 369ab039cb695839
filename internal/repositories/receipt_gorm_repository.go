package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restopos/internal/models"

	"gorm.io/gorm"
)

// GORMReceiptRepository is a GORM implementation of ReceiptRepository.
type GORMReceiptRepository struct {
	db *gorm.DB
}

// NewGORMReceiptRepository creates a new instance of GORMReceiptRepository.
func NewGORMReceiptRepository(db *gorm.DB) *GORMReceiptRepository {
	return &GORMReceiptRepository{db: db}
}

// Create appends a receipt. Dates are stored in UTC so that range queries
// compare consistently on every driver.
func (r *GORMReceiptRepository) Create(ctx context.Context, receipt *models.Receipt) error {
	receipt.Date = receipt.Date.UTC()
	if err := r.db.WithContext(ctx).Create(receipt).Error; err != nil {
		return fmt.Errorf("failed to create receipt: %w", err)
	}
	return nil
}

// GetByID retrieves a receipt by its ID.
func (r *GORMReceiptRepository) GetByID(ctx context.Context, id string) (*models.Receipt, error) {
	var receipt models.Receipt
	if err := r.db.WithContext(ctx).First(&receipt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("receipt with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get receipt by ID %s: %w", id, err)
	}
	return &receipt, nil
}

// ListBetween returns receipts dated within [start, end).
func (r *GORMReceiptRepository) ListBetween(ctx context.Context, start, end time.Time, ascending bool) ([]models.Receipt, error) {
	order := "date DESC"
	if ascending {
		order = "date ASC"
	}

	var receipts []models.Receipt
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", start.UTC(), end.UTC()).
		Order(order).
		Find(&receipts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts between %s and %s: %w", start.Format(time.RFC3339), end.Format(time.RFC3339), err)
	}
	return receipts, nil
}

// List returns a page of receipts, newest first.
func (r *GORMReceiptRepository) List(ctx context.Context, offset, limit int) ([]models.Receipt, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Receipt{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count receipts: %w", err)
	}

	var receipts []models.Receipt
	if err := r.db.WithContext(ctx).Order("date DESC").Offset(offset).Limit(limit).Find(&receipts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list receipts: %w", err)
	}
	return receipts, total, nil
}

package repositories

import (
	"context"
	"time"

	"restopos/internal/models"
)

// ReceiptRepository defines the interface for receipt data access. Receipts
// are append-only.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *models.Receipt) error
	GetByID(ctx context.Context, id string) (*models.Receipt, error)
	// ListBetween returns receipts dated within [start, end), by date.
	ListBetween(ctx context.Context, start, end time.Time, ascending bool) ([]models.Receipt, error)
	// List returns a page of receipts, newest first, and the total count.
	List(ctx context.Context, offset, limit int) ([]models.Receipt, int64, error)
}

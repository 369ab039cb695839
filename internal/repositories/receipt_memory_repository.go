package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"restopos/internal/models"
)

// MemoryReceiptRepository is an in-memory implementation of ReceiptRepository.
type MemoryReceiptRepository struct {
	receipts map[string]models.Receipt
	mu       sync.RWMutex
}

// NewMemoryReceiptRepository creates a new instance of MemoryReceiptRepository.
func NewMemoryReceiptRepository() *MemoryReceiptRepository {
	return &MemoryReceiptRepository{receipts: make(map[string]models.Receipt)}
}

// Create appends a receipt. Ids must be unique.
func (r *MemoryReceiptRepository) Create(ctx context.Context, receipt *models.Receipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.receipts[receipt.ID]; exists {
		return fmt.Errorf("receipt with ID %s already exists", receipt.ID)
	}
	r.receipts[receipt.ID] = *receipt
	return nil
}

// GetByID returns a receipt by its ID.
func (r *MemoryReceiptRepository) GetByID(ctx context.Context, id string) (*models.Receipt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rc, ok := r.receipts[id]
	if !ok {
		return nil, fmt.Errorf("receipt with ID %s: %w", id, ErrNotFound)
	}
	return &rc, nil
}

// ListBetween returns receipts dated within [start, end).
func (r *MemoryReceiptRepository) ListBetween(ctx context.Context, start, end time.Time, ascending bool) ([]models.Receipt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []models.Receipt
	for _, rc := range r.receipts {
		if !rc.Date.Before(start) && rc.Date.Before(end) {
			list = append(list, rc)
		}
	}
	sortByDate(list, ascending)
	return list, nil
}

// List returns a page of receipts, newest first.
func (r *MemoryReceiptRepository) List(ctx context.Context, offset, limit int) ([]models.Receipt, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Receipt, 0, len(r.receipts))
	for _, rc := range r.receipts {
		list = append(list, rc)
	}
	sortByDate(list, false)

	total := int64(len(list))
	if offset < 0 {
		offset = 0
	}
	if offset > len(list) {
		offset = len(list)
	}
	end := len(list)
	if limit >= 0 && limit < end-offset {
		end = offset + limit
	}
	return list[offset:end], total, nil
}

func sortByDate(list []models.Receipt, ascending bool) {
	sort.Slice(list, func(i, j int) bool {
		if ascending {
			return list[i].Date.Before(list[j].Date)
		}
		return list[i].Date.After(list[j].Date)
	})
}

package services

import (
	"context"

	"restopos/internal/models"
	"restopos/internal/repositories"
	"restopos/pkg/pagination"
)

// ReceiptService serves the receipt history.
type ReceiptService struct {
	repo repositories.ReceiptRepository
}

// NewReceiptService creates a new ReceiptService.
func NewReceiptService(repo repositories.ReceiptRepository) *ReceiptService {
	return &ReceiptService{repo: repo}
}

// List returns one page of receipts, newest first.
func (s *ReceiptService) List(ctx context.Context, params pagination.Params) (*pagination.PaginatedResult[models.Receipt], error) {
	params.Validate()
	receipts, total, err := s.repo.List(ctx, params.Offset(), params.PerPage)
	if err != nil {
		return nil, err
	}
	if receipts == nil {
		receipts = []models.Receipt{}
	}
	return &pagination.PaginatedResult[models.Receipt]{
		Items:      receipts,
		Pagination: pagination.NewPagination(params.Page, params.PerPage, total),
	}, nil
}

// Get retrieves a single receipt by its ID.
func (s *ReceiptService) Get(ctx context.Context, id string) (*models.Receipt, error) {
	return s.repo.GetByID(ctx, id)
}

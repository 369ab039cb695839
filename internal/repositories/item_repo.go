package repositories

import (
	"context"

	"restopos/internal/models"
)

// ItemRepository defines the interface for catalog data access.
type ItemRepository interface {
	GetAll(ctx context.Context) ([]models.Item, error)
	GetByID(ctx context.Context, id string) (*models.Item, error)
	Create(ctx context.Context, item *models.Item) error
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id string) error
}

// GridRepository defines the interface for sales-screen grid slots.
type GridRepository interface {
	GetPage(ctx context.Context, page int) ([]models.GridSlot, error)
	Upsert(ctx context.Context, slot *models.GridSlot) error
	Delete(ctx context.Context, page, position int) error
	DeleteByItem(ctx context.Context, itemID string) error
}

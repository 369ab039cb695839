package repositories

import (
	"context"

	"restopos/internal/models"
)

// TicketRepository defines the interface for saved-ticket data access.
type TicketRepository interface {
	GetAll(ctx context.Context) ([]models.SavedTicket, error)
	GetByID(ctx context.Context, id string) (*models.SavedTicket, error)
	Create(ctx context.Context, ticket *models.SavedTicket) error
	Update(ctx context.Context, ticket *models.SavedTicket) error
	Delete(ctx context.Context, id string) error
}

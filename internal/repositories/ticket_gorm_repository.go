package repositories

import (
	"context"
	"errors"
	"fmt"

	"restopos/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMTicketRepository is a GORM implementation of TicketRepository.
type GORMTicketRepository struct {
	db *gorm.DB
}

// NewGORMTicketRepository creates a new instance of GORMTicketRepository.
func NewGORMTicketRepository(db *gorm.DB) *GORMTicketRepository {
	return &GORMTicketRepository{db: db}
}

// GetAll returns every saved ticket, oldest first.
func (r *GORMTicketRepository) GetAll(ctx context.Context) ([]models.SavedTicket, error) {
	var tickets []models.SavedTicket
	if err := r.db.WithContext(ctx).Order("created_at").Find(&tickets).Error; err != nil {
		return nil, fmt.Errorf("failed to get tickets: %w", err)
	}
	return tickets, nil
}

// GetByID retrieves a ticket by its ID.
func (r *GORMTicketRepository) GetByID(ctx context.Context, id string) (*models.SavedTicket, error) {
	var ticket models.SavedTicket
	if err := r.db.WithContext(ctx).First(&ticket, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ticket with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get ticket by ID %s: %w", id, err)
	}
	return &ticket, nil
}

// Create stores a new ticket.
func (r *GORMTicketRepository) Create(ctx context.Context, ticket *models.SavedTicket) error {
	if ticket.ID == "" {
		ticket.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(ticket).Error; err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

// Update overwrites a ticket's name and items.
func (r *GORMTicketRepository) Update(ctx context.Context, ticket *models.SavedTicket) error {
	res := r.db.WithContext(ctx).Save(ticket)
	if res.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("ticket with ID %s: %w", ticket.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a ticket by its ID.
func (r *GORMTicketRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.SavedTicket{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete ticket: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("ticket with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"restopos/internal/models"

	"github.com/google/uuid"
)

// MemoryTicketRepository is an in-memory implementation of TicketRepository.
type MemoryTicketRepository struct {
	tickets map[string]models.SavedTicket
	mu      sync.RWMutex
}

// NewMemoryTicketRepository creates a new instance of MemoryTicketRepository.
func NewMemoryTicketRepository() *MemoryTicketRepository {
	return &MemoryTicketRepository{tickets: make(map[string]models.SavedTicket)}
}

// GetAll returns every saved ticket, oldest first.
func (r *MemoryTicketRepository) GetAll(ctx context.Context) ([]models.SavedTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.SavedTicket, 0, len(r.tickets))
	for _, t := range r.tickets {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

// GetByID returns a ticket by its ID.
func (r *MemoryTicketRepository) GetByID(ctx context.Context, id string) (*models.SavedTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tickets[id]
	if !ok {
		return nil, fmt.Errorf("ticket with ID %s: %w", id, ErrNotFound)
	}
	return &t, nil
}

// Create stores a new ticket.
func (r *MemoryTicketRepository) Create(ctx context.Context, ticket *models.SavedTicket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ticket.ID == "" {
		ticket.ID = uuid.New().String()
	}
	r.tickets[ticket.ID] = *ticket
	return nil
}

// Update overwrites an existing ticket.
func (r *MemoryTicketRepository) Update(ctx context.Context, ticket *models.SavedTicket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tickets[ticket.ID]; !ok {
		return fmt.Errorf("ticket with ID %s: %w", ticket.ID, ErrNotFound)
	}
	r.tickets[ticket.ID] = *ticket
	return nil
}

// Delete removes a ticket by its ID.
func (r *MemoryTicketRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tickets[id]; !ok {
		return fmt.Errorf("ticket with ID %s: %w", id, ErrNotFound)
	}
	delete(r.tickets, id)
	return nil
}

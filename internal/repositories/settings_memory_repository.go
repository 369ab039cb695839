package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"restopos/internal/models"

	"github.com/google/uuid"
)

// MemorySettingsRepository is an in-memory implementation of SettingsRepository.
type MemorySettingsRepository struct {
	settings *models.Settings
	mu       sync.RWMutex
}

// NewMemorySettingsRepository creates a new instance of MemorySettingsRepository.
func NewMemorySettingsRepository() *MemorySettingsRepository {
	return &MemorySettingsRepository{}
}

// Get returns a copy of the stored settings.
func (r *MemorySettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.settings == nil {
		return nil, fmt.Errorf("settings: %w", ErrNotFound)
	}
	s := *r.settings
	return &s, nil
}

// Save stores a copy of settings.
func (r *MemorySettingsRepository) Save(ctx context.Context, settings *models.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	settings.ID = models.SettingsID
	s := *settings
	r.settings = &s
	return nil
}

// MemoryPaymentTypeRepository is an in-memory implementation of PaymentTypeRepository.
type MemoryPaymentTypeRepository struct {
	types map[string]models.PaymentType
	mu    sync.RWMutex
}

// NewMemoryPaymentTypeRepository creates a new instance of MemoryPaymentTypeRepository.
func NewMemoryPaymentTypeRepository() *MemoryPaymentTypeRepository {
	return &MemoryPaymentTypeRepository{types: make(map[string]models.PaymentType)}
}

// GetAll returns every payment type ordered by position.
func (r *MemoryPaymentTypeRepository) GetAll(ctx context.Context) ([]models.PaymentType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.PaymentType, 0, len(r.types))
	for _, pt := range r.types {
		list = append(list, pt)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Position != list[j].Position {
			return list[i].Position < list[j].Position
		}
		return list[i].Name < list[j].Name
	})
	return list, nil
}

// GetByID returns a payment type by its ID.
func (r *MemoryPaymentTypeRepository) GetByID(ctx context.Context, id string) (*models.PaymentType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pt, ok := r.types[id]
	if !ok {
		return nil, fmt.Errorf("payment type with ID %s: %w", id, ErrNotFound)
	}
	return &pt, nil
}

// Create stores a new payment type.
func (r *MemoryPaymentTypeRepository) Create(ctx context.Context, pt *models.PaymentType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if pt.ID == "" {
		pt.ID = uuid.New().String()
	}
	r.types[pt.ID] = *pt
	return nil
}

// Update overwrites a payment type.
func (r *MemoryPaymentTypeRepository) Update(ctx context.Context, pt *models.PaymentType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.types[pt.ID]; !ok {
		return fmt.Errorf("payment type with ID %s: %w", pt.ID, ErrNotFound)
	}
	r.types[pt.ID] = *pt
	return nil
}

// Delete removes a payment type by its ID.
func (r *MemoryPaymentTypeRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.types[id]; !ok {
		return fmt.Errorf("payment type with ID %s: %w", id, ErrNotFound)
	}
	delete(r.types, id)
	return nil
}

package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"restopos/internal/models"

	"github.com/google/uuid"
)

// MemoryItemRepository is an in-memory implementation of ItemRepository.
type MemoryItemRepository struct {
	items map[string]models.Item
	mu    sync.RWMutex
}

// NewMemoryItemRepository creates a new instance of MemoryItemRepository.
func NewMemoryItemRepository() *MemoryItemRepository {
	return &MemoryItemRepository{
		items: make(map[string]models.Item),
	}
}

// GetAll returns all items ordered by category and name.
func (r *MemoryItemRepository) GetAll(ctx context.Context) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Item, 0, len(r.items))
	for _, it := range r.items {
		list = append(list, it)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Category != list[j].Category {
			return list[i].Category < list[j].Category
		}
		return list[i].Name < list[j].Name
	})
	return list, nil
}

// GetByID returns an item by its ID.
func (r *MemoryItemRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("item with ID %s: %w", id, ErrNotFound)
	}
	return &it, nil
}

// Create adds a new item.
func (r *MemoryItemRepository) Create(ctx context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.items[item.ID] = *item
	return nil
}

// Update modifies an existing item.
func (r *MemoryItemRepository) Update(ctx context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.items[item.ID]
	if !ok {
		return fmt.Errorf("item with ID %s: %w", item.ID, ErrNotFound)
	}
	item.CreatedAt = old.CreatedAt
	r.items[item.ID] = *item
	return nil
}

// Delete removes an item by its ID.
func (r *MemoryItemRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("item with ID %s: %w", id, ErrNotFound)
	}
	delete(r.items, id)
	return nil
}

type gridKey struct{ page, position int }

// MemoryGridRepository is an in-memory implementation of GridRepository.
type MemoryGridRepository struct {
	slots map[gridKey]models.GridSlot
	mu    sync.RWMutex
}

// NewMemoryGridRepository creates a new instance of MemoryGridRepository.
func NewMemoryGridRepository() *MemoryGridRepository {
	return &MemoryGridRepository{slots: make(map[gridKey]models.GridSlot)}
}

// GetPage returns the assigned slots of a page ordered by position.
func (r *MemoryGridRepository) GetPage(ctx context.Context, page int) ([]models.GridSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var slots []models.GridSlot
	for k, s := range r.slots {
		if k.page == page {
			slots = append(slots, s)
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Position < slots[j].Position })
	return slots, nil
}

// Upsert assigns an item to a slot.
func (r *MemoryGridRepository) Upsert(ctx context.Context, slot *models.GridSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.slots[gridKey{slot.Page, slot.Position}] = *slot
	return nil
}

// Delete clears a slot.
func (r *MemoryGridRepository) Delete(ctx context.Context, page, position int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.slots, gridKey{page, position})
	return nil
}

// DeleteByItem clears every slot holding itemID.
func (r *MemoryGridRepository) DeleteByItem(ctx context.Context, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k, s := range r.slots {
		if s.ItemID == itemID {
			delete(r.slots, k)
		}
	}
	return nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"restopos/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMItemRepository is a GORM implementation of ItemRepository.
type GORMItemRepository struct {
	db *gorm.DB
}

// NewGORMItemRepository creates a new instance of GORMItemRepository.
func NewGORMItemRepository(db *gorm.DB) *GORMItemRepository {
	return &GORMItemRepository{db: db}
}

// GetAll retrieves all items ordered by category and name.
func (r *GORMItemRepository) GetAll(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.WithContext(ctx).Order("category, name").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get all items: %w", err)
	}
	return items, nil
}

// GetByID retrieves a single item by its ID.
func (r *GORMItemRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get item by ID %s: %w", id, err)
	}
	return &item, nil
}

// Create inserts a new item, generating an ID when none is set.
func (r *GORMItemRepository) Create(ctx context.Context, item *models.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// Update overwrites an existing item.
func (r *GORMItemRepository) Update(ctx context.Context, item *models.Item) error {
	res := r.db.WithContext(ctx).Model(&models.Item{}).Where("id = ?", item.ID).
		Select("name", "price", "stock", "category", "image_url", "updated_at").
		Updates(item)
	if res.Error != nil {
		return fmt.Errorf("failed to update item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item with ID %s: %w", item.ID, ErrNotFound)
	}
	return nil
}

// Delete removes an item by its ID.
func (r *GORMItemRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Item{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// GORMGridRepository is a GORM implementation of GridRepository.
type GORMGridRepository struct {
	db *gorm.DB
}

// NewGORMGridRepository creates a new instance of GORMGridRepository.
func NewGORMGridRepository(db *gorm.DB) *GORMGridRepository {
	return &GORMGridRepository{db: db}
}

// GetPage returns the assigned slots of a page ordered by position.
func (r *GORMGridRepository) GetPage(ctx context.Context, page int) ([]models.GridSlot, error) {
	var slots []models.GridSlot
	if err := r.db.WithContext(ctx).Where("page = ?", page).Order("position").Find(&slots).Error; err != nil {
		return nil, fmt.Errorf("failed to get grid page %d: %w", page, err)
	}
	return slots, nil
}

// Upsert assigns an item to a slot, replacing any previous assignment.
func (r *GORMGridRepository) Upsert(ctx context.Context, slot *models.GridSlot) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "page"}, {Name: "position"}},
		DoUpdates: clause.AssignmentColumns([]string{"item_id"}),
	}).Create(slot).Error
	if err != nil {
		return fmt.Errorf("failed to assign grid slot %d/%d: %w", slot.Page, slot.Position, err)
	}
	return nil
}

// Delete clears a slot. Clearing an empty slot is not an error.
func (r *GORMGridRepository) Delete(ctx context.Context, page, position int) error {
	if err := r.db.WithContext(ctx).Delete(&models.GridSlot{}, "page = ? AND position = ?", page, position).Error; err != nil {
		return fmt.Errorf("failed to clear grid slot %d/%d: %w", page, position, err)
	}
	return nil
}

// DeleteByItem clears every slot holding itemID.
func (r *GORMGridRepository) DeleteByItem(ctx context.Context, itemID string) error {
	if err := r.db.WithContext(ctx).Delete(&models.GridSlot{}, "item_id = ?", itemID).Error; err != nil {
		return fmt.Errorf("failed to clear grid slots of item %s: %w", itemID, err)
	}
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"restopos/internal/cache"
	"restopos/internal/models"
	"restopos/internal/repositories"
	"restopos/pkg/apperror"

	"go.uber.org/zap"
)

// GridCell is one resolved position of a sales-screen page. Item is nil for
// an empty slot or a slot whose item no longer exists.
type GridCell struct {
	Position int          `json:"position"`
	Item     *models.Item `json:"item"`
}

// CatalogService handles items, categories and the sales-screen grid.
type CatalogService struct {
	items        repositories.ItemRepository
	grid         repositories.GridRepository
	cache        cache.ItemCache
	slotsPerPage int
	logger       *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(items repositories.ItemRepository, grid repositories.GridRepository, itemCache cache.ItemCache, slotsPerPage int, logger *zap.Logger) *CatalogService {
	if itemCache == nil {
		itemCache = cache.NewMemoryItemCache(0)
	}
	return &CatalogService{
		items:        items,
		grid:         grid,
		cache:        itemCache,
		slotsPerPage: slotsPerPage,
		logger:       logger,
	}
}

// GetAllItems returns the catalog, from the cache when it is warm.
func (s *CatalogService) GetAllItems(ctx context.Context) ([]models.Item, error) {
	cached, ok, err := s.cache.GetAll(ctx)
	if err != nil {
		s.logger.Warn("item cache read failed", zap.Error(err))
	}
	if ok {
		return cached, nil
	}

	items, err := s.items.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetAll(ctx, items); err != nil {
		s.logger.Warn("item cache write failed", zap.Error(err))
	}
	return items, nil
}

// SearchItems returns items whose name contains query, ignoring case. An
// empty query returns every item.
func (s *CatalogService) SearchItems(ctx context.Context, query string) ([]models.Item, error) {
	items, err := s.GetAllItems(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items, nil
	}
	matches := []models.Item{}
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), q) {
			matches = append(matches, it)
		}
	}
	return matches, nil
}

// GetItem retrieves a single item by its ID.
func (s *CatalogService) GetItem(ctx context.Context, id string) (*models.Item, error) {
	return s.items.GetByID(ctx, id)
}

// CreateItem adds an item to the catalog.
func (s *CatalogService) CreateItem(ctx context.Context, item *models.Item) error {
	if item.Price.IsNegative() {
		return ErrInvalidPrice
	}
	item.Name = strings.TrimSpace(item.Name)
	item.Category = strings.TrimSpace(item.Category)
	if err := s.items.Create(ctx, item); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// UpdateItem overwrites an item. Lines already in an order keep the price
// they were added with.
func (s *CatalogService) UpdateItem(ctx context.Context, item *models.Item) error {
	if item.Price.IsNegative() {
		return ErrInvalidPrice
	}
	item.Name = strings.TrimSpace(item.Name)
	item.Category = strings.TrimSpace(item.Category)
	if err := s.items.Update(ctx, item); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// DeleteItem removes an item and clears every grid slot showing it.
func (s *CatalogService) DeleteItem(ctx context.Context, id string) error {
	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.grid.DeleteByItem(ctx, id); err != nil {
		return fmt.Errorf("item %s deleted but grid slots remain: %w", id, err)
	}
	s.invalidate(ctx)
	return nil
}

// Categories returns the distinct non-empty categories, sorted.
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	items, err := s.GetAllItems(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	categories := []string{}
	for _, it := range items {
		if it.Category == "" || seen[it.Category] {
			continue
		}
		seen[it.Category] = true
		categories = append(categories, it.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

// GridPage resolves every position of page.
func (s *CatalogService) GridPage(ctx context.Context, page int) ([]GridCell, error) {
	if page < 0 {
		return nil, ErrSlotOutOfRange
	}
	slots, err := s.grid.GetPage(ctx, page)
	if err != nil {
		return nil, err
	}

	cells := make([]GridCell, s.slotsPerPage)
	for i := range cells {
		cells[i].Position = i
	}
	for _, slot := range slots {
		if slot.Position < 0 || slot.Position >= s.slotsPerPage {
			continue
		}
		item, err := s.items.GetByID(ctx, slot.ItemID)
		if errors.Is(err, repositories.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		cells[slot.Position].Item = item
	}
	return cells, nil
}

// AssignSlot pins an existing item to a grid position.
func (s *CatalogService) AssignSlot(ctx context.Context, page, position int, itemID string) error {
	if err := s.checkSlot(page, position); err != nil {
		return err
	}
	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		return err
	}
	return s.grid.Upsert(ctx, &models.GridSlot{Page: page, Position: position, ItemID: itemID})
}

// ClearSlot empties a grid position.
func (s *CatalogService) ClearSlot(ctx context.Context, page, position int) error {
	if err := s.checkSlot(page, position); err != nil {
		return err
	}
	return s.grid.Delete(ctx, page, position)
}

func (s *CatalogService) checkSlot(page, position int) error {
	if page < 0 || position < 0 || position >= s.slotsPerPage {
		msg := fmt.Sprintf("Grid slot %d/%d is outside the page (%d slots)", page, position, s.slotsPerPage)
		return apperror.Wrap(http.StatusBadRequest, msg, ErrSlotOutOfRange)
	}
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("item cache invalidation failed", zap.Error(err))
	}
}

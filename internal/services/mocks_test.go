package services_test

import (
	"context"
	"time"

	"restopos/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockItemRepository is a mock implementation of repositories.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) GetAll(ctx context.Context) ([]models.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) Create(ctx context.Context, item *models.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockItemRepository) Update(ctx context.Context, item *models.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockGridRepository is a mock implementation of repositories.GridRepository
type MockGridRepository struct {
	mock.Mock
}

func (m *MockGridRepository) GetPage(ctx context.Context, page int) ([]models.GridSlot, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]models.GridSlot), args.Error(1)
}

func (m *MockGridRepository) Upsert(ctx context.Context, slot *models.GridSlot) error {
	return m.Called(ctx, slot).Error(0)
}

func (m *MockGridRepository) Delete(ctx context.Context, page, position int) error {
	return m.Called(ctx, page, position).Error(0)
}

func (m *MockGridRepository) DeleteByItem(ctx context.Context, itemID string) error {
	return m.Called(ctx, itemID).Error(0)
}

// MockSettingsRepository is a mock implementation of repositories.SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, settings *models.Settings) error {
	return m.Called(ctx, settings).Error(0)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(queue string, body []byte) error {
	return m.Called(queue, body).Error(0)
}

// MockPrinter is a mock implementation of printer.Printer
type MockPrinter struct {
	mock.Mock
}

func (m *MockPrinter) Print(data []byte) error {
	return m.Called(data).Error(0)
}

func (m *MockPrinter) Close() error {
	return m.Called().Error(0)
}

func (m *MockPrinter) IsConnected() bool {
	return m.Called().Bool(0)
}

// staticSettings serves fixed settings.
type staticSettings struct {
	settings models.Settings
	err      error
}

func (s *staticSettings) Get(ctx context.Context) (models.Settings, error) {
	return s.settings, s.err
}

// staticMethods serves fixed payment method names.
type staticMethods []string

func (m staticMethods) Methods(ctx context.Context) ([]string, error) {
	return m, nil
}

var wib = time.FixedZone("WIB", 7*3600)

package services_test

import (
	"context"
	"fmt"
	"testing"

	"restopos/internal/models"
	"restopos/internal/repositories"
	"restopos/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func defaultStoreSettings() models.Settings {
	return models.Settings{
		TaxRate:      decimal.Zero,
		MorningStart: "05:00",
		MorningEnd:   "17:30",
		NightEnd:     "05:00",
	}
}

func TestSettingsService_GetFallsBackToDefaults(t *testing.T) {
	repo := new(MockSettingsRepository)
	service := services.NewSettingsService(repo, defaultStoreSettings(), zap.NewNop())

	repo.On("Get", mock.Anything).Return(nil, fmt.Errorf("settings: %w", repositories.ErrNotFound)).Once()

	got, err := service.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "17:30", got.MorningEnd)
	assert.Equal(t, uint(models.SettingsID), got.ID)
	repo.AssertExpectations(t)
}

func TestSettingsService_UpdateValidates(t *testing.T) {
	repo := new(MockSettingsRepository)
	service := services.NewSettingsService(repo, defaultStoreSettings(), zap.NewNop())

	bad := defaultStoreSettings()
	bad.MorningEnd = "25:99"
	_, err := service.Update(context.Background(), bad)
	assert.ErrorIs(t, err, services.ErrInvalidSettings)

	bad = defaultStoreSettings()
	bad.TaxRate = decimal.NewFromInt(150)
	_, err = service.Update(context.Background(), bad)
	assert.ErrorIs(t, err, services.ErrInvalidSettings)

	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSettingsService_UpdateKeepsPIN(t *testing.T) {
	repo := new(MockSettingsRepository)
	service := services.NewSettingsService(repo, defaultStoreSettings(), zap.NewNop())

	stored := defaultStoreSettings()
	stored.ID = models.SettingsID
	stored.ReportPINHash = "hash"
	repo.On("Get", mock.Anything).Return(&stored, nil).Once()
	repo.On("Save", mock.Anything, mock.MatchedBy(func(s *models.Settings) bool {
		return s.ReportPINHash == "hash" && s.TaxEnabled && s.TaxRate.Equal(decimal.NewFromInt(11))
	})).Return(nil).Once()

	update := defaultStoreSettings()
	update.TaxEnabled = true
	update.TaxRate = decimal.NewFromInt(11)
	update.ReportPINHash = "attacker"
	got, err := service.Update(context.Background(), update)
	require.NoError(t, err)
	assert.Equal(t, "hash", got.ReportPINHash)
	repo.AssertExpectations(t)
}

func TestSettingsService_SetPIN(t *testing.T) {
	repo := repositories.NewMemorySettingsRepository()
	service := services.NewSettingsService(repo, defaultStoreSettings(), zap.NewNop())
	ctx := context.Background()

	assert.ErrorIs(t, service.SetPIN(ctx, "12a4"), services.ErrInvalidPIN)
	assert.ErrorIs(t, service.SetPIN(ctx, "123"), services.ErrInvalidPIN)

	require.NoError(t, service.SetPIN(ctx, "2468"))
	got, err := service.Get(ctx)
	require.NoError(t, err)
	require.True(t, got.HasPIN())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.ReportPINHash), []byte("2468")))

	require.NoError(t, service.SetPIN(ctx, ""))
	got, err = service.Get(ctx)
	require.NoError(t, err)
	assert.False(t, got.HasPIN())
}

func TestSettingsService_Shifts(t *testing.T) {
	service := services.NewSettingsService(repositories.NewMemorySettingsRepository(), defaultStoreSettings(), zap.NewNop())

	shifts, err := service.Shifts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "05:00", shifts.MorningStart.String())
	assert.Equal(t, "17:30", shifts.MorningEnd.String())
}

package services_test

import (
	"context"
	"testing"

	"restopos/internal/models"
	"restopos/internal/repositories"
	"restopos/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPaymentTypeService_Registry(t *testing.T) {
	service := services.NewPaymentTypeService(repositories.NewMemoryPaymentTypeRepository(), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, service.EnsureCash(ctx))
	require.NoError(t, service.EnsureCash(ctx))

	card := &models.PaymentType{Name: " Card "}
	require.NoError(t, service.Create(ctx, card))
	qris := &models.PaymentType{Name: "QRIS"}
	require.NoError(t, service.Create(ctx, qris))

	all, err := service.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].IsCash())
	assert.Equal(t, "Card", all[1].Name)
	assert.Equal(t, 1, all[1].Position)
	assert.Equal(t, 2, all[2].Position)

	_, err = service.SetEnabled(ctx, card.ID, false)
	require.NoError(t, err)
	methods, err := service.Methods(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cash", "QRIS"}, methods)

	require.NoError(t, service.Delete(ctx, qris.ID))
	all, err = service.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPaymentTypeService_CashIsPermanent(t *testing.T) {
	service := services.NewPaymentTypeService(repositories.NewMemoryPaymentTypeRepository(), zap.NewNop())
	ctx := context.Background()
	require.NoError(t, service.EnsureCash(ctx))

	assert.ErrorIs(t, service.Delete(ctx, models.CashPaymentTypeID), services.ErrCashNotRemovable)
	_, err := service.SetEnabled(ctx, models.CashPaymentTypeID, false)
	assert.ErrorIs(t, err, services.ErrCashNotRemovable)

	// A new entry can never take over the cash id.
	impostor := &models.PaymentType{ID: models.CashPaymentTypeID, Name: "Fake"}
	require.NoError(t, service.Create(ctx, impostor))
	assert.NotEqual(t, models.CashPaymentTypeID, impostor.ID)

	enabled, err := service.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, enabled, 2)
}

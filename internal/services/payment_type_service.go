package services

import (
	"context"
	"errors"
	"strings"

	"restopos/internal/models"
	"restopos/internal/payment"
	"restopos/internal/repositories"

	"go.uber.org/zap"
)

// PaymentTypeService manages the registry of payment methods. The cash entry
// always exists and stays enabled.
type PaymentTypeService struct {
	repo   repositories.PaymentTypeRepository
	logger *zap.Logger
}

// NewPaymentTypeService creates a new PaymentTypeService.
func NewPaymentTypeService(repo repositories.PaymentTypeRepository, logger *zap.Logger) *PaymentTypeService {
	return &PaymentTypeService{repo: repo, logger: logger}
}

// EnsureCash seeds the cash entry when it is missing.
func (s *PaymentTypeService) EnsureCash(ctx context.Context) error {
	_, err := s.repo.GetByID(ctx, models.CashPaymentTypeID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	s.logger.Info("seeding cash payment type")
	return s.repo.Create(ctx, &models.PaymentType{
		ID:       models.CashPaymentTypeID,
		Name:     payment.FallbackMethod,
		Icon:     "cash",
		Enabled:  true,
		Position: 0,
	})
}

// List returns the payment types in display order.
func (s *PaymentTypeService) List(ctx context.Context, enabledOnly bool) ([]models.PaymentType, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if !enabledOnly {
		return all, nil
	}
	enabled := make([]models.PaymentType, 0, len(all))
	for _, pt := range all {
		if pt.Enabled {
			enabled = append(enabled, pt)
		}
	}
	return enabled, nil
}

// Methods returns the names of the enabled payment types in display order.
func (s *PaymentTypeService) Methods(ctx context.Context) ([]string, error) {
	enabled, err := s.List(ctx, true)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(enabled))
	for i, pt := range enabled {
		names[i] = pt.Name
	}
	return names, nil
}

// Create appends a payment type after the existing ones.
func (s *PaymentTypeService) Create(ctx context.Context, pt *models.PaymentType) error {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}
	pt.Name = strings.TrimSpace(pt.Name)
	pt.Position = 0
	for _, existing := range all {
		if existing.Position >= pt.Position {
			pt.Position = existing.Position + 1
		}
	}
	if pt.ID == models.CashPaymentTypeID {
		pt.ID = ""
	}
	pt.Enabled = true
	return s.repo.Create(ctx, pt)
}

// SetEnabled shows or hides a payment type on the payment screen.
func (s *PaymentTypeService) SetEnabled(ctx context.Context, id string, enabled bool) (*models.PaymentType, error) {
	pt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pt.IsCash() && !enabled {
		return nil, ErrCashNotRemovable
	}
	pt.Enabled = enabled
	if err := s.repo.Update(ctx, pt); err != nil {
		return nil, err
	}
	return pt, nil
}

// Delete removes a payment type. Cash is refused.
func (s *PaymentTypeService) Delete(ctx context.Context, id string) error {
	if id == models.CashPaymentTypeID {
		return ErrCashNotRemovable
	}
	return s.repo.Delete(ctx, id)
}

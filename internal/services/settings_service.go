package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"restopos/internal/models"
	"restopos/internal/report"
	"restopos/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var pinPattern = regexp.MustCompile(`^[0-9]{4,8}$`)

// SettingsService reads and updates the single settings row.
type SettingsService struct {
	repo     repositories.SettingsRepository
	defaults models.Settings
	logger   *zap.Logger
	now      func() time.Time
}

// NewSettingsService creates a new SettingsService. defaults is returned
// until the settings are first saved.
func NewSettingsService(repo repositories.SettingsRepository, defaults models.Settings, logger *zap.Logger) *SettingsService {
	defaults.ID = models.SettingsID
	return &SettingsService{repo: repo, defaults: defaults, logger: logger, now: time.Now}
}

// Get returns the stored settings or the defaults.
func (s *SettingsService) Get(ctx context.Context) (models.Settings, error) {
	stored, err := s.repo.Get(ctx)
	if errors.Is(err, repositories.ErrNotFound) {
		return s.defaults, nil
	}
	if err != nil {
		return models.Settings{}, err
	}
	return *stored, nil
}

// Shifts returns the parsed shift boundaries.
func (s *SettingsService) Shifts(ctx context.Context) (report.Shifts, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return report.Shifts{}, err
	}
	return report.ParseShifts(settings.MorningStart, settings.MorningEnd, settings.NightEnd)
}

// Update replaces every editable field. The report PIN is kept; it changes
// only through SetPIN.
func (s *SettingsService) Update(ctx context.Context, update models.Settings) (models.Settings, error) {
	if _, err := report.ParseShifts(update.MorningStart, update.MorningEnd, update.NightEnd); err != nil {
		return models.Settings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if update.TaxRate.IsNegative() || update.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return models.Settings{}, fmt.Errorf("%w: tax rate must be between 0 and 100", ErrInvalidSettings)
	}

	current, err := s.Get(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	update.ID = models.SettingsID
	update.ReportPINHash = current.ReportPINHash
	update.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, &update); err != nil {
		return models.Settings{}, err
	}
	s.logger.Info("settings updated",
		zap.Bool("tax_enabled", update.TaxEnabled),
		zap.String("tax_rate", update.TaxRate.String()))
	return update, nil
}

// SetPIN stores a bcrypt hash of pin. An empty pin removes the gate.
func (s *SettingsService) SetPIN(ctx context.Context, pin string) error {
	pin = strings.TrimSpace(pin)
	hash := ""
	if pin != "" {
		if !pinPattern.MatchString(pin) {
			return ErrInvalidPIN
		}
		b, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash PIN: %w", err)
		}
		hash = string(b)
	}

	current, err := s.Get(ctx)
	if err != nil {
		return err
	}
	current.ReportPINHash = hash
	current.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, &current); err != nil {
		return err
	}
	s.logger.Info("report PIN changed", zap.Bool("enabled", hash != ""))
	return nil
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

const reportSubject = "reports"

// PinService guards the reports screen with the store PIN. A successful
// unlock issues a short-lived token.
type PinService struct {
	settings SettingsProvider
	secret   []byte
	ttl      time.Duration
	limiter  *rate.Limiter
	now      func() time.Time
	logger   *zap.Logger
}

// NewPinService creates a new PinService allowing attemptsPerMinute unlock
// attempts, with bursts of the same size.
func NewPinService(settings SettingsProvider, secret string, ttl time.Duration, attemptsPerMinute int, logger *zap.Logger) *PinService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if attemptsPerMinute < 1 {
		attemptsPerMinute = 1
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &PinService{
		settings: settings,
		secret:   []byte(secret),
		ttl:      ttl,
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(attemptsPerMinute)), attemptsPerMinute),
		now:      time.Now,
		logger:   logger,
	}
}

// Required reports whether a PIN is set.
func (s *PinService) Required(ctx context.Context) (bool, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return false, err
	}
	return settings.HasPIN(), nil
}

// Unlock checks pin and returns a signed token and its expiry. Without a PIN
// set every attempt succeeds.
func (s *PinService) Unlock(ctx context.Context, pin string) (string, time.Time, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return "", time.Time{}, err
	}

	if settings.HasPIN() {
		if !s.limiter.AllowN(s.now(), 1) {
			s.logger.Warn("report unlock throttled")
			return "", time.Time{}, ErrTooManyAttempts
		}
		if err := bcrypt.CompareHashAndPassword([]byte(settings.ReportPINHash), []byte(pin)); err != nil {
			s.logger.Warn("report unlock rejected")
			return "", time.Time{}, ErrWrongPIN
		}
	}

	now := s.now()
	expires := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   reportSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign report token: %w", err)
	}
	return signed, expires, nil
}

// ValidateToken checks a token issued by Unlock.
func (s *PinService) ValidateToken(tokenString string) error {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithSubject(reportSubject),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"restopos/internal/order"
	"restopos/internal/payment"
	"restopos/internal/report"
	"restopos/internal/repositories"
	"restopos/internal/services"
	"restopos/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var validate = validator.New()

// statusFor maps a service error to an HTTP status.
func statusFor(err error) int {
	var appErr *apperror.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr.Code
	case errors.Is(err, repositories.ErrNotFound),
		errors.Is(err, services.ErrTicketNotFound),
		errors.Is(err, order.ErrLineNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidPrice),
		errors.Is(err, services.ErrSlotOutOfRange),
		errors.Is(err, services.ErrInvalidSettings),
		errors.Is(err, services.ErrInvalidPIN),
		errors.Is(err, services.ErrMergeNeedsTwo),
		errors.Is(err, services.ErrNameRequired),
		errors.Is(err, report.ErrUnknownFilter),
		errors.Is(err, report.ErrUnknownShift),
		errors.Is(err, report.ErrInvalidClock),
		errors.Is(err, report.ErrInvalidCustomRange):
		return http.StatusBadRequest
	case errors.Is(err, payment.ErrEmptyOrder),
		errors.Is(err, payment.ErrSplitNotBalanced),
		errors.Is(err, payment.ErrMissingMethod):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrCashNotRemovable):
		return http.StatusConflict
	case errors.Is(err, services.ErrWrongPIN),
		errors.Is(err, services.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrTooManyAttempts):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"message", "error"} with the status matching err.
func respondError(c *fiber.Ctx, logger *zap.Logger, message string, err error) error {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(message, zap.String("path", c.Path()), zap.Error(err))
	} else {
		logger.Debug(message, zap.String("path", c.Path()), zap.Int("status", status), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// decode parses and validates the request body into v. When it returns
// false the error response has already been written and the handler returns
// the accompanying error.
func decode(c *fiber.Ctx, v interface{}) (bool, error) {
	if err := c.BodyParser(v); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	err := validate.Struct(v)
	if err == nil {
		return true, nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	fields := make([]apperror.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, apperror.FieldError{
			Field:   e.Field(),
			Message: fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag()),
		})
	}
	appErr := apperror.NewValidationError(fields)
	return false, c.Status(appErr.Code).JSON(fiber.Map{
		"message": appErr.Message,
		"errors":  appErr.Errors,
	})
}

// intParam reads a non-negative integer route parameter.
func intParam(c *fiber.Ctx, name string) (int, bool) {
	v, err := strconv.Atoi(c.Params(name))
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

package handlers

import (
	"restopos/internal/models"
	"restopos/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SettingsHandler handles HTTP requests for settings and payment types.
type SettingsHandler struct {
	settings     *services.SettingsService
	paymentTypes *services.PaymentTypeService
	logger       *zap.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings *services.SettingsService, paymentTypes *services.PaymentTypeService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, paymentTypes: paymentTypes, logger: logger}
}

// RegisterRoutes registers the settings and payment-type routes.
func (h *SettingsHandler) RegisterRoutes(router fiber.Router) {
	s := router.Group("/settings")
	s.Get("/", h.HandleGetSettings)
	s.Put("/", h.HandleUpdateSettings)
	s.Put("/pin", h.HandleSetPIN)

	pt := router.Group("/payment-types")
	pt.Get("/", h.HandleGetPaymentTypes)
	pt.Post("/", h.HandleCreatePaymentType)
	pt.Patch("/:id", h.HandleTogglePaymentType)
	pt.Delete("/:id", h.HandleDeletePaymentType)
}

type settingsResponse struct {
	models.Settings
	PINEnabled bool `json:"pin_enabled"`
}

// HandleGetSettings returns the store settings without the PIN hash.
func (h *SettingsHandler) HandleGetSettings(c *fiber.Ctx) error {
	settings, err := h.settings.Get(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve settings", err)
	}
	return c.JSON(settingsResponse{Settings: settings, PINEnabled: settings.HasPIN()})
}

// HandleUpdateSettings saves the store settings.
func (h *SettingsHandler) HandleUpdateSettings(c *fiber.Ctx) error {
	var req models.Settings
	if ok, err := decode(c, &req); !ok {
		return err
	}
	settings, err := h.settings.Update(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, "Could not update settings", err)
	}
	return c.JSON(settingsResponse{Settings: settings, PINEnabled: settings.HasPIN()})
}

type pinRequest struct {
	PIN string `json:"pin"`
}

// HandleSetPIN sets the report PIN; an empty PIN removes it.
func (h *SettingsHandler) HandleSetPIN(c *fiber.Ctx) error {
	var req pinRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	if err := h.settings.SetPIN(c.UserContext(), req.PIN); err != nil {
		return respondError(c, h.logger, "Could not set PIN", err)
	}
	return c.JSON(fiber.Map{"pin_enabled": req.PIN != ""})
}

// HandleGetPaymentTypes lists payment types; ?enabled=true hides disabled
// ones.
func (h *SettingsHandler) HandleGetPaymentTypes(c *fiber.Ctx) error {
	types, err := h.paymentTypes.List(c.UserContext(), c.QueryBool("enabled", false))
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve payment types", err)
	}
	return c.JSON(types)
}

// HandleCreatePaymentType adds a payment method.
func (h *SettingsHandler) HandleCreatePaymentType(c *fiber.Ctx) error {
	var pt models.PaymentType
	if ok, err := decode(c, &pt); !ok {
		return err
	}
	if err := h.paymentTypes.Create(c.UserContext(), &pt); err != nil {
		return respondError(c, h.logger, "Could not create payment type", err)
	}
	return c.Status(fiber.StatusCreated).JSON(pt)
}

type toggleRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// HandleTogglePaymentType enables or disables a payment method.
func (h *SettingsHandler) HandleTogglePaymentType(c *fiber.Ctx) error {
	var req toggleRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	pt, err := h.paymentTypes.SetEnabled(c.UserContext(), c.Params("id"), *req.Enabled)
	if err != nil {
		return respondError(c, h.logger, "Could not update payment type", err)
	}
	return c.JSON(pt)
}

// HandleDeletePaymentType removes a payment method other than cash.
func (h *SettingsHandler) HandleDeletePaymentType(c *fiber.Ctx) error {
	if err := h.paymentTypes.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.logger, "Could not delete payment type", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

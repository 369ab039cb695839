package handlers

import (
	"time"

	"restopos/internal/services"
	"restopos/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ReportHandler handles HTTP requests for the sales dashboard.
type ReportHandler struct {
	reports *services.ReportService
	pins    *services.PinService
	logger  *zap.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports *services.ReportService, pins *services.PinService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, pins: pins, logger: logger}
}

// RegisterRoutes registers the unlock route and, behind gate, the report
// routes.
func (h *ReportHandler) RegisterRoutes(router fiber.Router, gate fiber.Handler) {
	r := router.Group("/reports")
	r.Post("/unlock", h.HandleUnlock)
	r.Get("/summary", gate, h.HandleSummary)
	r.Get("/items", gate, h.HandleItems)
	r.Get("/orders", gate, h.HandleOrders)
}

type unlockRequest struct {
	PIN string `json:"pin"`
}

// HandleUnlock exchanges the report PIN for a short-lived token.
func (h *ReportHandler) HandleUnlock(c *fiber.Ctx) error {
	var req unlockRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	token, expires, err := h.pins.Unlock(c.UserContext(), req.PIN)
	if err != nil {
		return respondError(c, h.logger, "Could not unlock reports", err)
	}
	return c.JSON(fiber.Map{
		"token":      token,
		"expires_at": expires.Format(time.RFC3339),
	})
}

func (h *ReportHandler) request(c *fiber.Ctx) (services.ReportRequest, error) {
	var req services.ReportRequest
	err := c.QueryParser(&req)
	return req, err
}

// HandleSummary returns the sales summary for a range.
func (h *ReportHandler) HandleSummary(c *fiber.Ctx) error {
	req, err := h.request(c)
	if err != nil {
		return respondError(c, h.logger, "Invalid report parameters", apperror.Wrap(fiber.StatusBadRequest, "malformed query", err))
	}
	summary, err := h.reports.Summary(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, "Could not compute report", err)
	}
	return c.JSON(summary)
}

// HandleItems lists per-item sales for a range, sorted and paged.
func (h *ReportHandler) HandleItems(c *fiber.Ctx) error {
	req, err := h.request(c)
	if err != nil {
		return respondError(c, h.logger, "Invalid report parameters", apperror.Wrap(fiber.StatusBadRequest, "malformed query", err))
	}
	listing, err := h.reports.Items(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, "Could not compute item report", err)
	}
	return c.JSON(listing)
}

// HandleOrders lists the receipts of a range, sorted and paged.
func (h *ReportHandler) HandleOrders(c *fiber.Ctx) error {
	req, err := h.request(c)
	if err != nil {
		return respondError(c, h.logger, "Invalid report parameters", apperror.Wrap(fiber.StatusBadRequest, "malformed query", err))
	}
	listing, err := h.reports.Orders(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, "Could not compute order report", err)
	}
	return c.JSON(listing)
}

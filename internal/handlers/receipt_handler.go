package handlers

import (
	"restopos/internal/services"
	"restopos/pkg/apperror"
	"restopos/pkg/pagination"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ReceiptHandler handles HTTP requests for the receipt history.
type ReceiptHandler struct {
	receipts *services.ReceiptService
	printer  *services.PrinterService
	logger   *zap.Logger
}

// NewReceiptHandler creates a new ReceiptHandler.
func NewReceiptHandler(receipts *services.ReceiptService, printer *services.PrinterService, logger *zap.Logger) *ReceiptHandler {
	return &ReceiptHandler{receipts: receipts, printer: printer, logger: logger}
}

// RegisterRoutes registers the receipt routes.
func (h *ReceiptHandler) RegisterRoutes(router fiber.Router) {
	r := router.Group("/receipts")
	r.Get("/", h.HandleGetReceipts)
	r.Get("/:id", h.HandleGetReceipt)
	r.Post("/:id/print", h.HandlePrintReceipt)
	router.Get("/printer/status", h.HandlePrinterStatus)
}

// HandleGetReceipts lists receipts newest first, ?page= and ?per_page=.
func (h *ReceiptHandler) HandleGetReceipts(c *fiber.Ctx) error {
	params := pagination.DefaultParams()
	if err := c.QueryParser(&params); err != nil {
		return respondError(c, h.logger, "Invalid pagination parameters", apperror.Wrap(fiber.StatusBadRequest, "malformed query", err))
	}
	result, err := h.receipts.List(c.UserContext(), params)
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve receipts", err)
	}
	return c.JSON(result)
}

// HandleGetReceipt returns one stored receipt.
func (h *ReceiptHandler) HandleGetReceipt(c *fiber.Ctx) error {
	receipt, err := h.receipts.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve receipt", err)
	}
	return c.JSON(receipt)
}

// HandlePrintReceipt reprints a stored receipt.
func (h *ReceiptHandler) HandlePrintReceipt(c *fiber.Ctx) error {
	if err := h.printer.PrintReceipt(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.logger, "Could not print receipt", err)
	}
	return c.JSON(fiber.Map{"message": "Receipt sent to printer"})
}

// HandlePrinterStatus reports whether a printer is configured and connected.
func (h *ReceiptHandler) HandlePrinterStatus(c *fiber.Ctx) error {
	return c.JSON(h.printer.Status())
}

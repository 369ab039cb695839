package handlers

import (
	"encoding/json"
	"strings"

	"restopos/internal/models"
	"restopos/internal/order"
	"restopos/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SalesHandler handles HTTP requests for the order, tickets and checkout.
type SalesHandler struct {
	service *services.SalesService
	logger  *zap.Logger
}

// NewSalesHandler creates a new SalesHandler.
func NewSalesHandler(service *services.SalesService, logger *zap.Logger) *SalesHandler {
	return &SalesHandler{service: service, logger: logger}
}

// RegisterRoutes registers the order, ticket and checkout routes.
func (h *SalesHandler) RegisterRoutes(router fiber.Router) {
	o := router.Group("/order")
	o.Get("/", h.HandleGetOrder)
	o.Delete("/", h.HandleClearOrder)
	o.Post("/items", h.HandleAddItem)
	o.Post("/lines/:lineId/decrement", h.HandleDecrementLine)
	o.Put("/lines/:lineId", h.HandleSetQuantity)
	o.Delete("/lines/:lineId", h.HandleDeleteLine)

	t := router.Group("/tickets")
	t.Get("/", h.HandleGetTickets)
	t.Post("/", h.HandleSaveTicket)
	t.Post("/merge", h.HandleMergeTickets)
	t.Post("/:id/load", h.HandleLoadTicket)
	t.Put("/:id", h.HandleRenameTicket)
	t.Delete("/:id", h.HandleDeleteTicket)

	co := router.Group("/checkout")
	co.Post("/cash", h.HandleCheckoutCash)
	co.Post("/exact", h.HandleCheckoutExact)
	co.Post("/split/preview", h.HandleSplitPreview)
	co.Post("/split/remaining", h.HandleSplitRemaining)
	co.Post("/split", h.HandleCheckoutSplit)
}

// HandleGetOrder returns the current order with its totals.
func (h *SalesHandler) HandleGetOrder(c *fiber.Ctx) error {
	view, err := h.service.Order(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve order", err)
	}
	return c.JSON(view)
}

// HandleClearOrder empties the current order.
func (h *SalesHandler) HandleClearOrder(c *fiber.Ctx) error {
	view, err := h.service.ClearOrder(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, "Could not clear order", err)
	}
	return c.JSON(view)
}

type addItemRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

// HandleAddItem adds one unit of an item to the current order.
func (h *SalesHandler) HandleAddItem(c *fiber.Ctx) error {
	var req addItemRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	view, err := h.service.AddItem(c.UserContext(), req.ItemID)
	if err != nil {
		return respondError(c, h.logger, "Could not add item to order", err)
	}
	return c.JSON(view)
}

// HandleDecrementLine removes one unit from an order line.
func (h *SalesHandler) HandleDecrementLine(c *fiber.Ctx) error {
	view, err := h.service.DecrementLine(c.UserContext(), c.Params("lineId"))
	if err != nil {
		return respondError(c, h.logger, "Could not decrement line", err)
	}
	return c.JSON(view)
}

// HandleDeleteLine removes an order line.
func (h *SalesHandler) HandleDeleteLine(c *fiber.Ctx) error {
	view, err := h.service.DeleteLine(c.UserContext(), c.Params("lineId"))
	if err != nil {
		return respondError(c, h.logger, "Could not delete line", err)
	}
	return c.JSON(view)
}

// quantityRequest accepts the quantity as a number or as the raw text the
// operator typed.
type quantityRequest struct {
	Quantity json.RawMessage `json:"quantity"`
}

// HandleSetQuantity sets a line's quantity. Input that is not an integer is
// read as zero and removes the line.
func (h *SalesHandler) HandleSetQuantity(c *fiber.Ctx) error {
	var req quantityRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	quantity := order.ParseQuantity(strings.Trim(string(req.Quantity), `"`))
	view, err := h.service.SetQuantity(c.UserContext(), c.Params("lineId"), quantity)
	if err != nil {
		return respondError(c, h.logger, "Could not update quantity", err)
	}
	return c.JSON(view)
}

// HandleGetTickets lists the saved tickets.
func (h *SalesHandler) HandleGetTickets(c *fiber.Ctx) error {
	return c.JSON(h.service.Tickets())
}

type ticketNameRequest struct {
	Name string `json:"name" validate:"max=100"`
}

// HandleSaveTicket parks the current order as a ticket.
func (h *SalesHandler) HandleSaveTicket(c *fiber.Ctx) error {
	var req ticketNameRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	ticket, err := h.service.SaveTicket(c.UserContext(), req.Name)
	if err != nil {
		return respondError(c, h.logger, "Could not save ticket", err)
	}
	return c.Status(fiber.StatusCreated).JSON(ticket)
}

type mergeTicketsRequest struct {
	Name      string   `json:"name" validate:"max=100"`
	TicketIDs []string `json:"ticket_ids" validate:"required,min=2,dive,required"`
}

// HandleMergeTickets combines tickets into a new one.
func (h *SalesHandler) HandleMergeTickets(c *fiber.Ctx) error {
	var req mergeTicketsRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	ticket, err := h.service.MergeTickets(c.UserContext(), req.Name, req.TicketIDs)
	if err != nil {
		return respondError(c, h.logger, "Could not merge tickets", err)
	}
	return c.Status(fiber.StatusCreated).JSON(ticket)
}

// HandleLoadTicket loads a saved ticket into the current order.
func (h *SalesHandler) HandleLoadTicket(c *fiber.Ctx) error {
	view, err := h.service.LoadTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, "Could not load ticket", err)
	}
	return c.JSON(view)
}

// HandleRenameTicket renames a saved ticket.
func (h *SalesHandler) HandleRenameTicket(c *fiber.Ctx) error {
	var req ticketNameRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	ticket, err := h.service.RenameTicket(c.UserContext(), c.Params("id"), req.Name)
	if err != nil {
		return respondError(c, h.logger, "Could not rename ticket", err)
	}
	return c.JSON(ticket)
}

// HandleDeleteTicket discards a saved ticket.
func (h *SalesHandler) HandleDeleteTicket(c *fiber.Ctx) error {
	if err := h.service.DeleteTicket(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.logger, "Could not delete ticket", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type cashRequest struct {
	Tendered decimal.Decimal `json:"tendered"`
}

// HandleCheckoutCash charges the order in cash and returns the change.
func (h *SalesHandler) HandleCheckoutCash(c *fiber.Ctx) error {
	var req cashRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	receipt, err := h.service.CheckoutCash(c.UserContext(), req.Tendered)
	if err != nil {
		return respondError(c, h.logger, "Could not complete cash payment", err)
	}
	return c.Status(fiber.StatusCreated).JSON(receipt)
}

type exactRequest struct {
	Method string `json:"method" validate:"required"`
}

// HandleCheckoutExact charges the order in full with one payment method.
func (h *SalesHandler) HandleCheckoutExact(c *fiber.Ctx) error {
	var req exactRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	receipt, err := h.service.CheckoutExact(c.UserContext(), req.Method)
	if err != nil {
		return respondError(c, h.logger, "Could not complete payment", err)
	}
	return c.Status(fiber.StatusCreated).JSON(receipt)
}

type splitRequest struct {
	Rows []models.SplitPaymentDetail `json:"rows"`
}

// HandleSplitPreview checks a split payment against the order total.
func (h *SalesHandler) HandleSplitPreview(c *fiber.Ctx) error {
	var req splitRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	view, err := h.service.SplitPreview(c.UserContext(), req.Rows)
	if err != nil {
		return respondError(c, h.logger, "Could not reconcile split payment", err)
	}
	return c.JSON(view)
}

// HandleSplitRemaining adds a row carrying the unpaid amount to a split.
func (h *SalesHandler) HandleSplitRemaining(c *fiber.Ctx) error {
	var req splitRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	view, err := h.service.AddRemaining(c.UserContext(), req.Rows)
	if err != nil {
		return respondError(c, h.logger, "Could not add remaining amount", err)
	}
	return c.JSON(view)
}

// HandleCheckoutSplit charges the order across several payment methods.
func (h *SalesHandler) HandleCheckoutSplit(c *fiber.Ctx) error {
	var req splitRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	receipt, err := h.service.CheckoutSplit(c.UserContext(), req.Rows)
	if err != nil {
		return respondError(c, h.logger, "Could not complete split payment", err)
	}
	return c.Status(fiber.StatusCreated).JSON(receipt)
}

package handlers

import (
	"restopos/internal/models"
	"restopos/internal/services"
	"restopos/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CatalogHandler handles HTTP requests for items, categories and the grid.
type CatalogHandler struct {
	service *services.CatalogService
	logger  *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{service: service, logger: logger}
}

// RegisterRoutes registers the catalog routes.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	items := router.Group("/items")
	items.Get("/", h.HandleGetItems)
	items.Get("/:id", h.HandleGetItem)
	items.Post("/", h.HandleCreateItem)
	items.Put("/:id", h.HandleUpdateItem)
	items.Delete("/:id", h.HandleDeleteItem)

	router.Get("/categories", h.HandleGetCategories)

	grid := router.Group("/grid")
	grid.Get("/:page", h.HandleGetGridPage)
	grid.Put("/:page/:position", h.HandleAssignSlot)
	grid.Delete("/:page/:position", h.HandleClearSlot)
}

// HandleGetItems lists the catalog, optionally filtered by ?q=.
func (h *CatalogHandler) HandleGetItems(c *fiber.Ctx) error {
	items, err := h.service.SearchItems(c.UserContext(), c.Query("q"))
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve items", err)
	}
	return c.JSON(items)
}

// HandleGetItem returns one item by id.
func (h *CatalogHandler) HandleGetItem(c *fiber.Ctx) error {
	item, err := h.service.GetItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve item", err)
	}
	return c.JSON(item)
}

// HandleCreateItem adds an item to the catalog.
func (h *CatalogHandler) HandleCreateItem(c *fiber.Ctx) error {
	var item models.Item
	if ok, err := decode(c, &item); !ok {
		return err
	}
	if err := h.service.CreateItem(c.UserContext(), &item); err != nil {
		return respondError(c, h.logger, "Could not create item", err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateItem replaces an item's name, price and category.
func (h *CatalogHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var item models.Item
	if ok, err := decode(c, &item); !ok {
		return err
	}
	item.ID = c.Params("id")
	if err := h.service.UpdateItem(c.UserContext(), &item); err != nil {
		return respondError(c, h.logger, "Could not update item", err)
	}
	return c.JSON(item)
}

// HandleDeleteItem removes an item and clears its grid slots.
func (h *CatalogHandler) HandleDeleteItem(c *fiber.Ctx) error {
	if err := h.service.DeleteItem(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.logger, "Could not delete item", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetCategories lists the distinct item categories.
func (h *CatalogHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.Categories(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve categories", err)
	}
	return c.JSON(categories)
}

// HandleGetGridPage returns every cell of one grid page.
func (h *CatalogHandler) HandleGetGridPage(c *fiber.Ctx) error {
	page, ok := intParam(c, "page")
	if !ok {
		return respondError(c, h.logger, "Invalid grid page", apperror.NewBadRequestError("page must be a non-negative integer"))
	}
	cells, err := h.service.GridPage(c.UserContext(), page)
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve grid page", err)
	}
	return c.JSON(fiber.Map{"page": page, "cells": cells})
}

type assignSlotRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

// HandleAssignSlot places an item in a grid slot.
func (h *CatalogHandler) HandleAssignSlot(c *fiber.Ctx) error {
	page, okPage := intParam(c, "page")
	position, okPos := intParam(c, "position")
	if !okPage || !okPos {
		return respondError(c, h.logger, "Invalid grid slot", apperror.NewBadRequestError("page and position must be non-negative integers"))
	}
	var req assignSlotRequest
	if ok, err := decode(c, &req); !ok {
		return err
	}
	if err := h.service.AssignSlot(c.UserContext(), page, position, req.ItemID); err != nil {
		return respondError(c, h.logger, "Could not assign grid slot", err)
	}
	return c.JSON(models.GridSlot{Page: page, Position: position, ItemID: req.ItemID})
}

// HandleClearSlot empties a grid slot.
func (h *CatalogHandler) HandleClearSlot(c *fiber.Ctx) error {
	page, okPage := intParam(c, "page")
	position, okPos := intParam(c, "position")
	if !okPage || !okPos {
		return respondError(c, h.logger, "Invalid grid slot", apperror.NewBadRequestError("page and position must be non-negative integers"))
	}
	if err := h.service.ClearSlot(c.UserContext(), page, position); err != nil {
		return respondError(c, h.logger, "Could not clear grid slot", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

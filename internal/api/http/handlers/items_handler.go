package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/modular-api/internal/api/dto"
	"github.com/spec-kit/modular-api/internal/service"
)

// ItemsHandler exposes CRUD endpoints for the caller's items.
type ItemsHandler struct {
	items *service.ItemService
}

// NewItemsHandler constructs handler.
func NewItemsHandler(items *service.ItemService) *ItemsHandler {
	return &ItemsHandler{items: items}
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.ItemCreateRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.items.Create(c.UserContext(), user, req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewItemResponse(item))
}

// List handles GET /api/items.
func (h *ItemsHandler) List(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.items.List(c.UserContext(), user, c.QueryInt("skip", 0), c.QueryInt("limit", service.DefaultItemLimit))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewItemListResponse(items))
}

// Get handles GET /api/items/:id.
func (h *ItemsHandler) Get(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	item, err := h.items.Get(c.UserContext(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewItemResponse(item))
}

// Update handles PUT /api/items/:id.
func (h *ItemsHandler) Update(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.ItemUpdateRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.items.Update(c.UserContext(), user, c.Params("id"), req.Patch())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewItemResponse(item))
}

// Delete handles DELETE /api/items/:id.
func (h *ItemsHandler) Delete(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	item, err := h.items.Delete(c.UserContext(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewItemResponse(item))
}

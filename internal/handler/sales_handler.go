package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ochoaluis/gymkeeper/internal/domain"
	"github.com/ochoaluis/gymkeeper/internal/service"
)

// SalesHandler handles point-of-sale checkout and sales history
type SalesHandler struct {
	salesService *service.SalesService
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(salesService *service.SalesService) *SalesHandler {
	return &SalesHandler{salesService: salesService}
}

// Checkout handles POST /v1/sales
func (h *SalesHandler) Checkout(c *fiber.Ctx) error {
	var payload domain.CheckoutPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid body"})
	}

	sale, err := h.salesService.Checkout(c.Context(), payload)
	if err != nil {
		var stockErr *domain.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			// 409 so the till can refresh the line with what is left
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"error":   stockErr.Error(),
				"data": fiber.Map{
					"product_id": stockErr.ProductID,
					"available":  stockErr.Available,
				},
			})
		case errors.Is(err, service.ErrEmptySale),
			errors.Is(err, service.ErrBadLine),
			errors.Is(err, service.ErrDuplicateLines),
			errors.Is(err, service.ErrInvalidPaymentMethod):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": sale})
}

// List handles GET /v1/sales
func (h *SalesHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	size := c.QueryInt("size", 20)

	sales, err := h.salesService.ListSales(c.Context(), page, size)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": sales})
}

// Get handles GET /v1/sales/:id
func (h *SalesHandler) Get(c *fiber.Ctx) error {
	sale, err := h.salesService.GetSale(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "sale not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": sale})
}

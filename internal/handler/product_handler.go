package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/ochoaluis/gymkeeper/internal/domain"
)

// ProductHandler handles the point-of-sale catalog
type ProductHandler struct {
	productRepo  domain.ProductRepository
	categoryRepo domain.CategoryRepository
}

// NewProductHandler creates a new product handler
func NewProductHandler(productRepo domain.ProductRepository, categoryRepo domain.CategoryRepository) *ProductHandler {
	return &ProductHandler{productRepo: productRepo, categoryRepo: categoryRepo}
}

// --- Categories ---

// CreateCategory handles POST /v1/categories
func (h *ProductHandler) CreateCategory(c *fiber.Ctx) error {
	var category domain.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid body"})
	}
	if strings.TrimSpace(category.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "name is required"})
	}

	if err := h.categoryRepo.Create(c.Context(), &category); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": category})
}

// ListCategories handles GET /v1/categories
func (h *ProductHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.categoryRepo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": categories})
}

// DeleteCategory handles DELETE /v1/categories/:id
func (h *ProductHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.categoryRepo.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "category not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"message": "deleted"}})
}

// --- Products ---

// Create handles POST /v1/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var product domain.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid body"})
	}
	if strings.TrimSpace(product.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "name is required"})
	}
	if product.SalePrice < 0 || product.Stock < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "sale_price and stock cannot be negative"})
	}

	if err := h.productRepo.Create(c.Context(), &product); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": product})
}

// ListByCategory handles GET /v1/categories/:id/products
func (h *ProductHandler) ListByCategory(c *fiber.Ctx) error {
	products, err := h.productRepo.GetByCategory(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": products})
}

// Search handles GET /v1/products/search?q=
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	term := strings.TrimSpace(c.Query("q"))
	if len([]rune(term)) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "search term must be at least 2 characters",
		})
	}

	products, err := h.productRepo.SearchByName(c.Context(), term)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": products})
}

// Get handles GET /v1/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	product, err := h.productRepo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": product})
}

// Update handles PUT /v1/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var product domain.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid body"})
	}
	product.ID = c.Params("id")

	if err := h.productRepo.Update(c.Context(), &product); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": product})
}

// Delete handles DELETE /v1/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.productRepo.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"message": "deleted"}})
}

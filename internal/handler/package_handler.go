package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/ochoaluis/gymkeeper/internal/domain"
)

// PackageHandler handles membership plan administration
type PackageHandler struct {
	pkgRepo domain.PackageRepository
}

// NewPackageHandler creates a new package handler
func NewPackageHandler(pkgRepo domain.PackageRepository) *PackageHandler {
	return &PackageHandler{pkgRepo: pkgRepo}
}

// Create handles POST /v1/packages
func (h *PackageHandler) Create(c *fiber.Ctx) error {
	var pkg domain.Package
	if err := c.BodyParser(&pkg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid body"})
	}
	if strings.TrimSpace(pkg.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "name is required"})
	}
	if pkg.Price < 0 || pkg.EnrollmentFee < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "price and enrollment_fee cannot be negative"})
	}

	if err := h.pkgRepo.Create(c.Context(), &pkg); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": pkg})
}

// List handles GET /v1/packages; only active plans are offered at the desk.
func (h *PackageHandler) List(c *fiber.Ctx) error {
	packages, err := h.pkgRepo.GetActivePackages(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": packages})
}

// Get handles GET /v1/packages/:id
func (h *PackageHandler) Get(c *fiber.Ctx) error {
	pkg, err := h.pkgRepo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "package not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": pkg})
}

// Update handles PUT /v1/packages/:id
func (h *PackageHandler) Update(c *fiber.Ctx) error {
	var pkg domain.Package
	if err := c.BodyParser(&pkg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid body"})
	}
	pkg.ID = c.Params("id")

	if err := h.pkgRepo.Update(c.Context(), &pkg); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "package not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": pkg})
}

// Delete handles DELETE /v1/packages/:id
func (h *PackageHandler) Delete(c *fiber.Ctx) error {
	if err := h.pkgRepo.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "package not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"message": "deleted"}})
}

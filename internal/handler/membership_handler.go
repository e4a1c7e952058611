package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ochoaluis/gymkeeper/internal/domain"
	"github.com/ochoaluis/gymkeeper/internal/service"
)

// MembershipHandler handles enrollment and renewal endpoints
type MembershipHandler struct {
	membershipService *service.MembershipService
}

// NewMembershipHandler creates a new membership handler
func NewMembershipHandler(membershipService *service.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService}
}

// Enroll handles POST /v1/memberships/enroll
func (h *MembershipHandler) Enroll(c *fiber.Ctx) error {
	return h.record(c, h.membershipService.Enroll)
}

// Renew handles POST /v1/memberships/renew
func (h *MembershipHandler) Renew(c *fiber.Ctx) error {
	return h.record(c, h.membershipService.Renew)
}

func (h *MembershipHandler) record(
	c *fiber.Ctx,
	create func(ctx context.Context, req service.MembershipRequest) (*domain.Membership, error),
) error {
	var req service.MembershipRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid body"})
	}

	membership, err := create(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPaymentMethod),
			errors.Is(err, service.ErrNegativeDiscount),
			errors.Is(err, service.ErrInactivePackage):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": membership})
}

// History handles GET /v1/members/:id/memberships
func (h *MembershipHandler) History(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	size := c.QueryInt("size", 20)

	history, err := h.membershipService.History(c.Context(), c.Params("id"), page, size)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": history})
}

// Active handles GET /v1/members/:id/memberships/active
func (h *MembershipHandler) Active(c *fiber.Ctx) error {
	active, err := h.membershipService.Active(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": active})
}

// Delete handles DELETE /v1/memberships/:id
func (h *MembershipHandler) Delete(c *fiber.Ctx) error {
	if err := h.membershipService.Remove(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "membership not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"message": "deleted"}})
}

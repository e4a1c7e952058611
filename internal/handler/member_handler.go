package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ochoaluis/gymkeeper/internal/domain"
	"github.com/ochoaluis/gymkeeper/internal/service"
	"github.com/oklog/ulid/v2"
)

// MemberHandler handles the member directory and the check-in screen
type MemberHandler struct {
	memberRepo       domain.MemberRepository
	admissionService *service.AdmissionService
	fileRepo         domain.FileRepository
	maxUploadMB      int64
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(
	memberRepo domain.MemberRepository,
	admissionService *service.AdmissionService,
	fileRepo domain.FileRepository,
	maxUploadMB int64,
) *MemberHandler {
	return &MemberHandler{
		memberRepo:       memberRepo,
		admissionService: admissionService,
		fileRepo:         fileRepo,
		maxUploadMB:      maxUploadMB,
	}
}

// Create handles POST /v1/members
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var member domain.Member
	if err := c.BodyParser(&member); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid body"})
	}
	if strings.TrimSpace(member.FirstName) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "first_name is required"})
	}

	if err := h.memberRepo.Create(c.Context(), &member); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": member})
}

// List handles GET /v1/members
func (h *MemberHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	size := c.QueryInt("size", 20)

	members, err := h.memberRepo.List(c.Context(), page, size)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": members})
}

// Get handles GET /v1/members/:id
func (h *MemberHandler) Get(c *fiber.Ctx) error {
	member, err := h.memberRepo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "member not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": member})
}

// Update handles PUT /v1/members/:id
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	var member domain.Member
	if err := c.BodyParser(&member); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid body"})
	}
	member.ID = c.Params("id")

	if err := h.memberRepo.Update(c.Context(), &member); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "member not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": member})
}

// Delete handles DELETE /v1/members/:id
func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	if err := h.memberRepo.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "member not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"message": "deleted"}})
}

// Admission handles GET /v1/members/:id/admission
func (h *MemberHandler) Admission(c *fiber.Ctx) error {
	result, err := h.admissionService.CheckIn(c.Context(), c.Params("id"), time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "member not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": result})
}

// UploadPhoto handles POST /v1/members/:id/photo
func (h *MemberHandler) UploadPhoto(c *fiber.Ctx) error {
	if h.fileRepo == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"success": false, "error": "photo storage is not configured"})
	}

	member, err := h.memberRepo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "member not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid multipart form"})
	}
	files := form.File["photo"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "missing 'photo' field in form data"})
	}
	photoFile := files[0]

	maxBytes := h.maxUploadMB * 1024 * 1024
	if photoFile.Size > maxBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   fmt.Sprintf("file size exceeds maximum of %dMB", h.maxUploadMB),
		})
	}
	if !isValidImageType(photoFile) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid file type, only JPEG and PNG images are allowed",
		})
	}

	fileHandle, err := photoFile.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "failed to open uploaded file"})
	}
	defer fileHandle.Close()

	data, err := io.ReadAll(fileHandle)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "failed to read uploaded file"})
	}

	filename := fmt.Sprintf("members/%s/%s%s", member.ID, ulid.Make().String(), filepath.Ext(photoFile.Filename))
	url, err := h.fileRepo.Upload(c.Context(), data, filename, photoFile.Header.Get("Content-Type"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "failed to store photo: " + err.Error()})
	}

	member.PhotoURL = url
	if err := h.memberRepo.Update(c.Context(), member); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"photo_url": url}})
}

func isValidImageType(file *multipart.FileHeader) bool {
	contentType := file.Header.Get("Content-Type")
	if contentType == "image/jpeg" || contentType == "image/jpg" || contentType == "image/png" {
		return true
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	return ext == ".jpg" || ext == ".jpeg" || ext == ".png"
}

package handlers

import (
	"strings"

	"github.com/devcamper/api/internal/models"
	"github.com/devcamper/api/internal/services"
	"github.com/gofiber/fiber/v2"
)

// 1 MB, matches the photo upload limit of the public API.
const maxPhotoSize = 1 << 20

type BootcampHandler struct {
	svc *services.BootcampService
}

func NewBootcampHandler(svc *services.BootcampService) *BootcampHandler {
	return &BootcampHandler{svc: svc}
}

func (h *BootcampHandler) Create(c *fiber.Ctx) error {
	userID, _, err := requestUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var body models.Bootcamp
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	bootcamp, err := h.svc.Create(c.Context(), body, userID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": bootcamp})
}

func (h *BootcampHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	bootcamp, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"data": bootcamp})
}

func (h *BootcampHandler) List(c *fiber.Ctx) error {
	bootcamps, err := h.svc.List(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"count": len(bootcamps), "data": bootcamps})
}

func (h *BootcampHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	userID, role, err := requestUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var body models.Bootcamp
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	bootcamp, err := h.svc.Update(c.Context(), id, body, userID, role)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"data": bootcamp})
}

func (h *BootcampHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	userID, role, err := requestUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.svc.Delete(c.Context(), id, userID, role); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Bootcamp deleted"})
}

// UploadPhoto handles multipart photo uploads for a bootcamp.
func (h *BootcampHandler) UploadPhoto(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	userID, role, err := requestUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to retrieve file"})
	}
	if fileHeader.Size > maxPhotoSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "photo larger than 1MB"})
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file must be an image"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to open file"})
	}
	defer file.Close()

	name, err := h.svc.UploadPhoto(c.Context(), id, userID, role, fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Photo uploaded", "photo": name})
}

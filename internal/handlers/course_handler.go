package handlers

import (
	"github.com/devcamper/api/internal/models"
	"github.com/devcamper/api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CourseHandler struct {
	svc *services.CourseService
}

func NewCourseHandler(svc *services.CourseService) *CourseHandler {
	return &CourseHandler{svc: svc}
}

func (h *CourseHandler) Create(c *fiber.Ctx) error {
	bootcampID, err := parseID(c, "bootcampId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	userID, _, err := requestUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var body models.Course
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	course, err := h.svc.Create(c.Context(), body, bootcampID, userID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": course})
}

func (h *CourseHandler) ListByBootcamp(c *fiber.Ctx) error {
	bootcampID, err := parseID(c, "bootcampId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	courses, err := h.svc.ListByBootcamp(c.Context(), bootcampID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"count": len(courses), "data": courses})
}

func (h *CourseHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	course, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"data": course})
}

func (h *CourseHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	userID, role, err := requestUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var body models.Course
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	course, err := h.svc.Update(c.Context(), id, body, userID, role)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"data": course})
}

func (h *CourseHandler) Delete(c *fiber.Ctx) error {
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
	return c.JSON(fiber.Map{"message": "Course deleted"})
}

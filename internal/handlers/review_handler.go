package handlers

import (
	"github.com/devcamper/api/internal/models"
	"github.com/devcamper/api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	svc *services.ReviewService
}

func NewReviewHandler(svc *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// Create adds a review for the bootcamp in the route. One review per user
// per bootcamp; a second submission gets a conflict response.
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	bootcampID, err := parseID(c, "bootcampId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	userID, _, err := requestUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var body models.Review
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	review, err := h.svc.Create(c.Context(), body, bootcampID, userID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": review})
}

func (h *ReviewHandler) ListByBootcamp(c *fiber.Ctx) error {
	bootcampID, err := parseID(c, "bootcampId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	reviews, err := h.svc.ListByBootcamp(c.Context(), bootcampID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"count": len(reviews), "data": reviews})
}

func (h *ReviewHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	review, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"data": review})
}

func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	userID, role, err := requestUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var body models.Review
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	review, err := h.svc.Update(c.Context(), id, body, userID, role)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"data": review})
}

func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
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
	return c.JSON(fiber.Map{"message": "Review deleted"})
}

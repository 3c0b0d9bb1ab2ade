package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kgee7/EarnBull/internal/service"
)

// GetGoals returns the user's goal ladder.
func (h *Handler) GetGoals(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}

	goals, err := h.goalSvc.GetGoals(c.Context(), user.ID)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{"goals": goals})
}

type UpdateGoalsRequest struct {
	Goals []service.GoalInput `json:"goals"`
}

// UpdateGoals replaces the goal ladder. Rewards are recomputed server-side
// from the step targets.
func (h *Handler) UpdateGoals(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}

	var req UpdateGoalsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	goals, err := h.goalSvc.UpdateGoals(c.Context(), user.ID, req.Goals)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{"goals": goals})
}

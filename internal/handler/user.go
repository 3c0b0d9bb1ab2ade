package handler

import (
	"github.com/gofiber/fiber/v2"
)

// GetMe returns the profile with balances, steps and the goal ladder.
func (h *Handler) GetMe(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}

	profile, err := h.userSvc.GetProfile(c.Context(), user.ID)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(profile)
}

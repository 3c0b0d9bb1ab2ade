package handler

import (
	"github.com/gofiber/fiber/v2"
)

type WithdrawRequest struct {
	Amount     float64 `json:"amount"`
	MomoNumber string  `json:"momo_number"`
}

// Withdraw pays a GHS amount to the user's MoMo number.
func (h *Handler) Withdraw(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}

	var req WithdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	withdrawal, err := h.withdrawalSvc.Withdraw(c.Context(), user.ID, req.Amount, req.MomoNumber)
	if err != nil {
		return h.fail(c, err)
	}

	profile, err := h.userSvc.GetProfile(c.Context(), user.ID)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"withdrawal": withdrawal,
		"profile":    profile,
	})
}

// GetWithdrawals returns the payout attempt history.
func (h *Handler) GetWithdrawals(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}

	withdrawals, err := h.withdrawalSvc.History(c.Context(), user.ID)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"withdrawals": withdrawals,
	})
}

package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Kgee7/EarnBull/internal/model"
)

type StepsRequest struct {
	Steps int64 `json:"steps"`
}

// RecordSteps applies a cumulative step-count update and grants milestone
// rewards.
func (h *Handler) RecordSteps(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}

	var req StepsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	entry, err := h.rewardSvc.RecordSteps(c.Context(), user.ID, req.Steps)
	if err != nil {
		return h.fail(c, err)
	}

	profile, err := h.userSvc.GetProfile(c.Context(), user.ID)
	if err != nil {
		return h.fail(c, err)
	}

	resp := fiber.Map{"profile": profile}
	if entry != nil {
		resp["transaction"] = entry
		resp["reward"] = entry.Amount
	}
	return c.JSON(resp)
}

type ConvertRequest struct {
	Amount float64 `json:"amount"`
}

// ConvertToUSD exchanges Bull Coins for dollars.
func (h *Handler) ConvertToUSD(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}

	var req ConvertRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	entry, err := h.conversionSvc.ConvertToUSD(c.Context(), user.ID, req.Amount)
	if err != nil {
		return h.fail(c, err)
	}

	return h.convertResponse(c, user.ID, entry)
}

// ConvertToGHS exchanges dollars for cedis at the current rate.
func (h *Handler) ConvertToGHS(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}

	var req ConvertRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	entry, err := h.conversionSvc.ConvertToGHS(c.Context(), user.ID, req.Amount)
	if err != nil {
		return h.fail(c, err)
	}

	return h.convertResponse(c, user.ID, entry)
}

func (h *Handler) convertResponse(c *fiber.Ctx, userID int64, entry *model.Transaction) error {
	profile, err := h.userSvc.GetProfile(c.Context(), userID)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"profile":     profile,
		"transaction": entry,
	})
}

// GetTransactions returns a ledger page, most recent first.
func (h *Handler) GetTransactions(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	transactions, err := h.ledgerSvc.List(c.Context(), user.ID, limit, offset)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"transactions": transactions,
	})
}

// DeleteTransaction removes one ledger entry. Balances are unaffected.
func (h *Handler) DeleteTransaction(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid transaction id",
		})
	}

	if err := h.ledgerSvc.Delete(c.Context(), user.ID, id); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{"status": "deleted"})
}

// DeleteAllTransactions clears the ledger. Balances are unaffected.
func (h *Handler) DeleteAllTransactions(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}

	deleted, err := h.ledgerSvc.DeleteAll(c.Context(), user.ID)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "deleted",
		"deleted": deleted,
	})
}

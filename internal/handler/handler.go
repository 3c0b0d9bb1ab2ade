package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Kgee7/EarnBull/internal/middleware"
	"github.com/Kgee7/EarnBull/internal/model"
	"github.com/Kgee7/EarnBull/internal/repository"
	"github.com/Kgee7/EarnBull/internal/service"
)

type Handler struct {
	userSvc       *service.UserService
	rewardSvc     *service.RewardService
	conversionSvc *service.ConversionService
	withdrawalSvc *service.WithdrawalService
	ledgerSvc     *service.LedgerService
	goalSvc       *service.GoalService
	ratesSvc      *service.RatesService
}

func New(
	userSvc *service.UserService,
	rewardSvc *service.RewardService,
	conversionSvc *service.ConversionService,
	withdrawalSvc *service.WithdrawalService,
	ledgerSvc *service.LedgerService,
	goalSvc *service.GoalService,
	ratesSvc *service.RatesService,
) *Handler {
	return &Handler{
		userSvc:       userSvc,
		rewardSvc:     rewardSvc,
		conversionSvc: conversionSvc,
		withdrawalSvc: withdrawalSvc,
		ledgerSvc:     ledgerSvc,
		goalSvc:       goalSvc,
		ratesSvc:      ratesSvc,
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// GetRates exposes the USD→GHS rate and the withdrawal eligibility floor.
func (h *Handler) GetRates(c *fiber.Ctx) error {
	rate, err := h.ratesSvc.USDToGHS(c.Context())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "failed to get rates",
		})
	}

	return c.JSON(fiber.Map{
		"usd_to_ghs":         rate.Value,
		"is_fresh":           rate.Fresh,
		"min_withdrawal_usd": service.MinWithdrawalUSD,
	})
}

// currentUser resolves the authenticated identity to its profile row,
// creating it on first sign-in.
func (h *Handler) currentUser(c *fiber.Ctx) (*model.User, error) {
	auth := middleware.GetAuthUser(c)
	if auth == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}

	user, _, err := h.userSvc.GetOrCreateUser(c.Context(), service.GoogleUser{
		GoogleID:    auth.GoogleID,
		Email:       auth.Email,
		DisplayName: auth.DisplayName,
	})
	return user, err
}

// fail maps engine errors to HTTP statuses. Every failure path produces a
// user-visible message.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidRecipient):
		status = fiber.StatusBadRequest
	case errors.Is(err, service.ErrNotEligible):
		status = fiber.StatusForbidden
	case errors.Is(err, service.ErrWithdrawalDeclined):
		status = fiber.StatusPaymentRequired
	case errors.Is(err, service.ErrStorageConflict):
		status = fiber.StatusConflict
	case errors.Is(err, service.ErrRateUnavailable):
		status = fiber.StatusServiceUnavailable
	case errors.Is(err, service.ErrPayoutUnresolved):
		status = fiber.StatusBadGateway
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrTransactionNotFound),
		errors.Is(err, repository.ErrWithdrawalNotFound):
		status = fiber.StatusNotFound
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

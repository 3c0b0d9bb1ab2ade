package service

import "errors"

// Engine failure taxonomy. Handlers map these to HTTP statuses; services
// wrap them with context via fmt.Errorf("%w", ...).
var (
	// ErrInvalidAmount covers non-positive amounts and amounts exceeding
	// the available balance.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidRecipient means the payout destination is malformed.
	ErrInvalidRecipient = errors.New("invalid recipient")

	// ErrRateUnavailable means no usable exchange rate could be obtained.
	ErrRateUnavailable = errors.New("exchange rate unavailable")

	// ErrWithdrawalDeclined is a definite gateway-level rejection.
	ErrWithdrawalDeclined = errors.New("withdrawal declined")

	// ErrPayoutUnresolved means the gateway call failed before a definite
	// outcome was known; the withdrawal stays pending and the balance is
	// untouched.
	ErrPayoutUnresolved = errors.New("payout result unknown")

	// ErrStorageConflict signals a concurrent write detected at commit time.
	ErrStorageConflict = errors.New("storage conflict")

	// ErrNotEligible means the profile has not met the minimum USD balance
	// required before withdrawals unlock.
	ErrNotEligible = errors.New("not eligible for withdrawals")
)

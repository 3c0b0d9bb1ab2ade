package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kgee7/EarnBull/internal/model"
	"github.com/Kgee7/EarnBull/internal/repository"
)

// USDPerTenCoins is the fixed conversion ladder: 10 BC = $0.15.
const USDPerTenCoins = 0.15

// CoinsToUSD returns the dollar value of a Bull Coin amount. Full precision
// is kept; rounding happens only in display strings.
func CoinsToUSD(bcAmount float64) float64 {
	return bcAmount / 10 * USDPerTenCoins
}

type ConversionStore interface {
	GetUser(ctx context.Context, id int64) (*model.User, error)
	ConvertCoinsToUSD(ctx context.Context, userID int64, bcAmount, usdAmount float64, description string) (*model.Transaction, error)
	ConvertUSDToGHS(ctx context.Context, userID int64, usdAmount, ghsAmount float64, description string) (*model.Transaction, error)
}

// RateSource supplies the USD→GHS exchange rate. Fresh=false marks a cached
// or fallback value; staleness is advisory only and never blocks an
// operation.
type RateSource interface {
	USDToGHS(ctx context.Context) (Rate, error)
}

type ConversionService struct {
	store ConversionStore
	rates RateSource
}

func NewConversionService(store ConversionStore, rates RateSource) *ConversionService {
	return &ConversionService{store: store, rates: rates}
}

// ConvertToUSD exchanges Bull Coins for dollars at the fixed ladder. The
// debit, credit and ledger entry commit as one unit.
func (s *ConversionService) ConvertToUSD(ctx context.Context, userID int64, bcAmount float64) (*model.Transaction, error) {
	if bcAmount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidAmount)
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if bcAmount > user.BullCoins {
		return nil, fmt.Errorf("%w: %g BC exceeds balance of %g", ErrInvalidAmount, bcAmount, user.BullCoins)
	}

	usdEarned := CoinsToUSD(bcAmount)
	description := fmt.Sprintf("Converted to $%.2f USD", usdEarned)

	entry, err := s.store.ConvertCoinsToUSD(ctx, userID, bcAmount, usdEarned, description)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientBalance) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		return nil, err
	}
	return entry, nil
}

// ConvertToGHS exchanges dollars for cedis at the current exchange rate.
func (s *ConversionService) ConvertToGHS(ctx context.Context, userID int64, usdAmount float64) (*model.Transaction, error) {
	if usdAmount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidAmount)
	}

	rate, err := s.rates.USDToGHS(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if usdAmount > user.USDBalance {
		return nil, fmt.Errorf("%w: $%g exceeds balance of $%g", ErrInvalidAmount, usdAmount, user.USDBalance)
	}

	ghsAmount := usdAmount * rate.Value
	description := fmt.Sprintf("Converted to GHS %.2f", ghsAmount)

	entry, err := s.store.ConvertUSDToGHS(ctx, userID, usdAmount, ghsAmount, description)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientBalance) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		return nil, err
	}
	return entry, nil
}

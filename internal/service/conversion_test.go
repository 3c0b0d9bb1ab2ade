package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kgee7/EarnBull/internal/model"
)

func TestCoinsToUSD(t *testing.T) {
	assert.Equal(t, 1.50, CoinsToUSD(100))
	assert.Equal(t, 0.15, CoinsToUSD(10))
	assert.InDelta(t, 0.015, CoinsToUSD(1), 1e-12)
}

func TestConvertToUSD(t *testing.T) {
	store := newMemStore(model.User{ID: 1, BullCoins: 120.5, USDBalance: 5.75})
	svc := NewConversionService(store, stubRates{rate: Rate{Value: 12.5, Fresh: true}})

	entry, err := svc.ConvertToUSD(context.Background(), 1, 100)
	require.NoError(t, err)

	assert.Equal(t, model.TransactionTypeConvertToUSD, entry.Type)
	assert.Equal(t, model.CurrencyBC, entry.Currency)
	assert.Equal(t, float64(-100), entry.Amount)
	assert.Equal(t, "Converted to $1.50 USD", entry.Description)

	user := store.snapshot()
	assert.InDelta(t, 20.5, user.BullCoins, 1e-9)
	assert.InDelta(t, 7.25, user.USDBalance, 1e-9)
	assert.Equal(t, 1, store.ledgerLen())
}

func TestConvertToUSD_InvalidAmounts(t *testing.T) {
	store := newMemStore(model.User{ID: 1, BullCoins: 50})
	svc := NewConversionService(store, stubRates{rate: Rate{Value: 12.5}})

	before := store.snapshot()
	for _, amount := range []float64{0, -10, 50.01} {
		_, err := svc.ConvertToUSD(context.Background(), 1, amount)
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %g", amount)
	}

	// No balance or ledger change on any failed attempt.
	assert.Equal(t, before, store.snapshot())
	assert.Equal(t, 0, store.ledgerLen())
}

func TestConvertToGHS(t *testing.T) {
	store := newMemStore(model.User{ID: 1, USDBalance: 5, GHSBalance: 1})
	svc := NewConversionService(store, stubRates{rate: Rate{Value: 12.5, Fresh: true}})

	entry, err := svc.ConvertToGHS(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.Equal(t, model.TransactionTypeConvertToGHS, entry.Type)
	assert.Equal(t, model.CurrencyUSD, entry.Currency)
	assert.Equal(t, float64(-2), entry.Amount)
	assert.Equal(t, "Converted to GHS 25.00", entry.Description)

	user := store.snapshot()
	assert.InDelta(t, 3, user.USDBalance, 1e-9)
	assert.InDelta(t, 26, user.GHSBalance, 1e-9)
}

func TestConvertToGHS_StaleRateStillConverts(t *testing.T) {
	store := newMemStore(model.User{ID: 1, USDBalance: 10})
	svc := NewConversionService(store, stubRates{rate: Rate{Value: 12.5, Fresh: false}})

	_, err := svc.ConvertToGHS(context.Background(), 1, 4)
	require.NoError(t, err)
	assert.InDelta(t, 50, store.snapshot().GHSBalance, 1e-9)
}

func TestConvertToGHS_RateUnavailable(t *testing.T) {
	store := newMemStore(model.User{ID: 1, USDBalance: 10})
	svc := NewConversionService(store, stubRates{err: assert.AnError})

	before := store.snapshot()
	_, err := svc.ConvertToGHS(context.Background(), 1, 4)
	assert.ErrorIs(t, err, ErrRateUnavailable)
	assert.Equal(t, before, store.snapshot())
	assert.Equal(t, 0, store.ledgerLen())
}

func TestConvertToGHS_InsufficientBalance(t *testing.T) {
	store := newMemStore(model.User{ID: 1, USDBalance: 3})
	svc := NewConversionService(store, stubRates{rate: Rate{Value: 12.5}})

	before := store.snapshot()
	_, err := svc.ConvertToGHS(context.Background(), 1, 3.5)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Equal(t, before, store.snapshot())
	assert.Equal(t, 0, store.ledgerLen())
}

func TestConvert_OneLedgerEntryPerCommit(t *testing.T) {
	store := newMemStore(model.User{ID: 1, BullCoins: 100, USDBalance: 10})
	svc := NewConversionService(store, stubRates{rate: Rate{Value: 12.5}})

	_, err := svc.ConvertToUSD(context.Background(), 1, 50)
	require.NoError(t, err)
	_, err = svc.ConvertToGHS(context.Background(), 1, 5)
	require.NoError(t, err)

	assert.Equal(t, 2, store.ledgerLen())
}

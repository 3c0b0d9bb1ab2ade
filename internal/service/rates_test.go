package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kgee7/EarnBull/internal/config"
)

func ratesServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestRates_FetchFresh(t *testing.T) {
	srv := ratesServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"success","rates":{"GHS":15.3,"EUR":0.9}}`))
	})

	svc := NewRatesService(config.RatesConfig{APIURL: srv.URL, FallbackGHS: 12.5, CacheTTL: time.Minute})
	rate, err := svc.USDToGHS(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15.3, rate.Value)
	assert.True(t, rate.Fresh)
}

func TestRates_ServesCacheWithinTTL(t *testing.T) {
	var hits int
	srv := ratesServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"result":"success","rates":{"GHS":15.3}}`))
	})

	svc := NewRatesService(config.RatesConfig{APIURL: srv.URL, FallbackGHS: 12.5, CacheTTL: time.Minute})
	_, err := svc.USDToGHS(context.Background())
	require.NoError(t, err)
	_, err = svc.USDToGHS(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, hits)
}

func TestRates_FallbackOnFetchFailure(t *testing.T) {
	srv := ratesServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	svc := NewRatesService(config.RatesConfig{APIURL: srv.URL, FallbackGHS: 12.5, CacheTTL: time.Minute})
	rate, err := svc.USDToGHS(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12.5, rate.Value)
	assert.False(t, rate.Fresh, "fallback rate must be flagged non-fresh")
}

func TestRates_StaleCacheBeatsFallback(t *testing.T) {
	var fail bool
	srv := ratesServer(t, func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"result":"success","rates":{"GHS":15.3}}`))
	})

	svc := NewRatesService(config.RatesConfig{APIURL: srv.URL, FallbackGHS: 12.5, CacheTTL: time.Nanosecond})
	_, err := svc.USDToGHS(context.Background())
	require.NoError(t, err)

	fail = true
	time.Sleep(time.Millisecond)
	rate, err := svc.USDToGHS(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15.3, rate.Value, "expired cache is still preferable to the constant")
	assert.False(t, rate.Fresh)
}

func TestRates_NoUsableRate(t *testing.T) {
	srv := ratesServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	svc := NewRatesService(config.RatesConfig{APIURL: srv.URL, FallbackGHS: 0, CacheTTL: time.Minute})
	_, err := svc.USDToGHS(context.Background())
	assert.Error(t, err)
}

func TestRates_RejectsInvalidPayload(t *testing.T) {
	srv := ratesServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"success","rates":{}}`))
	})

	svc := NewRatesService(config.RatesConfig{APIURL: srv.URL, FallbackGHS: 12.5, CacheTTL: time.Minute})
	rate, err := svc.USDToGHS(context.Background())
	require.NoError(t, err)
	// Missing GHS entry degrades to the fallback.
	assert.Equal(t, 12.5, rate.Value)
	assert.False(t, rate.Fresh)
}

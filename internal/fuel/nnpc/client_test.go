package nnpc_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lagoshaul/lagoshaul/internal/fuel"
	"github.com/lagoshaul/lagoshaul/internal/fuel/nnpc"
)

func newTestClient(baseURL string) *nnpc.Client {
	return nnpc.NewClient(nnpc.ClientConfig{
		BaseURL: baseURL,
		Logger:  zerolog.Nop(),
	})
}

func TestGetCurrentPrice_ParsesPetrolPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/prices/lagos", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"products": [
				{"product": "AGO", "price_per_liter": 1100, "currency": "NGN"},
				{"product": "PMS", "price_per_liter": 617.5, "currency": "NGN", "effective_date": "2025-03-01"}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	data, err := client.GetCurrentPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 617.5, data.PricePerLiter)
	assert.Equal(t, "NGN", data.Currency)
	assert.Equal(t, fuel.SourceLive, data.Source)
	assert.False(t, data.UpdatedAt.IsZero())
}

func TestGetCurrentPrice_SendsAPIKey(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"products": [{"product": "PMS", "price_per_liter": 700}]}`))
	}))
	defer server.Close()

	client := nnpc.NewClient(nnpc.ClientConfig{
		BaseURL: server.URL,
		APIKey:  "secret",
		Logger:  zerolog.Nop(),
	})

	_, err := client.GetCurrentPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", gotAuth)
}

func TestGetCurrentPrice_DefaultsCurrency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"products": [{"product": "PMS", "price_per_liter": 700}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	data, err := client.GetCurrentPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "NGN", data.Currency)
}

func TestGetCurrentPrice_NoPetrolInFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"products": [{"product": "AGO", "price_per_liter": 1100}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.GetCurrentPrice(context.Background())
	assert.True(t, errors.Is(err, fuel.ErrProviderUnavailable))
}

func TestGetCurrentPrice_NonPositivePrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"products": [{"product": "PMS", "price_per_liter": 0}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.GetCurrentPrice(context.Background())
	assert.True(t, errors.Is(err, fuel.ErrProviderUnavailable))
}

func TestGetCurrentPrice_Non200Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.GetCurrentPrice(context.Background())
	assert.True(t, errors.Is(err, fuel.ErrProviderUnavailable))
}

func TestName(t *testing.T) {
	client := newTestClient("http://example.invalid")
	assert.Equal(t, "nnpc", client.Name())
}

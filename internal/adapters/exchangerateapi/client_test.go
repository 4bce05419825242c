package exchangerateapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/devfx/currency_converter_api/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(server.URL, "test-api-key", 5*time.Second)
	return client, server
}

func TestGetRate_Success(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-api-key/pair/USD/EUR", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"success","conversion_rate":0.85,"conversion_result":85.0}`))
	})
	defer server.Close()

	rate, err := client.GetRate(context.Background(), "USD", "EUR")

	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(0.85).Equal(rate))
}

func TestGetRate_ClientErrorMeansInvalidPair(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"result":"error","error-type":"unsupported-code"}`, http.StatusNotFound)
	})
	defer server.Close()

	_, err := client.GetRate(context.Background(), "ZZZ", "EUR")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCurrencyPair)
	assert.Contains(t, err.Error(), "ZZZ/EUR")
}

func TestGetRate_ServerErrorMeansUnavailable(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	defer server.Close()

	_, err := client.GetRate(context.Background(), "USD", "EUR")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
}

func TestGetRate_NonSuccessBodyMeansUnavailable(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"error","conversion_rate":0}`))
	})
	defer server.Close()

	_, err := client.GetRate(context.Background(), "USD", "EUR")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
}

func TestGetRate_MalformedBodyMeansUnavailable(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":`))
	})
	defer server.Close()

	_, err := client.GetRate(context.Background(), "USD", "EUR")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
}

func TestGetRate_NetworkErrorMeansUnavailable(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
	server.Close() // Connection refused from here on

	_, err := client.GetRate(context.Background(), "USD", "EUR")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
}

func TestGetRate_ErrorsNeverLeakAPIKey(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	})
	defer server.Close()

	_, err := client.GetRate(context.Background(), "ZZZ", "EUR")

	require.Error(t, err)
	assert.NotContains(t, err.Error(), "test-api-key")
	assert.NotContains(t, err.Error(), server.URL)
}

//go:build !integration

package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/guttosm/print-pricing-service/config"
	"github.com/guttosm/print-pricing-service/internal/domain/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subtotal(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	return data["calculated_product_subtotal_before_shipping_tax"].(string)
}

func TestInitializeApp(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.Config
		wantBrokers bool
	}{
		{
			name: "single cache, no broker tokens",
			cfg: config.Config{
				Server: config.ServerConfig{RateLimit: 100, RateWindow: time.Minute},
				Cache:  config.CacheConfig{Size: 1000, TTL: 5 * time.Minute},
			},
		},
		{
			name: "sharded cache",
			cfg:  config.Config{Cache: config.CacheConfig{Size: 1000, TTL: time.Minute, Shards: 8}},
		},
		{
			name: "admin keys and broker tokens",
			cfg: config.Config{
				Auth: config.AuthConfig{Enabled: true, APIKeys: map[string]bool{"ops-key": true}, BrokerTokenSecret: "secret"},
			},
			wantBrokers: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			application, err := InitializeApp(tt.cfg)
			require.NoError(t, err)
			t.Cleanup(func() { assert.NoError(t, application.Close(context.Background())) })

			require.NotNil(t, application.Router)
			assert.Equal(t, tt.wantBrokers, application.Services.BrokerTokens != nil)

			w := post(application, "/api/quotes/calculate", standardPostcards)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "120", subtotal(t, w))
		})
	}
}

func TestInitializeApp_CatalogFile(t *testing.T) {
	t.Run("missing file is fatal", func(t *testing.T) {
		application, err := InitializeApp(config.Config{Catalog: config.CatalogConfig{File: "/nonexistent/catalog.yaml"}})
		assert.Error(t, err)
		assert.Nil(t, application)
	})

	t.Run("file replaces the built-in catalog", func(t *testing.T) {
		src, err := os.ReadFile(filepath.Join("..", "catalog", "default_catalog.yaml"))
		require.NoError(t, err)
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, src, 0o600))

		application, err := InitializeApp(config.Config{Catalog: config.CatalogConfig{File: path}})
		require.NoError(t, err)
		w := post(application, "/api/quotes/calculate", standardPostcards)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "120", subtotal(t, w))
	})
}

func TestInitializeApp_SavingNeedsStorage(t *testing.T) {
	application, err := InitializeApp(config.Config{})
	require.NoError(t, err)

	w := post(application, "/api/quotes", standardPostcards)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeServiceUnavailable, resp.Error)
}

//go:build !integration

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const postcardConfiguration = `{
  "paper_stock": {"id": "14pt-matte", "name": "14pt Matte", "type": "card", "price_per_sq_inch": "0.01", "second_side_markup_percent": "50"},
  "size": {"id": "4x6", "width": "4", "height": "6"},
  "quantity": 500,
  "sides": "single",
  "turnaround": {"id": "rush", "markup_percent": "20"},
  "addons": {"tagline": true}
}`

const postcardRequest = `{"paper_stock_id":"14pt-matte","size_id":"4x6","quantity":500,"sides":"single","turnaround_id":"standard","category_id":"postcards"}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunQuote(t *testing.T) {
	configFile := writeTemp(t, "config.json", postcardConfiguration)
	requestFile := writeTemp(t, "request.json", postcardRequest)

	tests := []struct {
		name      string
		opts      quoteOptions
		wantError bool
		validate  func(*testing.T, string)
	}{
		{
			name: "configuration as text",
			opts: quoteOptions{file: configFile, format: "text"},
			validate: func(t *testing.T, out string) {
				assert.Contains(t, out, "Tagline discount (5%)")
				assert.Contains(t, out, "Turnaround markup (20%)")
				assert.Regexp(t, regexp.MustCompile(`Subtotal\s+136\.80`), out)
			},
		},
		{
			name: "configuration as json",
			opts: quoteOptions{file: configFile, format: "json"},
			validate: func(t *testing.T, out string) {
				var calc model.PriceCalculation
				require.NoError(t, json.Unmarshal([]byte(out), &calc))
				assert.Equal(t, "136.8", calc.CalculatedProductSubtotal.String())
			},
		},
		{
			name: "retail request",
			opts: quoteOptions{file: requestFile, format: "json", request: true},
			validate: func(t *testing.T, out string) {
				var calc model.PriceCalculation
				require.NoError(t, json.Unmarshal([]byte(out), &calc))
				assert.Equal(t, "120", calc.CalculatedProductSubtotal.String())
			},
		},
		{
			name: "broker request",
			opts: quoteOptions{file: requestFile, format: "text", request: true, broker: true},
			validate: func(t *testing.T, out string) {
				assert.Contains(t, out, "Broker discount (10%)")
				assert.Regexp(t, regexp.MustCompile(`Subtotal\s+108\.00`), out)
			},
		},
		{
			name:      "unknown format",
			opts:      quoteOptions{file: configFile, format: "xml"},
			wantError: true,
		},
		{
			name:      "missing file",
			opts:      quoteOptions{file: filepath.Join(t.TempDir(), "missing.json"), format: "text"},
			wantError: true,
		},
		{
			name:      "missing catalog",
			opts:      quoteOptions{file: requestFile, format: "text", request: true, catalogFile: "/nonexistent/catalog.yaml"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := runQuote(context.Background(), &out, &tt.opts)

			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, out.String())
		})
	}
}

func TestRunKeys(t *testing.T) {
	t.Run("prints secret and hashed key", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runKeys(&out, 24))

		text := out.String()
		secret := regexp.MustCompile(`BROKER_TOKEN_SECRET=(\S+)`).FindStringSubmatch(text)
		require.Len(t, secret, 2)
		assert.Len(t, secret[1], 43)

		hash := regexp.MustCompile(`API_KEYS=(\S+)`).FindStringSubmatch(text)
		plain := regexp.MustCompile(`plain key: (\S+)`).FindStringSubmatch(text)
		require.Len(t, hash, 2)
		require.Len(t, plain, 2)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash[1]), []byte(plain[1])))
	})

	t.Run("rejects short keys", func(t *testing.T) {
		assert.Error(t, runKeys(&bytes.Buffer{}, 8))
	})
}

func TestRootCommand(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "quote")
	assert.Contains(t, names, "seed")
	assert.Contains(t, names, "keys")
}

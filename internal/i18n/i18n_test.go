//go:build !integration

package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestResolveLocale(t *testing.T) {
	tests := map[string]string{
		"":                        "en",
		"en":                      "en",
		"EN":                      "en",
		"pt-BR":                   "pt",
		"nl-BE,nl;q=0.9":          "nl",
		"en-US,en;q=0.9,pt;q=0.8": "en",
		"fr-CA,pt;q=0.5":          "pt",
		"pt;q=0.3,nl;q=0.9":       "nl",
		"fr":                      "en",
	}
	for header, want := range tests {
		assert.Equal(t, want, ResolveLocale(header), "Accept-Language %q", header)
	}
}

func TestTranslator_Translate(t *testing.T) {
	tr := NewTranslator()

	tests := []struct {
		name   string
		key    string
		locale string
		want   string
	}{
		{name: "english", key: ErrKeyPaperStockNotFound, locale: "en", want: "Paper stock not found"},
		{name: "portuguese", key: ErrKeyQuoteNotFound, locale: "pt", want: "Orçamento não encontrado"},
		{name: "dutch", key: ErrKeyTurnaroundNotFound, locale: "nl", want: "Levertijd niet gevonden"},
		{name: "unknown locale uses english", key: ErrKeyCategoryMismatch, locale: "fr", want: "Size is not sold in this product category"},
		{name: "empty locale uses english", key: ErrKeyTimeout, locale: "", want: "Request timed out"},
		{name: "unknown key echoes the key", key: "error.paper_jam", locale: "pt", want: "error.paper_jam"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Translate(tt.key, tt.locale))
		})
	}
}

func TestMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/quotes/calculate", nil)
	c.Request.Header.Set(AcceptLanguageHeader, "pt-BR,pt;q=0.9")

	assert.Equal(t, "pt", GetLocale(c))
	assert.Equal(t, "Papel não encontrado", Message(c, ErrKeyPaperStockNotFound))
	assert.Same(t, GetTranslator(), GetTranslator())
}

func TestMessages_EveryLocaleIsComplete(t *testing.T) {
	english := messages[DefaultLocale]
	for _, tag := range supported {
		base, _ := tag.Base()
		localized, ok := messages[base.String()]
		if !assert.True(t, ok, "no messages for %s", base) {
			continue
		}
		for key := range english {
			assert.NotEmpty(t, localized[key], "%s is missing %s", base, key)
		}
		assert.Len(t, localized, len(english), base.String())
	}
}

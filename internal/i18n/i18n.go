// Package i18n localizes the messages the pricing API returns to callers.
package i18n

import (
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	// DefaultLocale answers when the caller asks for nothing we speak.
	DefaultLocale = "en"
	// AcceptLanguageHeader carries the caller's locale preference.
	AcceptLanguageHeader = "Accept-Language"
)

// supported is ordered by preference; the first entry is the fallback the
// matcher picks when nothing else fits.
var supported = []language.Tag{language.English, language.Portuguese, language.Dutch}

var matcher = language.NewMatcher(supported)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator looks message keys up per locale.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator returns a Translator over the built-in messages.
func NewTranslator() *Translator {
	return &Translator{messages: messages}
}

// GetTranslator returns the process-wide Translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() { defaultTranslator = NewTranslator() })
	return defaultTranslator
}

// Translate returns key in locale, then in English, then key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// ResolveLocale picks the best supported locale for an Accept-Language value,
// honouring q-values and regional variants ("pt-BR" resolves to "pt").
func ResolveLocale(acceptLanguage string) string {
	if acceptLanguage == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLocale
	}
	base, _ := supported[idx].Base()
	return base.String()
}

// GetLocale resolves the request's Accept-Language header.
func GetLocale(c *gin.Context) string {
	return ResolveLocale(c.GetHeader(AcceptLanguageHeader))
}

// Message translates key for the caller of c.
func Message(c *gin.Context, key string) string {
	return GetTranslator().Translate(key, GetLocale(c))
}

var messages = map[string]map[string]string{
	"en": {
		ErrKeyInvalidRequest:         "Invalid request",
		ErrKeyInvalidRequestBody:     "Invalid request body",
		ErrKeyInternalError:          "An unexpected error occurred",
		ErrKeyUnauthorized:           "Unauthorized",
		ErrKeyAPIKeyRequired:         "API key is required",
		ErrKeyInvalidAPIKey:          "Invalid API key",
		ErrKeyForbidden:              "Forbidden",
		ErrKeyNotFound:               "Not found",
		ErrKeyRateLimitExceeded:      "Too many requests, please try again later",
		ErrKeyConflict:               "A request with this Idempotency-Key is still being processed",
		ErrKeyInvalidToken:           "Invalid or expired token",
		ErrKeyTimeout:                "Request timed out",
		ErrKeyServiceUnavailable:     "Quote storage is unavailable",
		ErrKeyValidationQuote:        "Invalid quote request",
		ErrKeyValidationDiscount:     "discount_percent: must be between 0 and 100",
		ErrKeyPaperStockNotFound:     "Paper stock not found",
		ErrKeySizeNotFound:           "Print size not found",
		ErrKeyTurnaroundNotFound:     "Turnaround time not found",
		ErrKeyCategoryNotFound:       "Product category not found",
		ErrKeyCategoryMismatch:       "Size is not sold in this product category",
		ErrKeyQuoteNotFound:          "Quote not found",
		ErrKeyBrokerDiscountNotFound: "No broker discount for this category",
		ErrKeyAccountRequired:        "A broker token is required to list quotes",
		SuccessKeyQuoteCalculated:    "Price calculated successfully",
		SuccessKeyQuoteSaved:         "Quote saved successfully",
	},
	"pt": {
		ErrKeyInvalidRequest:         "Requisição inválida",
		ErrKeyInvalidRequestBody:     "Corpo da requisição inválido",
		ErrKeyInternalError:          "Ocorreu um erro inesperado",
		ErrKeyUnauthorized:           "Não autorizado",
		ErrKeyAPIKeyRequired:         "Chave de API é obrigatória",
		ErrKeyInvalidAPIKey:          "Chave de API inválida",
		ErrKeyForbidden:              "Proibido",
		ErrKeyNotFound:               "Não encontrado",
		ErrKeyRateLimitExceeded:      "Muitas requisições, tente novamente mais tarde",
		ErrKeyConflict:               "Uma requisição com esta Idempotency-Key ainda está em processamento",
		ErrKeyInvalidToken:           "Token inválido ou expirado",
		ErrKeyTimeout:                "Tempo limite da requisição esgotado",
		ErrKeyServiceUnavailable:     "Armazenamento de orçamentos indisponível",
		ErrKeyValidationQuote:        "Pedido de orçamento inválido",
		ErrKeyValidationDiscount:     "discount_percent: deve estar entre 0 e 100",
		ErrKeyPaperStockNotFound:     "Papel não encontrado",
		ErrKeySizeNotFound:           "Tamanho de impressão não encontrado",
		ErrKeyTurnaroundNotFound:     "Prazo de produção não encontrado",
		ErrKeyCategoryNotFound:       "Categoria de produto não encontrada",
		ErrKeyCategoryMismatch:       "Tamanho não disponível nesta categoria de produto",
		ErrKeyQuoteNotFound:          "Orçamento não encontrado",
		ErrKeyBrokerDiscountNotFound: "Nenhum desconto de revendedor para esta categoria",
		ErrKeyAccountRequired:        "Um token de revendedor é necessário para listar orçamentos",
		SuccessKeyQuoteCalculated:    "Preço calculado com sucesso",
		SuccessKeyQuoteSaved:         "Orçamento salvo com sucesso",
	},
	"nl": {
		ErrKeyInvalidRequest:         "Ongeldig verzoek",
		ErrKeyInvalidRequestBody:     "Ongeldige aanvraag body",
		ErrKeyInternalError:          "Er is een onverwachte fout opgetreden",
		ErrKeyUnauthorized:           "Niet geautoriseerd",
		ErrKeyAPIKeyRequired:         "API-sleutel is vereist",
		ErrKeyInvalidAPIKey:          "Ongeldige API-sleutel",
		ErrKeyForbidden:              "Verboden",
		ErrKeyNotFound:               "Niet gevonden",
		ErrKeyRateLimitExceeded:      "Te veel verzoeken, probeer het later opnieuw",
		ErrKeyConflict:               "Een verzoek met deze Idempotency-Key wordt nog verwerkt",
		ErrKeyInvalidToken:           "Ongeldig of verlopen token",
		ErrKeyTimeout:                "Time-out van verzoek",
		ErrKeyServiceUnavailable:     "Offerte-opslag is niet beschikbaar",
		ErrKeyValidationQuote:        "Ongeldige offerteaanvraag",
		ErrKeyValidationDiscount:     "discount_percent: moet tussen 0 en 100 liggen",
		ErrKeyPaperStockNotFound:     "Papiersoort niet gevonden",
		ErrKeySizeNotFound:           "Drukformaat niet gevonden",
		ErrKeyTurnaroundNotFound:     "Levertijd niet gevonden",
		ErrKeyCategoryNotFound:       "Productcategorie niet gevonden",
		ErrKeyCategoryMismatch:       "Formaat wordt niet verkocht in deze productcategorie",
		ErrKeyQuoteNotFound:          "Offerte niet gevonden",
		ErrKeyBrokerDiscountNotFound: "Geen makelaarskorting voor deze categorie",
		ErrKeyAccountRequired:        "Een makelaarstoken is vereist om offertes op te vragen",
		SuccessKeyQuoteCalculated:    "Prijs succesvol berekend",
		SuccessKeyQuoteSaved:         "Offerte succesvol opgeslagen",
	},
}

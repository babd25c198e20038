package i18n

// Keys shared by every endpoint.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyUnauthorized       = "error.unauthorized"
	ErrKeyAPIKeyRequired     = "error.api_key_required"
	ErrKeyInvalidAPIKey      = "error.invalid_api_key"
	ErrKeyForbidden          = "error.forbidden"
	ErrKeyNotFound           = "error.not_found"
	ErrKeyRateLimitExceeded  = "error.rate_limit_exceeded"
	// ErrKeyConflict is answered while an earlier request with the same
	// Idempotency-Key is still running.
	ErrKeyConflict     = "error.conflict"
	ErrKeyInvalidToken = "error.invalid_token"
	ErrKeyTimeout      = "error.timeout"
	// ErrKeyServiceUnavailable covers quote storage that is disabled or behind an open breaker.
	ErrKeyServiceUnavailable = "error.service_unavailable"
)

// Pricing and quote keys.
const (
	ErrKeyValidationQuote        = "error.validation.quote"
	ErrKeyValidationDiscount     = "error.validation.discount_percent"
	ErrKeyPaperStockNotFound     = "error.paper_stock_not_found"
	ErrKeySizeNotFound           = "error.size_not_found"
	ErrKeyTurnaroundNotFound     = "error.turnaround_not_found"
	ErrKeyCategoryNotFound       = "error.category_not_found"
	ErrKeyCategoryMismatch       = "error.category_mismatch"
	ErrKeyQuoteNotFound          = "error.quote_not_found"
	ErrKeyBrokerDiscountNotFound = "error.broker_discount_not_found"
	// ErrKeyAccountRequired is answered when quote history is asked for without a broker token.
	ErrKeyAccountRequired = "error.account_required"

	SuccessKeyQuoteCalculated = "success.quote_calculated"
	SuccessKeyQuoteSaved      = "success.quote_saved"
)

package dto

import (
	"net/http"
	"time"

	"github.com/guttosm/print-pricing-service/internal/domain/model"
)

// Machine-readable error codes carried in ErrorResponse.Error.
const (
	ErrCodeInvalidRequest     = "invalid_request"
	ErrCodeInternal           = "internal_error"
	ErrCodeUnauthorized       = "unauthorized"
	ErrCodeForbidden          = "forbidden"
	ErrCodeNotFound           = "not_found"
	ErrCodeRateLimit          = "rate_limit_exceeded"
	ErrCodeConflict           = "conflict"
	ErrCodeTimeout            = "timeout"
	ErrCodeServiceUnavailable = "service_unavailable"
)

var statusCodes = map[int]string{
	http.StatusBadRequest:         ErrCodeInvalidRequest,
	http.StatusUnauthorized:       ErrCodeUnauthorized,
	http.StatusForbidden:          ErrCodeForbidden,
	http.StatusNotFound:           ErrCodeNotFound,
	http.StatusConflict:           ErrCodeConflict,
	http.StatusTooManyRequests:    ErrCodeRateLimit,
	http.StatusRequestTimeout:     ErrCodeTimeout,
	http.StatusGatewayTimeout:     ErrCodeTimeout,
	http.StatusServiceUnavailable: ErrCodeServiceUnavailable,
}

// ErrCodeFromStatus maps an HTTP status to its error code. Anything unmapped
// is an internal error.
func ErrCodeFromStatus(status int) string {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	return ErrCodeInternal
}

// SuccessResponse wraps every 2xx body.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data is a PriceCalculation on the calculate endpoint.
	Data      interface{} `json:"data" swaggertype:"object"`
	RequestID string      `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time   `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse is the body of every 4xx and 5xx answer.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"Invalid quote request"`
	// Details maps a request field to what is wrong with it.
	Details   map[string]string `json:"details,omitempty" example:"quantity:must be greater than 0"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name ErrorResponse

// NewError stamps an ErrorResponse with the current time.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: code, Message: message, Timestamp: time.Now().UTC()}
}

// WithRequestID returns a copy of e carrying requestID.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// QuoteCreatedResponse answers POST /api/quotes.
type QuoteCreatedResponse struct {
	ID          string                 `json:"id" example:"3f1b8c1e-9a4d-4d7e-8a55-2a1c7c9e0b11"`
	Calculation model.PriceCalculation `json:"calculation"`
	CreatedAt   time.Time              `json:"created_at" example:"2025-01-28T10:00:00Z"`
} // @name QuoteCreatedResponse

// QuoteListResponse answers GET /api/quotes with the broker's saved quotes.
type QuoteListResponse struct {
	Quotes []model.Quote `json:"quotes"`
	Count  int           `json:"count" example:"1"`
} // @name QuoteListResponse

type BrokerDiscountsResponse struct {
	Discounts []model.BrokerDiscount `json:"discounts"`
} // @name BrokerDiscountsResponse

// AuditLogsResponse is one page of the logs collection; Total ignores paging.
type AuditLogsResponse struct {
	Logs  []model.LogEntry `json:"logs"`
	Total int64            `json:"total" example:"42"`
} // @name AuditLogsResponse

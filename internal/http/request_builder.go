package http

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/guttosm/print-pricing-service/internal/domain/dto"
	"github.com/guttosm/print-pricing-service/internal/i18n"
	"github.com/guttosm/print-pricing-service/internal/middleware"
)

var jsonFieldNamesOnce sync.Once

// useJSONFieldNames makes binding errors name fields the way clients send
// them, paper_stock_id rather than PaperStockID.
func useJSONFieldNames() {
	jsonFieldNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
}

type selfValidating interface {
	Validate() error
}

// decodeJSON binds the body into a T and runs its Validate method when it has one.
func decodeJSON[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	if v, ok := any(&req).(selfValidating); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return &req, nil
}

// fieldErrors lists the per-field problems in err, or nil when err is not a
// validation failure.
func fieldErrors(err error) map[string]string {
	var vErr *dto.ValidationError
	if errors.As(err, &vErr) {
		return map[string]string{vErr.Field: vErr.Message}
	}

	var bindErrs validator.ValidationErrors
	if !errors.As(err, &bindErrs) {
		return nil
	}
	details := make(map[string]string, len(bindErrs))
	for _, fe := range bindErrs {
		switch fe.Tag() {
		case "required":
			details[fe.Field()] = "is required"
		case "gt":
			details[fe.Field()] = "must be greater than " + fe.Param()
		default:
			details[fe.Field()] = "is invalid"
		}
	}
	return details
}

// writeBindError answers a request whose body could not be decoded or
// validated. Field problems are listed under the validationKey message.
func writeBindError(builder *ResponseBuilder, validationKey string, err error) {
	if details := fieldErrors(err); details != nil {
		builder.ErrorWithDetails(http.StatusBadRequest, validationKey, details, err)
		return
	}
	builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
}

// ResponseBuilder writes the API's success and error envelopes, stamped with
// the request id.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success wraps data in a SuccessResponse.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	b.c.JSON(statusCode, dto.SuccessResponse{
		Data:      data,
		RequestID: middleware.GetRequestID(b.c),
		Timestamp: time.Now().UTC(),
	})
}

// SuccessOK sends data with 200.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated sends data with 201.
func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}

// Error aborts with a translated message. err, when set, is attached to the
// context for the error handler to log.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	b.ErrorWithDetails(statusCode, messageKey, nil, err)
}

// ErrorWithDetails is Error with per-field details.
func (b *ResponseBuilder) ErrorWithDetails(statusCode int, messageKey string, details map[string]string, err error) {
	if err != nil {
		_ = b.c.Error(err)
	}

	resp := dto.NewError(dto.ErrCodeFromStatus(statusCode), i18n.Message(b.c, messageKey)).
		WithRequestID(middleware.GetRequestID(b.c))
	resp.Details = details
	b.c.AbortWithStatusJSON(statusCode, resp)
}

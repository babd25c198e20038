package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/guttosm/print-pricing-service/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func serveAudit(t *testing.T, identity *model.BrokerIdentity, handler func(c *gin.Context)) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.POST("/api/quotes", func(c *gin.Context) {
		if identity != nil {
			SetBrokerIdentity(c, *identity)
		}
		handler(c)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/quotes", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuditLog(t *testing.T) {
	broker := &model.BrokerIdentity{AccountID: "acct-7", IsBroker: true}

	tests := []struct {
		name       string
		actionType string
		message    string
		fields     map[string]interface{}
		identity   *model.BrokerIdentity
		matches    func(*model.LogEntry) bool
	}{
		{
			name:       "saved quote by broker",
			actionType: ActionSaveQuote,
			message:    "Quote saved",
			fields:     map[string]interface{}{"quote_id": "quote-1"},
			identity:   broker,
			matches: func(e *model.LogEntry) bool {
				return e.ActionType == ActionSaveQuote &&
					e.Level == "info" &&
					e.AccountID == "acct-7" &&
					e.IsBroker &&
					e.Fields["quote_id"] == "quote-1" &&
					e.RequestID != ""
			},
		},
		{
			name:       "anonymous quote",
			actionType: ActionQuote,
			message:    "Price calculated",
			fields:     map[string]interface{}{"quantity": 500},
			matches: func(e *model.LogEntry) bool {
				return e.ActionType == ActionQuote &&
					e.AccountID == "" &&
					!e.IsBroker &&
					e.Method == http.MethodPost &&
					e.Path == "/api/quotes"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLogging := new(mocks.MockLoggingService)
			done := make(chan struct{})
			mockLogging.On("CreateLog", mock.Anything, mock.MatchedBy(tt.matches)).
				Run(func(mock.Arguments) { close(done) }).
				Return(nil).Once()

			serveAudit(t, tt.identity, func(c *gin.Context) {
				AuditLog(mockLogging, c, tt.actionType, tt.message, tt.fields)
			})

			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("audit entry was not written")
			}
			mockLogging.AssertExpectations(t)
		})
	}

	t.Run("nil logging service is a no-op", func(t *testing.T) {
		serveAudit(t, broker, func(c *gin.Context) {
			AuditLog(nil, c, ActionQuote, "Price calculated", nil)
		})
	})
}

func TestAuditLogError(t *testing.T) {
	mockLogging := new(mocks.MockLoggingService)
	done := make(chan struct{})
	mockLogging.On("CreateLog", mock.Anything, mock.MatchedBy(func(e *model.LogEntry) bool {
		return e.ActionType == ActionUpdateBrokerDiscount &&
			e.Level == "error" &&
			e.Error == assert.AnError.Error() &&
			e.AccountID == "ops"
	})).Run(func(mock.Arguments) { close(done) }).Return(nil).Once()

	serveAudit(t, &model.BrokerIdentity{AccountID: "ops"}, func(c *gin.Context) {
		AuditLogError(mockLogging, c, ActionUpdateBrokerDiscount, "Discount update failed", assert.AnError, nil)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("audit entry was not written")
	}
	mockLogging.AssertExpectations(t)
}

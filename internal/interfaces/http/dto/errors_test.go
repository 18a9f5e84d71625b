package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"not found", "NOT_FOUND", ErrCodeNotFound},
		{"user not found", "USER_NOT_FOUND", ErrCodeNotFound},
		{"not found suffix", "FABRIC_NOT_FOUND", ErrCodeNotFound},
		{"optimistic lock", "CONCURRENT_MODIFICATION", ErrCodeConcurrencyConflict},
		{"invalid state", "INVALID_STATE", ErrCodeInvalidState},
		{"invalid transition", "INVALID_TRANSITION", ErrCodeInvalidState},
		{"field validation collapses", "INVALID_QUANTITY", ErrCodeInvalidInput},
		{"sku validation collapses", "INVALID_SKU", ErrCodeInvalidInput},
		{"overpayment", "OVERPAYMENT", ErrCodeOverpayment},
		{"insufficient stock", "INSUFFICIENT_STOCK", ErrCodeInsufficientStock},
		{"empty invoice", "EMPTY_INVOICE", ErrCodeBusinessRule},
		{"credentials", "INVALID_CREDENTIALS", ErrCodeInvalidCredentials},
		{"locked account", "ACCOUNT_LOCKED", ErrCodeAccountLocked},
		{"expired token", "TOKEN_EXPIRED", ErrCodeTokenExpired},
		{"render failure is internal", "RENDER_FAILED", ErrCodeInternal},
		{"unknown passes through", "SOMETHING_ODD", "SOMETHING_ODD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeErrorCode(tt.code))
		})
	}
}

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(ErrCodeNotFound))
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(ErrCodeConcurrencyConflict))
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(ErrCodeInvalidState))
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(ErrCodeOverpayment))
	assert.Equal(t, http.StatusUnauthorized, GetHTTPStatus(ErrCodeInvalidCredentials))
	assert.Equal(t, http.StatusForbidden, GetHTTPStatus(ErrCodeAccountLocked))
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(ErrCodeInvalidInput))
	assert.Equal(t, http.StatusTooManyRequests, GetHTTPStatus(ErrCodeRateLimited))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("NO_SUCH_CODE"))
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Validation failed", "req-9", []ValidationDetail{
		{Field: "quantity_m", Message: "must be positive"},
	})

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-9", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "quantity_m", resp.Error.Details[0].Field)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Order not found", "req-123")

	assert.False(t, resp.Success)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrorResponse(t *testing.T) {
	response := NewErrorResponse(ValidationInvalidAmount, "trace-123")

	assert.Equal(t, string(ValidationInvalidAmount), response.Error.Code)
	assert.Equal(t, GetErrorMessage(ValidationInvalidAmount), response.Error.Message)
	assert.Equal(t, "trace-123", response.Error.TraceID)
}

func TestNewErrorResponse_WithOptions(t *testing.T) {
	response := NewErrorResponse(
		CategoryNameRequired,
		"trace-123",
		WithDetails("newName must not be empty"),
		WithMessage("Category name missing"),
	)

	assert.Equal(t, "Category name missing", response.Error.Message)
	assert.Equal(t, []string{"newName must not be empty"}, response.Error.Details)
}

func TestWrapSystemError_HidesInternalDetails(t *testing.T) {
	internal := errors.New("pq: connection refused")

	response, err := WrapSystemError(internal, "trace-123")
	require.Error(t, err)

	assert.Equal(t, string(SystemInternalError), response.Error.Code)
	assert.NotContains(t, response.Error.Message, "pq:")
}

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ValidationGeneral, http.StatusBadRequest},
		{ValidationInvalidAmount, http.StatusBadRequest},
		{ValidationInvalidDate, http.StatusBadRequest},
		{AuthMissingToken, http.StatusUnauthorized},
		{AuthExpiredToken, http.StatusUnauthorized},
		{AuthUnknownUser, http.StatusUnauthorized},
		{ExpenseNotFound, http.StatusNotFound},
		{CategoryNotFound, http.StatusNotFound},
		{CategoryNameRequired, http.StatusUnprocessableEntity},
		{CategoryReservedName, http.StatusUnprocessableEntity},
		{SystemRateLimitExceeded, http.StatusTooManyRequests},
		{SystemInternalError, http.StatusInternalServerError},
		{SystemDatabaseError, http.StatusInternalServerError},
		{ErrorCode("BOGUS_999"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestErrorResponse_ToJSON(t *testing.T) {
	response := NewErrorResponse(ExpenseNotFound, "trace-123", WithDetails("no matching record"))

	data, err := response.ToJSON()
	require.NoError(t, err)

	var decoded ErrorResponse
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, string(ExpenseNotFound), decoded.Error.Code)
	assert.Equal(t, "trace-123", decoded.Error.TraceID)
}

func TestErrorResponse_ClientServerClassification(t *testing.T) {
	client := NewErrorResponse(ValidationInvalidDate, "t")
	assert.True(t, client.IsClientError())
	assert.False(t, client.IsServerError())

	server := NewErrorResponse(SystemDatabaseError, "t")
	assert.True(t, server.IsServerError())
	assert.False(t, server.IsClientError())
}

func TestIsValidErrorCode(t *testing.T) {
	assert.True(t, IsValidErrorCode(ValidationInvalidAmount))
	assert.True(t, IsValidErrorCode(CategoryReservedName))
	assert.False(t, IsValidErrorCode(ErrorCode("BOGUS_999")))
}

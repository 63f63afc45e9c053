package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"walkup/internal/apperr"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperr.Validation("Invalid payload"), 400},
		{"conflict maps to bad request", apperr.Conflict("User already exists with the same email! Please try again"), 400},
		{"insufficient stock", apperr.InsufficientStock("Laptop"), 400},
		{"unauthorized", apperr.Unauthorized("Unauthorised user!"), 401},
		{"forbidden", apperr.Forbidden("Admin access required"), 403},
		{"not found", apperr.NotFound("Order not found"), 404},
		{"provider", apperr.Provider(errors.New("timeout"), "payment create failed"), 500},
		{"internal", apperr.Internal(errors.New("db down"), "query failed"), 500},
		{"plain error", errors.New("boom"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, apperr.HTTPStatus(tt.err))
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Order not found", apperr.Message(apperr.NotFound("Order not found")))

	// Internal and provider causes never leak to clients.
	assert.Equal(t, "Some error occured!", apperr.Message(apperr.Internal(errors.New("dial tcp refused"), "query failed")))
	assert.Equal(t, "Some error occured!", apperr.Message(errors.New("raw failure")))
}

func TestKindOfUnwrapsChain(t *testing.T) {
	wrapped := fmt.Errorf("capturing payment: %w", apperr.Conflict("duplicate"))
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(wrapped))
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(errors.New("plain")))
}

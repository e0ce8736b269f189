package rest

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/photojournal/internal/common"
	"github.com/dmitrijs2005/photojournal/internal/server/services"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"bad request detail", services.ErrInvalidEntryID, http.StatusBadRequest, "entryId must be a positive integer"},
		{"bare bad request", common.ErrorBadRequest, http.StatusBadRequest, "bad request"},
		{"invalid login", services.ErrInvalidLogin, http.StatusUnauthorized, "invalid login"},
		{"expired token", common.ErrTokenExpired, http.StatusUnauthorized, "authentication required"},
		{"not found detail", fmt.Errorf("%w: entry with id 3 not found", common.ErrorNotFound), http.StatusNotFound, "entry with id 3 not found"},
		{"conflict", services.ErrUsernameTaken, http.StatusConflict, "username already taken"},
		{"rate limited", common.ErrorTooManyRequests, http.StatusTooManyRequests, "too many requests"},
		{"wrong method", common.ErrorMethodNotAllowed, http.StatusMethodNotAllowed, "method not allowed"},
		{"unknown", errors.New("db error: connection refused"), http.StatusInternalServerError, "internal error"},
		{"wrapped internal", fmt.Errorf("error listing entries: %w", common.ErrorInternal), http.StatusInternalServerError, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := classify(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestBearerToken(t *testing.T) {
	for header, want := range map[string]string{
		"Bearer abc":    "abc",
		"bearer abc":    "abc",
		"BEARER  abc  ": "abc",
	} {
		got, ok := bearerToken(header)
		assert.True(t, ok, header)
		assert.Equal(t, want, got, header)
	}

	for _, header := range []string{"", "Bearer", "Bearer   ", "Token abc", "abc"} {
		_, ok := bearerToken(header)
		assert.False(t, ok, header)
	}
}

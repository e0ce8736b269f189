package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/photojournal/internal/common"
)

type errorResponse struct {
	Message string `json:"message"`
}

var (
	errAuthRequired = fmt.Errorf("%w: authentication required", common.ErrorUnauthorized)
	errInvalidBody  = fmt.Errorf("%w: invalid request body", common.ErrorBadRequest)
)

// clientErrors maps each client-facing sentinel to its status and the
// message used when the error carries no detail of its own.
var clientErrors = []struct {
	sentinel error
	status   int
	fallback string
}{
	{common.ErrorBadRequest, http.StatusBadRequest, "bad request"},
	{common.ErrorUnauthorized, http.StatusUnauthorized, "authentication required"},
	{common.ErrInvalidToken, http.StatusUnauthorized, "authentication required"},
	{common.ErrTokenExpired, http.StatusUnauthorized, "authentication required"},
	{common.ErrorNotFound, http.StatusNotFound, "not found"},
	{common.ErrorAlreadyExists, http.StatusConflict, "already exists"},
	{common.ErrorTooManyRequests, http.StatusTooManyRequests, "too many requests"},
	{common.ErrorMethodNotAllowed, http.StatusMethodNotAllowed, "method not allowed"},
}

// classify turns err into a status code and a message safe to show the
// client. Anything outside the taxonomy is a 500 with a generic message.
func classify(err error) (int, string) {
	for _, c := range clientErrors {
		if errors.Is(err, c.sentinel) {
			return c.status, publicMessage(err, c.sentinel, c.fallback)
		}
	}
	return http.StatusInternalServerError, common.ErrorInternal.Error()
}

// publicMessage extracts the detail of errors built as
// fmt.Errorf("%w: detail", sentinel).
func publicMessage(err, sentinel error, fallback string) string {
	if detail, ok := strings.CutPrefix(err.Error(), sentinel.Error()+": "); ok && detail != "" {
		return detail
	}
	return fallback
}

// writeError is the single place that converts failures into responses.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := classify(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", err.Error())
	}
	writeJSON(w, status, errorResponse{Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/q-sparc/sparc-chat/internal/core/domain"
	"github.com/q-sparc/sparc-chat/internal/logger"
)

// errorResponse is the error envelope for every non-2xx response.
type errorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable"`
}

// handleChat runs one conversation turn.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "too many requests", true)
		return
	}

	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error(), false)
		return
	}

	// Callers without a session get a fresh one; the minted ID comes back
	// in the response so the follow-up lands in the same conversation.
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	resp, err := s.chat.Respond(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		logger.Warn("chat request failed (session %s): %v", req.SessionID, err)
		writeError(w, status, err.Error(), domain.Retryable(err))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleHealth reports liveness, and readiness of the index.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.chat.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "starting"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusFor maps pipeline errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotReady):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrLLMUnavailable),
		errors.Is(err, domain.ErrEmbeddingUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrGeneration):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON writes v as a JSON response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("write response: %v", err)
	}
}

// writeError writes the error envelope.
func writeError(w http.ResponseWriter, status int, msg string, retryable bool) {
	writeJSON(w, status, errorResponse{Error: msg, Retryable: retryable})
}

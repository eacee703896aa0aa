package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Rechidesigns/RechiGPT/internal/server/completion"
	"github.com/Rechidesigns/RechiGPT/internal/server/service"
	"github.com/Rechidesigns/RechiGPT/internal/shared/models"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

func (r *Router) handleChat(w http.ResponseWriter, req *http.Request) {
	user, ok := getUser(req.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}
	var body chatRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(body.Message) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message required"})
		return
	}

	ex, err := r.services.Relay.Relay(req.Context(), user, body.Message)
	if err != nil {
		r.writeRelayError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Message: ex.Message, Response: ex.Response, Timestamp: ex.CreatedAt})
}

// writeRelayError maps relay failure modes to transport responses. Provider
// error bodies are surfaced for debugging; the API key never is.
func (r *Router) writeRelayError(w http.ResponseWriter, err error) {
	var statusErr *completion.StatusError
	switch {
	case errors.Is(err, service.ErrProviderNotConfigured):
		r.logf("chat: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	case errors.Is(err, completion.ErrTimeout):
		writeJSON(w, http.StatusRequestTimeout, map[string]string{"error": "request to completion provider timed out"})
	case errors.As(err, &statusErr):
		r.logf("chat: upstream status %d: %s", statusErr.Code, statusErr.Body)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "failed to get response from completion provider: " + statusErr.Body})
	case errors.Is(err, completion.ErrNoCompletion):
		r.logf("chat: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrPersistence):
		r.logf("chat: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": service.ErrPersistence.Error()})
	default:
		r.logf("chat: unexpected error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) {
	user, ok := getUser(req.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}
	exchanges, err := r.services.Relay.History(req.Context(), user.ID, 0)
	if err != nil {
		r.logf("history: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if exchanges == nil {
		exchanges = []models.Exchange{}
	}
	writeJSON(w, http.StatusOK, exchanges)
}

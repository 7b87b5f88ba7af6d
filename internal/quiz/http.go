package quiz

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-widget/internal/auth"
	"github.com/gokatarajesh/quiz-widget/internal/question"
	httperrors "github.com/gokatarajesh/quiz-widget/pkg/http/errors"
)

// HTTPHandlers provides REST endpoints for quiz sessions. Every handler but
// Start and ListQuestions expects auth.RequireSession in front of it.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for quiz endpoints.
func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "quiz_http").Logger(),
	}
}

// Start handles POST /v1/sessions
func (h *HTTPHandlers) Start(w http.ResponseWriter, r *http.Request) {
	// The body is optional; an empty one starts on the default kind.
	var req kindRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	var kind question.Kind
	if req.Kind != "" {
		k, err := question.ParseKind(req.Kind)
		if err != nil {
			httperrors.RespondValidationError(w, httperrors.ErrCodeUnknownKind, "Unknown question kind", "kind")
			return
		}
		kind = k
	}

	view, token, err := h.service.Start(r.Context(), kind)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to start session")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeSessionCreationFailed, "Failed to start session")
		return
	}
	h.respondJSON(w, http.StatusCreated, StartResponse{Token: token, Session: view})
}

// GetSession handles GET /v1/session
func (h *HTTPHandlers) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	view, err := h.service.View(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, view)
}

// SetKind handles PUT /v1/session/kind
func (h *HTTPHandlers) SetKind(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	var req kindRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	kind, err := question.ParseKind(req.Kind)
	if err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeUnknownKind, "Unknown question kind", "kind")
		return
	}

	view, err := h.service.SetKind(r.Context(), id, kind)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, view)
}

// Next handles POST /v1/session/next
func (h *HTTPHandlers) Next(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	view, err := h.service.Next(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, view)
}

// Submit handles POST /v1/session/answer
func (h *HTTPHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	var answer Answer
	if err := json.NewDecoder(r.Body).Decode(&answer); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	outcome, err := h.service.Submit(r.Context(), id, answer)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, outcome)
}

// AnswerKey handles GET /v1/session/answer-key
func (h *HTTPHandlers) AnswerKey(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	key, err := h.service.Reveal(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, key)
}

// Attempts handles GET /v1/session/attempts?limit=N
func (h *HTTPHandlers) Attempts(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, "limit must be a positive integer", "limit")
			return
		}
		limit = n
	}

	attempts, err := h.service.Attempts(r.Context(), id, limit)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"attempts": attempts})
}

// ListQuestions handles GET /v1/questions/{kind}
func (h *HTTPHandlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	kind, err := question.ParseKind(r.PathValue("kind"))
	if err != nil {
		httperrors.RespondNotFound(w, httperrors.ErrCodeUnknownKind, "Unknown question kind")
		return
	}
	questions, err := h.service.Questions(kind)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"kind":      kind,
		"questions": questions,
	})
}

func (h *HTTPHandlers) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Session token required")
		return uuid.Nil, false
	}
	return claims.SessionID, true
}

func (h *HTTPHandlers) respondServiceError(w http.ResponseWriter, err error) {
	status, code, message := classify(err)
	switch status {
	case http.StatusNotFound:
		httperrors.RespondNotFound(w, code, message)
	case http.StatusBadRequest:
		httperrors.RespondBadRequest(w, code, message)
	case http.StatusConflict:
		httperrors.RespondConflict(w, code, message)
	case http.StatusUnprocessableEntity:
		httperrors.RespondUnprocessable(w, code, message)
	case http.StatusInternalServerError:
		h.logger.Error().Err(err).Msg("quiz request failed")
		httperrors.RespondInternalError(w, message)
	default:
		if status > http.StatusInternalServerError {
			h.logger.Error().Err(err).Msg("quiz request failed")
		}
		httperrors.RespondError(w, status, code, message)
	}
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

package stats

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-widget/internal/question"
	httperrors "github.com/gokatarajesh/quiz-widget/pkg/http/errors"
)

type questionLister interface {
	Questions(kind question.Kind) []question.Question
}

// HTTPHandler exposes REST endpoints for question stats.
type HTTPHandler struct {
	svc    *Service
	bank   questionLister
	logger zerolog.Logger
}

// NewHTTPHandler constructs a stats HTTP handler.
func NewHTTPHandler(svc *Service, bank questionLister, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		bank:   bank,
		logger: logger.With().Str("component", "stats_http").Logger(),
	}
}

// HandleGet responds with stats for every question of a kind.
// Route: GET /v1/stats/{kind}
func (h *HTTPHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	kind, err := question.ParseKind(r.PathValue("kind"))
	if err != nil {
		httperrors.RespondNotFound(w, httperrors.ErrCodeUnknownKind, "unknown question kind")
		return
	}

	entries, err := h.svc.ForKind(r.Context(), kind, h.bank.Questions(kind))
	if err != nil {
		h.logger.Error().Err(err).Str("kind", string(kind)).Msg("stats fetch failed")
		httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeStatsFetchFailed, "failed to fetch stats")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"kind":      kind,
		"questions": entries,
	})
}

// HandleUnavailable answers stats requests when no Redis backend is configured.
func HandleUnavailable(w http.ResponseWriter, _ *http.Request) {
	httperrors.RespondError(w, http.StatusServiceUnavailable, httperrors.ErrCodeServiceUnavailable, "Question stats are not enabled")
}

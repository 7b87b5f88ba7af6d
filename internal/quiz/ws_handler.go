package quiz

import (
	"net/http"

	"github.com/gokatarajesh/quiz-widget/internal/auth"
	"github.com/gokatarajesh/quiz-widget/internal/server"
	httperrors "github.com/gokatarajesh/quiz-widget/pkg/http/errors"
)

// HandleWebSocket authenticates the session token and upgrades to WebSocket.
// Route: GET /ws/session?token=...
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	token, ok := auth.TokenFromRequest(r)
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidToken, "Missing token")
		return
	}

	sessionID, err := h.tokens.SessionFromToken(token)
	if err != nil {
		h.logger.Warn().Err(err).Msg("WebSocket token validation failed")
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidToken, "Invalid token")
		return
	}

	if _, err := h.service.View(r.Context(), sessionID); err != nil {
		status, code, message := classify(err)
		httperrors.RespondError(w, status, code, message)
		return
	}

	conn, err := server.WSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	h.HandleConnection(conn, sessionID)
}

package quiz

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-widget/internal/question"
	httperrors "github.com/gokatarajesh/quiz-widget/pkg/http/errors"
	ws "github.com/gokatarajesh/quiz-widget/pkg/http/ws"
)

// TokenValidator resolves a session token to its session id.
type TokenValidator interface {
	SessionFromToken(token string) (uuid.UUID, error)
}

// Handler manages WebSocket connections and routes quiz messages. State
// changes are broadcast to every connection of the session.
type Handler struct {
	service *Service
	hub     *ws.Hub
	tokens  TokenValidator
	relay   *Relay
	logger  zerolog.Logger
}

// NewHandler creates a quiz WebSocket handler.
func NewHandler(service *Service, hub *ws.Hub, tokens TokenValidator, logger zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		hub:     hub,
		tokens:  tokens,
		logger:  logger.With().Str("component", "quiz_ws").Logger(),
	}
}

// UseRelay publishes every session broadcast through relay so connections
// held by other instances see it too.
func (h *Handler) UseRelay(relay *Relay) {
	h.relay = relay
}

// HandleConnection serves an upgraded connection until the peer disconnects.
// The token must already be validated.
func (h *Handler) HandleConnection(conn *websocket.Conn, sessionID uuid.UUID) {
	wsConn := ws.NewConnection(conn, sessionID, h.logger)
	h.hub.Register(wsConn)
	h.service.metrics.connectionOpened()

	go wsConn.WritePump()

	ctx := context.Background()
	if err := h.sendView(ctx, wsConn.ID, sessionID, ""); err != nil {
		h.logger.Warn().Err(err).Str("session_id", sessionID.String()).Msg("initial question send failed")
	}

	wsConn.ReadPump(func(msg ws.Message) error {
		return h.handleMessage(ctx, wsConn.ID, sessionID, msg)
	})

	h.hub.Unregister(wsConn.ID)
	h.service.metrics.connectionClosed()
}

// handleMessage routes incoming WebSocket messages.
func (h *Handler) handleMessage(ctx context.Context, connID, sessionID uuid.UUID, msg ws.Message) error {
	switch msg.Type {
	case ws.TypeSelectKind:
		return h.handleSelectKind(ctx, connID, sessionID, msg)
	case ws.TypeNextQuestion:
		view, err := h.service.Next(ctx, sessionID)
		if err != nil {
			return h.sendServiceError(connID, msg.RequestID, err)
		}
		return h.broadcast(ctx, sessionID, ws.TypeQuestion, view, msg.RequestID)
	case ws.TypeRequestQuestion:
		return h.sendView(ctx, connID, sessionID, msg.RequestID)
	case ws.TypeSubmitAnswer:
		return h.handleSubmitAnswer(ctx, connID, sessionID, msg)
	case ws.TypeRevealAnswer:
		key, err := h.service.Reveal(ctx, sessionID)
		if err != nil {
			return h.sendServiceError(connID, msg.RequestID, err)
		}
		return h.broadcast(ctx, sessionID, ws.TypeAnswerKey, key, msg.RequestID)
	default:
		return h.sendError(connID, msg.RequestID, httperrors.ErrCodeUnknownMessageType, fmt.Sprintf("Unknown message type: %s", msg.Type))
	}
}

func (h *Handler) handleSelectKind(ctx context.Context, connID, sessionID uuid.UUID, msg ws.Message) error {
	var req ws.SelectKindPayload
	if err := msg.Decode(&req); err != nil {
		return h.sendError(connID, msg.RequestID, httperrors.ErrCodeInvalidPayload, "Invalid select_kind payload")
	}
	kind, err := question.ParseKind(req.Kind)
	if err != nil {
		return h.sendServiceError(connID, msg.RequestID, err)
	}
	view, err := h.service.SetKind(ctx, sessionID, kind)
	if err != nil {
		return h.sendServiceError(connID, msg.RequestID, err)
	}
	return h.broadcast(ctx, sessionID, ws.TypeQuestion, view, msg.RequestID)
}

func (h *Handler) handleSubmitAnswer(ctx context.Context, connID, sessionID uuid.UUID, msg ws.Message) error {
	var req ws.SubmitAnswerPayload
	if err := msg.Decode(&req); err != nil {
		return h.sendError(connID, msg.RequestID, httperrors.ErrCodeInvalidPayload, "Invalid submit_answer payload")
	}
	outcome, err := h.service.Submit(ctx, sessionID, Answer{
		Selected:   req.Selected,
		RegionID:   req.RegionID,
		Placements: req.Placements,
	})
	if err != nil {
		return h.sendServiceError(connID, msg.RequestID, err)
	}
	return h.broadcast(ctx, sessionID, ws.TypeGradeResult, outcome, msg.RequestID)
}

func (h *Handler) sendView(ctx context.Context, connID, sessionID uuid.UUID, requestID string) error {
	view, err := h.service.View(ctx, sessionID)
	if err != nil {
		return h.sendServiceError(connID, requestID, err)
	}
	out, err := ws.NewMessage(ws.TypeQuestion, view, requestID)
	if err != nil {
		return err
	}
	return h.hub.Send(connID, out)
}

func (h *Handler) broadcast(ctx context.Context, sessionID uuid.UUID, msgType string, payload interface{}, requestID string) error {
	out, err := ws.NewMessage(msgType, payload, requestID)
	if err != nil {
		return err
	}
	if err := h.relay.Publish(ctx, sessionID, out); err != nil {
		h.logger.Warn().Err(err).Str("session_id", sessionID.String()).Msg("relay publish failed")
	}
	return h.hub.BroadcastToSession(sessionID, out)
}

func (h *Handler) sendServiceError(connID uuid.UUID, requestID string, err error) error {
	_, code, message := classify(err)
	if code == httperrors.ErrCodeInternalError {
		h.logger.Error().Err(err).Str("connection_id", connID.String()).Msg("quiz message failed")
	}
	return h.sendError(connID, requestID, code, message)
}

func (h *Handler) sendError(connID uuid.UUID, requestID, code, message string) error {
	out, err := ws.NewMessage(ws.TypeError, ws.ErrorPayload{Code: code, Message: message}, requestID)
	if err != nil {
		return err
	}
	return h.hub.Send(connID, out)
}

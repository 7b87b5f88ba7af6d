package quiz

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	ws "github.com/gokatarajesh/quiz-widget/pkg/http/ws"
)

const defaultEventsChannel = "quiz:session-events"

// Relay fans session broadcasts out across API instances over Redis Pub/Sub.
// Each instance delivers its own broadcasts locally and forwards only events
// published by other instances.
type Relay struct {
	redis   *redis.Client
	hub     *ws.Hub
	channel string
	origin  string
	logger  zerolog.Logger
}

type relayEvent struct {
	Origin    string     `json:"origin"`
	SessionID uuid.UUID  `json:"session_id"`
	Message   ws.Message `json:"message"`
}

// NewRelay creates a relay bound to hub. An empty channel uses the default.
func NewRelay(client *redis.Client, hub *ws.Hub, channel string, logger zerolog.Logger) *Relay {
	if channel == "" {
		channel = defaultEventsChannel
	}
	return &Relay{
		redis:   client,
		hub:     hub,
		channel: channel,
		origin:  uuid.NewString(),
		logger:  logger.With().Str("component", "quiz_relay").Logger(),
	}
}

// Publish announces a session broadcast to the other instances.
func (r *Relay) Publish(ctx context.Context, sessionID uuid.UUID, msg ws.Message) error {
	if r == nil || r.redis == nil {
		return nil
	}
	raw, err := json.Marshal(relayEvent{Origin: r.origin, SessionID: sessionID, Message: msg})
	if err != nil {
		return fmt.Errorf("marshal relay event: %w", err)
	}
	return r.redis.Publish(ctx, r.channel, raw).Err()
}

// Run subscribes to the events channel and blocks until ctx is cancelled.
// ready, when non-nil, is closed once the subscription is confirmed.
func (r *Relay) Run(ctx context.Context, ready chan<- struct{}) error {
	if r == nil || r.redis == nil || r.hub == nil {
		return nil
	}

	sub := r.redis.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", r.channel, err)
	}
	if ready != nil {
		close(ready)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.forward(msg.Payload)
		}
	}
}

func (r *Relay) forward(payload string) {
	var evt relayEvent
	if err := json.Unmarshal([]byte(payload), &evt); err != nil {
		r.logger.Warn().Err(err).Msg("failed to decode relay event")
		return
	}
	if evt.Origin == r.origin {
		return
	}
	if err := r.hub.BroadcastToSession(evt.SessionID, evt.Message); err != nil {
		r.logger.Warn().Err(err).Str("session_id", evt.SessionID.String()).Msg("failed to forward relay event")
	}
}

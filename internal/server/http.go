package server

import (
	"context"
	"net/http"

	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-widget/internal/config"
	"github.com/gokatarajesh/quiz-widget/internal/logging"
	httperrors "github.com/gokatarajesh/quiz-widget/pkg/http/errors"
)

// WSUpgrader handles WebSocket upgrades. Any origin may connect; the session
// token authorizes the upgrade.
var WSUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Routes carries the handlers mounted by NewHTTPServer. Nil handlers are
// skipped. Protect wraps handlers that need a session token.
type Routes struct {
	Protect func(http.Handler) http.Handler

	StartSession  http.HandlerFunc
	GetSession    http.HandlerFunc
	SetKind       http.HandlerFunc
	NextQuestion  http.HandlerFunc
	SubmitAnswer  http.HandlerFunc
	AnswerKey     http.HandlerFunc
	Attempts      http.HandlerFunc
	ListQuestions http.HandlerFunc
	Stats         http.HandlerFunc
	WebSocket     http.HandlerFunc
}

// NewHTTPServer wires base routes (health, metrics) and the quiz API.
// pool and redis may be nil when those backends are not configured.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, redis *redis.Client, routes Routes) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/ping", func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.IntoContext(r.Context(), logger)
		if err := pingDependencies(ctx, pool, redis); err != nil {
			httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeUpstreamError, "Dependency check failed")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	protect := routes.Protect
	if protect == nil {
		protect = func(h http.Handler) http.Handler { return h }
	}
	handle := func(pattern string, h http.HandlerFunc, authenticated bool) {
		if h == nil {
			return
		}
		if authenticated {
			mux.Handle(pattern, protect(h))
			return
		}
		mux.HandleFunc(pattern, h)
	}

	handle("POST /v1/sessions", routes.StartSession, false)
	handle("GET /v1/questions/{kind}", routes.ListQuestions, false)
	handle("GET /v1/stats/{kind}", routes.Stats, false)
	handle("GET /v1/session", routes.GetSession, true)
	handle("PUT /v1/session/kind", routes.SetKind, true)
	handle("POST /v1/session/next", routes.NextQuestion, true)
	handle("POST /v1/session/answer", routes.SubmitAnswer, true)
	handle("GET /v1/session/answer-key", routes.AnswerKey, true)
	handle("GET /v1/session/attempts", routes.Attempts, true)
	// The WebSocket handler reads its token from the query string itself.
	handle("GET /ws/session", routes.WebSocket, false)

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: withCORS(cfg.CORS, mux),
	}
}

// withCORS applies the configured Cross-Origin Resource Sharing policy.
func withCORS(cfg config.CORS, next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: cfg.AllowedMethods,
		AllowedHeaders: cfg.AllowedHeaders,
		MaxAge:         cfg.MaxAge,
	})(next)
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, redis *redis.Client) error {
	logger := logging.FromContext(ctx)
	if pool != nil {
		if err := pool.Ping(ctx); err != nil {
			logger.Error().Err(err).Str("dependency", "postgres").Msg("dependency ping failed")
			return err
		}
	}
	if redis != nil {
		if err := redis.Ping(ctx).Err(); err != nil {
			logger.Error().Err(err).Str("dependency", "redis").Msg("dependency ping failed")
			return err
		}
	}
	return nil
}

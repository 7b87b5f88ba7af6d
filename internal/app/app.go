package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-widget/internal/auth"
	"github.com/gokatarajesh/quiz-widget/internal/auth/jwt"
	"github.com/gokatarajesh/quiz-widget/internal/config"
	"github.com/gokatarajesh/quiz-widget/internal/db/repository"
	"github.com/gokatarajesh/quiz-widget/internal/logging"
	"github.com/gokatarajesh/quiz-widget/internal/question"
	"github.com/gokatarajesh/quiz-widget/internal/quiz"
	"github.com/gokatarajesh/quiz-widget/internal/scoring"
	"github.com/gokatarajesh/quiz-widget/internal/server"
	"github.com/gokatarajesh/quiz-widget/internal/session"
	"github.com/gokatarajesh/quiz-widget/internal/stats"
	ws "github.com/gokatarajesh/quiz-widget/pkg/http/ws"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	relay *quiz.Relay
	http  *http.Server
}

// New bootstraps the logger, optional Postgres and Redis, the question bank
// and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.Log.Level)
	logger.Info().Msg("starting application bootstrap")

	if cfg.Security.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_TOKEN_SECRET must be configured")
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.Enabled() {
		p, err := pgxpool.New(ctx, fmt.Sprintf("%s pool_max_conns=%d", cfg.Postgres.DSN(), cfg.Postgres.MaxConns))
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		pool = p
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
	}

	bank, err := LoadBank(ctx, cfg.Bank, pool)
	if err != nil {
		closeBackends(pool, redisClient, logger)
		return nil, err
	}
	for _, warning := range bank.Lint() {
		logger.Warn().Str("lint", warning).Msg("question bank warning")
	}

	var store session.Store
	var statsSvc *stats.Service
	if redisClient != nil {
		store = session.NewRedisStore(redisClient, cfg.Session.TTL, logger)
		statsSvc = stats.NewService(redisClient, logger, stats.ServiceOptions{
			RedisKeyPrefix: cfg.Stats.KeyPrefix,
			EntryTTL:       cfg.Stats.EntryTTL,
		})
	} else {
		logger.Warn().Msg("REDIS_ADDR not set; sessions are kept in memory and stats are disabled")
		store = session.NewMemoryStore(cfg.Session.TTL)
	}

	opts := quiz.ServiceOptions{
		DefaultKind: question.Kind(cfg.Session.DefaultKind),
		Metrics:     quiz.NewMetrics(prometheus.DefaultRegisterer),
	}
	if statsSvc != nil {
		opts.Stats = statsSvc
	}
	if pool != nil && cfg.Stats.AttemptHistory {
		opts.Attempts = repository.NewAttemptRepository(pool)
	}

	tokens := jwt.NewManager(jwt.TokenConfig{
		Secret: []byte(cfg.Security.SessionSecret),
		TTL:    cfg.Security.TokenTTL,
		Issuer: cfg.Name,
	})
	engine := scoring.NewEngine(scoring.Config{
		BaseScore:          cfg.Scoring.BaseScore,
		StreakBonusPercent: cfg.Scoring.StreakBonusPercent,
		MaxStreakBonus:     cfg.Scoring.MaxStreakBonus,
	})

	quizSvc := quiz.NewService(bank, store, engine, tokens, opts, logger)
	quizHTTP := quiz.NewHTTPHandlers(quizSvc, logger)
	hub := ws.NewHub(logger)
	quizWS := quiz.NewHandler(quizSvc, hub, tokens, logger)
	var relay *quiz.Relay
	if redisClient != nil {
		relay = quiz.NewRelay(redisClient, hub, cfg.Session.EventsChannel, logger)
		quizWS.UseRelay(relay)
	}

	routes := server.Routes{
		Protect:       auth.RequireSession(tokens, logger),
		StartSession:  quizHTTP.Start,
		GetSession:    quizHTTP.GetSession,
		SetKind:       quizHTTP.SetKind,
		NextQuestion:  quizHTTP.Next,
		SubmitAnswer:  quizHTTP.Submit,
		AnswerKey:     quizHTTP.AnswerKey,
		Attempts:      quizHTTP.Attempts,
		ListQuestions: quizHTTP.ListQuestions,
		WebSocket:     quizWS.HandleWebSocket,
	}
	if statsSvc != nil {
		routes.Stats = stats.NewHTTPHandler(statsSvc, bank, logger).HandleGet
	} else {
		routes.Stats = stats.HandleUnavailable
	}

	return &Application{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		redis:  redisClient,
		relay:  relay,
		http:   server.NewHTTPServer(cfg, logger, pool, redisClient, routes),
	}, nil
}

// LoadBank builds the question bank from the configured source.
func LoadBank(ctx context.Context, cfg config.Bank, pool *pgxpool.Pool) (*question.Bank, error) {
	switch cfg.Source {
	case config.BankFile:
		bank, err := question.LoadFile(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("load question file: %w", err)
		}
		return bank, nil
	case config.BankPostgres:
		if pool == nil {
			return nil, errors.New("question source postgres needs PG_HOST")
		}
		bank, err := repository.NewQuestionRepository(pool).LoadBank(ctx)
		if err != nil {
			return nil, fmt.Errorf("load questions from postgres: %w", err)
		}
		return bank, nil
	default:
		return question.NewBank(question.Builtin())
	}
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	relayCtx, stopRelay := context.WithCancel(ctx)
	defer stopRelay()
	if a.relay != nil {
		go func() {
			if err := a.relay.Run(relayCtx, nil); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Error().Err(err).Msg("session relay stopped")
			}
		}()
	}

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}
	stopRelay()

	closeBackends(a.pool, a.redis, a.logger)
	a.logger.Info().Msg("shutdown complete")
	return nil
}

func closeBackends(pool *pgxpool.Pool, redisClient *redis.Client, logger zerolog.Logger) {
	if pool != nil {
		pool.Close()
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("redis shutdown error")
		}
	}
}

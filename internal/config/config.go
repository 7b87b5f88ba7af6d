package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"quiz-widget"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Log      Log
	Bank     Bank
	Postgres Postgres
	Redis    Redis
	Security Security
	Session  Session
	Scoring  Scoring
	Stats    Stats
	CORS     CORS
}

// Log controls logger verbosity and destination.
type Log struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	// File receives logs from the terminal client, which owns stdout.
	File string `env:"QUIZ_LOG_FILE" envDefault:""`
}

// Bank selects where questions are loaded from.
type Bank struct {
	Source string `env:"QUESTION_SOURCE" envDefault:"builtin"` // builtin, file or postgres
	Path   string `env:"QUESTION_FILE" envDefault:""`
}

// Bank sources.
const (
	BankBuiltin  = "builtin"
	BankFile     = "file"
	BankPostgres = "postgres"
)

// Postgres captures connection info for the SQL database. An empty host disables it.
type Postgres struct {
	Host     string `env:"PG_HOST" envDefault:""`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER" envDefault:""`
	Password string `env:"PG_PASSWORD" envDefault:""`
	Database string `env:"PG_DATABASE" envDefault:""`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxConns int    `env:"PG_MAX_CONNS" envDefault:"10"`
}

// Enabled reports whether a database was configured.
func (p Postgres) Enabled() bool { return p.Host != "" }

// DSN renders a keyword/value connection string.
func (p Postgres) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// Redis holds session and stats storage configuration. An empty address disables it.
type Redis struct {
	Addr     string `env:"REDIS_ADDR" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Enabled reports whether Redis was configured.
func (r Redis) Enabled() bool { return r.Addr != "" }

// Security stores secrets for signing session tokens.
type Security struct {
	SessionSecret string        `env:"SESSION_TOKEN_SECRET" envDefault:""`
	TokenTTL      time.Duration `env:"SESSION_TOKEN_TTL" envDefault:"2h"`
}

// Session groups quiz session defaults.
type Session struct {
	TTL         time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	DefaultKind string        `env:"DEFAULT_QUESTION_KIND" envDefault:"multiple-choice"`

	// EventsChannel carries WebSocket broadcasts between instances when Redis is configured.
	EventsChannel string `env:"SESSION_EVENTS_CHANNEL" envDefault:"quiz:session-events"`
}

// Scoring mirrors scoring.Config.
type Scoring struct {
	BaseScore          int     `env:"SCORE_BASE" envDefault:"100"`
	StreakBonusPercent float64 `env:"SCORE_STREAK_BONUS_PERCENT" envDefault:"0.05"`
	MaxStreakBonus     float64 `env:"SCORE_MAX_STREAK_BONUS" envDefault:"0.5"`
}

// Stats governs per-question counters and attempt history.
type Stats struct {
	KeyPrefix      string        `env:"STATS_KEY_PREFIX" envDefault:"qstats"`
	EntryTTL       time.Duration `env:"STATS_ENTRY_TTL" envDefault:"720h"`
	AttemptHistory bool          `env:"ATTEMPT_HISTORY_ENABLED" envDefault:"true"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000"`
	AllowedMethods []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,PUT,OPTIONS"`
	AllowedHeaders []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Authorization"`
	MaxAge         int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *App) validate() error {
	switch c.Bank.Source {
	case BankBuiltin:
	case BankFile:
		if c.Bank.Path == "" {
			return fmt.Errorf("QUESTION_FILE is required when QUESTION_SOURCE=file")
		}
	case BankPostgres:
		if !c.Postgres.Enabled() {
			return fmt.Errorf("PG_HOST is required when QUESTION_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("unknown QUESTION_SOURCE %q", c.Bank.Source)
	}
	return nil
}

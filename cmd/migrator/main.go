package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/quiz-widget/internal/app"
	"github.com/gokatarajesh/quiz-widget/internal/config"
	"github.com/gokatarajesh/quiz-widget/internal/db/repository"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status or seed")
		dir     = flag.String("dir", "db/migrations", "Directory containing migration files")
		file    = flag.String("file", "", "Question bank file to seed (default: built-in questions)")
	)
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load("configs/.env")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if !cfg.Postgres.Enabled() {
		log.Fatal().Msg("PG_HOST environment variable is required")
	}
	if cfg.Postgres.User == "" || cfg.Postgres.Database == "" {
		log.Fatal().Msg("PG_USER and PG_DATABASE environment variables are required")
	}

	if *command == "seed" {
		seed(ctx, cfg, *file)
		return
	}

	migrationDir, err := filepath.Abs(*dir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", *dir).Msg("failed to resolve migration directory")
	}
	if _, err := os.Stat(migrationDir); os.IsNotExist(err) {
		log.Fatal().Str("dir", migrationDir).Msg("migration directory does not exist")
	}

	// goose works on database/sql, so connect through the pgx stdlib driver.
	db, err := sql.Open("pgx", cfg.Postgres.DSN())
	if err != nil {
		log.Fatal().Err(err).Str("host", cfg.Postgres.Host).Msg("failed to open database connection")
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}

	log.Info().
		Str("host", cfg.Postgres.Host).
		Int("port", cfg.Postgres.Port).
		Str("database", cfg.Postgres.Database).
		Str("migration_dir", migrationDir).
		Msg("connected to database")

	goose.SetBaseFS(nil)
	goose.SetTableName("goose_db_version")
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal().Err(err).Msg("failed to set goose dialect")
	}

	switch *command {
	case "up":
		if err := goose.UpContext(ctx, db, migrationDir); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations up")
		}
		log.Info().Msg("migrations applied successfully")

	case "down":
		if err := goose.DownContext(ctx, db, migrationDir); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations down")
		}
		log.Info().Msg("migrations rolled back successfully")

	case "status":
		if err := goose.StatusContext(ctx, db, migrationDir); err != nil {
			log.Fatal().Err(err).Msg("failed to get migration status")
		}

	default:
		log.Fatal().Str("command", *command).Msg("unknown command. Use: up, down, status or seed")
	}
}

// seed replaces the stored questions with a bank (built-in or file).
func seed(ctx context.Context, cfg *config.App, file string) {
	source := config.Bank{Source: config.BankBuiltin}
	if file != "" {
		source = config.Bank{Source: config.BankFile, Path: file}
	}
	bank, err := app.LoadBank(ctx, source, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load question bank")
	}

	pool, err := pgxpool.New(ctx, cfg.Postgres.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect postgres")
	}
	defer pool.Close()

	n, err := repository.NewQuestionRepository(pool).Seed(ctx, bank)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed questions")
	}
	log.Info().Int("questions", n).Msg("question bank seeded")
}

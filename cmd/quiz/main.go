package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/gokatarajesh/quiz-widget/internal/app"
	"github.com/gokatarajesh/quiz-widget/internal/config"
	"github.com/gokatarajesh/quiz-widget/internal/logging"
	"github.com/gokatarajesh/quiz-widget/internal/question"
	"github.com/gokatarajesh/quiz-widget/internal/scoring"
	"github.com/gokatarajesh/quiz-widget/internal/tui"
)

func main() {
	var (
		kind    = flag.String("kind", "", "Initial question kind: multiple-choice, hotspot or drag-drop")
		file    = flag.String("file", "", "Question bank file (YAML or JSON); overrides QUESTION_SOURCE")
		noColor = flag.Bool("no-color", false, "Disable colors")
	)
	flag.Parse()

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load("configs/.env")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *file != "" {
		cfg.Bank = config.Bank{Source: config.BankFile, Path: *file}
	}

	// stdout belongs to the UI, so logs go to a file or nowhere.
	logger, closer, err := logging.NewFile(cfg.Name, cfg.Env, cfg.Log.Level, cfg.Log.File)
	if err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}
	defer closer.Close()

	var pool *pgxpool.Pool
	if cfg.Bank.Source == config.BankPostgres {
		pool, err = pgxpool.New(ctx, cfg.Postgres.DSN())
		if err != nil {
			log.Fatalf("failed to connect postgres: %v", err)
		}
		defer pool.Close()
	}

	bank, err := app.LoadBank(ctx, cfg.Bank, pool)
	if err != nil {
		log.Fatalf("failed to load questions: %v", err)
	}
	for _, warning := range bank.Lint() {
		logger.Warn().Str("lint", warning).Msg("question bank warning")
	}

	initial := question.Kind(cfg.Session.DefaultKind)
	if *kind != "" {
		initial, err = question.ParseKind(*kind)
		if err != nil {
			log.Fatalf("invalid -kind: %v", err)
		}
	}

	engine := scoring.NewEngine(scoring.Config{
		BaseScore:          cfg.Scoring.BaseScore,
		StreakBonusPercent: cfg.Scoring.StreakBonusPercent,
		MaxStreakBonus:     cfg.Scoring.MaxStreakBonus,
	})
	model, err := tui.NewModel(bank, engine, tui.Options{Kind: initial, NoColor: *noColor, Logger: logger})
	if err != nil {
		log.Fatalf("failed to start quiz: %v", err)
	}

	logger.Info().Str("kind", string(initial)).Msg("terminal quiz started")
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("quiz exited: %v", err)
	}
}

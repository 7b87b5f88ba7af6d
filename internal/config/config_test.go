package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "quiz-widget", cfg.Name)
	assert.Equal(t, BankBuiltin, cfg.Bank.Source)
	assert.False(t, cfg.Postgres.Enabled())
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 2*time.Hour, cfg.Security.TokenTTL)
	assert.Equal(t, 100, cfg.Scoring.BaseScore)
	assert.Equal(t, "multiple-choice", cfg.Session.DefaultKind)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("QUESTION_SOURCE", "file")
	t.Setenv("QUESTION_FILE", "bank.yaml")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("SESSION_TTL", "30m")

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bank.yaml", cfg.Bank.Path)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
}

func TestLoadRejectsIncompleteBankSource(t *testing.T) {
	t.Setenv("QUESTION_SOURCE", "file")
	_, err := Load(context.Background())
	assert.ErrorContains(t, err, "QUESTION_FILE")

	t.Setenv("QUESTION_SOURCE", "postgres")
	_, err = Load(context.Background())
	assert.ErrorContains(t, err, "PG_HOST")

	t.Setenv("QUESTION_SOURCE", "s3")
	_, err = Load(context.Background())
	assert.ErrorContains(t, err, "unknown QUESTION_SOURCE")
}

func TestPostgresDSN(t *testing.T) {
	p := Postgres{Host: "db", Port: 5432, User: "quiz", Password: "pw", Database: "quiz", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=quiz password=pw dbname=quiz sslmode=disable", p.DSN())
}

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/quiz-widget/internal/config"
	"github.com/gokatarajesh/quiz-widget/internal/question"
)

func TestLoadBankBuiltin(t *testing.T) {
	bank, err := LoadBank(context.Background(), config.Bank{Source: config.BankBuiltin}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, bank.Len(question.KindMultipleChoice))
	assert.Empty(t, bank.Lint())
}

func TestLoadBankFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	raw := `{
  "multiple-choice": [{"id": "q1", "prompt": "p", "options": ["a", "b"], "correct": 0}],
  "hotspot": [{"id": "q2", "prompt": "p", "regions": [{"id": "r", "label": "r", "correct": true}]}],
  "drag-drop": [{"id": "q3", "prompt": "p", "draggables": ["x"], "targets": [{"label": "X", "match": 0}]}]
}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	bank, err := LoadBank(context.Background(), config.Bank{Source: config.BankFile, Path: path}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, bank.Len(question.KindDragDrop))

	_, err = LoadBank(context.Background(), config.Bank{Source: config.BankFile, Path: filepath.Join(t.TempDir(), "missing.yaml")}, nil)
	assert.Error(t, err)
}

func TestLoadBankPostgresNeedsPool(t *testing.T) {
	_, err := LoadBank(context.Background(), config.Bank{Source: config.BankPostgres}, nil)
	assert.ErrorContains(t, err, "PG_HOST")
}

func TestNewRequiresSessionSecret(t *testing.T) {
	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	_, err = New(context.Background(), cfg)
	assert.ErrorContains(t, err, "SESSION_TOKEN_SECRET")
}

func TestNewWithInMemoryBackends(t *testing.T) {
	t.Setenv("SESSION_TOKEN_SECRET", "test-secret")
	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	instance, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, instance.pool)
	assert.Nil(t, instance.redis)
	assert.Nil(t, instance.relay)
	require.NotNil(t, instance.http.Handler)

	rec := httptest.NewRecorder()
	instance.http.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/stats/hotspot", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

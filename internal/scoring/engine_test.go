package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreIncorrectIsZero(t *testing.T) {
	e := NewEngine(DefaultConfig())
	assert.Equal(t, 0, e.Score(false, 5))
}

func TestScoreStreakBonusIsCapped(t *testing.T) {
	e := NewEngine(DefaultConfig())

	assert.Equal(t, 100, e.Score(true, 1))
	assert.Equal(t, 105, e.Score(true, 2))
	assert.Equal(t, 150, e.Score(true, 11))
	assert.Equal(t, 150, e.Score(true, 40))
}

func TestApplyTracksStreaks(t *testing.T) {
	e := NewEngine(Config{})

	var tally Tally
	for _, ok := range []bool{true, true, false, true} {
		tally = e.Apply(tally, ok)
	}

	assert.Equal(t, Tally{Attempts: 4, Correct: 3, Streak: 1, BestStreak: 2, Score: 305}, tally)
	assert.InDelta(t, 0.75, tally.Accuracy(), 1e-9)
}

func TestAccuracyWithoutAttempts(t *testing.T) {
	assert.Zero(t, Tally{}.Accuracy())
}

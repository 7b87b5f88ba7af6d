package scoring

// Config holds configurable scoring constants.
type Config struct {
	BaseScore          int     // default: 100
	StreakBonusPercent float64 // default: 0.05 (5% per consecutive correct)
	MaxStreakBonus     float64 // default: 0.50 (50% cap)
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		BaseScore:          100,
		StreakBonusPercent: 0.05,
		MaxStreakBonus:     0.50,
	}
}

// Tally accumulates a session's graded attempts.
type Tally struct {
	Attempts   int `json:"attempts"`
	Correct    int `json:"correct"`
	Streak     int `json:"streak"`
	BestStreak int `json:"best_streak"`
	Score      int `json:"score"`
}

// Accuracy is the share of correct attempts, 0 when nothing was graded.
func (t Tally) Accuracy() float64 {
	if t.Attempts == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Attempts)
}

// Engine computes scores with configurable constants.
type Engine struct {
	config Config
}

// NewEngine creates a scoring engine; zero fields fall back to defaults.
func NewEngine(config Config) *Engine {
	def := DefaultConfig()
	if config.BaseScore <= 0 {
		config.BaseScore = def.BaseScore
	}
	if config.StreakBonusPercent < 0 {
		config.StreakBonusPercent = 0
	}
	if config.MaxStreakBonus <= 0 {
		config.MaxStreakBonus = def.MaxStreakBonus
	}
	return &Engine{config: config}
}

// Score computes points for a single answer.
// Formula: base + streak_bonus, where streak_bonus is a capped percentage of
// base growing with consecutive correct answers (the current one included).
func (e *Engine) Score(isCorrect bool, streak int) int {
	if !isCorrect {
		return 0
	}

	score := e.config.BaseScore
	if streak > 1 {
		multiplier := float64(streak-1) * e.config.StreakBonusPercent
		if multiplier > e.config.MaxStreakBonus {
			multiplier = e.config.MaxStreakBonus
		}
		score += int(float64(e.config.BaseScore) * multiplier)
	}
	return score
}

// Apply folds one graded attempt into t.
func (e *Engine) Apply(t Tally, isCorrect bool) Tally {
	t.Attempts++
	if !isCorrect {
		t.Streak = 0
		return t
	}
	t.Correct++
	t.Streak++
	if t.Streak > t.BestStreak {
		t.BestStreak = t.Streak
	}
	t.Score += e.Score(true, t.Streak)
	return t
}

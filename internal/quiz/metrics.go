package quiz

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gokatarajesh/quiz-widget/internal/grading"
	"github.com/gokatarajesh/quiz-widget/internal/question"
)

// Metrics exposes quiz counters to Prometheus. A nil *Metrics records nothing.
type Metrics struct {
	sessions      *prometheus.CounterVec
	answers       *prometheus.CounterVec
	reveals       *prometheus.CounterVec
	gradingErrors *prometheus.CounterVec
	connections   prometheus.Gauge
}

// NewMetrics registers the quiz collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quiz",
			Name:      "sessions_started_total",
			Help:      "Quiz sessions started, by initial question kind.",
		}, []string{"kind"}),
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quiz",
			Name:      "answers_graded_total",
			Help:      "Graded submissions, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		reveals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quiz",
			Name:      "answer_reveals_total",
			Help:      "Answer keys revealed, by kind.",
		}, []string{"kind"}),
		gradingErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quiz",
			Name:      "grading_errors_total",
			Help:      "Rejected submissions, by reason.",
		}, []string{"reason"}),
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quiz",
			Name:      "ws_connections",
			Help:      "Open quiz WebSocket connections.",
		}),
	}
	reg.MustRegister(m.sessions, m.answers, m.reveals, m.gradingErrors, m.connections)
	return m
}

func (m *Metrics) sessionStarted(kind question.Kind) {
	if m == nil {
		return
	}
	m.sessions.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) graded(res grading.Result) {
	if m == nil {
		return
	}
	outcome := "incorrect"
	if res.Correct {
		outcome = "correct"
	}
	m.answers.WithLabelValues(string(res.Kind), outcome).Inc()
}

func (m *Metrics) revealed(kind question.Kind) {
	if m == nil {
		return
	}
	m.reveals.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) gradingFailed(err error) {
	if m == nil {
		return
	}
	m.gradingErrors.WithLabelValues(reason(err)).Inc()
}

func (m *Metrics) connectionOpened() {
	if m == nil {
		return
	}
	m.connections.Inc()
}

func (m *Metrics) connectionClosed() {
	if m == nil {
		return
	}
	m.connections.Dec()
}

func reason(err error) string {
	switch {
	case errors.Is(err, grading.ErrNoSelection):
		return "no_selection"
	case errors.Is(err, question.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, grading.ErrKindMismatch):
		return "kind_mismatch"
	case errors.Is(err, question.ErrUnknownKind):
		return "unknown_kind"
	}
	return "other"
}

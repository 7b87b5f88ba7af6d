package quiz

import (
	"errors"
	"net/http"

	"github.com/gokatarajesh/quiz-widget/internal/grading"
	"github.com/gokatarajesh/quiz-widget/internal/question"
	"github.com/gokatarajesh/quiz-widget/internal/session"
	httperrors "github.com/gokatarajesh/quiz-widget/pkg/http/errors"
)

// classify maps service errors onto an HTTP status and error code. The
// message is safe to show to clients.
func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound, httperrors.ErrCodeSessionNotFound, "Session not found or expired"
	case errors.Is(err, session.ErrLocked):
		return http.StatusConflict, httperrors.ErrCodeSessionBusy, "Session is busy, retry shortly"
	case errors.Is(err, question.ErrUnknownKind):
		return http.StatusBadRequest, httperrors.ErrCodeUnknownKind, "Unknown question kind"
	case errors.Is(err, grading.ErrNoSelection):
		return http.StatusUnprocessableEntity, httperrors.ErrCodeNoSelection, "Please select an answer first"
	case errors.Is(err, question.ErrOutOfRange):
		return http.StatusUnprocessableEntity, httperrors.ErrCodeOutOfRange, "Selection is out of range"
	case errors.Is(err, grading.ErrKindMismatch):
		return http.StatusUnprocessableEntity, httperrors.ErrCodeKindMismatch, "Answer does not match the question kind"
	case errors.Is(err, question.ErrNoQuestions):
		return http.StatusConflict, httperrors.ErrCodeNoQuestions, "No questions available"
	case errors.Is(err, ErrHistoryDisabled):
		return http.StatusServiceUnavailable, httperrors.ErrCodeServiceUnavailable, "Attempt history is not enabled"
	}
	return http.StatusInternalServerError, httperrors.ErrCodeInternalError, "Internal server error"
}

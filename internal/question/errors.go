package question

import "errors"

var (
	ErrUnknownKind     = errors.New("unknown question kind")
	ErrOutOfRange      = errors.New("question index out of range")
	ErrNoQuestions     = errors.New("no questions for kind")
	ErrInvalidQuestion = errors.New("invalid question")
)

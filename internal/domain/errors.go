package domain

import "errors"

var (
	// ErrQuizNotFound indicates no quiz exists for the given join code.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrAttemptNotFound is returned when an attempt ID is unknown or the
	// attempt has already finished and been cleared.
	ErrAttemptNotFound = errors.New("attempt not found")
	// ErrInvalidQuiz wraps all authoring-time validation failures.
	ErrInvalidQuiz = errors.New("invalid quiz")
	// ErrCodeTaken indicates a join-code collision when saving a quiz.
	ErrCodeTaken = errors.New("quiz code already taken")
)

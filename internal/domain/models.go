package domain

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// QuestionType is a closed tag; anything outside this set scores as incorrect.
type QuestionType string

const (
	QuestionMCQ       QuestionType = "mcq"
	QuestionOpenEnded QuestionType = "open_ended"
	QuestionImageText QuestionType = "image_text"
)

// Option is a possible answer for an MCQ question. Options have no identity
// beyond their position; the option text itself is the submitted answer value.
type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Question is a single quiz item. Options is populated for MCQ questions;
// CorrectAnswerText holds a pipe-delimited set of acceptable answers for the
// free-text types. ImageURL is render-only and never inspected during scoring.
type Question struct {
	Text              string       `json:"text"`
	Type              QuestionType `json:"type"`
	Options           []Option     `json:"options,omitempty"`
	CorrectAnswerText string       `json:"correctAnswerText,omitempty"`
	ImageURL          string       `json:"imageUrl,omitempty"`
}

// Quiz is an ordered set of questions behind a shareable join code. An
// attempt takes a read-only snapshot; the quiz is never mutated mid-play.
type Quiz struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Code             string     `json:"code"`
	TimeLimitSeconds int        `json:"timeLimitSeconds"`
	Questions        []Question `json:"questions"`
	CreatedBy        string     `json:"createdBy,omitempty"`
}

// AttemptResult is produced exactly once per finished attempt and handed to
// the leaderboard store. Immutable after creation.
type AttemptResult struct {
	QuizID           string         `json:"quizId"`
	QuizCode         string         `json:"quizCode"`
	PlayerID         string         `json:"playerId"`
	PlayerName       string         `json:"playerName"`
	Score            int            `json:"score"`
	TotalQuestions   int            `json:"totalQuestions"`
	TimeTakenSeconds int            `json:"timeTakenSeconds"`
	Answers          map[int]string `json:"answers"`
	SubmittedAt      time.Time      `json:"submittedAt"`
}

// LeaderboardEntry is one completed attempt on a quiz's board. Entries are
// append-only; nothing in the service ever mutates or deletes one.
type LeaderboardEntry struct {
	QuizID           string    `json:"quizId,omitempty"`
	QuizCode         string    `json:"quizCode"`
	PlayerID         string    `json:"playerId,omitempty"`
	PlayerName       string    `json:"playerName"`
	Score            int       `json:"score"`
	TotalQuestions   int       `json:"totalQuestions"`
	TimeTakenSeconds int       `json:"timeTakenSeconds"`
	SubmittedAt      time.Time `json:"submittedAt"`
}

// EntryFromResult converts a finalized attempt into its leaderboard row.
func EntryFromResult(res AttemptResult) LeaderboardEntry {
	return LeaderboardEntry{
		QuizID:           res.QuizID,
		QuizCode:         res.QuizCode,
		PlayerID:         res.PlayerID,
		PlayerName:       res.PlayerName,
		Score:            res.Score,
		TotalQuestions:   res.TotalQuestions,
		TimeTakenSeconds: res.TimeTakenSeconds,
		SubmittedAt:      res.SubmittedAt,
	}
}

// AnswerFeedback is the transient right/wrong signal shown to the player
// after each submission, before the next question appears.
type AnswerFeedback struct {
	IsCorrect            bool   `json:"isCorrect"`
	CorrectAnswerDisplay string `json:"correctAnswer"`
}

const (
	codeLength   = 6
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// NewQuizCode returns a short upper-case join code players type in to find
// a quiz. Uniqueness is enforced by the store, not here.
func NewQuizCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}

// NormalizeCode canonicalizes user-typed join codes for lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate checks a quiz at authoring time. Play-time code assumes a valid
// quiz and scores anything it cannot evaluate as incorrect instead of failing.
func (q Quiz) Validate() error {
	if strings.TrimSpace(q.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidQuiz)
	}
	if q.TimeLimitSeconds <= 0 {
		return fmt.Errorf("%w: time limit must be positive", ErrInvalidQuiz)
	}
	if len(q.Questions) == 0 {
		return fmt.Errorf("%w: at least one question is required", ErrInvalidQuiz)
	}
	for i, question := range q.Questions {
		if err := question.validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

func (q Question) validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: question text is required", ErrInvalidQuiz)
	}
	switch q.Type {
	case QuestionMCQ:
		if len(q.Options) < 2 {
			return fmt.Errorf("%w: mcq needs at least two options", ErrInvalidQuiz)
		}
		correct := 0
		for _, opt := range q.Options {
			if strings.TrimSpace(opt.Text) == "" {
				return fmt.Errorf("%w: option text is required", ErrInvalidQuiz)
			}
			if opt.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return fmt.Errorf("%w: mcq needs exactly one correct option, has %d", ErrInvalidQuiz, correct)
		}
	case QuestionOpenEnded, QuestionImageText:
		if strings.TrimSpace(q.CorrectAnswerText) == "" {
			return fmt.Errorf("%w: accepted answer text is required", ErrInvalidQuiz)
		}
	default:
		return fmt.Errorf("%w: unknown question type %q", ErrInvalidQuiz, q.Type)
	}
	return nil
}

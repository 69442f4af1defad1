package app

import (
	"regexp"
	"strings"

	"quizzify-service/internal/domain"
)

var (
	answerPunct = regexp.MustCompile("[.,/#!$%^&*;:{}=_`~()]")
	answerSpace = regexp.MustCompile(`\s{2,}`)
)

// Normalize canonicalizes free-text answers for loose matching: lower-case,
// strip common punctuation, collapse whitespace runs, trim. It tolerates
// punctuation and spacing differences but not spelling or word order. The
// exact rule must stay stable; stored quiz data relies on it.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = answerPunct.ReplaceAllString(s, "")
	s = answerSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Evaluate decides whether answer is correct for the question. An empty
// answer is incorrect, never an error, so unanswered questions score zero.
func Evaluate(q domain.Question, answer string) bool {
	if answer == "" {
		return false
	}
	switch q.Type {
	case domain.QuestionMCQ:
		// The UI submits the option's literal text; match is case-sensitive.
		for _, opt := range q.Options {
			if opt.Text == answer {
				return opt.IsCorrect
			}
		}
		return false
	case domain.QuestionOpenEnded, domain.QuestionImageText:
		got := Normalize(answer)
		if got == "" {
			return false
		}
		for _, candidate := range strings.Split(q.CorrectAnswerText, "|") {
			if Normalize(candidate) == got {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// CorrectAnswerDisplay returns what to show the player as "the right answer"
// after they submit: the correct option's text for MCQ, the first accepted
// candidate for the free-text types.
func CorrectAnswerDisplay(q domain.Question) string {
	switch q.Type {
	case domain.QuestionMCQ:
		for _, opt := range q.Options {
			if opt.IsCorrect {
				return opt.Text
			}
		}
		return ""
	case domain.QuestionOpenEnded, domain.QuestionImageText:
		candidates := strings.Split(q.CorrectAnswerText, "|")
		return strings.TrimSpace(candidates[0])
	default:
		return ""
	}
}

// ScoreQuiz recomputes the score for a full answer set. It must agree
// exactly with the running score a session accumulates during play; the
// review screen and the live total are the same number.
func ScoreQuiz(quiz domain.Quiz, answersByIndex map[int]string) int {
	score := 0
	for i, q := range quiz.Questions {
		if Evaluate(q, answersByIndex[i]) {
			score++
		}
	}
	return score
}

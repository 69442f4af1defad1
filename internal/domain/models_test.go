package domain

import (
	"errors"
	"strings"
	"testing"
)

func validQuiz() Quiz {
	return Quiz{
		ID:               "quiz-1",
		Title:            "Sample",
		Code:             "ABC123",
		TimeLimitSeconds: 60,
		Questions: []Question{
			{
				Text: "Pick one",
				Type: QuestionMCQ,
				Options: []Option{
					{Text: "Wrong", IsCorrect: false},
					{Text: "Right", IsCorrect: true},
				},
			},
			{
				Text:              "Say it",
				Type:              QuestionOpenEnded,
				CorrectAnswerText: "answer|other answer",
			},
		},
	}
}

func TestValidateAcceptsWellFormedQuiz(t *testing.T) {
	if err := validQuiz().Validate(); err != nil {
		t.Fatalf("expected valid quiz, got %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	mutations := map[string]func(*Quiz){
		"empty title":        func(q *Quiz) { q.Title = "  " },
		"zero time limit":    func(q *Quiz) { q.TimeLimitSeconds = 0 },
		"no questions":       func(q *Quiz) { q.Questions = nil },
		"empty question":     func(q *Quiz) { q.Questions[0].Text = "" },
		"single option":      func(q *Quiz) { q.Questions[0].Options = q.Questions[0].Options[:1] },
		"no correct option":  func(q *Quiz) { q.Questions[0].Options[1].IsCorrect = false },
		"two correct":        func(q *Quiz) { q.Questions[0].Options[0].IsCorrect = true },
		"no accepted answer": func(q *Quiz) { q.Questions[1].CorrectAnswerText = " " },
		"unknown type":       func(q *Quiz) { q.Questions[1].Type = "essay" },
	}
	for name, mutate := range mutations {
		quiz := validQuiz()
		mutate(&quiz)
		if err := quiz.Validate(); !errors.Is(err, ErrInvalidQuiz) {
			t.Fatalf("%s: expected ErrInvalidQuiz, got %v", name, err)
		}
	}
}

func TestNewQuizCodeShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := NewQuizCode()
		if len(code) != 6 {
			t.Fatalf("expected 6 chars, got %q", code)
		}
		for _, r := range code {
			if !strings.ContainsRune(codeAlphabet, r) {
				t.Fatalf("code %q contains unexpected rune %q", code, r)
			}
		}
	}
}

func TestNormalizeCode(t *testing.T) {
	if got := NormalizeCode("  gxy8a2 "); got != "GXY8A2" {
		t.Fatalf("expected GXY8A2, got %q", got)
	}
}

func TestEntryFromResult(t *testing.T) {
	res := AttemptResult{
		QuizID:           "quiz-1",
		QuizCode:         "ABC123",
		PlayerID:         "p1",
		PlayerName:       "Alice",
		Score:            3,
		TotalQuestions:   5,
		TimeTakenSeconds: 42,
	}
	entry := EntryFromResult(res)
	if entry.QuizCode != res.QuizCode || entry.Score != res.Score || entry.TimeTakenSeconds != 42 {
		t.Fatalf("entry does not mirror result: %+v", entry)
	}
}

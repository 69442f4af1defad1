package app_test

import (
	"testing"

	"quizzify-service/internal/app"
	"quizzify-service/internal/domain"
)

func TestNormalizeStripsPunctuationAndSpacing(t *testing.T) {
	cases := map[string]string{
		"  The Eiffel Tower!  ":   "the eiffel tower",
		"H2O.":                    "h2o",
		"seven   (7)":             "seven 7",
		"New_York, USA":           "newyork usa",
		"plain":                   "plain",
		"#$%^&*":                  "",
		"a . b":                   "a b",
		"Mount\t\tEverest":        "mount everest",
		"  spaced   out   words ": "spaced out words",
	}
	for in, want := range cases {
		if got := app.Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"  The Eiffel Tower!  ", "a . b", "#$%", "", "already clean",
		"tabs\tand\t\tspaces", "MIXED Case; punct()",
	}
	for _, in := range inputs {
		once := app.Normalize(in)
		if twice := app.Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestEvaluateMCQ(t *testing.T) {
	q := domain.Question{
		Text: "What is 2 + 2?",
		Type: domain.QuestionMCQ,
		Options: []domain.Option{
			{Text: "3", IsCorrect: false},
			{Text: "4", IsCorrect: true},
			{Text: "5", IsCorrect: false},
		},
	}

	if !app.Evaluate(q, "4") {
		t.Fatalf("expected correct option text to evaluate true")
	}
	for _, wrong := range []string{"3", "5", "four", "", " 4"} {
		if app.Evaluate(q, wrong) {
			t.Fatalf("expected %q to evaluate false", wrong)
		}
	}
}

func TestEvaluateOpenEnded(t *testing.T) {
	q := domain.Question{
		Text:              "What is the largest planet?",
		Type:              domain.QuestionOpenEnded,
		CorrectAnswerText: "Jupiter|the planet Jupiter",
	}

	accepted := []string{"jupiter", "JUPITER!", "  Jupiter.  ", "The Planet  Jupiter"}
	for _, answer := range accepted {
		if !app.Evaluate(q, answer) {
			t.Fatalf("expected %q to be accepted", answer)
		}
	}

	rejected := []string{"", "jup", "jupiter the planet", "saturn", "planet"}
	for _, answer := range rejected {
		if app.Evaluate(q, answer) {
			t.Fatalf("expected %q to be rejected", answer)
		}
	}
}

func TestEvaluateImageTextUsesSameMatching(t *testing.T) {
	q := domain.Question{
		Text:              "Name this landmark",
		Type:              domain.QuestionImageText,
		ImageURL:          "https://example.com/tower.jpg",
		CorrectAnswerText: "Eiffel Tower",
	}
	if !app.Evaluate(q, "eiffel tower.") {
		t.Fatalf("expected normalized match for image_text question")
	}
	if app.Evaluate(q, "eiffel") {
		t.Fatalf("substring must not match")
	}
}

func TestEvaluateUnknownTypeIsIncorrect(t *testing.T) {
	q := domain.Question{Text: "?", Type: "true_false", CorrectAnswerText: "yes"}
	if app.Evaluate(q, "yes") {
		t.Fatalf("unknown question type must never score")
	}
}

func TestEvaluateMalformedQuestionNeverPanics(t *testing.T) {
	noOptions := domain.Question{Text: "broken", Type: domain.QuestionMCQ}
	if app.Evaluate(noOptions, "anything") {
		t.Fatalf("mcq without options must evaluate false")
	}
	emptyAnswers := domain.Question{Text: "broken", Type: domain.QuestionOpenEnded}
	if app.Evaluate(emptyAnswers, "anything") {
		t.Fatalf("open_ended without accepted answers must evaluate false")
	}
}

func TestScoreQuizMatchesLivePlaythrough(t *testing.T) {
	quiz := mixedQuiz(120)
	answers := map[int]string{
		0: "Google",       // correct mcq
		1: "jupiter!",     // correct open ended after normalization
		2: "Paris",        // wrong
		3: "eiffel tower", // correct image text
	}

	session := app.NewSession(quiz, "p1", "Alice")
	live := 0
	for i := 0; i < len(quiz.Questions); i++ {
		if value, ok := answers[i]; ok {
			out := session.SubmitAnswer(value)
			if !out.Accepted {
				t.Fatalf("submission %d not accepted", i)
			}
			if out.Feedback.IsCorrect {
				live++
			}
		} else {
			session.Skip()
		}
	}

	batch := app.ScoreQuiz(quiz, answers)
	if batch != live {
		t.Fatalf("batch score %d disagrees with live score %d", batch, live)
	}
	if got := session.Finalize().Score; got != batch {
		t.Fatalf("finalized score %d disagrees with batch score %d", got, batch)
	}
}

func mixedQuiz(timeLimit int) domain.Quiz {
	return domain.Quiz{
		ID:               "quiz-mixed",
		Title:            "Mixed",
		Code:             "MIXED1",
		TimeLimitSeconds: timeLimit,
		Questions: []domain.Question{
			{
				Text: "Which company developed the Gemini family of models?",
				Type: domain.QuestionMCQ,
				Options: []domain.Option{
					{Text: "Microsoft", IsCorrect: false},
					{Text: "Google", IsCorrect: true},
					{Text: "OpenAI", IsCorrect: false},
				},
			},
			{
				Text:              "What is the largest planet in our solar system?",
				Type:              domain.QuestionOpenEnded,
				CorrectAnswerText: "Jupiter|the planet Jupiter",
			},
			{
				Text:              "What is the capital of Italy?",
				Type:              domain.QuestionOpenEnded,
				CorrectAnswerText: "Rome|Roma",
			},
			{
				Text:              "Name this landmark",
				Type:              domain.QuestionImageText,
				ImageURL:          "https://example.com/tower.jpg",
				CorrectAnswerText: "Eiffel Tower",
			},
		},
	}
}

package app

import (
	"sync"
	"time"

	"quizzify-service/internal/domain"
)

// Session is the state machine for one player's run through a quiz. It owns
// the question cursor, the countdown, the recorded answers and the running
// score. Ticks and submissions arrive from independent goroutines (the
// attempt timer and the transport reader), so all state is mutex-guarded;
// whichever trigger reaches a finished session second is silently discarded.
type Session struct {
	mu        sync.Mutex
	quiz      domain.Quiz
	player    string
	playerID  string
	current   int
	answers   map[int]string
	score     int
	remaining int
	startedAt time.Time
	now       func() time.Time
	finished  bool
	result    *domain.AttemptResult
}

// SubmitOutcome reports what a submission did. Accepted is false when the
// session was already finished or the current question was already answered.
// Finished is true only for the call that drove the transition, so exactly
// one caller observes it even when a tick races the final answer.
type SubmitOutcome struct {
	Feedback domain.AnswerFeedback
	Accepted bool
	Finished bool
}

// NewSession starts an attempt at question zero with the full time budget.
func NewSession(quiz domain.Quiz, playerID, playerName string) *Session {
	return NewSessionWithClock(quiz, playerID, playerName, time.Now)
}

// NewSessionWithClock allows deterministic timestamps in tests.
func NewSessionWithClock(quiz domain.Quiz, playerID, playerName string, now func() time.Time) *Session {
	return &Session{
		quiz:      quiz,
		player:    playerName,
		playerID:  playerID,
		answers:   make(map[int]string),
		remaining: quiz.TimeLimitSeconds,
		startedAt: now(),
		now:       now,
	}
}

// CurrentQuestion returns the question under the cursor. ok is false once
// the session has finished.
func (s *Session) CurrentQuestion() (domain.Question, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished || s.current >= len(s.quiz.Questions) {
		return domain.Question{}, 0, false
	}
	return s.quiz.Questions[s.current], s.current, true
}

// SubmitAnswer records value for the current question, evaluates it, and
// advances the cursor. Answering the last question finishes the session.
// A question, once answered, cannot be re-answered.
func (s *Session) SubmitAnswer(value string) SubmitOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return SubmitOutcome{}
	}
	if _, answered := s.answers[s.current]; answered {
		return SubmitOutcome{}
	}

	question := s.quiz.Questions[s.current]
	s.answers[s.current] = value
	correct := Evaluate(question, value)
	if correct {
		s.score++
	}

	out := SubmitOutcome{
		Feedback: domain.AnswerFeedback{
			IsCorrect:            correct,
			CorrectAnswerDisplay: CorrectAnswerDisplay(question),
		},
		Accepted: true,
	}
	out.Finished = s.advanceLocked()
	return out
}

// Skip moves past the current question without recording an answer; it
// counts as incorrect at scoring time. Finishes the session on the last
// question, same as a submission.
func (s *Session) Skip() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return false
	}
	return s.advanceLocked()
}

// advanceLocked moves the cursor forward, entering Finished after the last
// question. The cursor only ever increases.
func (s *Session) advanceLocked() bool {
	if s.current >= len(s.quiz.Questions)-1 {
		s.finishLocked()
		return true
	}
	s.current++
	return false
}

// Tick consumes one second of the budget. At zero the session finishes with
// whatever answers exist; remaining questions score as unanswered. Ticks
// delivered after Finished are no-ops, tolerating late timer events.
func (s *Session) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return false
	}
	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining == 0 {
		s.finishLocked()
		return true
	}
	return false
}

func (s *Session) finishLocked() {
	if s.finished {
		return
	}
	s.finished = true

	taken := s.quiz.TimeLimitSeconds - s.remaining
	if taken < 0 {
		taken = 0
	}
	answers := make(map[int]string, len(s.answers))
	for i, v := range s.answers {
		answers[i] = v
	}
	s.result = &domain.AttemptResult{
		QuizID:           s.quiz.ID,
		QuizCode:         s.quiz.Code,
		PlayerID:         s.playerID,
		PlayerName:       s.player,
		Score:            s.score,
		TotalQuestions:   len(s.quiz.Questions),
		TimeTakenSeconds: taken,
		Answers:          answers,
		SubmittedAt:      s.now(),
	}
}

// Finalize returns the attempt result, finishing the session first if it is
// still in progress. Repeated calls return the same result.
func (s *Session) Finalize() domain.AttemptResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finishLocked()
	return *s.result
}

// Finished reports whether the terminal state has been entered.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// Remaining returns the seconds left on the countdown.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// Score returns the running score accumulated so far.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Quiz returns the read-only quiz snapshot this session plays.
func (s *Session) Quiz() domain.Quiz {
	return s.quiz
}

package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"sync"
	"time"

	"quizzify-service/internal/domain"
)

// QuizRepository loads quiz content by join code (from cache/backing store).
type QuizRepository interface {
	GetQuizByCode(ctx context.Context, code string) (domain.Quiz, error)
}

// QuizSaver persists authored quizzes. Saving an already-used join code
// returns domain.ErrCodeTaken.
type QuizSaver interface {
	SaveQuiz(ctx context.Context, quiz domain.Quiz) error
}

// AttemptRepository tracks live attempts (in-memory, Redis-marked, etc).
type AttemptRepository interface {
	Put(attempt *Attempt)
	Get(id string) (*Attempt, bool)
	Delete(id string)
}

// LeaderboardStore appends and lists completed-attempt entries per quiz.
type LeaderboardStore interface {
	Append(ctx context.Context, entry domain.LeaderboardEntry) error
	List(ctx context.Context, quizCode string) ([]domain.LeaderboardEntry, error)
}

// Attempt is one player's live run: the session plus its timer. Attempts
// are removed from the repository the moment they finish or are abandoned.
type Attempt struct {
	ID       string
	QuizCode string
	Session  *Session

	runner   *Runner
	finished chan domain.AttemptResult
}

// Finished delivers the attempt result exactly once, whichever path ended
// the attempt (final answer or timeout). Abandoned attempts never signal.
func (a *Attempt) Finished() <-chan domain.AttemptResult {
	return a.finished
}

// Runner exposes the attempt's countdown timer, mainly so callers can wait
// for it to wind down.
func (a *Attempt) Runner() *Runner {
	return a.runner
}

// QuizService contains the quiz use cases: authoring, playing, and boards.
type QuizService struct {
	quizzes      QuizRepository
	saver        QuizSaver
	attempts     AttemptRepository
	board        LeaderboardStore
	tickInterval time.Duration

	mu   sync.Mutex
	subs map[string]map[chan []domain.LeaderboardEntry]struct{}
}

func NewQuizService(quizzes QuizRepository, saver QuizSaver, attempts AttemptRepository, board LeaderboardStore) *QuizService {
	return &QuizService{
		quizzes:      quizzes,
		saver:        saver,
		attempts:     attempts,
		board:        board,
		tickInterval: time.Second,
		subs:         make(map[string]map[chan []domain.LeaderboardEntry]struct{}),
	}
}

// CreateQuiz validates a quiz, assigns a join code if none was given, and
// saves it. Code collisions are retried with fresh codes.
func (s *QuizService) CreateQuiz(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	if err := quiz.Validate(); err != nil {
		return domain.Quiz{}, err
	}
	if quiz.ID == "" {
		quiz.ID = newID()
	}

	assigned := quiz.Code == ""
	if assigned {
		quiz.Code = domain.NewQuizCode()
	} else {
		quiz.Code = domain.NormalizeCode(quiz.Code)
	}

	for attempt := 0; ; attempt++ {
		err := s.saver.SaveQuiz(ctx, quiz)
		if err == nil {
			return quiz, nil
		}
		if !assigned || !errors.Is(err, domain.ErrCodeTaken) || attempt >= 4 {
			return domain.Quiz{}, err
		}
		quiz.Code = domain.NewQuizCode()
	}
}

// GetQuizByCode looks a quiz up by its join code. Lookup is forgiving about
// case and surrounding whitespace.
func (s *QuizService) GetQuizByCode(ctx context.Context, code string) (domain.Quiz, error) {
	return s.quizzes.GetQuizByCode(ctx, domain.NormalizeCode(code))
}

// StartAttempt loads the quiz and opens a timed session for the player. The
// countdown starts immediately.
func (s *QuizService) StartAttempt(ctx context.Context, code, playerID, playerName string) (*Attempt, error) {
	quiz, err := s.quizzes.GetQuizByCode(ctx, domain.NormalizeCode(code))
	if err != nil {
		return nil, err
	}

	att := &Attempt{
		ID:       newID(),
		QuizCode: quiz.Code,
		Session:  NewSession(quiz, playerID, playerName),
		finished: make(chan domain.AttemptResult, 1),
	}
	att.runner = StartRunner(att.Session, s.tickInterval, func(res domain.AttemptResult) {
		s.finish(att, res)
	})
	s.attempts.Put(att)
	return att, nil
}

// SubmitAnswer records the player's answer for the current question and
// returns the live feedback. If this answer completed the quiz, the result
// is persisted and the attempt's Finished channel fires.
func (s *QuizService) SubmitAnswer(ctx context.Context, attemptID, value string) (domain.AnswerFeedback, bool, error) {
	att, ok := s.attempts.Get(attemptID)
	if !ok {
		return domain.AnswerFeedback{}, false, domain.ErrAttemptNotFound
	}
	out := att.Session.SubmitAnswer(value)
	if out.Finished {
		s.finish(att, att.Session.Finalize())
	}
	return out.Feedback, out.Accepted, nil
}

// Skip advances past the current question without an answer.
func (s *QuizService) Skip(ctx context.Context, attemptID string) error {
	att, ok := s.attempts.Get(attemptID)
	if !ok {
		return domain.ErrAttemptNotFound
	}
	if att.Session.Skip() {
		s.finish(att, att.Session.Finalize())
	}
	return nil
}

// Abandon drops a mid-quiz attempt: the timer stops and nothing is
// persisted. Unknown or already-finished attempts are a no-op.
func (s *QuizService) Abandon(attemptID string) {
	att, ok := s.attempts.Get(attemptID)
	if !ok {
		return
	}
	att.runner.Stop()
	s.attempts.Delete(attemptID)
}

// Leaderboard returns the ranked board for a quiz.
func (s *QuizService) Leaderboard(ctx context.Context, code string) ([]domain.LeaderboardEntry, error) {
	entries, err := s.board.List(ctx, domain.NormalizeCode(code))
	if err != nil {
		return nil, err
	}
	return Rank(entries), nil
}

// Subscribe returns a channel of ranked board snapshots for a quiz, seeded
// with the current board. The caller must invoke cancel to avoid leaks.
func (s *QuizService) Subscribe(ctx context.Context, code string) (<-chan []domain.LeaderboardEntry, func(), error) {
	code = domain.NormalizeCode(code)
	initial, err := s.Leaderboard(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan []domain.LeaderboardEntry, 8)

	s.mu.Lock()
	feed, ok := s.subs[code]
	if !ok {
		feed = make(map[chan []domain.LeaderboardEntry]struct{})
		s.subs[code] = feed
	}
	feed[ch] = struct{}{}
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if feed, ok := s.subs[code]; ok {
			if _, present := feed[ch]; present {
				delete(feed, ch)
				close(ch)
			}
			if len(feed) == 0 {
				delete(s.subs, code)
			}
		}
		s.mu.Unlock()
	}
	return ch, cancel, nil
}

// finish persists a completed attempt and notifies watchers. A failed board
// write is logged and swallowed: the player's finalized result stands
// regardless of storage outcome.
func (s *QuizService) finish(att *Attempt, res domain.AttemptResult) {
	att.runner.Stop()
	s.attempts.Delete(att.ID)

	// The runner goroutine has no request context by the time a timeout
	// lands here, so the write uses a background one.
	ctx := context.Background()
	if err := s.board.Append(ctx, domain.EntryFromResult(res)); err != nil {
		log.Printf("leaderboard write failed for quiz %s: %v", res.QuizCode, err)
	}
	s.broadcast(ctx, res.QuizCode)

	select {
	case att.finished <- res:
	default:
	}
}

func (s *QuizService) broadcast(ctx context.Context, code string) {
	ranked, err := s.Leaderboard(ctx, code)
	if err != nil {
		log.Printf("leaderboard read failed for quiz %s: %v", code, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs[code] {
		select {
		case ch <- ranked:
		default:
			// Drop the stale snapshot so a slow subscriber never blocks
			// the finishing attempt.
			select {
			case <-ch:
			default:
			}
			ch <- ranked
		}
	}
}

func newID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}

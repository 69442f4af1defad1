package memory

import (
	"context"
	"sync"

	"quizzify-service/internal/domain"
)

// LeaderboardStore keeps per-quiz boards in memory, append-only.
type LeaderboardStore struct {
	mu      sync.RWMutex
	entries map[string][]domain.LeaderboardEntry
}

func NewLeaderboardStore() *LeaderboardStore {
	return &LeaderboardStore{
		entries: make(map[string][]domain.LeaderboardEntry),
	}
}

func (s *LeaderboardStore) Append(_ context.Context, entry domain.LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.QuizCode] = append(s.entries[entry.QuizCode], entry)
	return nil
}

func (s *LeaderboardStore) List(_ context.Context, quizCode string) ([]domain.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.entries[quizCode]
	out := make([]domain.LeaderboardEntry, len(stored))
	copy(out, stored)
	return out, nil
}

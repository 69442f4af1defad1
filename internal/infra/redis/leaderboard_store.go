package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"quizzify-service/internal/domain"
)

// LeaderboardStore keeps each quiz's board as a Redis list of JSON entries,
// appended in completion order (quiz:{code}:board). Ranking happens in the
// service; the store only preserves append order.
type LeaderboardStore struct {
	client *redis.Client
}

func NewLeaderboardStore(client *redis.Client) *LeaderboardStore {
	return &LeaderboardStore{client: client}
}

func (s *LeaderboardStore) Append(ctx context.Context, entry domain.LeaderboardEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal leaderboard entry: %w", err)
	}
	if err := s.client.RPush(ctx, s.boardKey(entry.QuizCode), payload).Err(); err != nil {
		return fmt.Errorf("append leaderboard entry: %w", err)
	}
	return nil
}

func (s *LeaderboardStore) List(ctx context.Context, quizCode string) ([]domain.LeaderboardEntry, error) {
	raw, err := s.client.LRange(ctx, s.boardKey(quizCode), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list leaderboard: %w", err)
	}
	entries := make([]domain.LeaderboardEntry, 0, len(raw))
	for _, item := range raw {
		var entry domain.LeaderboardEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("unmarshal leaderboard entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *LeaderboardStore) boardKey(quizCode string) string {
	return "quiz:" + quizCode + ":board"
}

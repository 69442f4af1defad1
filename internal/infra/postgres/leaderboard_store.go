package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"quizzify-service/internal/domain"
)

// LeaderboardStore appends completed attempts to the leaderboard_entries
// table; rows are never updated or deleted.
type LeaderboardStore struct {
	pool *pgxpool.Pool
}

func NewLeaderboardStore(pool *pgxpool.Pool) *LeaderboardStore {
	return &LeaderboardStore{pool: pool}
}

func (s *LeaderboardStore) Append(ctx context.Context, entry domain.LeaderboardEntry) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO leaderboard_entries
		   (quiz_id, quiz_code, player_id, player_name, score, total_questions, time_taken_seconds, submitted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.QuizID, entry.QuizCode, entry.PlayerID, entry.PlayerName,
		entry.Score, entry.TotalQuestions, entry.TimeTakenSeconds, entry.SubmittedAt)
	if err != nil {
		return fmt.Errorf("append leaderboard entry: %w", err)
	}
	return nil
}

func (s *LeaderboardStore) List(ctx context.Context, quizCode string) ([]domain.LeaderboardEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT quiz_id, quiz_code, player_id, player_name, score, total_questions, time_taken_seconds, submitted_at
		   FROM leaderboard_entries
		  WHERE quiz_code=$1
		  ORDER BY submitted_at`,
		quizCode)
	if err != nil {
		return nil, fmt.Errorf("list leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var entry domain.LeaderboardEntry
		if err := rows.Scan(&entry.QuizID, &entry.QuizCode, &entry.PlayerID, &entry.PlayerName,
			&entry.Score, &entry.TotalQuestions, &entry.TimeTakenSeconds, &entry.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list leaderboard: %w", err)
	}
	return entries, nil
}

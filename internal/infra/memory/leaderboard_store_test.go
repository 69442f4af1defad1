package memory

import (
	"context"
	"testing"

	"quizzify-service/internal/domain"
)

func TestLeaderboardStoreAppendAndList(t *testing.T) {
	store := NewLeaderboardStore()
	ctx := context.Background()

	entries := []domain.LeaderboardEntry{
		{QuizCode: "ABC123", PlayerName: "Alice", Score: 2, TimeTakenSeconds: 30},
		{QuizCode: "ABC123", PlayerName: "Bob", Score: 1, TimeTakenSeconds: 10},
		{QuizCode: "OTHER1", PlayerName: "Carol", Score: 3, TimeTakenSeconds: 5},
	}
	for _, entry := range entries {
		if err := store.Append(ctx, entry); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	board, err := store.List(ctx, "ABC123")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(board) != 2 || board[0].PlayerName != "Alice" || board[1].PlayerName != "Bob" {
		t.Fatalf("expected append order [Alice Bob], got %+v", board)
	}

	// List hands out a copy; callers sorting it must not disturb the store.
	board[0].PlayerName = "mutated"
	again, _ := store.List(ctx, "ABC123")
	if again[0].PlayerName != "Alice" {
		t.Fatalf("stored entries were mutated through the returned slice")
	}
}

package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"

	"quizzify-service/internal/domain"
)

func TestLeaderboardStoreRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewLeaderboardStore(newClient(mr))
	ctx := context.Background()

	first := domain.LeaderboardEntry{QuizCode: "ABC123", PlayerName: "Alice", Score: 2, TotalQuestions: 3, TimeTakenSeconds: 40}
	second := domain.LeaderboardEntry{QuizCode: "ABC123", PlayerName: "Bob", Score: 3, TotalQuestions: 3, TimeTakenSeconds: 25}

	if err := store.Append(ctx, first); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append(ctx, second); err != nil {
		t.Fatalf("append: %v", err)
	}
	if !mr.Exists("quiz:ABC123:board") {
		t.Fatalf("expected board list key")
	}

	entries, err := store.List(ctx, "ABC123")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 || entries[0].PlayerName != "Alice" || entries[1].Score != 3 {
		t.Fatalf("expected entries in append order, got %+v", entries)
	}

	empty, err := store.List(ctx, "NOSUCH")
	if err != nil {
		t.Fatalf("list empty board: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty board, got %+v", empty)
	}
}

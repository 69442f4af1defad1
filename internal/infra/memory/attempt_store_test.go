package memory

import (
	"testing"

	"quizzify-service/internal/app"
)

func TestAttemptStoreLifecycle(t *testing.T) {
	store := NewAttemptStore()

	store.Put(&app.Attempt{ID: "a1", QuizCode: "ABC123"})
	if _, ok := store.Get("a1"); !ok {
		t.Fatalf("expected attempt present")
	}

	store.Delete("a1")
	if _, ok := store.Get("a1"); ok {
		t.Fatalf("expected attempt removed")
	}
}

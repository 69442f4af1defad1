package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"quizzify-service/internal/app"
	"quizzify-service/internal/domain"
)

// APIHandler serves the small JSON surface next to the websocket: quiz
// authoring and leaderboard reads.
type APIHandler struct {
	service *app.QuizService
}

func NewAPIHandler(service *app.QuizService) *APIHandler {
	return &APIHandler{service: service}
}

// CreateQuiz handles POST /quizzes: validate, assign a join code, save.
func (h *APIHandler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var quiz domain.Quiz
	if err := json.NewDecoder(r.Body).Decode(&quiz); err != nil {
		http.Error(w, "invalid quiz payload", http.StatusBadRequest)
		return
	}
	created, err := h.service.CreateQuiz(r.Context(), quiz)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidQuiz) {
			status = http.StatusBadRequest
		} else if errors.Is(err, domain.ErrCodeTaken) {
			status = http.StatusConflict
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Leaderboard handles GET /leaderboard?code=: the ranked board for a quiz.
func (h *APIHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing code", http.StatusBadRequest)
		return
	}
	entries, err := h.service.Leaderboard(r.Context(), code)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"quizzify-service/internal/app"
	"quizzify-service/internal/domain"
)

type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Value string `json:"value"`
}

type questionPayload struct {
	Index            int                 `json:"index"`
	Total            int                 `json:"total"`
	Text             string              `json:"text"`
	Type             domain.QuestionType `json:"type"`
	Options          []string            `json:"options,omitempty"`
	ImageURL         string              `json:"imageUrl,omitempty"`
	RemainingSeconds int                 `json:"remainingSeconds"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS runs one quiz attempt over a websocket: the server pushes the
// current question, the client answers or skips, and the countdown runs
// server-side. Disconnecting mid-quiz abandons the attempt without a
// leaderboard entry.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	playerID := r.URL.Query().Get("playerId")
	playerName := r.URL.Query().Get("name")
	if code == "" || playerID == "" || playerName == "" {
		http.Error(w, "missing code, playerId, or name", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	att, err := h.service.StartAttempt(r.Context(), code, playerID, playerName)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}

	updates, cancel, err := h.service.Subscribe(r.Context(), code)
	if err != nil {
		h.service.Abandon(att.ID)
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "leaderboard", Payload: update}:
				case <-closeSignals:
					return
				}
			case res := <-att.Finished():
				select {
				case send <- outboundMessage[any]{Type: "finished", Payload: res}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	h.sendCurrentQuestion(att, send)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}}
				continue
			}
			feedback, accepted, err := h.service.SubmitAnswer(r.Context(), att.ID, payload.Value)
			if errors.Is(err, domain.ErrAttemptNotFound) {
				// The timer beat this answer to the finish line; the
				// finished event is already on its way.
				continue
			}
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			if !accepted {
				continue
			}
			send <- outboundMessage[any]{Type: "feedback", Payload: feedback}
			h.sendCurrentQuestion(att, send)
		case "skip":
			if err := h.service.Skip(r.Context(), att.ID); err != nil && !errors.Is(err, domain.ErrAttemptNotFound) {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			h.sendCurrentQuestion(att, send)
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	if !att.Session.Finished() {
		h.service.Abandon(att.ID)
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}

// sendCurrentQuestion pushes the question under the cursor, if any. Option
// correctness flags never leave the server; clients get texts only.
func (h *WSHandler) sendCurrentQuestion(att *app.Attempt, send chan<- outboundMessage[any]) {
	question, index, ok := att.Session.CurrentQuestion()
	if !ok {
		return
	}
	options := make([]string, 0, len(question.Options))
	for _, opt := range question.Options {
		options = append(options, opt.Text)
	}
	send <- outboundMessage[any]{Type: "question", Payload: questionPayload{
		Index:            index,
		Total:            len(att.Session.Quiz().Questions),
		Text:             question.Text,
		Type:             question.Type,
		Options:          options,
		ImageURL:         question.ImageURL,
		RemainingSeconds: att.Session.Remaining(),
	}}
}

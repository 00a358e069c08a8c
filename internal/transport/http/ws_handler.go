package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"quiz-result-service/internal/app"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type WSHandler struct {
	service  *app.QuizService
	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, log *zap.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		log:     log,
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
	QuestionID int64 `json:"questionId"`
	AnswerID   int64 `json:"answerId"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

// ServeWS upgrades HTTP requests to websockets and lets a taker answer one question at a time.
//
// Client messages: {"type":"answer","payload":{"questionId":1,"answerId":2}} and {"type":"submit"}.
// Server messages: quiz, progress, result, error.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	quizID, err := strconv.ParseInt(r.URL.Query().Get("quizId"), 10, 64)
	takerID := r.URL.Query().Get("takerId")
	if err != nil || takerID == "" {
		http.Error(w, "missing quizId or takerId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := r.Context()
	send := func(typ string, payload any) bool {
		if err := conn.WriteJSON(outboundMessage[any]{Type: typ, Payload: payload}); err != nil {
			h.log.Debug("ws write error", zap.Error(err))
			return false
		}
		return true
	}
	sendError := func(err error) bool {
		status, body := errorStatus(err)
		if status >= http.StatusInternalServerError {
			h.log.Error("ws request failed", zap.Int64("quizId", quizID), zap.Error(err))
		}
		return send("error", body)
	}

	quiz, err := h.service.GetQuiz(ctx, quizID)
	if err != nil {
		sendError(err)
		return
	}
	if !send("quiz", quiz) {
		return
	}

	meta := visitMeta(r)
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		ok := true
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				ok = send("error", errorResponse{Error: "invalid answer payload"})
				break
			}
			progress, err := h.service.RecordAnswer(ctx, quizID, takerID, payload.QuestionID, payload.AnswerID)
			if err != nil {
				ok = sendError(err)
				break
			}
			ok = send("progress", progress)
		case "submit":
			outcome, err := h.service.SubmitSheet(ctx, quizID, takerID, meta)
			if err != nil {
				ok = sendError(err)
				break
			}
			ok = send("result", outcome)
		default:
			ok = send("error", errorResponse{Error: "unsupported message type"})
		}
		if !ok {
			return
		}
	}
}

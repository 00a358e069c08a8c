package http

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"quiz-result-service/internal/app"
	"quiz-result-service/internal/domain"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// QuizHandler serves the REST quiz endpoints.
type QuizHandler struct {
	service *app.QuizService
	log     *zap.Logger
}

func NewQuizHandler(service *app.QuizService, log *zap.Logger) *QuizHandler {
	return &QuizHandler{service: service, log: log}
}

type submitRequest struct {
	Answers domain.Selections `json:"answers"`
}

type errorResponse struct {
	Error            string  `json:"error"`
	MissingQuestions []int64 `json:"missingQuestions,omitempty"`
}

type listResponse struct {
	Quizzes []domain.QuizSummary `json:"quizzes"`
}

// ListQuizzes serves the browse listing, optionally narrowed by ?type= and ?featured=true.
func (h *QuizHandler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	filter := app.QuizFilter{Featured: r.URL.Query().Get("featured") == "true"}
	if raw := r.URL.Query().Get("type"); raw != "" {
		quizType, err := strconv.Atoi(raw)
		if err != nil || !domain.QuizType(quizType).Valid() {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid quiz type"})
			return
		}
		filter.Type = domain.QuizType(quizType)
	}
	quizzes, err := h.service.ListQuizzes(r.Context(), filter)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Quizzes: quizzes})
}

func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, ok := quizIDParam(w, r)
	if !ok {
		return
	}
	quiz, err := h.service.GetQuiz(r.Context(), quizID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	quizID, ok := quizIDParam(w, r)
	if !ok {
		return
	}
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Answers == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid submission data"})
		return
	}

	outcome, err := h.service.Submit(r.Context(), quizID, req.Answers, visitMeta(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (h *QuizHandler) Validate(w http.ResponseWriter, r *http.Request) {
	quizID, ok := quizIDParam(w, r)
	if !ok {
		return
	}
	validation, err := h.service.Validate(r.Context(), quizID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, validation)
}

func (h *QuizHandler) writeError(w http.ResponseWriter, err error) {
	status, body := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("quiz request failed", zap.Error(err))
	}
	writeJSON(w, status, body)
}

// errorStatus translates domain errors into an HTTP status and client-safe body.
func errorStatus(err error) (int, errorResponse) {
	var missing *domain.MissingQuestionsError
	switch {
	case errors.As(err, &missing):
		return http.StatusBadRequest, errorResponse{Error: domain.ErrIncompleteSubmission.Error(), MissingQuestions: missing.QuestionIDs}
	case errors.Is(err, domain.ErrQuizNotFound):
		return http.StatusNotFound, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrQuizInactive):
		return http.StatusForbidden, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrQuestionNotFound), errors.Is(err, domain.ErrAnswerNotFound):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case domain.IsConfigurationError(err):
		return http.StatusInternalServerError, errorResponse{Error: "quiz is misconfigured"}
	default:
		return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
	}
}

func quizIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	quizID, err := strconv.ParseInt(chi.URLParam(r, "quizID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid quiz id"})
		return 0, false
	}
	return quizID, true
}

// visitMeta takes the client address from the first X-Forwarded-For entry, then X-Real-IP,
// then the connection. middleware.RealIP prefers X-Real-IP, so the headers are read here directly.
func visitMeta(r *http.Request) domain.VisitMeta {
	ip := clientIP(r)
	if ip == "" {
		ip = "unknown"
	}
	agent := r.UserAgent()
	if agent == "" {
		agent = "unknown"
	}
	return domain.VisitMeta{Ref: r.Referer(), IP: ip, Agent: agent}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

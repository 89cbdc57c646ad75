package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/doughtobread/server/internal/apperror"
	"github.com/doughtobread/server/internal/auth"
	"github.com/doughtobread/server/internal/service"
)

// QuizHandler serves the module quiz and grades submissions.
type QuizHandler struct {
	quiz   *service.QuizService
	logger *slog.Logger
}

func NewQuizHandler(quiz *service.QuizService, logger *slog.Logger) *QuizHandler {
	return &QuizHandler{quiz: quiz, logger: logger}
}

// HandleQuestions returns the quiz questions. Correct answers never appear
// in the response.
//
// HTTP: GET /api/quiz (auth required)
func (h *QuizHandler) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.quiz.Questions())
}

type gradeRequest struct {
	Selections []int `json:"selections"`
}

// HandleGrade grades a full answer sheet.
//
// HTTP: POST /api/quiz/grade (auth required)
// BODY: {"selections": [0, 2, 2, 1, 2]}
func (h *QuizHandler) HandleGrade(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	var req gradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	result, err := h.quiz.Grade(r.Context(), userID, req.Selections)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

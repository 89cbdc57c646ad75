package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/doughtobread/server/internal/apperror"
	"github.com/doughtobread/server/internal/auth"
	"github.com/doughtobread/server/internal/model"
	"github.com/doughtobread/server/internal/service"
)

// PollHandler runs the one-time onboarding poll.
type PollHandler struct {
	poll   *service.PollService
	logger *slog.Logger
}

func NewPollHandler(poll *service.PollService, logger *slog.Logger) *PollHandler {
	return &PollHandler{poll: poll, logger: logger}
}

type pollStatusResponse struct {
	Completed bool                 `json:"completed"`
	Questions []model.PollQuestion `json:"questions,omitempty"`
}

// HandleGet returns the poll questions plus the caller's completion state.
// Completed users get no questions back, the poll is one-shot.
//
// HTTP: GET /api/poll (auth required)
func (h *PollHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	completed, err := h.poll.Status(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := pollStatusResponse{Completed: completed}
	if !completed {
		resp.Questions = h.poll.Questions()
	}

	writeJSON(w, http.StatusOK, resp)
}

type pollSubmitRequest struct {
	Answers []service.PollSubmission `json:"answers"`
}

// HandleSubmit records the caller's answers, exactly once.
//
// HTTP: POST /api/poll (auth required)
// BODY: {"answers": [{"optionIndex": 0}, {"optionIndex": 6, "otherText": "..."}]}
func (h *PollHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	var req pollSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	if err := h.poll.Submit(r.Context(), userID, req.Answers); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]bool{"completed": true})
}

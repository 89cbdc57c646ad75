package handler

import (
	"log/slog"
	"net/http"

	"github.com/doughtobread/server/internal/apperror"
	"github.com/doughtobread/server/internal/auth"
	"github.com/doughtobread/server/internal/model"
	"github.com/doughtobread/server/internal/service"
)

// BadgeHandler serves the profile's earned-badge list.
type BadgeHandler struct {
	badges *service.BadgeService
	logger *slog.Logger
}

func NewBadgeHandler(badges *service.BadgeService, logger *slog.Logger) *BadgeHandler {
	return &BadgeHandler{badges: badges, logger: logger}
}

// HandleList returns the caller's earned badges ordered by date earned.
//
// HTTP: GET /api/badges (auth required)
func (h *BadgeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	badges, err := h.badges.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if badges == nil {
		badges = []model.Badge{}
	}

	writeJSON(w, http.StatusOK, badges)
}

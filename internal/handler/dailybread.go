package handler

import (
	"log/slog"
	"net/http"

	"github.com/doughtobread/server/internal/auth"
	"github.com/doughtobread/server/internal/service"
)

// DailyBreadHandler serves the devotional entry of the day.
type DailyBreadHandler struct {
	daily  *service.DailyBreadService
	logger *slog.Logger
}

func NewDailyBreadHandler(daily *service.DailyBreadService, logger *slog.Logger) *DailyBreadHandler {
	return &DailyBreadHandler{daily: daily, logger: logger}
}

// HandleToday returns today's scripture entry.
//
// HTTP: GET /api/daily-bread
func (h *DailyBreadHandler) HandleToday(w http.ResponseWriter, r *http.Request) {
	entry, err := h.daily.Today()
	if err != nil {
		writeError(w, err)
		return
	}

	// Content is public; when a session is present, attribute the read.
	if userID, ok := auth.UserIDFromContext(r.Context()); ok {
		h.logger.Info("daily bread read", slog.String("userID", userID))
	}

	writeJSON(w, http.StatusOK, entry)
}

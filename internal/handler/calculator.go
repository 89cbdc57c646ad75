package handler

import (
	"log/slog"
	"net/http"

	"github.com/doughtobread/server/internal/apperror"
	"github.com/doughtobread/server/internal/auth"
	"github.com/doughtobread/server/internal/service"
)

// CalculatorHandler exposes the calculator usage counter.
type CalculatorHandler struct {
	calc   *service.CalculatorService
	logger *slog.Logger
}

func NewCalculatorHandler(calc *service.CalculatorService, logger *slog.Logger) *CalculatorHandler {
	return &CalculatorHandler{calc: calc, logger: logger}
}

// HandleUse records one calculator use and reports the resulting count,
// tier and badge outcome.
//
// HTTP: POST /api/calculator/use (auth required)
func (h *CalculatorHandler) HandleUse(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	res, err := h.calc.RecordUse(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// HandleUsage returns the caller's current calculator use count.
//
// HTTP: GET /api/calculator/usage (auth required)
func (h *CalculatorHandler) HandleUsage(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	count, err := h.calc.Usage(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"useCount": count})
}

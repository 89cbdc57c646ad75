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

// BudgetHandler exposes the budget calculator plus the durable per-user
// budget item list.
type BudgetHandler struct {
	budget *service.BudgetService
	logger *slog.Logger
}

func NewBudgetHandler(budget *service.BudgetService, logger *slog.Logger) *BudgetHandler {
	return &BudgetHandler{budget: budget, logger: logger}
}

type calculateRequest struct {
	Income   float64               `json:"income"`
	Expenses []model.BudgetExpense `json:"expenses"`
}

// HandleCalculate aggregates the submitted expense list against income.
// Nothing is persisted; the client sends the full list each time.
//
// HTTP: POST /api/budget/calculate (auth required)
func (h *BudgetHandler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	summary, err := h.budget.Calculate(req.Income, req.Expenses)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// HandlePredefined returns the default expense categories at zero, the
// starting point for a fresh budget form.
//
// HTTP: GET /api/budget/predefined (auth required)
func (h *BudgetHandler) HandlePredefined(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.budget.PredefinedExpenses())
}

type budgetItemRequest struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// HandleListItems returns the caller's saved budget items.
//
// HTTP: GET /api/budget/items (auth required)
func (h *BudgetHandler) HandleListItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	items, err := h.budget.ListItems(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []model.BudgetItem{}
	}

	writeJSON(w, http.StatusOK, items)
}

// HandleCreateItem saves a new budget item.
//
// HTTP: POST /api/budget/items (auth required)
func (h *BudgetHandler) HandleCreateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	var req budgetItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	item, err := h.budget.AddItem(r.Context(), userID, req.Category, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// HandleUpdateItem changes an item the caller owns.
//
// HTTP: PUT /api/budget/items/{id} (auth required)
func (h *BudgetHandler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	var req budgetItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	item, err := h.budget.UpdateItem(r.Context(), userID, r.PathValue("id"), req.Category, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// HandleDeleteItem removes an item the caller owns.
//
// HTTP: DELETE /api/budget/items/{id} (auth required)
func (h *BudgetHandler) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	if err := h.budget.DeleteItem(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/doughtobread/server/internal/auth"
	"github.com/doughtobread/server/internal/model"
	"github.com/doughtobread/server/internal/service"
)

// ModuleHandler serves the educational module catalog.
type ModuleHandler struct {
	modules *service.ModuleService
	logger  *slog.Logger
}

func NewModuleHandler(modules *service.ModuleService, logger *slog.Logger) *ModuleHandler {
	return &ModuleHandler{modules: modules, logger: logger}
}

// HandleList returns all modules without section content.
//
// HTTP: GET /api/modules
func (h *ModuleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	modules, err := h.modules.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if modules == nil {
		modules = []model.Module{}
	}

	writeJSON(w, http.StatusOK, modules)
}

// HandleGet returns one module with its full section tree.
//
// HTTP: GET /api/modules/{id}
func (h *ModuleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	mod, err := h.modules.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	// Content is public; when a session is present, attribute the view.
	if userID, ok := auth.UserIDFromContext(r.Context()); ok {
		h.logger.Info("module viewed",
			slog.String("moduleID", mod.ID),
			slog.String("userID", userID))
	}

	writeJSON(w, http.StatusOK, mod)
}

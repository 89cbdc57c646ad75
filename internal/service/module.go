package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/doughtobread/server/internal/apperror"
	"github.com/doughtobread/server/internal/model"
	"github.com/doughtobread/server/internal/repository"
)

// ModuleService serves the read-only educational module catalog.
type ModuleService struct {
	modules repository.ModuleRepository
	logger  *slog.Logger
}

func NewModuleService(modules repository.ModuleRepository, logger *slog.Logger) *ModuleService {
	return &ModuleService{
		modules: modules,
		logger:  logger,
	}
}

// List returns all modules without their section content.
func (s *ModuleService) List(ctx context.Context) ([]model.Module, error) {
	modules, err := s.modules.ListModules(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing modules: %w", err)
	}
	return modules, nil
}

// GetByID returns one module with its full section tree.
func (s *ModuleService) GetByID(ctx context.Context, id string) (*model.Module, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "module ID is required")
	}

	mod, err := s.modules.GetModuleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mod, nil
}

// Package service contains the business logic layer: it validates input,
// enforces the award and completion rules, and orchestrates repositories.
// Handlers stay HTTP-only; repositories stay SQL-only.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rs/xid"

	"github.com/doughtobread/server/internal/badge"
	"github.com/doughtobread/server/internal/model"
	"github.com/doughtobread/server/internal/repository"
)

// BadgeService is the badge ledger: the single write path for earned badges.
//
// Award idempotence is delegated to the repository's unique (user, name)
// constraint, so concurrent awards of the same badge resolve to exactly one
// stored record without any check-then-act in this layer.
type BadgeService struct {
	badges repository.BadgeRepository
	logger *slog.Logger
}

func NewBadgeService(badges repository.BadgeRepository, logger *slog.Logger) *BadgeService {
	return &BadgeService{
		badges: badges,
		logger: logger,
	}
}

// AwardIfEligible stores the badge described by def for the user unless a
// badge with the same name is already held. Returns true when a new badge
// was written.
func (s *BadgeService) AwardIfEligible(ctx context.Context, userID string, def badge.Definition) (bool, error) {
	b := &model.Badge{
		ID:          xid.New().String(),
		UserID:      userID,
		Name:        def.Name,
		Description: def.Description,
		Level:       def.Level,
		Type:        def.Type,
		DateEarned:  time.Now().UTC(),
	}

	awarded, err := s.badges.InsertBadgeIfAbsent(ctx, b)
	if err != nil {
		return false, fmt.Errorf("awarding badge %q: %w", def.Name, err)
	}

	if awarded {
		s.logger.Info("badge awarded",
			slog.String("userID", userID),
			slog.String("badge", def.Name),
			slog.String("level", string(def.Level)),
		)
	}

	return awarded, nil
}

// List returns the user's earned badges ordered by date earned.
func (s *BadgeService) List(ctx context.Context, userID string) ([]model.Badge, error) {
	badges, err := s.badges.ListBadges(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing badges: %w", err)
	}
	return badges, nil
}

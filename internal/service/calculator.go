package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/doughtobread/server/internal/badge"
	"github.com/doughtobread/server/internal/model"
	"github.com/doughtobread/server/internal/repository"
)

// CalculatorService tracks budgeting-calculator usage and drives the
// usage-based badge progression.
type CalculatorService struct {
	usage  repository.UsageRepository
	ledger *BadgeService
	logger *slog.Logger
}

func NewCalculatorService(usage repository.UsageRepository, ledger *BadgeService, logger *slog.Logger) *CalculatorService {
	return &CalculatorService{
		usage:  usage,
		ledger: ledger,
		logger: logger,
	}
}

// UseResult is the outcome of recording one calculator use.
type UseResult struct {
	UseCount     int              `json:"useCount"`
	Tier         model.BadgeLevel `json:"tier"`
	Badge        string           `json:"badge"`
	BadgeAwarded bool             `json:"badgeAwarded"`
}

// RecordUse bumps the user's calculator counter by one and awards the badge
// for the new count if it isn't already held. The increment is atomic in the
// repository, so two concurrent uses land on distinct counts and each award
// is evaluated against its own count.
func (s *CalculatorService) RecordUse(ctx context.Context, userID string) (*UseResult, error) {
	count, err := s.usage.IncrementUsage(ctx, userID, model.FeatureCalculator)
	if err != nil {
		return nil, fmt.Errorf("incrementing calculator usage: %w", err)
	}

	def := badge.ForCalculatorUse(count)
	awarded, err := s.ledger.AwardIfEligible(ctx, userID, def)
	if err != nil {
		return nil, err
	}

	s.logger.Info("calculator used",
		slog.String("userID", userID),
		slog.Int("useCount", count),
		slog.Bool("badgeAwarded", awarded),
	)

	return &UseResult{
		UseCount:     count,
		Tier:         def.Level,
		Badge:        def.Name,
		BadgeAwarded: awarded,
	}, nil
}

// Usage returns the user's current calculator use count; 0 if never used.
func (s *CalculatorService) Usage(ctx context.Context, userID string) (int, error) {
	count, err := s.usage.UsageCount(ctx, userID, model.FeatureCalculator)
	if err != nil {
		return 0, fmt.Errorf("reading calculator usage: %w", err)
	}
	return count, nil
}

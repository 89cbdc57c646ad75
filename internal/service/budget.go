package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/doughtobread/server/internal/apperror"
	"github.com/doughtobread/server/internal/model"
	"github.com/doughtobread/server/internal/repository"
)

// Budget status labels and the margin below which income counts as "near".
const (
	StatusOverBudget = "over budget"
	StatusNearLimit  = "near limit"
	StatusOnTrack    = "on track"

	nearLimitMargin = 100
)

// predefinedCategories is the default expense list a new budget starts with,
// all at zero. Clients may add arbitrary extra entries on top.
var predefinedCategories = []string{
	"Housing",
	"Utilities",
	"Food",
	"Transportation",
	"Clothing",
	"Medical",
	"Charity",
}

// BudgetService holds the budget calculation rules plus the durable per-user
// budget item list.
type BudgetService struct {
	items  repository.BudgetItemRepository
	logger *slog.Logger
}

func NewBudgetService(items repository.BudgetItemRepository, logger *slog.Logger) *BudgetService {
	return &BudgetService{
		items:  items,
		logger: logger,
	}
}

// PredefinedExpenses returns the default expense rows, each at zero.
func (s *BudgetService) PredefinedExpenses() []model.BudgetExpense {
	out := make([]model.BudgetExpense, len(predefinedCategories))
	for i, c := range predefinedCategories {
		out[i] = model.BudgetExpense{Category: c}
	}
	return out
}

// Calculate aggregates expenses against a monthly income.
//
// Amounts are signed: a negative entry (a refund, a reimbursement) reduces
// the total. Total sums every entry, duplicate labels included. Breakdown
// keeps the last amount seen per label. Status classifies the result only
// when income is positive: spending above income is "over budget", a
// remainder under the margin is "near limit", anything else is "on track".
func (s *BudgetService) Calculate(income float64, expenses []model.BudgetExpense) (*model.BudgetSummary, error) {
	for i, e := range expenses {
		if math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) {
			return nil, apperror.ValidationFailed("expenses",
				fmt.Sprintf("expense %d has a non-finite amount", i))
		}
	}

	summary := &model.BudgetSummary{
		Breakdown: make(map[string]float64, len(expenses)),
	}
	for _, e := range expenses {
		summary.Total += e.Amount
		summary.Breakdown[e.Category] = e.Amount
	}

	if income > 0 {
		switch {
		case summary.Total > income:
			summary.Status = StatusOverBudget
		case income-summary.Total < nearLimitMargin:
			summary.Status = StatusNearLimit
		default:
			summary.Status = StatusOnTrack
		}
	}

	return summary, nil
}

// AddItem validates and stores a new durable budget item for the user.
func (s *BudgetService) AddItem(ctx context.Context, userID, category string, amount float64) (*model.BudgetItem, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperror.ValidationFailed("category", "category is required")
	}
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, apperror.ValidationFailed("amount", "amount must be a non-negative number")
	}

	now := time.Now().UTC()
	item := &model.BudgetItem{
		ID:        xid.New().String(),
		UserID:    userID,
		Category:  category,
		Amount:    amount,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.items.CreateBudgetItem(ctx, item); err != nil {
		return nil, fmt.Errorf("creating budget item: %w", err)
	}

	s.logger.Info("budget item created",
		slog.String("userID", userID),
		slog.String("itemID", item.ID),
	)

	return item, nil
}

// ListItems returns the user's durable budget items.
func (s *BudgetService) ListItems(ctx context.Context, userID string) ([]model.BudgetItem, error) {
	items, err := s.items.ListBudgetItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing budget items: %w", err)
	}
	return items, nil
}

// UpdateItem changes the category and amount of an item owned by the user.
func (s *BudgetService) UpdateItem(ctx context.Context, userID, id, category string, amount float64) (*model.BudgetItem, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperror.ValidationFailed("category", "category is required")
	}
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, apperror.ValidationFailed("amount", "amount must be a non-negative number")
	}

	item := &model.BudgetItem{
		ID:        id,
		UserID:    userID,
		Category:  category,
		Amount:    amount,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.items.UpdateBudgetItem(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// DeleteItem removes an item owned by the user.
func (s *BudgetService) DeleteItem(ctx context.Context, userID, id string) error {
	if err := s.items.DeleteBudgetItem(ctx, userID, id); err != nil {
		return err
	}
	s.logger.Info("budget item deleted",
		slog.String("userID", userID),
		slog.String("itemID", id),
	)
	return nil
}

// Package repository defines the storage interfaces consumed by the service
// layer. The sqlite subpackage provides the concrete implementation; tests
// substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/doughtobread/server/internal/model"
)

// UserRepository manages user accounts and their onboarding state.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	// UpsertGoogle inserts or updates a user keyed by their Google subject ID,
	// preserving the internal ID on update. Fills in user.ID either way.
	UpsertGoogleUser(ctx context.Context, user *model.User) error
}

// BadgeRepository stores earned badges. The (user, name) pair is unique;
// InsertIfAbsent is the only write path, so the duplicate-award race is
// closed at the storage layer rather than by check-then-act in the caller.
type BadgeRepository interface {
	// InsertIfAbsent writes the badge unless the user already holds one with
	// the same name. Returns true when a new record was stored.
	InsertBadgeIfAbsent(ctx context.Context, b *model.Badge) (bool, error)
	ListBadges(ctx context.Context, userID string) ([]model.Badge, error)
}

// UsageRepository tracks per-user, per-feature usage counters.
type UsageRepository interface {
	// Increment atomically bumps the counter by one and returns the new
	// count. An absent counter increments to 1.
	IncrementUsage(ctx context.Context, userID, feature string) (int, error)
	// Count returns the current counter value; absent counters read as 0.
	UsageCount(ctx context.Context, userID, feature string) (int, error)
}

// PollRepository stores submitted onboarding poll answers.
type PollRepository interface {
	// SubmitPoll flips has_completed_poll exactly once and stores the answer
	// set atomically with the flip: on any failure neither change persists.
	// Returns apperror.ErrConflict if the poll was already completed and
	// apperror.ErrNotFound if the user does not exist.
	SubmitPoll(ctx context.Context, userID string, answers []model.PollAnswer) error
	ListPollAnswers(ctx context.Context, userID string) ([]model.PollAnswer, error)
}

// BudgetItemRepository manages the durable per-user budget item list.
type BudgetItemRepository interface {
	CreateBudgetItem(ctx context.Context, item *model.BudgetItem) error
	ListBudgetItems(ctx context.Context, userID string) ([]model.BudgetItem, error)
	// Update modifies category and amount of an item owned by the given
	// user; returns apperror.ErrNotFound when no such item exists.
	UpdateBudgetItem(ctx context.Context, item *model.BudgetItem) error
	DeleteBudgetItem(ctx context.Context, userID, id string) error
}

// ModuleRepository reads educational modules. Module content is seeded at
// migration time and never written by the app.
type ModuleRepository interface {
	ListModules(ctx context.Context) ([]model.Module, error)
	GetModuleByID(ctx context.Context, id string) (*model.Module, error)
}

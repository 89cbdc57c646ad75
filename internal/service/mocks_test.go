package service

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/doughtobread/server/internal/apperror"
	"github.com/doughtobread/server/internal/model"
)

// Hand-written in-memory mocks for the repository interfaces. Each stores a
// copy of what it is given so tests can't be polluted through shared
// pointers, and returns the same apperror kinds the sqlite layer does.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type mockBadgeRepo struct {
	mu     sync.Mutex
	badges []model.Badge
	err    error // when set, every call fails with this error
}

func (m *mockBadgeRepo) InsertBadgeIfAbsent(_ context.Context, b *model.Badge) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	for _, held := range m.badges {
		if held.UserID == b.UserID && held.Name == b.Name {
			return false, nil
		}
	}
	m.badges = append(m.badges, *b)
	return true, nil
}

func (m *mockBadgeRepo) ListBadges(_ context.Context, userID string) ([]model.Badge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []model.Badge
	for _, b := range m.badges {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

type mockUsageRepo struct {
	mu     sync.Mutex
	counts map[string]int // key: userID + "/" + feature
	err    error
}

func newMockUsageRepo() *mockUsageRepo {
	return &mockUsageRepo{counts: make(map[string]int)}
}

func (m *mockUsageRepo) IncrementUsage(_ context.Context, userID, feature string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	key := userID + "/" + feature
	m.counts[key]++
	return m.counts[key], nil
}

func (m *mockUsageRepo) UsageCount(_ context.Context, userID, feature string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	return m.counts[userID+"/"+feature], nil
}

type mockUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User // by internal ID
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email != "" && u.Email == user.Email {
			return apperror.Conflict("email already registered")
		}
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	out := *u
	return &out, nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (m *mockUserRepo) UpsertGoogleUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.GoogleID == user.GoogleID {
			u.Email = user.Email
			u.DisplayName = user.DisplayName
			u.UpdatedAt = time.Now().UTC()
			*user = *u
			return nil
		}
	}
	user.ID = "mock-" + user.GoogleID
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

// mockPollRepo mirrors the real repository's all-or-nothing submit: the
// completion flag on the user record and the answer rows change together,
// and an injected err leaves both untouched.
type mockPollRepo struct {
	mu      sync.Mutex
	users   *mockUserRepo
	answers []model.PollAnswer
	err     error
}

func (m *mockPollRepo) SubmitPoll(_ context.Context, userID string, answers []model.PollAnswer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}

	m.users.mu.Lock()
	defer m.users.mu.Unlock()
	u, ok := m.users.users[userID]
	if !ok {
		return apperror.NotFound("user", userID)
	}
	if u.HasCompletedPoll {
		return apperror.Conflict("poll already submitted")
	}
	now := time.Now().UTC()
	u.HasCompletedPoll = true
	u.PollCompletedAt = &now

	m.answers = append(m.answers, answers...)
	return nil
}

func (m *mockPollRepo) ListPollAnswers(_ context.Context, userID string) ([]model.PollAnswer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.PollAnswer
	for _, a := range m.answers {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type mockBudgetItemRepo struct {
	mu    sync.Mutex
	items map[string]*model.BudgetItem
}

func newMockBudgetItemRepo() *mockBudgetItemRepo {
	return &mockBudgetItemRepo{items: make(map[string]*model.BudgetItem)}
}

func (m *mockBudgetItemRepo) CreateBudgetItem(_ context.Context, item *model.BudgetItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *item
	m.items[item.ID] = &stored
	return nil
}

func (m *mockBudgetItemRepo) ListBudgetItems(_ context.Context, userID string) ([]model.BudgetItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.BudgetItem
	for _, it := range m.items {
		if it.UserID == userID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (m *mockBudgetItemRepo) UpdateBudgetItem(_ context.Context, item *model.BudgetItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.items[item.ID]
	if !ok || stored.UserID != item.UserID {
		return apperror.NotFound("budget item", item.ID)
	}
	stored.Category = item.Category
	stored.Amount = item.Amount
	stored.UpdatedAt = item.UpdatedAt
	return nil
}

func (m *mockBudgetItemRepo) DeleteBudgetItem(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.items[id]
	if !ok || stored.UserID != userID {
		return apperror.NotFound("budget item", id)
	}
	delete(m.items, id)
	return nil
}

type mockModuleRepo struct {
	modules []model.Module
}

func (m *mockModuleRepo) ListModules(_ context.Context) ([]model.Module, error) {
	out := make([]model.Module, len(m.modules))
	for i, mod := range m.modules {
		out[i] = model.Module{ID: mod.ID, Name: mod.Name, Description: mod.Description}
	}
	return out, nil
}

func (m *mockModuleRepo) GetModuleByID(_ context.Context, id string) (*model.Module, error) {
	for _, mod := range m.modules {
		if mod.ID == id {
			out := mod
			return &out, nil
		}
	}
	return nil, apperror.NotFound("module", id)
}

func newTestBadgeService(t *testing.T) (*BadgeService, *mockBadgeRepo) {
	t.Helper()
	repo := &mockBadgeRepo{}
	return NewBadgeService(repo, testLogger()), repo
}

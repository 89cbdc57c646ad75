package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/xid"

	"github.com/doughtobread/server/internal/model"
)

// newTestDB opens a throwaway file-backed database. A file (not ":memory:")
// because the sql.DB pool may open extra connections, and every in-memory
// connection is its own empty database.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser inserts a user so foreign keys on user_id are satisfied.
func createTestUser(t *testing.T, db *DB, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, PasswordHash: "x", DisplayName: "Test User"}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func testBadge(userID, name string) *model.Badge {
	return &model.Badge{
		ID:          xid.New().String(),
		UserID:      userID,
		Name:        name,
		Description: "test badge",
		Level:       model.LevelBeginner,
		Type:        model.TypeCalculators,
		DateEarned:  time.Now(),
	}
}

func TestInsertBadgeIfAbsent_NewBadge(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "badge@example.com")

	inserted, err := db.InsertBadgeIfAbsent(context.Background(), testBadge(user.ID, "Calculator Novice"))
	if err != nil {
		t.Fatalf("InsertBadgeIfAbsent() error = %v", err)
	}
	if !inserted {
		t.Error("InsertBadgeIfAbsent() = false, want true for a new badge")
	}
}

func TestInsertBadgeIfAbsent_DuplicateName(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "badge@example.com")
	ctx := context.Background()

	if _, err := db.InsertBadgeIfAbsent(ctx, testBadge(user.ID, "Quiz Master")); err != nil {
		t.Fatalf("first InsertBadgeIfAbsent() error = %v", err)
	}

	// Same name, different ID — must not produce a second row.
	inserted, err := db.InsertBadgeIfAbsent(ctx, testBadge(user.ID, "Quiz Master"))
	if err != nil {
		t.Fatalf("second InsertBadgeIfAbsent() error = %v", err)
	}
	if inserted {
		t.Error("InsertBadgeIfAbsent() = true for a duplicate name, want false")
	}

	badges, err := db.ListBadges(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListBadges() error = %v", err)
	}
	if len(badges) != 1 {
		t.Errorf("stored %d badges with the same name, want exactly 1", len(badges))
	}
}

func TestInsertBadgeIfAbsent_DifferentUsersSameName(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	ctx := context.Background()

	for _, userID := range []string{alice.ID, bob.ID} {
		inserted, err := db.InsertBadgeIfAbsent(ctx, testBadge(userID, "Quiz Master"))
		if err != nil {
			t.Fatalf("InsertBadgeIfAbsent() error = %v", err)
		}
		if !inserted {
			t.Errorf("InsertBadgeIfAbsent() = false for user %s, want true", userID)
		}
	}
}

// Concurrent awards of the same badge name must collapse into exactly one
// stored row, with exactly one caller told it performed the insert.
func TestInsertBadgeIfAbsent_ConcurrentAwards(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "race@example.com")
	ctx := context.Background()

	const attempts = 8
	var wg sync.WaitGroup
	results := make(chan bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inserted, err := db.InsertBadgeIfAbsent(ctx, testBadge(user.ID, "Quiz Master"))
			if err != nil {
				t.Errorf("InsertBadgeIfAbsent() error = %v", err)
				return
			}
			results <- inserted
		}()
	}
	wg.Wait()
	close(results)

	insertedCount := 0
	for inserted := range results {
		if inserted {
			insertedCount++
		}
	}
	if insertedCount != 1 {
		t.Errorf("%d concurrent awards reported inserted, want exactly 1", insertedCount)
	}

	badges, err := db.ListBadges(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListBadges() error = %v", err)
	}
	if len(badges) != 1 {
		t.Errorf("stored %d badges after concurrent awards, want exactly 1", len(badges))
	}
}

func TestListByUser_Empty(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "empty@example.com")

	badges, err := db.ListBadges(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListBadges() error = %v", err)
	}
	if len(badges) != 0 {
		t.Errorf("ListBadges() returned %d badges for a fresh user, want 0", len(badges))
	}
}

func TestListByUser_OrderedByDateEarned(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "order@example.com")
	ctx := context.Background()

	older := testBadge(user.ID, "Calculator Novice")
	older.DateEarned = time.Now().Add(-time.Hour)
	newer := testBadge(user.ID, "Calculator Intermediate")

	// Insert newest first to prove ordering comes from the query.
	if _, err := db.InsertBadgeIfAbsent(ctx, newer); err != nil {
		t.Fatalf("InsertBadgeIfAbsent() error = %v", err)
	}
	if _, err := db.InsertBadgeIfAbsent(ctx, older); err != nil {
		t.Fatalf("InsertBadgeIfAbsent() error = %v", err)
	}

	badges, err := db.ListBadges(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListBadges() error = %v", err)
	}
	if len(badges) != 2 {
		t.Fatalf("ListBadges() returned %d badges, want 2", len(badges))
	}
	if badges[0].Name != "Calculator Novice" {
		t.Errorf("first badge = %q, want the oldest one", badges[0].Name)
	}
}

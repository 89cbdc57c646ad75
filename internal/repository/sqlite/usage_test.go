package sqlite

import (
	"context"
	"sync"
	"testing"

	"github.com/doughtobread/server/internal/model"
)

func TestIncrementUsage_FromAbsent(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "counter@example.com")

	count, err := db.IncrementUsage(context.Background(), user.ID, model.FeatureCalculator)
	if err != nil {
		t.Fatalf("IncrementUsage() error = %v", err)
	}
	if count != 1 {
		t.Errorf("first IncrementUsage() = %d, want 1", count)
	}
}

func TestIncrementUsage_Sequential(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "counter@example.com")
	ctx := context.Background()

	for want := 1; want <= 5; want++ {
		count, err := db.IncrementUsage(ctx, user.ID, model.FeatureCalculator)
		if err != nil {
			t.Fatalf("IncrementUsage() error = %v", err)
		}
		if count != want {
			t.Errorf("IncrementUsage() = %d, want %d", count, want)
		}
	}
}

func TestIncrementUsage_FeaturesIndependent(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "counter@example.com")
	ctx := context.Background()

	if _, err := db.IncrementUsage(ctx, user.ID, model.FeatureCalculator); err != nil {
		t.Fatalf("IncrementUsage() error = %v", err)
	}
	count, err := db.IncrementUsage(ctx, user.ID, "modules")
	if err != nil {
		t.Fatalf("IncrementUsage() error = %v", err)
	}
	if count != 1 {
		t.Errorf("IncrementUsage() for a second feature = %d, want independent count 1", count)
	}
}

// Concurrent increments must not lose updates: n concurrent calls land the
// counter on exactly n.
func TestIncrementUsage_Concurrent(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "race@example.com")
	ctx := context.Background()

	const n = 10
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := db.IncrementUsage(ctx, user.ID, model.FeatureCalculator); err != nil {
				t.Errorf("IncrementUsage() error = %v", err)
			}
		}()
	}
	wg.Wait()

	count, err := db.UsageCount(ctx, user.ID, model.FeatureCalculator)
	if err != nil {
		t.Fatalf("UsageCount() error = %v", err)
	}
	if count != n {
		t.Errorf("UsageCount() = %d after %d concurrent increments, want %d", count, n, n)
	}
}

func TestUsageCount_Absent(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "counter@example.com")

	count, err := db.UsageCount(context.Background(), user.ID, model.FeatureCalculator)
	if err != nil {
		t.Fatalf("UsageCount() error = %v", err)
	}
	if count != 0 {
		t.Errorf("UsageCount() = %d for an absent counter, want 0", count)
	}
}

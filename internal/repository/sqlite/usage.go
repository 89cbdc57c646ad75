package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doughtobread/server/internal/repository"
)

// compile-time check that *DB implements repository.UsageRepository
var _ repository.UsageRepository = (*DB)(nil)

// IncrementUsage bumps the (user, feature) counter by one and returns the new
// count. The upsert-with-RETURNING form makes the read-modify-write a single
// statement, so concurrent increments can't both observe the same stale
// count and lose an update.
func (db *DB) IncrementUsage(ctx context.Context, userID, feature string) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO feature_usage (user_id, feature, use_count, updated_at)
		 VALUES (?, ?, 1, ?)
		 ON CONFLICT(user_id, feature) DO UPDATE SET
			use_count  = use_count + 1,
			updated_at = excluded.updated_at
		 RETURNING use_count`,
		userID, feature, time.Now(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: incrementing %s usage for %s: %w", feature, userID, err)
	}

	return count, nil
}

// UsageCount returns the current counter value; an absent counter reads as 0.
func (db *DB) UsageCount(ctx context.Context, userID, feature string) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT use_count FROM feature_usage WHERE user_id = ? AND feature = ?`,
		userID, feature,
	).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("sqlite: reading %s usage for %s: %w", feature, userID, err)
	}

	return count, nil
}

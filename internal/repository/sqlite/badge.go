package sqlite

import (
	"context"
	"fmt"

	"github.com/doughtobread/server/internal/model"
	"github.com/doughtobread/server/internal/repository"
)

// compile-time check that *DB implements repository.BadgeRepository
var _ repository.BadgeRepository = (*DB)(nil)

// InsertBadgeIfAbsent writes the badge unless the user already holds one with the
// same name.
//
// ON CONFLICT DO NOTHING against the UNIQUE(user_id, name) index is the
// whole award decision: there is no separate existence check, so two
// concurrent awards of the same badge name produce exactly one row. The
// caller learns whether this call created the row from the return value.
func (db *DB) InsertBadgeIfAbsent(ctx context.Context, b *model.Badge) (bool, error) {
	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO badges (id, user_id, name, description, level, type, date_earned)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, name) DO NOTHING`,
		b.ID,
		b.UserID,
		b.Name,
		b.Description,
		string(b.Level),
		string(b.Type),
		b.DateEarned,
	)
	if err != nil {
		return false, fmt.Errorf("sqlite: inserting badge %q for %s: %w", b.Name, b.UserID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	return affected > 0, nil
}

// ListBadges returns all badges earned by the user, oldest first.
func (db *DB) ListBadges(ctx context.Context, userID string) ([]model.Badge, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, name, description, level, type, date_earned
		 FROM badges
		 WHERE user_id = ?
		 ORDER BY date_earned ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing badges for %s: %w", userID, err)
	}
	defer rows.Close()

	badges := make([]model.Badge, 0, 8)
	for rows.Next() {
		var b model.Badge
		var level, typ string
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.Name, &b.Description, &level, &typ, &b.DateEarned,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning badge row: %w", err)
		}
		b.Level = model.BadgeLevel(level)
		b.Type = model.BadgeType(typ)
		badges = append(badges, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating badges: %w", err)
	}

	return badges, nil
}

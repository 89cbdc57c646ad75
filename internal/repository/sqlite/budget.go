package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/doughtobread/server/internal/apperror"
	"github.com/doughtobread/server/internal/model"
	"github.com/doughtobread/server/internal/repository"
)

// compile-time check that *DB implements repository.BudgetItemRepository
var _ repository.BudgetItemRepository = (*DB)(nil)

// CreateBudgetItem inserts a new budget item for the owning user.
func (db *DB) CreateBudgetItem(ctx context.Context, item *model.BudgetItem) error {
	item.ID = xid.New().String()
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO budget_items (id, user_id, category, amount, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.UserID,
		item.Category,
		item.Amount,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting budget item: %w", err)
	}

	return nil
}

// ListBudgetItems returns the user's budget items, oldest first.
func (db *DB) ListBudgetItems(ctx context.Context, userID string) ([]model.BudgetItem, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, category, amount, created_at, updated_at
		 FROM budget_items
		 WHERE user_id = ?
		 ORDER BY created_at ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing budget items for %s: %w", userID, err)
	}
	defer rows.Close()

	items := make([]model.BudgetItem, 0, 8)
	for rows.Next() {
		var it model.BudgetItem
		if err := rows.Scan(
			&it.ID, &it.UserID, &it.Category, &it.Amount, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning budget item row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating budget items: %w", err)
	}

	return items, nil
}

// UpdateBudgetItem modifies category and amount of an item owned by item.UserID.
// The user_id in the WHERE clause keeps one user from editing another's rows.
func (db *DB) UpdateBudgetItem(ctx context.Context, item *model.BudgetItem) error {
	item.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE budget_items
		 SET category = ?, amount = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		item.Category,
		item.Amount,
		item.UpdatedAt,
		item.ID,
		item.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating budget item %s: %w", item.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("budget item", item.ID)
	}

	return nil
}

// DeleteBudgetItem removes a budget item owned by the given user.
func (db *DB) DeleteBudgetItem(ctx context.Context, userID, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM budget_items WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting budget item %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("budget item", id)
	}

	return nil
}

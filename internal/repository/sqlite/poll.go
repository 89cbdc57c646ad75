package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/doughtobread/server/internal/apperror"
	"github.com/doughtobread/server/internal/model"
	"github.com/doughtobread/server/internal/repository"
)

// compile-time check that *DB implements repository.PollRepository
var _ repository.PollRepository = (*DB)(nil)

// SubmitPoll claims the user's one-shot completion flag and writes the full
// answer set in a single transaction: either the flag flips and every answer
// lands, or nothing changes. The conditional WHERE clause makes a
// resubmission lose the race at the database rather than in application code.
func (db *DB) SubmitPoll(ctx context.Context, userID string, answers []model.PollAnswer) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning poll transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	result, err := tx.ExecContext(ctx,
		`UPDATE users
		 SET has_completed_poll = 1, poll_completed_at = ?, updated_at = ?
		 WHERE id = ? AND has_completed_poll = 0`,
		now, now, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: marking poll completed for %s: %w", userID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		// Either the user doesn't exist or the poll was already submitted.
		var done bool
		err := tx.QueryRowContext(ctx,
			`SELECT has_completed_poll FROM users WHERE id = ?`, userID,
		).Scan(&done)
		if err == sql.ErrNoRows {
			return apperror.NotFound("user", userID)
		}
		if err != nil {
			return fmt.Errorf("sqlite: checking poll state for %s: %w", userID, err)
		}
		return apperror.Conflict("poll already submitted")
	}

	for i := range answers {
		answers[i].ID = xid.New().String()
		answers[i].UserID = userID
		answers[i].CreatedAt = now

		_, err := tx.ExecContext(ctx,
			`INSERT INTO poll_answers (id, user_id, question, answer, other_text, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			answers[i].ID,
			answers[i].UserID,
			answers[i].Question,
			answers[i].Answer,
			answers[i].OtherText,
			answers[i].CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("sqlite: inserting poll answer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing poll answers: %w", err)
	}
	return nil
}

// ListPollAnswers returns a user's submitted poll answers in submission order.
func (db *DB) ListPollAnswers(ctx context.Context, userID string) ([]model.PollAnswer, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, question, answer, other_text, created_at
		 FROM poll_answers
		 WHERE user_id = ?
		 ORDER BY id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing poll answers for %s: %w", userID, err)
	}
	defer rows.Close()

	answers := make([]model.PollAnswer, 0, 8)
	for rows.Next() {
		var a model.PollAnswer
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Question, &a.Answer, &a.OtherText, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning poll answer row: %w", err)
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating poll answers: %w", err)
	}

	return answers, nil
}

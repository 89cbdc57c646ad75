package model

import "time"

// BudgetExpense is one labeled amount in a budget calculation.
// Expenses are session-scoped input — the client sends the full list with
// every calculate request and nothing here is persisted.
type BudgetExpense struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// BudgetSummary is the result of aggregating a list of expenses against
// a monthly income.
//
// Breakdown maps category label to amount. When two expenses share a label
// the Breakdown entry holds the last one in input order; Total still sums
// every entry regardless of label collisions.
type BudgetSummary struct {
	Total     float64            `json:"total"`
	Breakdown map[string]float64 `json:"breakdown"`
	Status    string             `json:"status,omitempty"` // empty when income is not positive
}

// BudgetItem is a durable, per-user budget entry — the persisted cousin of
// BudgetExpense, kept across sessions and edited through its own CRUD surface.
type BudgetItem struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"-" db:"user_id"`
	Category  string    `json:"category" db:"category"`
	Amount    float64   `json:"amount" db:"amount"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

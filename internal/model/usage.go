package model

import "time"

// FeatureUsage is a per-user, per-feature monotonic counter. Each qualifying
// user action bumps UseCount by exactly one.
type FeatureUsage struct {
	UserID    string    `json:"-" db:"user_id"`
	Feature   string    `json:"feature" db:"feature"`
	UseCount  int       `json:"useCount" db:"use_count"`
	UpdatedAt time.Time `json:"-" db:"updated_at"`
}

// FeatureCalculator is the usage key for the budgeting calculator — the one
// feature currently driving usage-based badges.
const FeatureCalculator = "calculator"

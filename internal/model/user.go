package model

import "time"

// User represents a registered account.
//
// Two sign-in paths exist: email/password (PasswordHash set, GoogleID empty)
// and Google OAuth (GoogleID set, PasswordHash empty). The internal xid is
// the primary key either way, so records are never tied to the identity
// provider's numbering scheme.
type User struct {
	ID           string `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"` // empty for OAuth-only accounts
	GoogleID     string `json:"-" db:"google_id"`     // Google's "sub" claim, empty for password accounts
	DisplayName  string `json:"displayName" db:"display_name"`

	// Onboarding poll state. HasCompletedPoll flips to true exactly once,
	// when the poll is submitted; PollCompletedAt records when.
	HasCompletedPoll bool       `json:"hasCompletedPoll" db:"has_completed_poll"`
	PollCompletedAt  *time.Time `json:"pollCompletedAt,omitempty" db:"poll_completed_at"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

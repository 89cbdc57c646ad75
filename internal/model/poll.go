package model

import "time"

// PollOption is one selectable choice in an onboarding poll question.
// When IsOther is true the client supplies free text alongside the selection.
type PollOption struct {
	Text    string `json:"text"`
	IsOther bool   `json:"isOther,omitempty"`
}

// PollQuestion is a single onboarding poll question with its fixed options.
type PollQuestion struct {
	Text    string       `json:"text"`
	Options []PollOption `json:"options"`
}

// PollAnswer records one submitted answer. Answers are written once on poll
// submission and never mutated afterwards.
type PollAnswer struct {
	ID        string    `json:"-" db:"id"`
	UserID    string    `json:"-" db:"user_id"`
	Question  string    `json:"question" db:"question"`
	Answer    string    `json:"answer" db:"answer"`
	OtherText string    `json:"otherText,omitempty" db:"other_text"`
	CreatedAt time.Time `json:"-" db:"created_at"`
}

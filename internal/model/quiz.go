package model

// QuizQuestion is a single-choice question in the module quiz.
//
// CorrectIndex is never serialized to clients; the answer key stays on the
// server and grading happens in the quiz service.
type QuizQuestion struct {
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"-"`
}

// QuizResult is the outcome of grading one full set of selections.
// Completed is strict: every question must be answered correctly —
// partial credit never marks the quiz complete.
type QuizResult struct {
	CorrectCount int  `json:"correctCount"`
	Total        int  `json:"total"`
	Completed    bool `json:"completed"`
	BadgeAwarded bool `json:"badgeAwarded"`
}

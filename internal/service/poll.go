package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/doughtobread/server/internal/apperror"
	"github.com/doughtobread/server/internal/model"
	"github.com/doughtobread/server/internal/repository"
)

// pollQuestions is the fixed onboarding poll. Every question carries an
// "Other" option that requires free text when selected.
var pollQuestions = []model.PollQuestion{
	{
		Text: "What are your financial goals?",
		Options: []model.PollOption{
			{Text: "Save for retirement"},
			{Text: "Pay off debt"},
			{Text: "Purchase a home"},
			{Text: "Start or grow a business"},
			{Text: "Build an emergency fund"},
			{Text: "Invest in stocks or real estate"},
			{Text: "Other (Please specify)", IsOther: true},
		},
	},
	{
		Text: "What is your biggest financial challenge right now?",
		Options: []model.PollOption{
			{Text: "Managing debt or loans"},
			{Text: "Budgeting and saving"},
			{Text: "Understanding investment options"},
			{Text: "Preparing for retirement"},
			{Text: "Balancing business and personal finances"},
			{Text: "Navigating financial uncertainty due to job loss or reduced income"},
			{Text: "Other (Please specify)", IsOther: true},
		},
	},
	{
		Text: "How do you currently manage your finances?",
		Options: []model.PollOption{
			{Text: "I use a budgeting app or software"},
			{Text: "I keep a personal spreadsheet or ledger"},
			{Text: "I mostly keep track in my head"},
			{Text: "I seek advice from financial professionals"},
			{Text: "I haven't started managing my finances yet"},
			{Text: "Other (Please specify)", IsOther: true},
		},
	},
	{
		Text: "What areas of financial literacy are you most interested in learning more about?",
		Options: []model.PollOption{
			{Text: "Budgeting and saving techniques"},
			{Text: "Investment strategies"},
			{Text: "Retirement planning"},
			{Text: "Tax planning and optimization"},
			{Text: "Understanding credit and debt management"},
			{Text: "Entrepreneurial finance"},
			{Text: "Other (Please specify)", IsOther: true},
		},
	},
	{
		Text: "How do you prefer to receive financial education and advice?",
		Options: []model.PollOption{
			{Text: "Online courses or webinars"},
			{Text: "One-on-one coaching or consulting"},
			{Text: "Reading books and articles"},
			{Text: "Interactive workshops or seminars"},
			{Text: "Podcasts or videos"},
			{Text: "Financial apps and tools"},
			{Text: "Other (Please specify)", IsOther: true},
		},
	},
}

// PollSubmission is one submitted answer: an option index per question,
// plus free text when the chosen option is an "Other".
type PollSubmission struct {
	OptionIndex int    `json:"optionIndex"`
	OtherText   string `json:"otherText,omitempty"`
}

// PollService runs the one-time onboarding poll.
type PollService struct {
	users  repository.UserRepository
	polls  repository.PollRepository
	logger *slog.Logger
}

func NewPollService(users repository.UserRepository, polls repository.PollRepository, logger *slog.Logger) *PollService {
	return &PollService{
		users:  users,
		polls:  polls,
		logger: logger,
	}
}

// Questions returns the fixed poll question set.
func (s *PollService) Questions() []model.PollQuestion {
	out := make([]model.PollQuestion, len(pollQuestions))
	copy(out, pollQuestions)
	return out
}

// Submit records the user's poll answers, exactly once per account.
//
// Every question needs an in-range selection; "Other" selections need
// non-empty free text. The completion flag and the answer rows are written
// in one storage transaction, so a failed submit leaves the account able to
// retry and a second submit fails with a conflict.
func (s *PollService) Submit(ctx context.Context, userID string, submissions []PollSubmission) error {
	if len(submissions) != len(pollQuestions) {
		return apperror.ValidationFailed("answers",
			fmt.Sprintf("expected %d answers, got %d", len(pollQuestions), len(submissions)))
	}

	answers := make([]model.PollAnswer, 0, len(submissions))
	now := time.Now().UTC()
	for i, sub := range submissions {
		q := pollQuestions[i]
		if sub.OptionIndex < 0 || sub.OptionIndex >= len(q.Options) {
			return apperror.ValidationFailed("answers",
				fmt.Sprintf("answer %d is out of range", i))
		}
		opt := q.Options[sub.OptionIndex]
		otherText := strings.TrimSpace(sub.OtherText)
		if opt.IsOther && otherText == "" {
			return apperror.ValidationFailed("answers",
				fmt.Sprintf("answer %d selects %q but gives no text", i, opt.Text))
		}
		if !opt.IsOther {
			otherText = ""
		}

		answers = append(answers, model.PollAnswer{
			ID:        xid.New().String(),
			UserID:    userID,
			Question:  q.Text,
			Answer:    opt.Text,
			OtherText: otherText,
			CreatedAt: now,
		})
	}

	if err := s.polls.SubmitPoll(ctx, userID, answers); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return apperror.Conflict("poll already completed")
		}
		return fmt.Errorf("storing poll answers: %w", err)
	}

	s.logger.Info("poll submitted", slog.String("userID", userID))
	return nil
}

// Status reports whether the user has completed the poll.
func (s *PollService) Status(ctx context.Context, userID string) (bool, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("reading poll status: %w", err)
	}
	return user.HasCompletedPoll, nil
}

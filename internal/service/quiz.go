package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/doughtobread/server/internal/apperror"
	"github.com/doughtobread/server/internal/badge"
	"github.com/doughtobread/server/internal/model"
)

// quizQuestions is the fixed module quiz. Index positions double as question
// IDs in grade requests; correct indices never leave the server.
var quizQuestions = []model.QuizQuestion{
	{
		Text: "What are the three main categories of expenses in budgeting?",
		Options: []string{
			"Fixed, Variable, and Discretionary",
			"Essential, Non-essential, and Luxury",
			"Income, Expenses, and Savings",
			"Short-term, Mid-term, and Long-term",
		},
		CorrectIndex: 0,
	},
	{
		Text: "Which of the following is an example of a fixed expense?",
		Options: []string{
			"Groceries",
			"Entertainment",
			"Rent or mortgage",
			"Fuel costs",
		},
		CorrectIndex: 2,
	},
	{
		Text: "What is the recommended first step in creating a personal budget?",
		Options: []string{
			"Set priorities",
			"List your expenses",
			"Identify your income",
			"Plan for savings",
		},
		CorrectIndex: 2,
	},
	{
		Text: "What is the primary purpose of an emergency fund?",
		Options: []string{
			"To save for retirement",
			"To cover unexpected expenses",
			"To invest in stocks",
			"To pay for vacations",
		},
		CorrectIndex: 1,
	},
	{
		Text: "Which of the following is a recommended saving technique?",
		Options: []string{
			"Spending more to boost the economy",
			"Borrowing money to increase savings",
			"Automatic transfers to savings accounts",
			"Avoiding all discretionary expenses",
		},
		CorrectIndex: 2,
	},
}

// QuizService grades the module quiz and awards the completion badge.
type QuizService struct {
	ledger *BadgeService
	logger *slog.Logger
}

func NewQuizService(ledger *BadgeService, logger *slog.Logger) *QuizService {
	return &QuizService{
		ledger: ledger,
		logger: logger,
	}
}

// Questions returns the quiz question set. Correct indices are excluded from
// JSON serialization at the model level.
func (s *QuizService) Questions() []model.QuizQuestion {
	out := make([]model.QuizQuestion, len(quizQuestions))
	copy(out, quizQuestions)
	return out
}

// Grade scores one full set of selections, one per question in order.
//
// Every question must be answered with an in-range option index, otherwise
// grading is rejected with a validation error and nothing is recorded. The
// quiz is completed only on a perfect score; completion awards the Quiz
// Master badge at most once, so regrading is idempotent.
func (s *QuizService) Grade(ctx context.Context, userID string, selections []int) (*model.QuizResult, error) {
	if len(selections) != len(quizQuestions) {
		return nil, apperror.ValidationFailed("selections",
			fmt.Sprintf("expected %d answers, got %d", len(quizQuestions), len(selections)))
	}
	for i, sel := range selections {
		if sel < 0 || sel >= len(quizQuestions[i].Options) {
			return nil, apperror.ValidationFailed("selections",
				fmt.Sprintf("answer %d is out of range", i))
		}
	}

	correct := 0
	for i, q := range quizQuestions {
		if selections[i] == q.CorrectIndex {
			correct++
		}
	}

	result := &model.QuizResult{
		CorrectCount: correct,
		Total:        len(quizQuestions),
		Completed:    correct == len(quizQuestions),
	}

	if def, ok := badge.QuizBadge(result.Completed); ok {
		awarded, err := s.ledger.AwardIfEligible(ctx, userID, def)
		if err != nil {
			return nil, err
		}
		result.BadgeAwarded = awarded
	}

	s.logger.Info("quiz graded",
		slog.String("userID", userID),
		slog.Int("correct", correct),
		slog.Bool("completed", result.Completed),
	)

	return result, nil
}

// Package badge is the badge catalog: pure mappings from user activity
// (usage counts, quiz results) to badge definitions. No I/O happens here —
// persistence and duplicate checks live in the badge service.
package badge

import (
	"fmt"

	"github.com/doughtobread/server/internal/model"
)

// Definition describes a badge to be awarded: everything except the
// per-user identity (ID, owner, timestamp), which the ledger fills in
// at write time.
type Definition struct {
	Name        string
	Description string
	Level       model.BadgeLevel
	Type        model.BadgeType
}

// QuizMasterName is the fixed name of the quiz-completion badge.
const QuizMasterName = "Quiz Master"

// TierForCount maps a usage count to a badge level.
// The mapping is total and non-decreasing: 1→beginner, 2→intermediate,
// 3→advanced, and everything from 4 up saturates at expert. Counts below 1
// clamp to beginner (counters start at 1, so this is a floor, not a case
// that occurs in practice).
func TierForCount(n int) model.BadgeLevel {
	switch {
	case n <= 1:
		return model.LevelBeginner
	case n == 2:
		return model.LevelIntermediate
	case n == 3:
		return model.LevelAdvanced
	default:
		return model.LevelExpert
	}
}

// NameForCount maps a calculator usage count to the display name of the
// badge earned at that count. One fixed name per tier.
func NameForCount(n int) string {
	switch TierForCount(n) {
	case model.LevelBeginner:
		return "Calculator Novice"
	case model.LevelIntermediate:
		return "Calculator Intermediate"
	case model.LevelAdvanced:
		return "Calculator Advanced"
	default:
		return "Calculator Expert"
	}
}

// ForCalculatorUse builds the badge definition earned at the given
// calculator usage count.
func ForCalculatorUse(n int) Definition {
	return Definition{
		Name:        NameForCount(n),
		Description: fmt.Sprintf("Used the calculator %d times", n),
		Level:       TierForCount(n),
		Type:        model.TypeCalculators,
	}
}

// QuizBadge returns the quiz-completion badge definition iff every question
// in the session was answered correctly. The second return is false when no
// badge applies.
func QuizBadge(allCorrect bool) (Definition, bool) {
	if !allCorrect {
		return Definition{}, false
	}
	return Definition{
		Name:        QuizMasterName,
		Description: "Completed the module quiz with a perfect score",
		Level:       model.LevelIntermediate,
		Type:        model.TypeKnowledge,
	}, true
}

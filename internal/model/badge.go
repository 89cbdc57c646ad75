package model

import "time"

// BadgeLevel is the ordered achievement rank carried by a badge.
// Ranks compare beginner < intermediate < advanced < expert.
type BadgeLevel string

const (
	LevelBeginner     BadgeLevel = "beginner"
	LevelIntermediate BadgeLevel = "intermediate"
	LevelAdvanced     BadgeLevel = "advanced"
	LevelExpert       BadgeLevel = "expert"
)

// Rank returns the position of the level in the beginner→expert order.
// Unknown levels rank below beginner so they sort first.
func (l BadgeLevel) Rank() int {
	switch l {
	case LevelBeginner:
		return 1
	case LevelIntermediate:
		return 2
	case LevelAdvanced:
		return 3
	case LevelExpert:
		return 4
	}
	return 0
}

// Valid reports whether l is one of the four known levels.
func (l BadgeLevel) Valid() bool {
	return l.Rank() > 0
}

// BadgeType is the category tag attached to a badge.
type BadgeType string

const (
	TypeKnowledge   BadgeType = "knowledge"
	TypeSkill       BadgeType = "skill"
	TypeAchievement BadgeType = "achievement"
	TypeCommunity   BadgeType = "community"
	TypeCalculators BadgeType = "calculators"
)

// Badge is a persisted achievement record scoped to one user.
//
// At most one badge with a given Name exists per user. The badge ID is an
// opaque unique identifier; the (UserID, Name) pair is the logical key.
type Badge struct {
	ID          string     `json:"id"          db:"id"`
	UserID      string     `json:"-"           db:"user_id"`
	Name        string     `json:"name"        db:"name"`
	Description string     `json:"description" db:"description"`
	Level       BadgeLevel `json:"level"       db:"level"`
	Type        BadgeType  `json:"type"        db:"type"`
	DateEarned  time.Time  `json:"dateEarned"  db:"date_earned"`
}

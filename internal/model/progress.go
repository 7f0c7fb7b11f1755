package model

import "time"

// UserProgress links one user to one vocabulary item. The (user, item) pair
// is unique; deleting either side cascades to this row. Level records the
// tier context under which the most recent progress was written.
//
// Fields:
//  ID              – primary key identifier.
//  UserID          – owning user.
//  VocabularyItemID– vocabulary item the progress refers to.
//  Level           – tier tag recorded with the progress.
//  IsMastered      – mastery flag asserted by the learner.
//  MasteredAt      – when mastery was last set (nil when not mastered).
//  PracticeCount   – total number of recorded practices.
//  CorrectCount    – practices recorded with correct=true.
//  LastPracticedAt – most recent practice timestamp (nil when never practiced).
type UserProgress struct {
	ID               uint64     // user_progress.id
	UserID           uint64     // user_progress.user_id
	VocabularyItemID uint64     // user_progress.vocabulary_item_id
	Level            uint8      // user_progress.level
	IsMastered       bool       // user_progress.is_mastered
	MasteredAt       *time.Time // user_progress.mastered_at (nullable)
	PracticeCount    int        // user_progress.practice_count
	CorrectCount     int        // user_progress.correct_count
	LastPracticedAt  *time.Time // user_progress.last_practiced_at (nullable)
	CreatedAt        time.Time  // user_progress.created_at
	UpdatedAt        time.Time  // user_progress.updated_at
}

// LevelProgress is one aggregation row of the progress summary: how many
// corpus words exist at the level and how many of them this user has
// mastered.
type LevelProgress struct {
	Level              uint8   `json:"level"`
	TotalWords         int     `json:"total_words"`
	MasteredWords      int     `json:"mastered_words"`
	MasteredPercentage float64 `json:"mastered_percentage"`
}

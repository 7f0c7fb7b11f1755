package service

import (
	"context"
	"errors"
	"time"

	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/model"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/queue"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/repository"
)

// ProgressStore is the slice of the progress repository the service needs.
type ProgressStore interface {
	Summary(ctx context.Context, userID uint64, level *uint8) ([]model.LevelProgress, error)
	MasteredItemIDs(ctx context.Context, userID uint64, level uint8) ([]uint64, error)
	Get(ctx context.Context, userID, itemID uint64) (model.UserProgress, error)
	MarkMastered(ctx context.Context, userID, itemID uint64, level uint8) error
	UnmarkMastered(ctx context.Context, userID, itemID uint64) error
	RecordPractice(ctx context.Context, userID, itemID uint64, level uint8, correct bool) error
}

// ItemLookup is the read-only view of the vocabulary the progress service
// needs to validate references and enrich events.
type ItemLookup interface {
	GetByID(ctx context.Context, id uint64) (model.VocabularyItem, error)
}

// ProgressService maintains per-(user, word) mastery and practice counters
// and computes progress summaries. Practice and mastery records additionally
// publish a best-effort activity event; a failed publish never fails the
// request.
type ProgressService struct {
	Progress ProgressStore
	Items    ItemLookup
	Publish  func(ctx context.Context, event queue.PracticeRecordedEvent) error // optional
}

func NewProgressService(progress ProgressStore, items ItemLookup) *ProgressService {
	return &ProgressService{Progress: progress, Items: items, Publish: queue.PublishPracticeRecorded}
}

// OverallProgress sums all level groups of a summary.
type OverallProgress struct {
	TotalWords         int     `json:"total_words"`
	MasteredWords      int     `json:"mastered_words"`
	MasteredPercentage float64 `json:"mastered_percentage"`
}

// SummaryResult is the per-level breakdown plus the overall totals.
type SummaryResult struct {
	YearProgress []model.LevelProgress `json:"year_progress"`
	Overall      OverallProgress       `json:"overall"`
}

// Summary aggregates corpus size against the user's mastery, optionally
// filtered to one level.
func (s *ProgressService) Summary(ctx context.Context, userID uint64, level *uint8) (*SummaryResult, error) {
	groups, err := s.Progress.Summary(ctx, userID, level)
	if err != nil {
		return nil, err
	}
	out := &SummaryResult{YearProgress: groups}
	for _, g := range groups {
		out.Overall.TotalWords += g.TotalWords
		out.Overall.MasteredWords += g.MasteredWords
	}
	if out.Overall.TotalWords > 0 {
		out.Overall.MasteredPercentage = float64(out.Overall.MasteredWords) / float64(out.Overall.TotalWords) * 100
	}
	return out, nil
}

// MasteredIDs lists the ids of items the user has mastered under the level.
func (s *ProgressService) MasteredIDs(ctx context.Context, userID uint64, level uint8) ([]uint64, error) {
	return s.Progress.MasteredItemIDs(ctx, userID, level)
}

// MarkMastered upserts the mastery flag for the (user, item) pair under the
// level tag and returns the resulting progress row.
func (s *ProgressService) MarkMastered(ctx context.Context, userID, itemID uint64, level uint8) (model.UserProgress, error) {
	it, err := s.Items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.UserProgress{}, ErrNotFound
		}
		return model.UserProgress{}, err
	}
	if err := s.Progress.MarkMastered(ctx, userID, itemID, level); err != nil {
		return model.UserProgress{}, err
	}
	s.publish(ctx, userID, it, level, "mastered", false)
	return s.Progress.Get(ctx, userID, itemID)
}

// UnmarkMastered clears the mastery flag; a missing row is a no-op.
func (s *ProgressService) UnmarkMastered(ctx context.Context, userID, itemID uint64) error {
	return s.Progress.UnmarkMastered(ctx, userID, itemID)
}

// RecordPractice increments the practice counters for the pair, creating
// the row on first practice.
func (s *ProgressService) RecordPractice(ctx context.Context, userID, itemID uint64, level uint8, correct bool) (model.UserProgress, error) {
	it, err := s.Items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.UserProgress{}, ErrNotFound
		}
		return model.UserProgress{}, err
	}
	if err := s.Progress.RecordPractice(ctx, userID, itemID, level, correct); err != nil {
		return model.UserProgress{}, err
	}
	s.publish(ctx, userID, it, level, "practice", correct)
	return s.Progress.Get(ctx, userID, itemID)
}

func (s *ProgressService) publish(ctx context.Context, userID uint64, it model.VocabularyItem, level uint8, action string, correct bool) {
	if s.Publish == nil {
		return
	}
	_ = s.Publish(ctx, queue.PracticeRecordedEvent{
		UserID:           userID,
		VocabularyItemID: it.ID,
		Word:             it.Word,
		Level:            level,
		Action:           action,
		Correct:          correct,
		RecordedAt:       time.Now().UTC().Format(time.RFC3339),
	})
}

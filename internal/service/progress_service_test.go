package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/model"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/queue"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/repository"
)

type progressKey struct {
	userID, itemID uint64
}

// fakeProgressStore keeps progress rows in a map keyed by (user, item).
type fakeProgressStore struct {
	rows    map[progressKey]model.UserProgress
	summary []model.LevelProgress
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{rows: map[progressKey]model.UserProgress{}}
}

func (f *fakeProgressStore) Summary(_ context.Context, _ uint64, _ *uint8) ([]model.LevelProgress, error) {
	return f.summary, nil
}

func (f *fakeProgressStore) MasteredItemIDs(_ context.Context, userID uint64, level uint8) ([]uint64, error) {
	var ids []uint64
	for k, row := range f.rows {
		if k.userID == userID && row.Level == level && row.IsMastered {
			ids = append(ids, k.itemID)
		}
	}
	return ids, nil
}

func (f *fakeProgressStore) Get(_ context.Context, userID, itemID uint64) (model.UserProgress, error) {
	row, ok := f.rows[progressKey{userID, itemID}]
	if !ok {
		return model.UserProgress{}, repository.ErrNotFound
	}
	return row, nil
}

func (f *fakeProgressStore) MarkMastered(_ context.Context, userID, itemID uint64, level uint8) error {
	k := progressKey{userID, itemID}
	row := f.rows[k]
	row.UserID, row.VocabularyItemID, row.Level = userID, itemID, level
	row.IsMastered = true
	now := time.Now().UTC()
	row.MasteredAt = &now
	f.rows[k] = row
	return nil
}

func (f *fakeProgressStore) UnmarkMastered(_ context.Context, userID, itemID uint64) error {
	k := progressKey{userID, itemID}
	row, ok := f.rows[k]
	if !ok {
		return nil
	}
	row.IsMastered = false
	row.MasteredAt = nil
	f.rows[k] = row
	return nil
}

func (f *fakeProgressStore) RecordPractice(_ context.Context, userID, itemID uint64, level uint8, correct bool) error {
	k := progressKey{userID, itemID}
	row := f.rows[k]
	row.UserID, row.VocabularyItemID, row.Level = userID, itemID, level
	row.PracticeCount++
	if correct {
		row.CorrectCount++
	}
	now := time.Now().UTC()
	row.LastPracticedAt = &now
	f.rows[k] = row
	return nil
}

// fakeItemLookup serves vocabulary items from a map.
type fakeItemLookup struct {
	items map[uint64]model.VocabularyItem
}

func (f *fakeItemLookup) GetByID(_ context.Context, id uint64) (model.VocabularyItem, error) {
	it, ok := f.items[id]
	if !ok {
		return model.VocabularyItem{}, repository.ErrNotFound
	}
	return it, nil
}

func newTestProgressService() (*ProgressService, *fakeProgressStore, *[]queue.PracticeRecordedEvent) {
	store := newFakeProgressStore()
	items := &fakeItemLookup{items: map[uint64]model.VocabularyItem{
		10: {ID: 10, Word: "ocean", Meaning: "sea"},
	}}
	var events []queue.PracticeRecordedEvent
	svc := &ProgressService{
		Progress: store,
		Items:    items,
		Publish: func(_ context.Context, e queue.PracticeRecordedEvent) error {
			events = append(events, e)
			return nil
		},
	}
	return svc, store, &events
}

func TestProgressService_Summary(t *testing.T) {
	t.Parallel()

	svc, store, _ := newTestProgressService()
	store.summary = []model.LevelProgress{
		{Level: 1, TotalWords: 40, MasteredWords: 10, MasteredPercentage: 25},
		{Level: 2, TotalWords: 60, MasteredWords: 5, MasteredPercentage: 8.33},
	}

	out, err := svc.Summary(context.Background(), 1, nil)
	require.NoError(t, err)
	require.Len(t, out.YearProgress, 2)
	require.Equal(t, 100, out.Overall.TotalWords)
	require.Equal(t, 15, out.Overall.MasteredWords)
	require.InDelta(t, 15.0, out.Overall.MasteredPercentage, 0.0001)
}

func TestProgressService_SummaryEmptyCorpus(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestProgressService()
	out, err := svc.Summary(context.Background(), 1, nil)
	require.NoError(t, err)
	require.Zero(t, out.Overall.MasteredPercentage, "no division by zero on an empty corpus")
}

func TestProgressService_MarkMastered(t *testing.T) {
	t.Parallel()

	svc, _, events := newTestProgressService()
	ctx := context.Background()

	row, err := svc.MarkMastered(ctx, 1, 10, 2)
	require.NoError(t, err)
	require.True(t, row.IsMastered)
	require.NotNil(t, row.MasteredAt)
	require.Equal(t, uint8(2), row.Level)

	require.Len(t, *events, 1)
	ev := (*events)[0]
	require.Equal(t, "mastered", ev.Action)
	require.Equal(t, "ocean", ev.Word)
	require.Equal(t, uint64(1), ev.UserID)

	// Unknown item id is rejected before any write.
	_, err = svc.MarkMastered(ctx, 1, 999, 2)
	require.ErrorIs(t, err, ErrNotFound)
	require.Len(t, *events, 1)
}

func TestProgressService_UnmarkMastered(t *testing.T) {
	t.Parallel()

	svc, store, _ := newTestProgressService()
	ctx := context.Background()

	_, err := svc.MarkMastered(ctx, 1, 10, 2)
	require.NoError(t, err)
	require.NoError(t, svc.UnmarkMastered(ctx, 1, 10))

	row, err := store.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.False(t, row.IsMastered)
	require.Nil(t, row.MasteredAt)

	// Missing row is a no-op.
	require.NoError(t, svc.UnmarkMastered(ctx, 1, 999))
}

func TestProgressService_RecordPractice(t *testing.T) {
	t.Parallel()

	svc, _, events := newTestProgressService()
	ctx := context.Background()

	row, err := svc.RecordPractice(ctx, 1, 10, 3, true)
	require.NoError(t, err)
	require.Equal(t, 1, row.PracticeCount)
	require.Equal(t, 1, row.CorrectCount)
	require.NotNil(t, row.LastPracticedAt)
	require.False(t, row.IsMastered, "practice does not imply mastery")

	row, err = svc.RecordPractice(ctx, 1, 10, 3, false)
	require.NoError(t, err)
	require.Equal(t, 2, row.PracticeCount)
	require.Equal(t, 1, row.CorrectCount, "incorrect practice leaves the correct counter alone")

	require.Len(t, *events, 2)
	require.Equal(t, "practice", (*events)[0].Action)
	require.True(t, (*events)[0].Correct)
	require.False(t, (*events)[1].Correct)
}

func TestProgressService_PublishFailureIgnored(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestProgressService()
	svc.Publish = func(context.Context, queue.PracticeRecordedEvent) error {
		return context.DeadlineExceeded
	}

	_, err := svc.RecordPractice(context.Background(), 1, 10, 1, true)
	require.NoError(t, err, "a failed event publish never fails the request")
}

package repository

import (
	"context"
	"database/sql"

	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/model"
)

// ProgressRepo persists per-(user, item) mastery and practice counters in
// the 'user_progress' table. The (user_id, vocabulary_item_id) pair carries
// a unique index; all writes go through MySQL upserts so two concurrent
// requests for the same pair cannot create duplicate rows.
type ProgressRepo struct{ DB *sql.DB }

func NewProgressRepo(db *sql.DB) *ProgressRepo { return &ProgressRepo{DB: db} }

// Summary aggregates corpus size against this user's mastery per level by
// outer-joining vocabulary_levels with the user's progress rows. Levels
// with no vocabulary produce no row; the service treats them as zero.
func (r *ProgressRepo) Summary(ctx context.Context, userID uint64, level *uint8) ([]model.LevelProgress, error) {
	query := `SELECT vl.level_id,
       COUNT(vl.vocabulary_item_id) AS total_words,
       COUNT(CASE WHEN up.is_mastered = 1 THEN 1 END) AS mastered_words
  FROM vocabulary_levels vl
  LEFT JOIN user_progress up
    ON up.vocabulary_item_id = vl.vocabulary_item_id AND up.user_id = ?`
	args := []any{userID}
	if level != nil {
		query += " WHERE vl.level_id = ?"
		args = append(args, *level)
	}
	query += " GROUP BY vl.level_id ORDER BY vl.level_id"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.LevelProgress{}
	for rows.Next() {
		var p model.LevelProgress
		if err := rows.Scan(&p.Level, &p.TotalWords, &p.MasteredWords); err != nil {
			return nil, err
		}
		if p.TotalWords > 0 {
			p.MasteredPercentage = float64(p.MasteredWords) / float64(p.TotalWords) * 100
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// MasteredItemIDs returns the ids of items the user has mastered under the
// given level tag.
func (r *ProgressRepo) MasteredItemIDs(ctx context.Context, userID uint64, level uint8) ([]uint64, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT vocabulary_item_id FROM user_progress WHERE user_id=? AND level=? AND is_mastered=1",
		userID, level)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := []uint64{}
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Get fetches the progress row for one (user, item) pair.
func (r *ProgressRepo) Get(ctx context.Context, userID, itemID uint64) (model.UserProgress, error) {
	var p model.UserProgress
	var masteredAt, lastPracticedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx,
		`SELECT id,user_id,vocabulary_item_id,level,is_mastered,mastered_at,
        practice_count,correct_count,last_practiced_at,created_at,updated_at
   FROM user_progress WHERE user_id=? AND vocabulary_item_id=? LIMIT 1`,
		userID, itemID).Scan(&p.ID, &p.UserID, &p.VocabularyItemID, &p.Level,
		&p.IsMastered, &masteredAt, &p.PracticeCount, &p.CorrectCount,
		&lastPracticedAt, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return p, ErrNotFound
	}
	if masteredAt.Valid {
		p.MasteredAt = &masteredAt.Time
	}
	if lastPracticedAt.Valid {
		p.LastPracticedAt = &lastPracticedAt.Time
	}
	return p, err
}

// MarkMastered upserts the row with mastery set: a fresh row starts with a
// zero practice count; an existing one keeps its counters, refreshes
// mastered_at and adopts the new level tag.
func (r *ProgressRepo) MarkMastered(ctx context.Context, userID, itemID uint64, level uint8) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO user_progress (user_id, vocabulary_item_id, level, is_mastered, mastered_at)
      VALUES (?,?,?,1,NOW())
 ON DUPLICATE KEY UPDATE is_mastered=1, mastered_at=NOW(), level=VALUES(level)`,
		userID, itemID, level)
	return err
}

// UnmarkMastered clears the mastery flag and timestamp. Missing rows are a
// no-op.
func (r *ProgressRepo) UnmarkMastered(ctx context.Context, userID, itemID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE user_progress SET is_mastered=0, mastered_at=NULL WHERE user_id=? AND vocabulary_item_id=?",
		userID, itemID)
	return err
}

// RecordPractice upserts the row with an incremented practice count and a
// refreshed last_practiced_at. correct additionally bumps correct_count.
// The level tag is updated on every practice.
func (r *ProgressRepo) RecordPractice(ctx context.Context, userID, itemID uint64, level uint8, correct bool) error {
	inc := 0
	if correct {
		inc = 1
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO user_progress (user_id, vocabulary_item_id, level, practice_count, correct_count, last_practiced_at)
      VALUES (?,?,?,1,?,NOW())
 ON DUPLICATE KEY UPDATE practice_count=practice_count+1,
                         correct_count=correct_count+VALUES(correct_count),
                         last_practiced_at=NOW(),
                         level=VALUES(level)`,
		userID, itemID, level, inc)
	return err
}

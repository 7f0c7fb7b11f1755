package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/model"
)

// SentenceRepo reads the pre-written blank-sentence bank
// ('quiz_sentences'). Rows are loaded at bootstrap by external loaders;
// the service only consumes them.
type SentenceRepo struct{ DB *sql.DB }

func NewSentenceRepo(db *sql.DB) *SentenceRepo { return &SentenceRepo{DB: db} }

// ListByItemIDs returns the bank sentences for the given items, keyed by
// item id. Each stored sentence contains the literal blank marker.
func (r *SentenceRepo) ListByItemIDs(ctx context.Context, ids []uint64) (map[uint64][]model.QuizSentence, error) {
	out := map[uint64][]model.QuizSentence{}
	if len(ids) == 0 {
		return out, nil
	}
	ph := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		ph[i] = "?"
		args[i] = id
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, vocabulary_item_id, sentence FROM quiz_sentences WHERE vocabulary_item_id IN ("+
			strings.Join(ph, ",")+") ORDER BY id", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var s model.QuizSentence
		if err := rows.Scan(&s.ID, &s.VocabularyItemID, &s.Sentence); err != nil {
			return nil, err
		}
		out[s.VocabularyItemID] = append(out[s.VocabularyItemID], s)
	}
	return out, rows.Err()
}

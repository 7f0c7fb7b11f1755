package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/model"
)

// VocabularyRepo persists corpus entries ('vocabulary_items') and their
// level associations ('vocabulary_levels'). The word column carries a
// case-insensitive unique index; the (item, level) pair is unique.
type VocabularyRepo struct{ DB *sql.DB }

func NewVocabularyRepo(db *sql.DB) *VocabularyRepo { return &VocabularyRepo{DB: db} }

// ListFilter narrows List output. Level filters by tier membership; Search
// matches a case-insensitive substring of word or meaning. Skip/Limit are
// clamped by the service before reaching the repository.
type ListFilter struct {
	Level  *uint8
	Search string
	Skip   int
	Limit  int
}

// Patch describes a partial update. Nil fields are left untouched; a
// non-nil Levels replaces the whole association set atomically.
type Patch struct {
	Word     *string
	Meaning  *string
	Synonyms *[]string
	Antonyms *[]string
	Examples *[]string
	Levels   *[]uint8
}

func marshalList(ss []string) (string, error) {
	if ss == nil {
		ss = []string{}
	}
	b, err := json.Marshal(ss)
	return string(b), err
}

func unmarshalList(raw []byte) []string {
	var ss []string
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &ss)
	}
	if ss == nil {
		ss = []string{}
	}
	return ss
}

func scanItem(scan func(dest ...any) error) (model.VocabularyItem, error) {
	var it model.VocabularyItem
	var syn, ant, ex []byte
	err := scan(&it.ID, &it.Word, &it.Meaning, &syn, &ant, &ex, &it.CreatedAt, &it.UpdatedAt)
	if err == sql.ErrNoRows {
		return it, ErrNotFound
	}
	if err != nil {
		return it, err
	}
	it.Synonyms = unmarshalList(syn)
	it.Antonyms = unmarshalList(ant)
	it.Examples = unmarshalList(ex)
	return it, nil
}

const itemColumns = "id,word,meaning,synonyms,antonyms,examples,created_at,updated_at"

// List returns one page of items ordered by word then id, plus the total
// count matching the filter (not the page size).
func (r *VocabularyRepo) List(ctx context.Context, f ListFilter) ([]model.VocabularyItem, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if f.Level != nil {
		where += " AND v.id IN (SELECT vocabulary_item_id FROM vocabulary_levels WHERE level_id=?)"
		args = append(args, *f.Level)
	}
	if f.Search != "" {
		where += " AND (LOWER(v.word) LIKE ? OR LOWER(v.meaning) LIKE ?)"
		pat := "%" + strings.ToLower(f.Search) + "%"
		args = append(args, pat, pat)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM vocabulary_items v"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM vocabulary_items v%s ORDER BY v.word ASC, v.id ASC LIMIT ? OFFSET ?",
		prefixColumns("v"), where)
	rows, err := r.DB.QueryContext(ctx, query, append(args, f.Limit, f.Skip)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []model.VocabularyItem{}
	for rows.Next() {
		it, err := scanItem(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if err := r.attachLevels(ctx, items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func prefixColumns(alias string) string {
	cols := strings.Split(itemColumns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ",")
}

// attachLevels loads the level associations for a page of items in one query.
func (r *VocabularyRepo) attachLevels(ctx context.Context, items []model.VocabularyItem) error {
	if len(items) == 0 {
		return nil
	}
	idx := make(map[uint64]*model.VocabularyItem, len(items))
	ph := make([]string, 0, len(items))
	args := make([]any, 0, len(items))
	for i := range items {
		items[i].Levels = []uint8{}
		idx[items[i].ID] = &items[i]
		ph = append(ph, "?")
		args = append(args, items[i].ID)
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT vocabulary_item_id, level_id FROM vocabulary_levels WHERE vocabulary_item_id IN ("+
			strings.Join(ph, ",")+") ORDER BY level_id", args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var itemID uint64
		var levelID uint8
		if err := rows.Scan(&itemID, &levelID); err != nil {
			return err
		}
		if it, ok := idx[itemID]; ok {
			it.Levels = append(it.Levels, levelID)
		}
	}
	return rows.Err()
}

// GetByID fetches one item with its level associations.
func (r *VocabularyRepo) GetByID(ctx context.Context, id uint64) (model.VocabularyItem, error) {
	it, err := scanItem(r.DB.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM vocabulary_items WHERE id=? LIMIT 1", id).Scan)
	if err != nil {
		return it, err
	}
	items := []model.VocabularyItem{it}
	if err := r.attachLevels(ctx, items); err != nil {
		return it, err
	}
	return items[0], nil
}

// Create inserts an item and its level set in one transaction.
func (r *VocabularyRepo) Create(ctx context.Context, it model.VocabularyItem) (uint64, error) {
	syn, err := marshalList(it.Synonyms)
	if err != nil {
		return 0, err
	}
	ant, err := marshalList(it.Antonyms)
	if err != nil {
		return 0, err
	}
	ex, err := marshalList(it.Examples)
	if err != nil {
		return 0, err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO vocabulary_items (word, meaning, synonyms, antonyms, examples) VALUES (?,?,?,?,?)",
		it.Word, it.Meaning, syn, ant, ex)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrWordExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := replaceLevels(ctx, tx, uint64(id), it.Levels); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update applies a partial update. A changed word re-checks uniqueness via
// the word index; a non-nil level set replaces all associations atomically.
func (r *VocabularyRepo) Update(ctx context.Context, id uint64, p Patch) error {
	sets := []string{}
	args := []any{}
	if p.Word != nil {
		sets, args = append(sets, "word=?"), append(args, *p.Word)
	}
	if p.Meaning != nil {
		sets, args = append(sets, "meaning=?"), append(args, *p.Meaning)
	}
	for _, l := range []struct {
		col string
		val *[]string
	}{{"synonyms", p.Synonyms}, {"antonyms", p.Antonyms}, {"examples", p.Examples}} {
		if l.val == nil {
			continue
		}
		s, err := marshalList(*l.val)
		if err != nil {
			return err
		}
		sets, args = append(sets, l.col+"=?"), append(args, s)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var n int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM vocabulary_items WHERE id=?", id).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	if len(sets) > 0 {
		_, err := tx.ExecContext(ctx,
			"UPDATE vocabulary_items SET "+strings.Join(sets, ", ")+" WHERE id=?",
			append(args, id)...)
		if err != nil {
			if isDuplicate(err) {
				return ErrWordExists
			}
			return err
		}
	}
	if p.Levels != nil {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM vocabulary_levels WHERE vocabulary_item_id=?", id); err != nil {
			return err
		}
		if err := replaceLevels(ctx, tx, id, *p.Levels); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func replaceLevels(ctx context.Context, tx *sql.Tx, itemID uint64, levels []uint8) error {
	for _, lvl := range levels {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO vocabulary_levels (vocabulary_item_id, level_id) VALUES (?,?)",
			itemID, lvl); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the item. Foreign keys cascade to level associations,
// progress rows and the sentence bank.
func (r *VocabularyRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM vocabulary_items WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByLevel materialises every item at one level (with lists, without
// pagination) for the exercise generator.
func (r *VocabularyRepo) ListByLevel(ctx context.Context, level uint8) ([]model.VocabularyItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+prefixColumns("v")+" FROM vocabulary_items v"+
			" JOIN vocabulary_levels vl ON vl.vocabulary_item_id=v.id"+
			" WHERE vl.level_id=? ORDER BY v.word ASC, v.id ASC", level)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []model.VocabularyItem{}
	for rows.Next() {
		it, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ListByIDs materialises the given items (any order in, word order out).
func (r *VocabularyRepo) ListByIDs(ctx context.Context, ids []uint64) ([]model.VocabularyItem, error) {
	if len(ids) == 0 {
		return []model.VocabularyItem{}, nil
	}
	ph := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		ph[i] = "?"
		args[i] = id
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM vocabulary_items WHERE id IN ("+
			strings.Join(ph, ",")+") ORDER BY word ASC, id ASC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []model.VocabularyItem{}
	for rows.Next() {
		it, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

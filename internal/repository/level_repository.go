package repository

import (
	"context"
	"database/sql"

	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/model"
)

// LevelRepo reads the fixed difficulty tiers from the 'levels' table.
type LevelRepo struct{ DB *sql.DB }

func NewLevelRepo(db *sql.DB) *LevelRepo { return &LevelRepo{DB: db} }

// List returns all tiers ordered by id.
func (r *LevelRepo) List(ctx context.Context) ([]model.Level, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, description FROM levels ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	levels := []model.Level{}
	for rows.Next() {
		var l model.Level
		if err := rows.Scan(&l.ID, &l.Name, &l.Description); err != nil {
			return nil, err
		}
		levels = append(levels, l)
	}
	return levels, rows.Err()
}

// Seed inserts the four tiers if they are missing. Level rows are created
// once at bootstrap and never mutated afterwards.
func (r *LevelRepo) Seed(ctx context.Context) error {
	seed := []model.Level{
		{ID: 1, Name: "Level 1", Description: "Foundation vocabulary"},
		{ID: 2, Name: "Level 2", Description: "Developing vocabulary"},
		{ID: 3, Name: "Level 3", Description: "Confident vocabulary"},
		{ID: 4, Name: "Level 4", Description: "Advanced vocabulary"},
	}
	for _, l := range seed {
		if _, err := r.DB.ExecContext(ctx,
			"INSERT IGNORE INTO levels (id, name, description) VALUES (?,?,?)",
			l.ID, l.Name, l.Description); err != nil {
			return err
		}
	}
	return nil
}

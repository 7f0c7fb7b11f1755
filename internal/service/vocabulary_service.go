package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/model"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/repository"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/utils"
)

// Listing limits. Limit is clamped into [1, maxListLimit]; a zero or
// negative request falls back to defaultListLimit.
const (
	defaultListLimit = 20
	maxListLimit     = 500
)

// VocabularyStore is the slice of the vocabulary repository the service
// needs.
type VocabularyStore interface {
	List(ctx context.Context, f repository.ListFilter) ([]model.VocabularyItem, int, error)
	GetByID(ctx context.Context, id uint64) (model.VocabularyItem, error)
	Create(ctx context.Context, it model.VocabularyItem) (uint64, error)
	Update(ctx context.Context, id uint64, p repository.Patch) error
	Delete(ctx context.Context, id uint64) error
}

// VocabularyService implements CRUD over corpus entries. Mutations are
// admin-guarded; reads are open to any authenticated user.
type VocabularyService struct {
	Items VocabularyStore
}

func NewVocabularyService(items VocabularyStore) *VocabularyService {
	return &VocabularyService{Items: items}
}

// Page is one listing result: the page items plus the total count matching
// the filter.
type Page struct {
	Items []model.VocabularyItem
	Total int
	Skip  int
	Limit int
}

// List returns a page ordered by word ascending (ties by insertion order).
// Skip is clamped to zero. A zero or negative limit means the caller sent
// none and falls back to the default page size; positive limits are capped
// at maxListLimit.
func (s *VocabularyService) List(ctx context.Context, level *uint8, search string, skip, limit int) (*Page, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	items, total, err := s.Items.List(ctx, repository.ListFilter{
		Level:  level,
		Search: strings.TrimSpace(search),
		Skip:   skip,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	return &Page{Items: items, Total: total, Skip: skip, Limit: limit}, nil
}

// Get returns the item or ErrNotFound.
func (s *VocabularyService) Get(ctx context.Context, id uint64) (model.VocabularyItem, error) {
	it, err := s.Items.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return it, ErrNotFound
	}
	return it, err
}

// CreateInput carries a new corpus entry. At least one level is required.
type CreateInput struct {
	Word     string
	Meaning  string
	Synonyms []string
	Antonyms []string
	Examples []string
	Levels   []uint8
}

// Create inserts a new word with its lists and level associations.
func (s *VocabularyService) Create(ctx context.Context, caller model.User, in CreateInput) (model.VocabularyItem, error) {
	if !caller.IsAdmin {
		return model.VocabularyItem{}, ErrForbidden
	}
	in.Word = strings.TrimSpace(in.Word)
	in.Meaning = strings.TrimSpace(in.Meaning)
	if in.Word == "" {
		return model.VocabularyItem{}, invalid("word", "is required")
	}
	if in.Meaning == "" {
		return model.VocabularyItem{}, invalid("meaning", "is required")
	}
	if err := checkLevels(in.Levels); err != nil {
		return model.VocabularyItem{}, err
	}

	id, err := s.Items.Create(ctx, model.VocabularyItem{
		Word:     in.Word,
		Meaning:  in.Meaning,
		Synonyms: in.Synonyms,
		Antonyms: in.Antonyms,
		Examples: in.Examples,
		Levels:   in.Levels,
	})
	if err != nil {
		if errors.Is(err, repository.ErrWordExists) {
			return model.VocabularyItem{}, invalid("word", "already exists")
		}
		return model.VocabularyItem{}, err
	}
	return s.Get(ctx, id)
}

// UpdateInput is a partial update; nil fields are untouched. A non-nil
// level set replaces the whole association set atomically.
type UpdateInput struct {
	Word     *string
	Meaning  *string
	Synonyms *[]string
	Antonyms *[]string
	Examples *[]string
	Levels   *[]uint8
}

// Update applies the patch and returns the updated item.
func (s *VocabularyService) Update(ctx context.Context, caller model.User, id uint64, in UpdateInput) (model.VocabularyItem, error) {
	if !caller.IsAdmin {
		return model.VocabularyItem{}, ErrForbidden
	}
	if in.Word != nil {
		w := strings.TrimSpace(*in.Word)
		if w == "" {
			return model.VocabularyItem{}, invalid("word", "must not be empty")
		}
		in.Word = &w
	}
	if in.Meaning != nil {
		m := strings.TrimSpace(*in.Meaning)
		if m == "" {
			return model.VocabularyItem{}, invalid("meaning", "must not be empty")
		}
		in.Meaning = &m
	}
	if in.Levels != nil {
		if err := checkLevels(*in.Levels); err != nil {
			return model.VocabularyItem{}, err
		}
	}

	err := s.Items.Update(ctx, id, repository.Patch{
		Word:     in.Word,
		Meaning:  in.Meaning,
		Synonyms: in.Synonyms,
		Antonyms: in.Antonyms,
		Examples: in.Examples,
		Levels:   in.Levels,
	})
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return model.VocabularyItem{}, ErrNotFound
	case errors.Is(err, repository.ErrWordExists):
		return model.VocabularyItem{}, invalid("word", "already exists")
	case err != nil:
		return model.VocabularyItem{}, err
	}
	return s.Get(ctx, id)
}

// Delete removes the item; associations, progress rows and sentence bank
// entries cascade in the database.
func (s *VocabularyService) Delete(ctx context.Context, caller model.User, id uint64) error {
	if !caller.IsAdmin {
		return ErrForbidden
	}
	err := s.Items.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func checkLevels(levels []uint8) error {
	if len(levels) == 0 {
		return invalid("levels", "at least one level is required")
	}
	seen := map[uint8]bool{}
	for _, l := range levels {
		if l < utils.MinLevel || l > utils.MaxLevel {
			return invalid("levels", "level out of range")
		}
		if seen[l] {
			return invalid("levels", "duplicate level")
		}
		seen[l] = true
	}
	return nil
}

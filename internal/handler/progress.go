package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/model"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/service"
)

// ProgressHandler serves mastery and practice endpoints. All routes assume
// JWTAuth ran earlier in the chain.
type ProgressHandler struct {
	Progress *service.ProgressService
}

func NewProgressHandler(progress *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{Progress: progress}
}

type progressResp struct {
	ID               uint64     `json:"id"`
	VocabularyItemID uint64     `json:"vocabulary_item_id"`
	Level            uint8      `json:"level"`
	IsMastered       bool       `json:"is_mastered"`
	MasteredAt       *time.Time `json:"mastered_at,omitempty"`
	PracticeCount    int        `json:"practice_count"`
	CorrectCount     int        `json:"correct_count"`
	LastPracticedAt  *time.Time `json:"last_practiced_at,omitempty"`
}

func toProgressResp(p model.UserProgress) progressResp {
	return progressResp{
		ID:               p.ID,
		VocabularyItemID: p.VocabularyItemID,
		Level:            p.Level,
		IsMastered:       p.IsMastered,
		MasteredAt:       p.MasteredAt,
		PracticeCount:    p.PracticeCount,
		CorrectCount:     p.CorrectCount,
		LastPracticedAt:  p.LastPracticedAt,
	}
}

// Summary returns per-level totals plus the overall aggregate, optionally
// filtered to one level via ?year=.
func (h *ProgressHandler) Summary(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	level, err := queryLevel(c)
	if err != nil {
		return badYear(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	summary, err := h.Progress.Summary(ctx, u.ID, level)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// Mastered lists the ids of words the user has mastered at the given level.
func (h *ProgressHandler) Mastered(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	level, err := queryLevel(c)
	if err != nil || level == nil {
		return badYear(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	ids, err := h.Progress.MasteredIDs(ctx, u.ID, *level)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"vocabulary_item_ids": ids})
}

type markMasteredReq struct {
	VocabularyItemID uint64    `json:"vocabulary_item_id"`
	Year             yearField `json:"year"`
}

// MarkMastered records the learner's mastery assertion for one word.
func (h *ProgressHandler) MarkMastered(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req markMasteredReq
	if err := c.Bind(&req); err != nil || req.VocabularyItemID == 0 || !req.Year.Set {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "vocabulary_item_id and year required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	p, err := h.Progress.MarkMastered(ctx, u.ID, req.VocabularyItemID, req.Year.Level)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, toProgressResp(p))
}

// UnmarkMastered clears the mastery flag for one word. A word the user
// never touched is a silent no-op.
func (h *ProgressHandler) UnmarkMastered(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, okID := pathID(c)
	if !okID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	if err := h.Progress.UnmarkMastered(ctx, u.ID, id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type practiceReq struct {
	VocabularyItemID uint64    `json:"vocabulary_item_id"`
	Year             yearField `json:"year"`
	Correct          bool      `json:"correct"`
}

// RecordPractice bumps the practice counters for one word.
func (h *ProgressHandler) RecordPractice(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req practiceReq
	if err := c.Bind(&req); err != nil || req.VocabularyItemID == 0 || !req.Year.Set {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "vocabulary_item_id and year required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	p, err := h.Progress.RecordPractice(ctx, u.ID, req.VocabularyItemID, req.Year.Level, req.Correct)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toProgressResp(p))
}

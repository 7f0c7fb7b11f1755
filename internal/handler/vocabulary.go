package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/config"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/middleware"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/model"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/service"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/utils"
)

// VocabularyHandler serves the corpus endpoints. Admin mutations purge the
// Redis response cache so list and detail reads never serve a stale corpus.
type VocabularyHandler struct {
	Vocab    *service.VocabularyService
	CacheCfg config.CacheConfig
	RDB      *redis.Client
}

func NewVocabularyHandler(vocab *service.VocabularyService, cacheCfg config.CacheConfig, rdb *redis.Client) *VocabularyHandler {
	return &VocabularyHandler{Vocab: vocab, CacheCfg: cacheCfg, RDB: rdb}
}

// ----- DTOs -----

type itemResp struct {
	ID        uint64    `json:"id"`
	Word      string    `json:"word"`
	Meaning   string    `json:"meaning"`
	Synonyms  []string  `json:"synonyms"`
	Antonyms  []string  `json:"antonyms"`
	Examples  []string  `json:"examples"`
	Levels    []uint8   `json:"levels"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toItemResp(it model.VocabularyItem) itemResp {
	return itemResp{
		ID: it.ID, Word: it.Word, Meaning: it.Meaning,
		Synonyms: it.Synonyms, Antonyms: it.Antonyms, Examples: it.Examples,
		Levels: it.Levels, CreatedAt: it.CreatedAt, UpdatedAt: it.UpdatedAt,
	}
}

type pageResp struct {
	Items []itemResp `json:"items"`
	Total int        `json:"total"`
	Skip  int        `json:"skip"`
	Limit int        `json:"limit"`
}

func toPageResp(p *service.Page) pageResp {
	out := pageResp{Items: make([]itemResp, 0, len(p.Items)), Total: p.Total, Skip: p.Skip, Limit: p.Limit}
	for _, it := range p.Items {
		out.Items = append(out.Items, toItemResp(it))
	}
	return out
}

type createItemReq struct {
	Word     string      `json:"word"`
	Meaning  string      `json:"meaning"`
	Synonyms []string    `json:"synonyms"`
	Antonyms []string    `json:"antonyms"`
	Examples []string    `json:"examples"`
	Levels   []yearField `json:"levels"`
}

type updateItemReq struct {
	Word     *string      `json:"word"`
	Meaning  *string      `json:"meaning"`
	Synonyms *[]string    `json:"synonyms"`
	Antonyms *[]string    `json:"antonyms"`
	Examples *[]string    `json:"examples"`
	Levels   *[]yearField `json:"levels"`
}

func levelsOf(fields []yearField) []uint8 {
	out := make([]uint8, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Level)
	}
	return out
}

// List returns one page of the corpus with optional level filter and
// case-insensitive search over word and meaning.
func (h *VocabularyHandler) List(c echo.Context) error {
	level, err := queryLevel(c)
	if err != nil {
		return badYear(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	page, err := h.Vocab.List(ctx, level, c.QueryParam("search"),
		queryInt(c, "skip", 0), queryInt(c, "limit", 0))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toPageResp(page))
}

// Flashcards is the list endpoint with a small default page size, meant for
// card-by-card browsing of one level.
func (h *VocabularyHandler) Flashcards(c echo.Context) error {
	level, err := queryLevel(c)
	if err != nil {
		return badYear(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	page, err := h.Vocab.List(ctx, level, "", queryInt(c, "skip", 0), queryInt(c, "limit", 5))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toPageResp(page))
}

// Get returns one item by id.
func (h *VocabularyHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	it, err := h.Vocab.Get(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toItemResp(it))
}

// Create inserts a new word (admin only).
func (h *VocabularyHandler) Create(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	it, err := h.Vocab.Create(ctx, u, service.CreateInput{
		Word: req.Word, Meaning: req.Meaning,
		Synonyms: req.Synonyms, Antonyms: req.Antonyms, Examples: req.Examples,
		Levels: levelsOf(req.Levels),
	})
	if err != nil {
		return fail(c, err)
	}
	h.purgeCache(c)
	return c.JSON(http.StatusCreated, toItemResp(it))
}

// Update applies a partial update (admin only).
func (h *VocabularyHandler) Update(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, okID := pathID(c)
	if !okID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	in := service.UpdateInput{
		Word: req.Word, Meaning: req.Meaning,
		Synonyms: req.Synonyms, Antonyms: req.Antonyms, Examples: req.Examples,
	}
	if req.Levels != nil {
		levels := levelsOf(*req.Levels)
		in.Levels = &levels
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	it, err := h.Vocab.Update(ctx, u, id, in)
	if err != nil {
		return fail(c, err)
	}
	h.purgeCache(c)
	return c.JSON(http.StatusOK, toItemResp(it))
}

// Delete removes an item and everything hanging off it (admin only).
func (h *VocabularyHandler) Delete(c echo.Context) error {
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

	if err := h.Vocab.Delete(ctx, u, id); err != nil {
		return fail(c, err)
	}
	h.purgeCache(c)
	return c.NoContent(http.StatusNoContent)
}

func (h *VocabularyHandler) purgeCache(c echo.Context) {
	if err := middleware.InvalidateCache(c.Request().Context(), h.CacheCfg, h.RDB); err != nil {
		log.Printf("cache invalidate failed: %v", err)
	}
}

// Years enumerates the level tags with their legacy year aliases.
type LevelHandler struct {
	Levels interface {
		List(ctx context.Context) ([]model.Level, error)
	}
}

func (h *LevelHandler) Years(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	levels, err := h.Levels.List(ctx)
	if err != nil {
		return fail(c, err)
	}
	type yearResp struct {
		Level       uint8  `json:"level"`
		Code        string `json:"code"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	out := make([]yearResp, 0, len(levels))
	for _, l := range levels {
		out = append(out, yearResp{
			Level: l.ID, Code: utils.YearCode(l.ID),
			Name: l.Name, Description: l.Description,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"years": out})
}

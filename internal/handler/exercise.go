package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/service"
)

// ExerciseHandler serves quiz and sentence-exercise generation and
// submission.
type ExerciseHandler struct {
	Exercises *service.ExerciseService
}

func NewExerciseHandler(exercises *service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{Exercises: exercises}
}

type generateQuizReq struct {
	QuestionCount int        `json:"question_count"`
	Year          *yearField `json:"year"`
}

// GenerateQuiz builds a meaning quiz from the user's mastered words. An
// empty mastered set yields an empty quiz with a fresh id.
func (h *ExerciseHandler) GenerateQuiz(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req generateQuizReq
	_ = c.Bind(&req) // empty body allowed
	var level *uint8
	if req.Year != nil && req.Year.Set {
		level = &req.Year.Level
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	quiz, err := h.Exercises.GenerateQuiz(ctx, u.ID, level, req.QuestionCount)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, quiz)
}

type submitReq struct {
	QuizID     string           `json:"quiz_id"`
	ExerciseID string           `json:"exercise_id"`
	Answers    []service.Answer `json:"answers"`
}

func (r submitReq) sessionID() string {
	if r.QuizID != "" {
		return r.QuizID
	}
	return r.ExerciseID
}

// SubmitQuiz grades a meaning-quiz submission against its stored session.
func (h *ExerciseHandler) SubmitQuiz(c echo.Context) error {
	var req submitReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.sessionID()) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quiz_id required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	result, err := h.Exercises.SubmitQuiz(ctx, req.sessionID(), req.Answers)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

type generateSentencesReq struct {
	Year          yearField `json:"year"`
	QuestionCount int       `json:"question_count"`
}

// GenerateSentences builds a fill-in-the-blank exercise over the full
// vocabulary of one level.
func (h *ExerciseHandler) GenerateSentences(c echo.Context) error {
	var req generateSentencesReq
	if err := c.Bind(&req); err != nil || !req.Year.Set {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "year required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	ex, err := h.Exercises.GenerateSentences(ctx, req.Year.Level, req.QuestionCount)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, ex)
}

// SubmitSentences grades a sentence-exercise submission.
func (h *ExerciseHandler) SubmitSentences(c echo.Context) error {
	var req submitReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.sessionID()) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "exercise_id required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	result, err := h.Exercises.SubmitSentences(ctx, req.sessionID(), req.Answers)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/model"
)

// fakeExerciseItems serves items by level and by id.
type fakeExerciseItems struct {
	items map[uint64]model.VocabularyItem
}

func (f *fakeExerciseItems) ListByLevel(_ context.Context, level uint8) ([]model.VocabularyItem, error) {
	var out []model.VocabularyItem
	for _, it := range f.items {
		for _, l := range it.Levels {
			if l == level {
				out = append(out, it)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeExerciseItems) ListByIDs(_ context.Context, ids []uint64) ([]model.VocabularyItem, error) {
	var out []model.VocabularyItem
	for _, id := range ids {
		if it, ok := f.items[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

// fakeMastered returns a fixed id set per level.
type fakeMastered struct {
	byLevel map[uint8][]uint64
}

func (f *fakeMastered) MasteredItemIDs(_ context.Context, _ uint64, level uint8) ([]uint64, error) {
	return f.byLevel[level], nil
}

// fakeSentenceBank returns pre-written blank sentences per item.
type fakeSentenceBank struct {
	byItem map[uint64][]model.QuizSentence
}

func (f *fakeSentenceBank) ListByItemIDs(_ context.Context, ids []uint64) (map[uint64][]model.QuizSentence, error) {
	out := map[uint64][]model.QuizSentence{}
	for _, id := range ids {
		if ss, ok := f.byItem[id]; ok {
			out[id] = ss
		}
	}
	return out, nil
}

func newTestExerciseService() *ExerciseService {
	items := &fakeExerciseItems{items: map[uint64]model.VocabularyItem{
		1: {ID: 1, Word: "ocean", Meaning: "a very large sea", Levels: []uint8{1}, Examples: []string{"The ocean is deep."}},
		2: {ID: 2, Word: "forest", Meaning: "land covered with trees", Levels: []uint8{1}},
		3: {ID: 3, Word: "desert", Meaning: "dry sandy land", Levels: []uint8{1, 2}},
		4: {ID: 4, Word: "valley", Meaning: "low land between hills", Levels: []uint8{2}},
	}}
	mastered := &fakeMastered{byLevel: map[uint8][]uint64{
		1: {1, 2, 3},
		2: {3, 4}, // 3 is mastered under both levels
	}}
	bank := &fakeSentenceBank{byItem: map[uint64][]model.QuizSentence{
		2: {{ID: 100, VocabularyItemID: 2, Sentence: "A " + model.BlankMarker + " has many trees."}},
		3: {{ID: 101, VocabularyItemID: 3, Sentence: "The " + model.BlankMarker + " is hot."}},
	}}
	// nil Redis client: sessions are disabled, generation still works.
	return NewExerciseService(items, mastered, bank, NewSessionStore(nil))
}

func TestExerciseService_GenerateQuizSingleLevel(t *testing.T) {
	t.Parallel()

	svc := newTestExerciseService()
	level := uint8(2)
	quiz, err := svc.GenerateQuiz(context.Background(), 1, &level, 10)
	require.NoError(t, err)
	require.NotEmpty(t, quiz.QuizID)
	require.Len(t, quiz.Questions, 2, "only mastered words of the level qualify")

	for _, q := range quiz.Questions {
		require.Contains(t, []uint64{3, 4}, q.VocabularyItemID)
	}
}

func TestExerciseService_GenerateQuizAllLevels(t *testing.T) {
	t.Parallel()

	svc := newTestExerciseService()
	quiz, err := svc.GenerateQuiz(context.Background(), 1, nil, 10)
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 4, "union across levels deduplicates item 3")
}

func TestExerciseService_GenerateQuizNoMasteredWords(t *testing.T) {
	t.Parallel()

	svc := newTestExerciseService()
	level := uint8(4)
	quiz, err := svc.GenerateQuiz(context.Background(), 1, &level, 10)
	require.NoError(t, err)
	require.NotEmpty(t, quiz.QuizID)
	require.Empty(t, quiz.Questions)
}

func TestExerciseService_GenerateSentences(t *testing.T) {
	t.Parallel()

	svc := newTestExerciseService()
	ex, err := svc.GenerateSentences(context.Background(), 1, 10)
	require.NoError(t, err)

	// Level 1 holds items 1..3; item 1 has an example sentence, 2 and 3 have
	// bank sentences, so all three are usable.
	require.Len(t, ex.Questions, 3)
	for _, q := range ex.Questions {
		require.Contains(t, q.Display, model.BlankMarker)
		require.NotContains(t, strings.ToLower(q.Display), strings.ToLower(q.Word))
		require.Equal(t, q.Word, q.Options[q.CorrectIndex])
	}
}

func TestExerciseService_GenerateSentencesSkipsWordsWithoutSentences(t *testing.T) {
	t.Parallel()

	svc := newTestExerciseService()
	ex, err := svc.GenerateSentences(context.Background(), 2, 10)
	require.NoError(t, err)

	// Level 2 holds items 3 and 4; only 3 has a sentence.
	require.Len(t, ex.Questions, 1)
	require.Equal(t, uint64(3), ex.Questions[0].VocabularyItemID)
	require.Equal(t, "The _____ is hot.", ex.Questions[0].Display)
	require.Equal(t, "The {word} is hot.", ex.Questions[0].Template)
}

func TestExerciseService_SubmitWithoutSession(t *testing.T) {
	t.Parallel()

	svc := newTestExerciseService()
	res, err := svc.SubmitQuiz(context.Background(), "unknown-session", []Answer{
		{QuestionID: "q1", SelectedIndex: 0},
	})
	require.NoError(t, err)
	require.Equal(t, "unknown-session", res.SessionID)
	require.Zero(t, res.TotalQuestions)
	require.Zero(t, res.CorrectAnswers)
	require.Zero(t, res.Score)
	require.Empty(t, res.Results)
}

func TestGradeSession(t *testing.T) {
	t.Parallel()

	sess := &session{Kind: "quiz", Answers: map[string]sessionAnswer{
		"q1": {VocabularyItemID: 1, CorrectIndex: 2},
		"q2": {VocabularyItemID: 2, CorrectIndex: 0},
		"q3": {VocabularyItemID: 3, CorrectIndex: 1},
	}}
	res := gradeSession(sess, "sid", []Answer{
		{QuestionID: "q1", SelectedIndex: 2}, // correct
		{QuestionID: "q2", SelectedIndex: 3}, // wrong
		{QuestionID: "zz", SelectedIndex: 0}, // unknown question, ignored
	})
	require.Equal(t, "sid", res.SessionID)
	require.Equal(t, 3, res.TotalQuestions, "unanswered questions still count toward the total")
	require.Equal(t, 1, res.CorrectAnswers)
	require.InDelta(t, 33.333, res.Score, 0.01)
	require.Len(t, res.Results, 2)
	require.True(t, res.Results[0].Correct)
	require.False(t, res.Results[1].Correct)
}

func TestGradeSession_RepeatedQuestionGradesOnce(t *testing.T) {
	t.Parallel()

	sess := &session{Kind: "quiz", Answers: map[string]sessionAnswer{
		"q1": {VocabularyItemID: 1, CorrectIndex: 2},
		"q2": {VocabularyItemID: 2, CorrectIndex: 0},
	}}
	res := gradeSession(sess, "sid", []Answer{
		{QuestionID: "q1", SelectedIndex: 2},
		{QuestionID: "q1", SelectedIndex: 2},
		{QuestionID: "q1", SelectedIndex: 2},
	})
	require.Equal(t, 2, res.TotalQuestions)
	require.Equal(t, 1, res.CorrectAnswers, "a repeated answer must not inflate the score")
	require.InDelta(t, 50.0, res.Score, 0.0001)
	require.Len(t, res.Results, 1)
}

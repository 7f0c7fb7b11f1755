package service

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/model"
	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/utils"
)

// ExerciseItems is the vocabulary view the exercise service needs.
type ExerciseItems interface {
	ListByLevel(ctx context.Context, level uint8) ([]model.VocabularyItem, error)
	ListByIDs(ctx context.Context, ids []uint64) ([]model.VocabularyItem, error)
}

// MasteredLookup supplies the mastered word ids a meaning quiz draws from.
type MasteredLookup interface {
	MasteredItemIDs(ctx context.Context, userID uint64, level uint8) ([]uint64, error)
}

// SentenceBank supplies the pre-written blank sentences per item.
type SentenceBank interface {
	ListByItemIDs(ctx context.Context, ids []uint64) (map[uint64][]model.QuizSentence, error)
}

// ExerciseService builds meaning quizzes and sentence-blank exercises and
// grades submissions against Redis-held sessions.
type ExerciseService struct {
	Items     ExerciseItems
	Mastered  MasteredLookup
	Sentences SentenceBank
	Sessions  *SessionStore
}

func NewExerciseService(items ExerciseItems, mastered MasteredLookup, sentences SentenceBank, sessions *SessionStore) *ExerciseService {
	return &ExerciseService{Items: items, Mastered: mastered, Sentences: sentences, Sessions: sessions}
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// GenerateQuiz samples the user's mastered words (for one level, or across
// all levels when level is nil) and builds a meaning quiz. An empty mastered
// set yields an empty quiz with a fresh identifier.
func (s *ExerciseService) GenerateQuiz(ctx context.Context, userID uint64, level *uint8, count int) (*Quiz, error) {
	var ids []uint64
	if level != nil {
		var err error
		ids, err = s.Mastered.MasteredItemIDs(ctx, userID, *level)
		if err != nil {
			return nil, err
		}
	} else {
		seen := map[uint64]bool{}
		for lvl := uint8(utils.MinLevel); lvl <= utils.MaxLevel; lvl++ {
			levelIDs, err := s.Mastered.MasteredItemIDs(ctx, userID, lvl)
			if err != nil {
				return nil, err
			}
			for _, id := range levelIDs {
				if !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
		}
	}

	words, err := s.Items.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	quiz := GenerateMeaningQuiz(newRand(), words, count)
	if err := s.saveQuizSession(ctx, quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (s *ExerciseService) saveQuizSession(ctx context.Context, quiz Quiz) error {
	sess := session{Kind: "quiz", Answers: map[string]sessionAnswer{}}
	for _, q := range quiz.Questions {
		sess.Answers[q.ID] = sessionAnswer{VocabularyItemID: q.VocabularyItemID, CorrectIndex: q.CorrectIndex}
	}
	return s.Sessions.Save(ctx, quiz.QuizID, sess)
}

// GenerateSentences builds a sentence-blank exercise over the full
// vocabulary of one level (not restricted to mastered words). Candidate
// sentences come from the pre-written bank first, falling back to the
// item's own example sentences; words without any sentence are filtered
// out.
func (s *ExerciseService) GenerateSentences(ctx context.Context, level uint8, count int) (*SentenceExercise, error) {
	items, err := s.Items.ListByLevel(ctx, level)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	bank, err := s.Sentences.ListByItemIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	words := make([]SentenceWord, 0, len(items))
	for _, it := range items {
		sentences := make([]string, 0, len(bank[it.ID])+len(it.Examples))
		// Bank sentences store the blank marker; restore the word so the
		// generator sees every candidate in raw form.
		for _, qs := range bank[it.ID] {
			sentences = append(sentences, strings.ReplaceAll(qs.Sentence, model.BlankMarker, it.Word))
		}
		sentences = append(sentences, it.Examples...)
		words = append(words, SentenceWord{Item: it, Sentences: sentences})
	}

	ex := GenerateSentenceExercise(newRand(), words, count)
	sess := session{Kind: "sentences", Answers: map[string]sessionAnswer{}}
	for _, q := range ex.Questions {
		sess.Answers[q.ID] = sessionAnswer{VocabularyItemID: q.VocabularyItemID, CorrectIndex: q.CorrectIndex}
	}
	if err := s.Sessions.Save(ctx, ex.ExerciseID, sess); err != nil {
		return nil, err
	}
	return &ex, nil
}

// Answer is one submitted selection.
type Answer struct {
	QuestionID    string `json:"question_id"`
	SelectedIndex int    `json:"selected_index"`
}

// AnswerResult grades one question of a submission.
type AnswerResult struct {
	QuestionID       string `json:"question_id"`
	VocabularyItemID uint64 `json:"vocabulary_item_id"`
	SelectedIndex    int    `json:"selected_index"`
	CorrectIndex     int    `json:"correct_index"`
	Correct          bool   `json:"correct"`
}

// SubmitResult is the graded outcome of a submission. An unknown or expired
// session produces the zeroed result.
type SubmitResult struct {
	SessionID      string         `json:"session_id"`
	TotalQuestions int            `json:"total_questions"`
	CorrectAnswers int            `json:"correct_answers"`
	Score          float64        `json:"score"`
	Results        []AnswerResult `json:"results"`
}

// SubmitQuiz grades a meaning-quiz submission.
func (s *ExerciseService) SubmitQuiz(ctx context.Context, sessionID string, answers []Answer) (*SubmitResult, error) {
	return s.submit(ctx, "quiz", sessionID, answers)
}

// SubmitSentences grades a sentence-exercise submission.
func (s *ExerciseService) SubmitSentences(ctx context.Context, sessionID string, answers []Answer) (*SubmitResult, error) {
	return s.submit(ctx, "sentences", sessionID, answers)
}

func (s *ExerciseService) submit(ctx context.Context, kind, sessionID string, answers []Answer) (*SubmitResult, error) {
	sess, err := s.Sessions.Take(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.Kind != kind {
		// No session to grade against; stateless zero-scored fallback.
		return &SubmitResult{SessionID: sessionID, Results: []AnswerResult{}}, nil
	}
	return gradeSession(sess, sessionID, answers), nil
}

// gradeSession scores a submission against the stored answer key. Answers to
// unknown question ids are dropped, a question grades at most once no matter
// how often it appears in the submission, and unanswered questions count as
// wrong.
func gradeSession(sess *session, sessionID string, answers []Answer) *SubmitResult {
	out := &SubmitResult{SessionID: sessionID, Results: []AnswerResult{}}
	out.TotalQuestions = len(sess.Answers)
	for _, a := range answers {
		key, ok := sess.Answers[a.QuestionID]
		if !ok {
			continue
		}
		delete(sess.Answers, a.QuestionID)
		res := AnswerResult{
			QuestionID:       a.QuestionID,
			VocabularyItemID: key.VocabularyItemID,
			SelectedIndex:    a.SelectedIndex,
			CorrectIndex:     key.CorrectIndex,
			Correct:          a.SelectedIndex == key.CorrectIndex,
		}
		if res.Correct {
			out.CorrectAnswers++
		}
		out.Results = append(out.Results, res)
	}
	if out.TotalQuestions > 0 {
		out.Score = float64(out.CorrectAnswers) / float64(out.TotalQuestions) * 100
	}
	return out
}

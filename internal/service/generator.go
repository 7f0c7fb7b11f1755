package service

import (
	"math/rand"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/shakirali/vocabularyWizardAPI-sub000/internal/model"
)

// The exercise generators operate purely in memory over the materialised
// word set supplied by the caller. Nothing is persisted here; identifiers
// are fresh per request.

// QuizQuestion is one multiple-choice meaning question. Exactly one option
// equals the word's meaning and CorrectIndex points at it.
type QuizQuestion struct {
	ID               string   `json:"id"`
	VocabularyItemID uint64   `json:"vocabulary_item_id"`
	Word             string   `json:"word"`
	Options          []string `json:"options"`
	CorrectIndex     int      `json:"correct_index"`
}

// Quiz is a generated meaning quiz with a fresh session identifier.
type Quiz struct {
	QuizID    string         `json:"quiz_id"`
	Questions []QuizQuestion `json:"questions"`
}

// GenerateMeaningQuiz builds up to count four-option questions from the
// given words. Distractors are meanings sampled without replacement from
// the other provided words; when fewer than three exist the option list is
// simply shorter. A zero or negative count uses every word.
func GenerateMeaningQuiz(rnd *rand.Rand, words []model.VocabularyItem, count int) Quiz {
	quiz := Quiz{QuizID: uuid.NewString(), Questions: []QuizQuestion{}}
	if len(words) == 0 {
		return quiz
	}
	selected := sampleItems(rnd, words, count)

	for _, w := range selected {
		distractors := pickDistractors(rnd, words, w, func(it model.VocabularyItem) string { return it.Meaning })
		options := append(distractors, w.Meaning)
		correct := len(options) - 1
		correct = shuffleTracking(rnd, options, correct)

		quiz.Questions = append(quiz.Questions, QuizQuestion{
			ID:               uuid.NewString(),
			VocabularyItemID: w.ID,
			Word:             w.Word,
			Options:          options,
			CorrectIndex:     correct,
		})
	}
	return quiz
}

// SentenceWord pairs a vocabulary item with its candidate sentences in raw
// form, i.e. containing the target word (bank sentences have their blank
// marker substituted back before reaching the generator).
type SentenceWord struct {
	Item      model.VocabularyItem
	Sentences []string
}

// SentenceQuestion is one fill-in-the-blank question. Template carries the
// machine placeholder, Display the literal blank marker; both replace every
// occurrence of the word.
type SentenceQuestion struct {
	ID               string   `json:"id"`
	VocabularyItemID uint64   `json:"vocabulary_item_id"`
	Template         string   `json:"template"`
	Display          string   `json:"display"`
	Word             string   `json:"word"`
	Options          []string `json:"options"`
	CorrectIndex     int      `json:"correct_index"`
}

// SentenceExercise is a generated sentence-blank exercise.
type SentenceExercise struct {
	ExerciseID string             `json:"exercise_id"`
	Questions  []SentenceQuestion `json:"questions"`
}

// placeholder is the machine-readable slot token used in templates.
const placeholder = "{word}"

// GenerateSentenceExercise filters to words with at least one sentence,
// samples words and one sentence per word, and builds four-option questions
// whose options are words (the target plus three distractor words).
func GenerateSentenceExercise(rnd *rand.Rand, words []SentenceWord, count int) SentenceExercise {
	ex := SentenceExercise{ExerciseID: uuid.NewString(), Questions: []SentenceQuestion{}}
	usable := make([]SentenceWord, 0, len(words))
	for _, w := range words {
		if len(w.Sentences) > 0 {
			usable = append(usable, w)
		}
	}
	if len(usable) == 0 {
		return ex
	}
	selected := sampleSentenceWords(rnd, usable, count)

	for _, w := range selected {
		sentence := w.Sentences[rnd.Intn(len(w.Sentences))]

		items := make([]model.VocabularyItem, len(usable))
		for i, u := range usable {
			items[i] = u.Item
		}
		distractors := pickDistractors(rnd, items, w.Item, func(it model.VocabularyItem) string { return it.Word })
		options := append(distractors, w.Item.Word)
		correct := len(options) - 1
		correct = shuffleTracking(rnd, options, correct)

		ex.Questions = append(ex.Questions, SentenceQuestion{
			ID:               uuid.NewString(),
			VocabularyItemID: w.Item.ID,
			Template:         replaceWord(sentence, w.Item.Word, placeholder),
			Display:          replaceWord(sentence, w.Item.Word, model.BlankMarker),
			Word:             w.Item.Word,
			Options:          options,
			CorrectIndex:     correct,
		})
	}
	return ex
}

// sampleItems returns min(count, len(words)) words drawn uniformly without
// replacement; count <= 0 selects all of them.
func sampleItems(rnd *rand.Rand, words []model.VocabularyItem, count int) []model.VocabularyItem {
	out := make([]model.VocabularyItem, len(words))
	copy(out, words)
	rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if count > 0 && count < len(out) {
		out = out[:count]
	}
	return out
}

func sampleSentenceWords(rnd *rand.Rand, words []SentenceWord, count int) []SentenceWord {
	out := make([]SentenceWord, len(words))
	copy(out, words)
	rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if count > 0 && count < len(out) {
		out = out[:count]
	}
	return out
}

// pickDistractors samples up to three values from the other provided words,
// skipping the target itself and anything equal to the target's own value
// so a question can never contain two correct options.
func pickDistractors(rnd *rand.Rand, pool []model.VocabularyItem, target model.VocabularyItem, value func(model.VocabularyItem) string) []string {
	correct := value(target)
	candidates := make([]string, 0, len(pool))
	seen := map[string]bool{}
	for _, it := range pool {
		v := value(it)
		if it.ID == target.ID || v == correct || seen[v] {
			continue
		}
		seen[v] = true
		candidates = append(candidates, v)
	}
	rnd.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
	if len(candidates) > 3 {
		candidates = candidates[:3]
	}
	return candidates
}

// shuffleTracking shuffles options in place while tracking where the
// correct entry lands.
func shuffleTracking(rnd *rand.Rand, options []string, correct int) int {
	rnd.Shuffle(len(options), func(i, j int) {
		if i == correct {
			correct = j
		} else if j == correct {
			correct = i
		}
		options[i], options[j] = options[j], options[i]
	})
	return correct
}

// replaceWord substitutes every case-insensitive occurrence of word in
// sentence with repl. The number of substitutions in Template and Display
// is identical by construction. Matching walks the sentence rune by rune:
// lowering the whole string first would shift byte offsets for runes whose
// UTF-8 length changes under case mapping.
func replaceWord(sentence, word, repl string) string {
	if word == "" {
		return sentence
	}
	var b strings.Builder
	for i := 0; i < len(sentence); {
		if n, ok := foldPrefix(sentence[i:], word); ok {
			b.WriteString(repl)
			i += n
			continue
		}
		_, size := utf8.DecodeRuneInString(sentence[i:])
		b.WriteString(sentence[i : i+size])
		i += size
	}
	return b.String()
}

// foldPrefix reports whether s starts with a case-insensitive match of word
// and returns the byte length of the matched prefix in s.
func foldPrefix(s, word string) (int, bool) {
	n := 0
	for _, wr := range word {
		sr, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 || unicode.ToLower(sr) != unicode.ToLower(wr) {
			return 0, false
		}
		n += size
	}
	return n, true
}

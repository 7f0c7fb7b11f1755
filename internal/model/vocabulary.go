package model

import "time"

// Level is one of the four fixed difficulty tiers. Rows are created once at
// bootstrap and never mutated. The legacy "yearN" spelling (year3..year6 for
// tiers 1..4) is accepted on input and translated by utils.ParseLevel.
//
// Fields:
//  ID          – numeric tier identifier (1..4).
//  Name        – display name of the tier.
//  Description – short description shown to learners.
type Level struct {
	ID          uint8  // levels.id
	Name        string // levels.name
	Description string // levels.description
}

// VocabularyItem is a single corpus entry. The word is unique
// case-insensitively across the corpus and always carries a non-empty
// meaning. Synonyms, antonyms and example sentences are ordered lists and
// may be empty. Levels holds the tier ids the item is associated with via
// the vocabulary_levels join table; an item always belongs to at least one
// level.
type VocabularyItem struct {
	ID        uint64    // vocabulary_items.id
	Word      string    // vocabulary_items.word
	Meaning   string    // vocabulary_items.meaning
	Synonyms  []string  // vocabulary_items.synonyms (JSON column)
	Antonyms  []string  // vocabulary_items.antonyms (JSON column)
	Examples  []string  // vocabulary_items.examples (JSON column)
	Levels    []uint8   // from vocabulary_levels join
	CreatedAt time.Time // vocabulary_items.created_at
	UpdatedAt time.Time // vocabulary_items.updated_at
}

// QuizSentence is a pre-written practice sentence for one vocabulary item.
// The stored text contains the literal blank marker `_____` in place of the
// word. Content preparation targets ten sentences per item but the service
// treats that as advisory, not a constraint.
type QuizSentence struct {
	ID               uint64 // quiz_sentences.id
	VocabularyItemID uint64 // quiz_sentences.vocabulary_item_id
	Sentence         string // quiz_sentences.sentence
}

// BlankMarker is the literal token that stands in for the target word in
// stored and displayed sentence exercises.
const BlankMarker = "_____"

// Package queue defines message payloads exchanged over the message broker.
package queue

// PracticeRecordedEvent is published when a learner practices or masters a
// word. It carries enough information for downstream consumers to log or
// feed analytics without querying the primary database.
type PracticeRecordedEvent struct {
	UserID           uint64 `json:"user_id"`
	VocabularyItemID uint64 `json:"vocabulary_item_id"`
	Word             string `json:"word"`
	Level            uint8  `json:"level"`
	Action           string `json:"action"` // "practice" or "mastered"
	Correct          bool   `json:"correct"`
	RecordedAt       string `json:"recorded_at"`
}

package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps generated exercise sessions in Redis so submissions
// can be graded server-side without touching the relational store. Sessions
// expire after TTL; a nil client disables the store and submissions then
// degrade to the zero-scored result.
type SessionStore struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{RDB: rdb, TTL: 30 * time.Minute}
}

// sessionKey carries the correct answer of one question.
type sessionAnswer struct {
	VocabularyItemID uint64 `json:"vocabulary_item_id"`
	CorrectIndex     int    `json:"correct_index"`
}

// session is the stored shape of a generated exercise.
type session struct {
	Kind    string                   `json:"kind"` // "quiz" or "sentences"
	Answers map[string]sessionAnswer `json:"answers"`
}

func sessionKey(id string) string { return "exercise:session:" + id }

// Save stores the session under its id. A nil client is a silent no-op.
func (s *SessionStore) Save(ctx context.Context, id string, sess session) error {
	if s == nil || s.RDB == nil {
		return nil
	}
	body, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.RDB.SetEx(ctx, sessionKey(id), body, s.TTL).Err()
}

// Take fetches and deletes the session in one round trip, so a session
// grades at most once. Missing or expired sessions return nil.
func (s *SessionStore) Take(ctx context.Context, id string) (*session, error) {
	if s == nil || s.RDB == nil {
		return nil, nil
	}
	body, err := s.RDB.GetDel(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sess session
	if err := json.Unmarshal(body, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

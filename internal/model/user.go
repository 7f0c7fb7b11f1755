package model

import "time"

// User represents a learner account as stored in the `users` table.
// Username and email are unique (case-sensitive on the stored value) and
// immutable after registration. TokenVersion is a monotonic counter embedded
// in every issued token; incrementing it orphans all outstanding tokens for
// the user (global logout).
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  Email        – unique email address.
//  FullName     – optional display name.
//  PasswordHash – bcrypt hashed password (never serialized to clients).
//  IsActive     – whether the account may authenticate.
//  IsAdmin      – whether the account may mutate the vocabulary corpus.
//  TokenVersion – counter compared against the `tv` claim at decode time.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	Email        string    // users.email
	FullName     string    // users.full_name
	PasswordHash string    // users.password_hash
	IsActive     bool      // users.is_active
	IsAdmin      bool      // users.is_admin
	TokenVersion int       // users.token_version
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

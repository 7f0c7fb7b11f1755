// Package repository implements the data access layer on top of MySQL.
// Sentinel errors declared here let the service layer distinguish failure
// scenarios without inspecting driver error strings.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrUsernameExists signals a unique-constraint collision on users.username.
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists signals a unique-constraint collision on users.email.
var ErrEmailExists = errors.New("email already exists")

// ErrWordExists signals a case-insensitive collision on vocabulary_items.word.
var ErrWordExists = errors.New("word already exists")

// isDuplicate reports whether err is a MySQL duplicate-entry error (1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

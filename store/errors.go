package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Failure taxonomy surfaced to handlers. Callers classify with errors.Is.
var (
	// ErrNotFound reports that a referenced entity or association is absent.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists reports a primary identity collision (username, email, slug).
	ErrAlreadyExists = errors.New("record already exists")
	// ErrDuplicateAssociation reports a unique-pair violation on an association row.
	ErrDuplicateAssociation = errors.New("association already exists")
	// ErrSelfFollow reports a rejected self-follow under the default policy.
	ErrSelfFollow = errors.New("cannot follow yourself")
	// ErrPermissionDenied reports that the actor does not own the target entity.
	ErrPermissionDenied = errors.New("permission denied")
)

// isDuplicateKey reports whether err is a unique-constraint violation from the
// storage layer. Uniqueness races between concurrent requests resolve here:
// the store rejects the second insert and we surface a typed error instead.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint")
}

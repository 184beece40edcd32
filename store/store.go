// Package store holds the relational core of the platform: entity
// persistence, the many-to-many association rules binding users, articles,
// tags, comments and favorites, and the viewer-dependent response
// projections assembled from them. Handlers stay thin; every rule that must
// hold across requests lives here.
package store

import "gorm.io/gorm"

// Store exposes entity, association and view operations over a gorm database.
type Store struct {
	db *gorm.DB

	// AllowSelfFollow permits a user to follow their own account. Off by
	// default; the product has not decided, so it is a policy knob.
	AllowSelfFollow bool
}

// New creates a Store bound to db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying gorm handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// transact runs fn inside a single transaction. Multi-step mutations roll
// back as one unit on any failure, so no partial state survives a mid
// sequence error.
func (s *Store) transact(fn func(tx *gorm.DB) error) error {
	return s.db.Transaction(fn)
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Collections served by the demo application
const (
	CollectionUsers         = "users"
	CollectionCollaborators = "collaborators"
)

// Record represents a named entry in one collection
type Record struct {
	ID         string    `json:"id"`
	Collection string    `json:"collection"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewRecord creates a record with a fresh ID and timestamps
func NewRecord(collection, name string) *Record {
	now := time.Now().UTC()
	return &Record{
		ID:         uuid.New().String(),
		Collection: collection,
		Name:       name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Rename updates the record name and touches UpdatedAt
func (r *Record) Rename(name string) {
	r.Name = name
	r.UpdatedAt = time.Now().UTC()
}

// IsValidCollection reports whether name is a known collection
func IsValidCollection(name string) bool {
	return name == CollectionUsers || name == CollectionCollaborators
}

package models

import (
	"time"
)

// DocumentStatus is the lifecycle state of a document.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "draft"
	StatusPublished DocumentStatus = "published"
	StatusArchived  DocumentStatus = "archived"
)

// Document is a single piece of writing owned by a user. Documents form a
// forest: ParentID is a weak reference (a document does not own its parent)
// and the parent chain must stay acyclic. Depth is the distance to the root
// ancestor (root = 0) and TreeOrder orders siblings.
type Document struct {
	ID             string         `json:"id" db:"id"`
	UserID         string         `json:"user_id" db:"user_id"`
	Title          string         `json:"title" db:"title"`
	Content        string         `json:"content" db:"content"`
	Status         DocumentStatus `json:"status" db:"status"`
	WordCount      int            `json:"word_count" db:"word_count"`
	CharacterCount int            `json:"character_count" db:"character_count"`
	ParentID       *string        `json:"parent_id" db:"parent_id"` // NULL = root
	Depth          int            `json:"depth" db:"depth"`
	TreeOrder      int            `json:"tree_order" db:"tree_order"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
	DeletedAt      *time.Time     `json:"deleted_at,omitempty" db:"deleted_at"`
}

package repositories

import (
	"context"

	"inkwell/internal/domain/models"
)

// DocumentRepository defines data access operations for documents.
// All reads exclude soft-deleted rows.
type DocumentRepository interface {
	// Create inserts a new document
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a document by ID, scoped to its owner
	GetByID(ctx context.Context, id, userID string) (*models.Document, error)

	// Update persists title, content, metrics and hierarchy fields
	Update(ctx context.Context, doc *models.Document) error

	// Delete soft-deletes a document. Children are not touched; their
	// parent_id is left dangling (documented limitation).
	Delete(ctx context.Context, id, userID string) error

	// ListByOwner lists all of a user's documents, newest first
	ListByOwner(ctx context.Context, userID string) ([]models.Document, error)

	// ListChildren lists documents whose parent is parentID, ordered by
	// tree_order ascending
	ListChildren(ctx context.Context, parentID, userID string) ([]models.Document, error)

	// ListTree lists all of a user's documents ordered by (depth, tree_order)
	// ascending - a breadth-first-by-level ordering
	ListTree(ctx context.Context, userID string) ([]models.Document, error)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// maxAncestorWalk bounds the ancestor-chain walk during cycle detection.
// The walk runs without a lock, so a concurrent re-parent higher up the
// chain could in theory still slip a cycle in after the check; the bound
// keeps even that corrupted state from hanging a request.
const maxAncestorWalk = 64

// TreeService maintains parent/child relationships, depth and sibling
// ordering for a user's documents.
type TreeService struct {
	docRepo   repositories.DocumentRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(
	docRepo repositories.DocumentRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) *TreeService {
	return &TreeService{
		docRepo:   docRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// SetParent links a document under a new parent. The operation is rejected
// with a CircularReferenceError when the parent is the document itself or
// any of its descendants; nothing is mutated on rejection.
//
// Depths of the document's existing descendants are NOT updated; their
// stored depth goes stale until they are re-parented themselves.
func (s *TreeService) SetParent(ctx context.Context, docID, parentID, userID string) (*models.Document, error) {
	var doc *models.Document

	// The load, cycle check and update run in a single transaction so the
	// checked ancestor chain is the one the link lands on.
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.docRepo.GetByID(ctx, docID, userID)
		if err != nil {
			return err
		}

		parent, err := s.docRepo.GetByID(ctx, parentID, userID)
		if err != nil {
			return err
		}

		if err := s.checkCycle(ctx, doc, parent, userID); err != nil {
			return err
		}

		doc.ParentID = &parent.ID
		doc.Depth = parent.Depth + 1

		if err := s.docRepo.Update(ctx, doc); err != nil {
			return fmt.Errorf("persist parent link: %w", err)
		}

		s.logger.Debug("document re-parented",
			"document_id", doc.ID,
			"parent_id", parent.ID,
			"depth", doc.Depth,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// checkCycle walks the ancestor chain upward from the candidate parent. If
// the walk reaches the document being re-parented, linking would close a
// cycle and the operation must be rejected.
func (s *TreeService) checkCycle(ctx context.Context, doc, parent *models.Document, userID string) error {
	current := parent
	for steps := 0; steps < maxAncestorWalk; steps++ {
		if current.ID == doc.ID {
			return &domain.CircularReferenceError{
				Message: fmt.Sprintf("document %s is an ancestor target of itself", doc.ID),
			}
		}
		if current.ParentID == nil {
			return nil
		}

		next, err := s.docRepo.GetByID(ctx, *current.ParentID, userID)
		if err != nil {
			// A dangling parent reference ends the chain; deletes do not
			// re-parent children, so this is a reachable state. Any other
			// failure must abort the walk: an unverified chain cannot be
			// declared acyclic.
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("walk ancestor chain: %w", err)
		}
		current = next
	}

	return &domain.CircularReferenceError{
		Message: fmt.Sprintf("ancestor chain of %s exceeds %d levels", parent.ID, maxAncestorWalk),
	}
}

// RemoveParent detaches a document from its parent and makes it a root.
func (s *TreeService) RemoveParent(ctx context.Context, docID, userID string) (*models.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, docID, userID)
	if err != nil {
		return nil, err
	}

	doc.ParentID = nil
	doc.Depth = 0

	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("clear parent link: %w", err)
	}

	return doc, nil
}

// ListChildren returns the direct children of a document ordered by
// tree_order ascending. The parent must exist and belong to the user.
func (s *TreeService) ListChildren(ctx context.Context, parentID, userID string) ([]models.Document, error) {
	if _, err := s.docRepo.GetByID(ctx, parentID, userID); err != nil {
		return nil, err
	}

	return s.docRepo.ListChildren(ctx, parentID, userID)
}

// ListTree returns all of a user's documents ordered primarily by depth and
// secondarily by tree_order - a breadth-first-by-level ordering rather than
// a pre-order traversal.
func (s *TreeService) ListTree(ctx context.Context, userID string) ([]models.Document, error) {
	return s.docRepo.ListTree(ctx, userID)
}

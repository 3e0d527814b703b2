package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discardWriter{}, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// memTxManager runs the function directly; the in-memory repos have no
// transaction semantics to attach.
type memTxManager struct{}

func (memTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

// memDocumentRepo is an in-memory DocumentRepository for service tests.
type memDocumentRepo struct {
	docs map[string]*models.Document
}

func newMemDocumentRepo() *memDocumentRepo {
	return &memDocumentRepo{docs: map[string]*models.Document{}}
}

func (r *memDocumentRepo) Create(ctx context.Context, doc *models.Document) error {
	copied := *doc
	r.docs[doc.ID] = &copied
	return nil
}

func (r *memDocumentRepo) GetByID(ctx context.Context, id, userID string) (*models.Document, error) {
	doc, ok := r.docs[id]
	if !ok || doc.UserID != userID || doc.DeletedAt != nil {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	copied := *doc
	return &copied, nil
}

func (r *memDocumentRepo) Update(ctx context.Context, doc *models.Document) error {
	stored, ok := r.docs[doc.ID]
	if !ok || stored.UserID != doc.UserID || stored.DeletedAt != nil {
		return fmt.Errorf("document %s: %w", doc.ID, domain.ErrNotFound)
	}
	copied := *doc
	copied.UpdatedAt = time.Now().UTC()
	r.docs[doc.ID] = &copied
	return nil
}

func (r *memDocumentRepo) Delete(ctx context.Context, id, userID string) error {
	doc, ok := r.docs[id]
	if !ok || doc.UserID != userID || doc.DeletedAt != nil {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	now := time.Now().UTC()
	doc.DeletedAt = &now
	return nil
}

func (r *memDocumentRepo) ListByOwner(ctx context.Context, userID string) ([]models.Document, error) {
	out := r.collect(func(d *models.Document) bool { return d.UserID == userID })
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memDocumentRepo) ListChildren(ctx context.Context, parentID, userID string) ([]models.Document, error) {
	out := r.collect(func(d *models.Document) bool {
		return d.UserID == userID && d.ParentID != nil && *d.ParentID == parentID
	})
	sort.Slice(out, func(i, j int) bool { return out[i].TreeOrder < out[j].TreeOrder })
	return out, nil
}

func (r *memDocumentRepo) ListTree(ctx context.Context, userID string) ([]models.Document, error) {
	out := r.collect(func(d *models.Document) bool { return d.UserID == userID })
	sort.Slice(out, func(i, j int) bool {
		if out[i].Depth != out[j].Depth {
			return out[i].Depth < out[j].Depth
		}
		return out[i].TreeOrder < out[j].TreeOrder
	})
	return out, nil
}

func (r *memDocumentRepo) collect(keep func(*models.Document) bool) []models.Document {
	out := []models.Document{}
	for _, doc := range r.docs {
		if doc.DeletedAt == nil && keep(doc) {
			out = append(out, *doc)
		}
	}
	return out
}

// memUserRepo is an in-memory UserRepository for resolver tests.
type memUserRepo struct {
	byEmail map[string]*models.User
	// forceConflict makes the next Create fail with ErrConflict after
	// inserting conflictWith, simulating a lost provisioning race.
	conflictWith *models.User
	creates      int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*models.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
	r.creates++
	if r.conflictWith != nil {
		r.byEmail[r.conflictWith.Email] = r.conflictWith
		r.conflictWith = nil
		return fmt.Errorf("user %s: %w", user.Email, domain.ErrConflict)
	}
	if _, exists := r.byEmail[user.Email]; exists {
		return fmt.Errorf("user %s: %w", user.Email, domain.ErrConflict)
	}
	copied := *user
	r.byEmail[user.Email] = &copied
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *models.User) error {
	stored, ok := r.byEmail[user.Email]
	if !ok {
		return fmt.Errorf("user %s: %w", user.ID, domain.ErrNotFound)
	}
	*stored = *user
	return nil
}

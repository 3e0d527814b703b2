package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
	"inkwell/internal/storage"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// maxUploadSize caps attached files at 5MB.
const maxUploadSize = 5 << 20

var allowedUploadTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

var allowedUploadExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// FileUpload is an optional attachment on document creation. Content is
// never extracted from it server-side; the document body is always the
// pre-extracted text the caller supplies.
type FileUpload struct {
	Data        []byte
	ContentType string
	Filename    string
}

// CreateDocumentRequest carries the fields for document creation.
type CreateDocumentRequest struct {
	Title   string
	Content string
	File    *FileUpload
}

// Validate checks the request fields
func (r CreateDocumentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, 500).Error("title must be at most 500 characters"),
		),
	)
}

// UpdateDocumentRequest carries the fields for document update.
type UpdateDocumentRequest struct {
	Title   string
	Content string
}

// Validate checks the request fields
func (r UpdateDocumentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, 500).Error("title must be at most 500 characters"),
		),
	)
}

// DocumentService implements document CRUD on top of the repository,
// content analyzer and storage uploader.
type DocumentService struct {
	docRepo  repositories.DocumentRepository
	analyzer *ContentAnalyzer
	uploader storage.Uploader
	logger   *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo repositories.DocumentRepository,
	analyzer *ContentAnalyzer,
	uploader storage.Uploader,
	logger *slog.Logger,
) *DocumentService {
	return &DocumentService{
		docRepo:  docRepo,
		analyzer: analyzer,
		uploader: uploader,
		logger:   logger,
	}
}

// Create validates the request, uploads the attachment when present, and
// persists a new draft with freshly computed metrics. The storage key is
// logged but not persisted; the document body is the caller-supplied text.
func (s *DocumentService) Create(ctx context.Context, userID string, req *CreateDocumentRequest) (*models.Document, error) {
	if err := req.Validate(); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	if req.File != nil {
		if err := validateUpload(req.File); err != nil {
			return nil, err
		}

		key, err := s.uploader.Upload(ctx, req.File.Data, req.File.ContentType, req.File.Filename)
		if err != nil {
			return nil, err
		}
		s.logger.Info("attachment uploaded", "user_id", userID, "key", key)
	}

	now := time.Now().UTC()
	doc := &models.Document{
		ID:             uuid.NewString(),
		UserID:         userID,
		Title:          req.Title,
		Content:        req.Content,
		Status:         models.StatusDraft,
		WordCount:      s.analyzer.CountWords(req.Content),
		CharacterCount: s.analyzer.CountCharacters(req.Content),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// Get retrieves a single document scoped to its owner.
func (s *DocumentService) Get(ctx context.Context, id, userID string) (*models.Document, error) {
	return s.docRepo.GetByID(ctx, id, userID)
}

// List returns all of a user's documents. Rows with a zero word count but
// non-blank content predate the metrics fields; their metrics are
// recomputed and persisted on the way out (lazy repair).
func (s *DocumentService) List(ctx context.Context, userID string) ([]models.Document, error) {
	docs, err := s.docRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range docs {
		doc := &docs[i]
		if doc.WordCount != 0 || strings.TrimSpace(doc.Content) == "" {
			continue
		}

		doc.WordCount = s.analyzer.CountWords(doc.Content)
		doc.CharacterCount = s.analyzer.CountCharacters(doc.Content)
		if err := s.docRepo.Update(ctx, doc); err != nil {
			// Repair is best-effort; the recomputed values still go to the caller
			s.logger.Warn("metrics repair failed", "document_id", doc.ID, "error", err)
		}
	}

	return docs, nil
}

// Update overwrites title and content and recomputes metrics.
func (s *DocumentService) Update(ctx context.Context, id, userID string, req *UpdateDocumentRequest) (*models.Document, error) {
	if err := req.Validate(); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	doc, err := s.docRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	doc.Title = req.Title
	doc.Content = req.Content
	doc.WordCount = s.analyzer.CountWords(req.Content)
	doc.CharacterCount = s.analyzer.CountCharacters(req.Content)

	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// Delete soft-deletes a document. Children are not re-parented or deleted;
// their parent reference dangles until they are moved.
func (s *DocumentService) Delete(ctx context.Context, id, userID string) error {
	return s.docRepo.Delete(ctx, id, userID)
}

func validateUpload(file *FileUpload) error {
	if len(file.Data) == 0 {
		return &domain.ValidationError{Message: "file cannot be empty"}
	}
	if len(file.Data) > maxUploadSize {
		return &domain.ValidationError{Message: "file size exceeds the 5MB limit"}
	}
	if !allowedUploadTypes[strings.ToLower(file.ContentType)] {
		return &domain.ValidationError{Message: "file type not supported, only PDF and DOC/DOCX are allowed"}
	}
	if file.Filename != "" {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedUploadExtensions[ext] {
			return &domain.ValidationError{Message: fmt.Sprintf("file extension %q not supported", ext)}
		}
	}
	return nil
}

package service

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	uploads int
	lastKey string
	err     error
}

func (u *fakeUploader) Upload(ctx context.Context, data []byte, contentType, suggestedName string) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.uploads++
	u.lastKey = "key-" + suggestedName
	return u.lastKey, nil
}

func newDocService(repo *memDocumentRepo, uploader *fakeUploader) *DocumentService {
	return NewDocumentService(repo, NewContentAnalyzer(), uploader, discardLogger())
}

func TestCreateComputesMetrics(t *testing.T) {
	repo := newMemDocumentRepo()
	svc := newDocService(repo, &fakeUploader{})

	doc, err := svc.Create(context.Background(), "user-1", &CreateDocumentRequest{
		Title:   "T",
		Content: "Hello world",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, doc.WordCount)
	assert.Equal(t, 10, doc.CharacterCount)
	assert.Equal(t, models.StatusDraft, doc.Status)
	assert.Equal(t, "user-1", doc.UserID)
	assert.NotEmpty(t, doc.ID)
}

func TestCreateValidatesTitle(t *testing.T) {
	repo := newMemDocumentRepo()
	svc := newDocService(repo, &fakeUploader{})

	_, err := svc.Create(context.Background(), "user-1", &CreateDocumentRequest{Title: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)

	long := make([]byte, 501)
	for i := range long {
		long[i] = 'x'
	}
	_, err = svc.Create(context.Background(), "user-1", &CreateDocumentRequest{Title: string(long)})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateUploadsAttachment(t *testing.T) {
	repo := newMemDocumentRepo()
	uploader := &fakeUploader{}
	svc := newDocService(repo, uploader)

	doc, err := svc.Create(context.Background(), "user-1", &CreateDocumentRequest{
		Title:   "With file",
		Content: "extracted text here.",
		File: &FileUpload{
			Data:        []byte("%PDF-1.4 ..."),
			ContentType: "application/pdf",
			Filename:    "essay.pdf",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, uploader.uploads)
	// The storage key is not persisted on the document
	assert.Equal(t, "extracted text here.", doc.Content)
}

func TestCreateRejectsBadUploads(t *testing.T) {
	repo := newMemDocumentRepo()
	uploader := &fakeUploader{}
	svc := newDocService(repo, uploader)

	tests := []struct {
		name string
		file *FileUpload
	}{
		{name: "empty file", file: &FileUpload{ContentType: "application/pdf", Filename: "a.pdf"}},
		{name: "oversized", file: &FileUpload{Data: make([]byte, maxUploadSize+1), ContentType: "application/pdf", Filename: "a.pdf"}},
		{name: "bad mime", file: &FileUpload{Data: []byte("x"), ContentType: "image/png", Filename: "a.png"}},
		{name: "bad extension", file: &FileUpload{Data: []byte("x"), ContentType: "application/pdf", Filename: "a.exe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "user-1", &CreateDocumentRequest{
				Title: "T", File: tt.file,
			})
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	assert.Zero(t, uploader.uploads)
}

func TestCreateStorageFailureSurfacesServiceUnavailable(t *testing.T) {
	repo := newMemDocumentRepo()
	uploader := &fakeUploader{err: &domain.ServiceUnavailableError{Message: "storage down"}}
	svc := newDocService(repo, uploader)

	_, err := svc.Create(context.Background(), "user-1", &CreateDocumentRequest{
		Title: "T",
		File:  &FileUpload{Data: []byte("x"), ContentType: "application/pdf", Filename: "a.pdf"},
	})
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}

func TestUpdateRecomputesMetrics(t *testing.T) {
	repo := newMemDocumentRepo()
	svc := newDocService(repo, &fakeUploader{})

	doc, err := svc.Create(context.Background(), "user-1", &CreateDocumentRequest{
		Title: "T", Content: "one two",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), doc.ID, "user-1", &UpdateDocumentRequest{
		Title:   "T2",
		Content: "one two three four",
	})
	require.NoError(t, err)

	assert.Equal(t, 4, updated.WordCount)
	assert.Equal(t, 15, updated.CharacterCount)
	assert.Equal(t, "T2", updated.Title)
}

func TestListRepairsStaleMetrics(t *testing.T) {
	repo := newMemDocumentRepo()
	svc := newDocService(repo, &fakeUploader{})

	// A row predating the metrics fields: content present, counts zero
	repo.docs["stale"] = &models.Document{
		ID:        "stale",
		UserID:    "user-1",
		Title:     "Old",
		Content:   "three little words",
		Status:    models.StatusDraft,
		CreatedAt: time.Now().UTC(),
	}
	// Blank content stays zero and must not be "repaired"
	repo.docs["blank"] = &models.Document{
		ID:        "blank",
		UserID:    "user-1",
		Title:     "Empty",
		Content:   "   ",
		Status:    models.StatusDraft,
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	}

	docs, err := svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, docs, 2)

	byID := map[string]models.Document{}
	for _, d := range docs {
		byID[d.ID] = d
	}

	assert.Equal(t, 3, byID["stale"].WordCount)
	assert.Equal(t, 16, byID["stale"].CharacterCount)
	assert.Zero(t, byID["blank"].WordCount)

	// Repair is persisted, not just returned
	assert.Equal(t, 3, repo.docs["stale"].WordCount)
}

func TestDeleteLeavesChildrenDangling(t *testing.T) {
	repo := newMemDocumentRepo()
	svc := newDocService(repo, &fakeUploader{})

	parentID := "parent"
	repo.docs["parent"] = &models.Document{ID: "parent", UserID: "user-1", Title: "P", CreatedAt: time.Now().UTC()}
	repo.docs["child"] = &models.Document{ID: "child", UserID: "user-1", Title: "C", ParentID: &parentID, Depth: 1, CreatedAt: time.Now().UTC()}

	require.NoError(t, svc.Delete(context.Background(), "parent", "user-1"))

	_, err := svc.Get(context.Background(), "parent", "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The child survives with its parent reference dangling
	child, err := svc.Get(context.Background(), "child", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "parent", *child.ParentID)
}

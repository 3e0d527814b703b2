package handler

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"inkwell/internal/httputil"
	"inkwell/internal/service"
)

// multipartMemoryLimit is how much of a multipart body is held in memory
// before spilling to disk. Uploads are capped at 5MB downstream anyway.
const multipartMemoryLimit = 8 << 20

// DocumentHandler handles document HTTP requests
type DocumentHandler struct {
	docService *service.DocumentService
	resolver   *service.UserResolver
	logger     *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docService *service.DocumentService, resolver *service.UserResolver, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		resolver:   resolver,
		logger:     logger,
	}
}

// CreateDocument creates a new document from a multipart form with title,
// pre-extracted content and an optional file attachment.
// POST /api/documents
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), r, h.resolver)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req := &service.CreateDocumentRequest{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
	}

	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			httputil.RespondError(w, http.StatusBadRequest, "failed to read uploaded file")
			return
		}
		req.File = &service.FileUpload{
			Data:        data,
			ContentType: header.Header.Get("Content-Type"),
			Filename:    header.Filename,
		}
	}

	doc, err := h.docService.Create(r.Context(), user.ID, req)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// ListDocuments lists the current user's documents
// GET /api/documents
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), r, h.resolver)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	docs, err := h.docService.List(r.Context(), user.ID)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, docs)
}

// GetDocument retrieves a document by ID
// GET /api/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), r, h.resolver)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	doc, err := h.docService.Get(r.Context(), r.PathValue("id"), user.ID)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// UpdateDocument overwrites title and content
// PUT /api/documents/{id}
func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), r, h.resolver)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	var body struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.docService.Update(r.Context(), r.PathValue("id"), user.ID, &service.UpdateDocumentRequest{
		Title:   body.Title,
		Content: body.Content,
	})
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// DeleteDocument soft-deletes a document
// DELETE /api/documents/{id}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), r, h.resolver)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	if err := h.docService.Delete(r.Context(), r.PathValue("id"), user.ID); err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck is a simple health check endpoint
// GET /health
func (h *DocumentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}

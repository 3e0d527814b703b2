package handler

import (
	"log/slog"
	"net/http"

	"inkwell/internal/httputil"
	"inkwell/internal/service"
)

// TreeHandler handles document hierarchy HTTP requests
type TreeHandler struct {
	treeService *service.TreeService
	resolver    *service.UserResolver
	logger      *slog.Logger
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(treeService *service.TreeService, resolver *service.UserResolver, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{
		treeService: treeService,
		resolver:    resolver,
		logger:      logger,
	}
}

// GetTree returns all of the user's documents in level order
// GET /api/documents/tree
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), r, h.resolver)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	docs, err := h.treeService.ListTree(r.Context(), user.ID)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, docs)
}

// SetParent links a document under a parent
// POST /api/documents/{id}/parent
func (h *TreeHandler) SetParent(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), r, h.resolver)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	var body struct {
		ParentID string `json:"parent_id"`
	}
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.ParentID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "parent_id is required")
		return
	}

	doc, err := h.treeService.SetParent(r.Context(), r.PathValue("id"), body.ParentID, user.ID)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// RemoveParent detaches a document from its parent
// DELETE /api/documents/{id}/parent
func (h *TreeHandler) RemoveParent(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), r, h.resolver)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	doc, err := h.treeService.RemoveParent(r.Context(), r.PathValue("id"), user.ID)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// GetChildren lists a document's direct children in sibling order
// GET /api/documents/{id}/children
func (h *TreeHandler) GetChildren(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), r, h.resolver)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	children, err := h.treeService.ListChildren(r.Context(), r.PathValue("id"), user.ID)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, children)
}

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"inkwell/internal/httputil"
	"inkwell/internal/service/grammar"
)

// GrammarHandler handles grammar-check HTTP requests
type GrammarHandler struct {
	grammarService *grammar.Service
	logger         *slog.Logger
}

// NewGrammarHandler creates a new grammar handler
func NewGrammarHandler(grammarService *grammar.Service, logger *slog.Logger) *GrammarHandler {
	return &GrammarHandler{
		grammarService: grammarService,
		logger:         logger,
	}
}

// CheckGrammar runs a grammar check on the submitted text. The response
// payload is either the AI path's raw JSON or a plain advisory string; the
// source field says which.
// POST /api/grammar/check
func (h *GrammarHandler) CheckGrammar(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(body.Text) == "" {
		httputil.RespondError(w, http.StatusBadRequest, "text is required")
		return
	}

	result := h.grammarService.Check(r.Context(), body.Text)
	httputil.RespondJSON(w, http.StatusOK, result)
}

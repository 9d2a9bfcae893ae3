package handler

import (
	"net/http"

	"github.com/dhiselink/dhiselink/internal/service"
	"github.com/dhiselink/dhiselink/internal/ui"
)

type LegalHandler struct {
	legalService *service.LegalService
}

func NewLegalHandler(legalService *service.LegalService) *LegalHandler {
	handler := &LegalHandler{
		legalService: legalService,
	}

	// Load legal pages on initialization
	err := handler.legalService.LoadPages()
	if err != nil {
		// Silently continue - pages might be added later
		_ = err
	}

	return handler
}

func (h *LegalHandler) ShowPage(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("page")

	page, err := h.legalService.Page(slug)
	if err != nil {
		ui.NotFound(w)
		return
	}

	ui.JSON(w, http.StatusOK, map[string]string{
		"title":        page.Title,
		"slug":         page.Slug,
		"content":      page.Content,
		"last_updated": page.LastUpdated,
	})
}

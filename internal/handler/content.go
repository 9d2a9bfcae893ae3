package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dhiselink/dhiselink/internal/ctxkeys"
	"github.com/dhiselink/dhiselink/internal/registry"
	"github.com/dhiselink/dhiselink/internal/repository"
	"github.com/dhiselink/dhiselink/internal/service"
	"github.com/dhiselink/dhiselink/internal/ui"
)

type ContentHandler struct {
	contentService *service.ContentService
}

func NewContentHandler(contentService *service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// AvailableTypes returns the content type labels the current account may
// create, in registry order.
func (h *ContentHandler) AvailableTypes(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	types := h.contentService.AvailableTypes(profile)
	ui.JSON(w, http.StatusOK, map[string]any{"types": types})
}

// Create accepts a submission form for any registered content type. The
// type label arrives as the opportunity_type field.
func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	if err := r.ParseForm(); err != nil {
		ui.Error(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	label := r.PostForm.Get("opportunity_type")
	id, err := h.contentService.Submit(profile, label, r.PostForm)
	if err != nil {
		h.writeContentError(w, r, err, label)
		return
	}

	slog.Info("content created", "type", label, "id", id, "profile_id", profile.ID)
	ui.JSON(w, http.StatusCreated, map[string]string{"status": "created", "id": id, "type": label})
}

// Update edits an owned record. Records the caller does not own are
// indistinguishable from records that do not exist.
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())
	id := r.PathValue("id")

	spec, err := registry.ResolvePath(r.PathValue("type"))
	if err != nil {
		ui.Error(w, http.StatusBadRequest, "unknown content type")
		return
	}
	label := spec.Label

	if err := r.ParseForm(); err != nil {
		ui.Error(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	err = h.contentService.Edit(profile, label, id, r.PostForm)
	if err != nil {
		h.writeContentError(w, r, err, label)
		return
	}

	slog.Info("content updated", "type", label, "id", id, "profile_id", profile.ID)
	ui.JSON(w, http.StatusOK, map[string]string{"status": "updated", "id": id, "type": label})
}

// Delete removes an owned record.
func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())
	id := r.PathValue("id")

	spec, err := registry.ResolvePath(r.PathValue("type"))
	if err != nil {
		ui.Error(w, http.StatusBadRequest, "unknown content type")
		return
	}
	label := spec.Label

	err = h.contentService.Delete(profile, label, id)
	if err != nil {
		h.writeContentError(w, r, err, label)
		return
	}

	slog.Info("content deleted", "type", label, "id", id, "profile_id", profile.ID)
	ui.JSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id, "type": label})
}

func (h *ContentHandler) writeContentError(w http.ResponseWriter, r *http.Request, err error, label string) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		ui.Error(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, registry.ErrUnknownType):
		ui.Error(w, http.StatusBadRequest, "unknown content type")
	case errors.Is(err, service.ErrNotPermitted):
		ui.Error(w, http.StatusForbidden, "your account type cannot create this content")
	case errors.Is(err, service.ErrTitleRequired):
		ui.Error(w, http.StatusBadRequest, "title is required")
	case errors.Is(err, service.ErrNothingToSave):
		ui.Error(w, http.StatusBadRequest, "no fields were provided")
	case errors.Is(err, repository.ErrContentNotFound):
		ui.NotFound(w)
	default:
		slog.Error("content operation failed", "error", err, "type", label, "path", r.URL.Path)
		ui.Error(w, http.StatusInternalServerError, "something went wrong, please try again")
	}
}

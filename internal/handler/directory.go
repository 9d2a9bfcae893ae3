package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dhiselink/dhiselink/internal/markdown"
	"github.com/dhiselink/dhiselink/internal/model"
	"github.com/dhiselink/dhiselink/internal/registry"
	"github.com/dhiselink/dhiselink/internal/repository"
	"github.com/dhiselink/dhiselink/internal/service"
	"github.com/dhiselink/dhiselink/internal/ui"
)

const directoryPageSize = 50

// DirectoryHandler serves the public browsing surface: profiles and
// published content, no authentication required.
type DirectoryHandler struct {
	profileService *service.ProfileService
	contentRepo    repository.ContentRepository
	markdown       *markdown.Parser
}

func NewDirectoryHandler(profileService *service.ProfileService, contentRepo repository.ContentRepository) *DirectoryHandler {
	return &DirectoryHandler{
		profileService: profileService,
		contentRepo:    contentRepo,
		markdown:       markdown.NewParser(),
	}
}

// Long-form fields are stored as the author wrote them and rendered to HTML
// on the way out.
var renderedFields = []string{"description", "details", "requirements", "eligibility_criteria"}

func (h *DirectoryHandler) renderRichText(record map[string]any) {
	for _, field := range renderedFields {
		raw, ok := record[field].(string)
		if !ok || raw == "" {
			continue
		}
		html, err := h.markdown.Parse([]byte(raw))
		if err != nil {
			slog.Warn("failed to render field", "field", field, "error", err)
			continue
		}
		record[field+"_html"] = string(html)
	}
}

// Organizations lists onboarded organization profiles, optionally filtered
// by role via the ?role= query parameter.
func (h *DirectoryHandler) Organizations(w http.ResponseWriter, r *http.Request) {
	role := model.Role(r.URL.Query().Get("role"))

	var (
		profiles []*model.Profile
		err      error
	)
	if role == "" {
		profiles, err = h.profileService.AllOrganizations()
	} else {
		if !role.IsOrganization() {
			ui.Error(w, http.StatusBadRequest, "invalid organization role")
			return
		}
		profiles, err = h.profileService.Organizations(role)
	}
	if err != nil {
		slog.Error("failed to list organizations", "error", err, "role", role)
		ui.Error(w, http.StatusInternalServerError, "failed to load organizations")
		return
	}

	views := make([]map[string]any, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, profileView(p))
	}
	ui.JSON(w, http.StatusOK, map[string]any{"organizations": views})
}

// Individuals lists onboarded individual profiles.
func (h *DirectoryHandler) Individuals(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileService.Individuals()
	if err != nil {
		slog.Error("failed to list individuals", "error", err)
		ui.Error(w, http.StatusInternalServerError, "failed to load professionals")
		return
	}

	views := make([]map[string]any, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, profileView(p))
	}
	ui.JSON(w, http.StatusOK, map[string]any{"individuals": views})
}

// Profile returns one public profile by slug.
func (h *DirectoryHandler) Profile(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	profile, err := h.profileService.BySlug(slug)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			ui.NotFound(w)
			return
		}
		slog.Error("failed to load profile", "error", err, "slug", slug)
		ui.Error(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	ui.JSON(w, http.StatusOK, profileView(profile))
}

// Listings returns recent published records of one content type.
func (h *DirectoryHandler) Listings(w http.ResponseWriter, r *http.Request) {
	label := r.PathValue("type")

	spec, err := registry.ResolvePath(label)
	if err != nil {
		ui.Error(w, http.StatusBadRequest, "unknown content type")
		return
	}

	records, err := h.contentRepo.Recent(spec.Table, directoryPageSize)
	if err != nil {
		slog.Error("failed to load listings", "error", err, "type", label)
		ui.Error(w, http.StatusInternalServerError, "failed to load listings")
		return
	}

	ui.JSON(w, http.StatusOK, map[string]any{"type": spec.Label, "items": records})
}

// Listing returns one record by slug for slug-bearing types, or by id for
// the rest.
func (h *DirectoryHandler) Listing(w http.ResponseWriter, r *http.Request) {
	label := r.PathValue("type")
	key := r.PathValue("key")

	spec, err := registry.ResolvePath(label)
	if err != nil {
		ui.Error(w, http.StatusBadRequest, "unknown content type")
		return
	}

	var record map[string]any
	if spec.Slugged {
		record, err = h.contentRepo.BySlug(spec.Table, key)
	} else {
		record, err = h.contentRepo.ByID(spec.Table, key)
	}
	if err != nil {
		if errors.Is(err, repository.ErrContentNotFound) {
			ui.NotFound(w)
			return
		}
		slog.Error("failed to load listing", "error", err, "type", label, "key", key)
		ui.Error(w, http.StatusInternalServerError, "failed to load listing")
		return
	}

	h.renderRichText(record)
	ui.JSON(w, http.StatusOK, record)
}

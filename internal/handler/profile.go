package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dhiselink/dhiselink/internal/ctxkeys"
	"github.com/dhiselink/dhiselink/internal/model"
	"github.com/dhiselink/dhiselink/internal/service"
	"github.com/dhiselink/dhiselink/internal/ui"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// CompleteOnboarding finalizes a fresh account: the user picks a role and
// fills in the matching profile details.
func (h *ProfileHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	form := service.OnboardingForm{
		Role:          model.Role(strings.TrimSpace(r.FormValue("role"))),
		Name:          strings.TrimSpace(r.FormValue("name")),
		Location:      strings.TrimSpace(r.FormValue("location")),
		Website:       strings.TrimSpace(r.FormValue("website")),
		Title:         strings.TrimSpace(r.FormValue("title")),
		Bio:           r.FormValue("bio"),
		Skills:        r.FormValue("skills"),
		Subtype:       strings.TrimSpace(r.FormValue("subtype")),
		Description:   r.FormValue("description"),
		EmployeeCount: strings.TrimSpace(r.FormValue("employee_count")),
		YearFounded:   strings.TrimSpace(r.FormValue("year_founded")),
	}

	profile, err := h.profileService.CompleteOnboarding(user.ID, form)
	if err != nil {
		slog.Warn("onboarding failed", "error", err, "user_id", user.ID)

		switch {
		case errors.Is(err, service.ErrInvalidRole):
			ui.Error(w, http.StatusBadRequest, "please choose a valid account type")
		case errors.Is(err, service.ErrBioRequired):
			ui.Error(w, http.StatusBadRequest, "a short bio is required")
		default:
			ui.Error(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	slog.Info("onboarding completed", "user_id", user.ID, "role", profile.Role, "name", profile.DisplayName())
	ui.JSON(w, http.StatusOK, map[string]any{
		"status":  "onboarding complete",
		"profile": profileView(profile),
	})
}

// Me returns the authenticated user's own profile.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())
	if profile == nil {
		ui.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	ui.JSON(w, http.StatusOK, profileView(profile))
}

// UpdateName changes the display name and regenerates the profile slug.
func (h *ProfileHandler) UpdateName(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		ui.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	err := h.profileService.UpdateName(user.ID, name)
	if err != nil {
		slog.Error("failed to update name", "error", err, "user_id", user.ID)
		ui.Error(w, http.StatusInternalServerError, "failed to update name")
		return
	}

	slog.Info("profile name updated", "user_id", user.ID, "name", name)
	ui.JSON(w, http.StatusOK, map[string]string{"status": "name updated"})
}

// profileView shapes a profile for API responses, exposing only the active
// role cluster.
func profileView(p *model.Profile) map[string]any {
	view := map[string]any{
		"id":                  p.ID,
		"role":                string(p.Role),
		"name":                p.DisplayName(),
		"slug":                p.Slug,
		"location":            p.Location,
		"website":             p.Website,
		"avatar_url":          p.AvatarURL,
		"onboarding_complete": p.OnboardingComplete,
		"created_at":          p.CreatedAt,
	}

	if p.Individual != nil {
		view["title"] = p.Individual.Title
		view["bio"] = p.Individual.Bio
		view["skills"] = p.Individual.Skills
		view["resume_url"] = p.Individual.ResumeURL
	}

	if p.Organization != nil {
		view["subtype"] = p.Organization.Subtype
		view["description"] = p.Organization.Description
		view["employee_count"] = p.Organization.EmployeeCount
		view["year_founded"] = p.Organization.YearFounded
		view["logo_url"] = p.Organization.LogoURL
	}

	return view
}

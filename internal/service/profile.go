package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dhiselink/dhiselink/internal/model"
	"github.com/dhiselink/dhiselink/internal/repository"
	"github.com/dhiselink/dhiselink/internal/sanitize"
	"github.com/dhiselink/dhiselink/internal/slug"
	"github.com/dhiselink/dhiselink/internal/validation"
)

var (
	ErrInvalidRole = errors.New("invalid account type")
	ErrBioRequired = errors.New("bio is required")
)

var validRoles = map[model.Role]bool{
	model.RoleIndividual: true,
	model.RoleCompany:    true,
	model.RoleUniversity: true,
	model.RoleNGO:        true,
	model.RoleGovernment: true,
	model.RoleOther:      true,
}

type ProfileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
	}
}

func (s *ProfileService) ByUserID(userID string) (*model.Profile, error) {
	return s.profileRepo.ByUserID(userID)
}

func (s *ProfileService) BySlug(slugValue string) (*model.Profile, error) {
	return s.profileRepo.BySlug(slugValue)
}

// OnboardingForm carries the role-specific fields collected by the
// onboarding wizard. The wizard accumulates them across steps client-side
// and submits once; only this final submission touches the store.
type OnboardingForm struct {
	Role     model.Role
	Name     string
	Location string
	Website  string

	// Individual fields
	Title  string
	Bio    string
	Skills string // comma-separated

	// Organization fields
	Subtype       string
	Description   string
	EmployeeCount string
	YearFounded   string
}

// CompleteOnboarding populates the role-specific cluster, derives the
// public slug from the display name and flips the onboarding gate. The
// slug is never recomputed afterwards except through UpdateName.
func (s *ProfileService) CompleteOnboarding(userID string, form OnboardingForm) (*model.Profile, error) {
	if !validRoles[form.Role] {
		return nil, ErrInvalidRole
	}

	name := strings.TrimSpace(form.Name)
	err := validation.ValidateName(name)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.ByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	profile.Role = form.Role
	profile.Location = strings.TrimSpace(form.Location)
	profile.Website = strings.TrimSpace(form.Website)
	profile.Individual = nil
	profile.Organization = nil

	if form.Role == model.RoleIndividual {
		bio := strings.TrimSpace(form.Bio)
		if bio == "" {
			return nil, ErrBioRequired
		}
		profile.Individual = &model.IndividualDetails{
			FullName: name,
			Title:    strings.TrimSpace(form.Title),
			Bio:      sanitize.HTML(bio),
			Skills:   splitList(form.Skills),
		}
	} else {
		profile.Organization = &model.OrganizationDetails{
			Name:          name,
			Subtype:       strings.TrimSpace(form.Subtype),
			Description:   sanitize.HTML(strings.TrimSpace(form.Description)),
			EmployeeCount: atoiOrZero(form.EmployeeCount),
			YearFounded:   atoiOrZero(form.YearFounded),
		}
	}

	profile.Slug = slug.Make(name)
	profile.OnboardingComplete = true

	err = s.profileRepo.Update(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to complete onboarding: %w", err)
	}

	return profile, nil
}

// UpdateName changes the display name through settings. This is the only
// path that recomputes a profile slug after creation.
func (s *ProfileService) UpdateName(userID, name string) error {
	name = strings.TrimSpace(name)

	err := validation.ValidateName(name)
	if err != nil {
		return err
	}

	return s.profileRepo.UpdateName(userID, name, slug.Make(name))
}

// Organizations lists completed organization profiles of one type for the
// public directory.
func (s *ProfileService) Organizations(role model.Role) ([]*model.Profile, error) {
	if !role.IsOrganization() {
		return nil, ErrInvalidRole
	}
	return s.profileRepo.ByRole(role)
}

// AllOrganizations lists completed profiles across every organization role,
// including legacy rows still carrying the generic "organization" role.
func (s *ProfileService) AllOrganizations() ([]*model.Profile, error) {
	roles := []model.Role{
		model.RoleCompany, model.RoleUniversity, model.RoleNGO,
		model.RoleGovernment, model.RoleOther, model.RoleOrganization,
	}

	var all []*model.Profile
	for _, role := range roles {
		profiles, err := s.profileRepo.ByRole(role)
		if err != nil {
			return nil, err
		}
		all = append(all, profiles...)
	}
	return all, nil
}

// Individuals lists completed individual profiles for the public directory.
func (s *ProfileService) Individuals() ([]*model.Profile, error) {
	return s.profileRepo.ByRole(model.RoleIndividual)
}

func (s *ProfileService) SetAvatarURL(profile *model.Profile, avatarURL string) error {
	profile.AvatarURL = avatarURL
	return s.profileRepo.Update(profile)
}

func (s *ProfileService) SetResumeURL(profile *model.Profile, resumeURL string) error {
	if profile.Individual == nil {
		return ErrInvalidRole
	}
	profile.Individual.ResumeURL = resumeURL
	return s.profileRepo.Update(profile)
}

func (s *ProfileService) SetLogoURL(profile *model.Profile, logoURL string) error {
	if profile.Organization == nil {
		return ErrInvalidRole
	}
	profile.Organization.LogoURL = logoURL
	return s.profileRepo.Update(profile)
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

package service

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dhiselink/dhiselink/internal/model"
	"github.com/dhiselink/dhiselink/internal/registry"
	"github.com/dhiselink/dhiselink/internal/repository"
)

var (
	ErrUnauthenticated = errors.New("you must be signed in to do that")
	ErrNotPermitted    = errors.New("your account type cannot post this kind of content")
	ErrTitleRequired   = errors.New("title is required")
	ErrNothingToSave   = errors.New("no fields were provided")
)

// ContentService routes form submissions to the correct content table,
// tags them with ownership and gates every mutation on it.
type ContentService struct {
	repo repository.ContentRepository
}

func NewContentService(repo repository.ContentRepository) *ContentService {
	return &ContentService{repo: repo}
}

// AvailableTypes returns the content-type labels the profile may create.
// The creation UI offers only these, and Submit re-checks them.
func (s *ContentService) AvailableTypes(profile *model.Profile) []string {
	if profile == nil {
		return nil
	}
	return registry.AvailableTypes(profile.Role, profile.Subtype())
}

// Submit validates, normalizes and inserts one content row. The ability
// check runs here as well as in the UI: option filtering is a convenience,
// not a security boundary.
func (s *ContentService) Submit(profile *model.Profile, label string, fields url.Values) (string, error) {
	spec, record, err := s.prepare(profile, label, fields)
	if err != nil {
		return "", err
	}

	if _, ok := record["title"]; !ok {
		return "", ErrTitleRequired
	}

	if spec.DefaultStatus != "" {
		if _, ok := record["status"]; !ok {
			record["status"] = spec.DefaultStatus
		}
	}

	id, err := s.repo.Insert(spec.Table, record)
	if err != nil {
		// Store errors pass through verbatim; nothing was written.
		return "", fmt.Errorf("failed to save %s: %w", strings.ToLower(label), err)
	}
	return id, nil
}

// Edit re-uses the creation path keyed by id. The owner column scopes the
// update, so a row owned by someone else behaves exactly like a missing row.
func (s *ContentService) Edit(profile *model.Profile, label, id string, fields url.Values) error {
	spec, record, err := s.prepare(profile, label, fields)
	if err != nil {
		return err
	}

	// Slugs are fixed at creation time. Edit forms resubmit the title, and
	// deriving a fresh slug from it would move the row's public URL.
	delete(record, "slug")

	if !hasEditableFields(spec, record) {
		return ErrNothingToSave
	}

	err = s.repo.UpdateOwned(spec.Table, id, spec.OwnerColumn, profile.ID, record)
	if err != nil {
		if errors.Is(err, repository.ErrContentNotFound) {
			return err
		}
		return fmt.Errorf("failed to update %s: %w", strings.ToLower(label), err)
	}
	return nil
}

// Delete is a hard delete gated on ownership. NotOwner and NotFound are
// deliberately indistinguishable to the caller.
func (s *ContentService) Delete(profile *model.Profile, label, id string) error {
	if profile == nil {
		return ErrUnauthenticated
	}

	spec, err := registry.Resolve(label)
	if err != nil {
		return err
	}

	err = s.repo.DeleteOwned(spec.Table, id, spec.OwnerColumn, profile.ID)
	if err != nil {
		if errors.Is(err, repository.ErrContentNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete %s: %w", strings.ToLower(label), err)
	}
	return nil
}

// DeleteAllFor removes every content row the profile owns. Account
// deletion calls this before dropping the profile itself.
func (s *ContentService) DeleteAllFor(profile *model.Profile) error {
	if profile == nil {
		return ErrUnauthenticated
	}
	return s.repo.DeleteAllOwned(profile.ID)
}

func (s *ContentService) prepare(profile *model.Profile, label string, fields url.Values) (registry.Spec, map[string]any, error) {
	if profile == nil {
		return registry.Spec{}, nil, ErrUnauthenticated
	}

	spec, err := registry.Resolve(label)
	if err != nil {
		return registry.Spec{}, nil, err
	}

	if !registry.CanCreate(profile.Role, profile.Subtype(), label) {
		return registry.Spec{}, nil, ErrNotPermitted
	}

	record := Normalize(spec, fields)

	// Ownership is determined by content kind, never by the acting user's
	// role. Organization-owned rows also carry a denormalized name snapshot.
	switch spec.OwnerColumn {
	case registry.OwnerOrganization:
		record[registry.OwnerOrganization] = profile.ID
		record["organization_name"] = profile.DisplayName()
	case registry.OwnerAuthor:
		record[registry.OwnerAuthor] = profile.ID
	}

	return spec, record, nil
}

// hasEditableFields reports whether a prepared record carries anything
// beyond the ownership columns prepare attaches on every call. An edit
// whose fields all normalized away has nothing to write.
func hasEditableFields(spec registry.Spec, record map[string]any) bool {
	for key := range record {
		if key == spec.OwnerColumn || key == "organization_name" {
			continue
		}
		return true
	}
	return false
}

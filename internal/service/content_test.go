package service

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhiselink/dhiselink/internal/model"
	"github.com/dhiselink/dhiselink/internal/registry"
	"github.com/dhiselink/dhiselink/internal/repository"
)

// fakeContentRepo records calls per table and can fail selectively.
type fakeContentRepo struct {
	inserts    map[string][]map[string]any
	updates    map[string]map[string]any
	deleted    []string
	deletedAll []string
	summaries  map[string][]*model.ContentSummary
	failTables map[string]error
	missing    bool
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{
		inserts:    map[string][]map[string]any{},
		updates:    map[string]map[string]any{},
		summaries:  map[string][]*model.ContentSummary{},
		failTables: map[string]error{},
	}
}

func (f *fakeContentRepo) Insert(table string, record map[string]any) (string, error) {
	if err := f.failTables[table]; err != nil {
		return "", err
	}
	f.inserts[table] = append(f.inserts[table], record)
	return "generated-id", nil
}

func (f *fakeContentRepo) UpdateOwned(table, id, ownerColumn, ownerID string, record map[string]any) error {
	if f.missing {
		return repository.ErrContentNotFound
	}
	f.updates[table+"/"+id+"/"+ownerColumn+"/"+ownerID] = record
	return nil
}

func (f *fakeContentRepo) DeleteOwned(table, id, ownerColumn, ownerID string) error {
	if f.missing {
		return repository.ErrContentNotFound
	}
	f.deleted = append(f.deleted, table+"/"+id+"/"+ownerColumn+"/"+ownerID)
	return nil
}

func (f *fakeContentRepo) SummariesByOwner(spec registry.Spec, ownerID string) ([]*model.ContentSummary, error) {
	if err := f.failTables[spec.Table]; err != nil {
		return nil, err
	}
	return f.summaries[spec.Table], nil
}

func (f *fakeContentRepo) Recent(table string, limit int) ([]map[string]any, error) {
	return nil, nil
}

func (f *fakeContentRepo) ByID(table, id string) (map[string]any, error) {
	return nil, repository.ErrContentNotFound
}

func (f *fakeContentRepo) BySlug(table, slug string) (map[string]any, error) {
	return nil, repository.ErrContentNotFound
}

func (f *fakeContentRepo) SlugsFor(table string) ([]string, error) {
	return nil, nil
}

func (f *fakeContentRepo) DeleteAllOwned(ownerID string) error {
	f.deletedAll = append(f.deletedAll, ownerID)
	return nil
}

func companyProfile() *model.Profile {
	return &model.Profile{
		ID:   "org-1",
		Role: model.RoleCompany,
		Organization: &model.OrganizationDetails{
			Name: "Acme Construction",
		},
	}
}

func individualProfile() *model.Profile {
	return &model.Profile{
		ID:   "person-1",
		Role: model.RoleIndividual,
		Individual: &model.IndividualDetails{
			FullName: "Amina Yusuf",
		},
	}
}

func TestSubmitJob(t *testing.T) {
	repo := newFakeContentRepo()
	svc := NewContentService(repo)

	id, err := svc.Submit(companyProfile(), registry.LabelJob, url.Values{
		"title":    {"Site Engineer"},
		"location": {"Hargeisa"},
	})
	require.NoError(t, err)
	assert.Equal(t, "generated-id", id)

	require.Len(t, repo.inserts["jobs"], 1)
	record := repo.inserts["jobs"][0]

	assert.Equal(t, "org-1", record["organization_id"])
	assert.Equal(t, "Acme Construction", record["organization_name"])
	assert.Equal(t, "active", record["status"], "jobs default to active")
	assert.Contains(t, record, "slug")
	assert.NotContains(t, record, "author_id")
}

func TestSubmitIdeaUsesAuthorOwnership(t *testing.T) {
	repo := newFakeContentRepo()
	svc := NewContentService(repo)

	_, err := svc.Submit(individualProfile(), registry.LabelIdea, url.Values{
		"title": {"Solar Kiosk"},
	})
	require.NoError(t, err)

	record := repo.inserts["ideas"][0]
	assert.Equal(t, "person-1", record["author_id"])
	assert.NotContains(t, record, "organization_id")
	assert.NotContains(t, record, "organization_name")
	assert.NotContains(t, record, "status", "ideas have no status default")
}

func TestSubmitHeritageSiteAutoApproved(t *testing.T) {
	repo := newFakeContentRepo()
	svc := NewContentService(repo)

	_, err := svc.Submit(individualProfile(), registry.LabelHeritageSite, url.Values{
		"title": {"Old Lighthouse"},
	})
	require.NoError(t, err)

	record := repo.inserts["heritage_sites"][0]
	assert.Equal(t, "approved", record["status"])
	assert.Equal(t, "person-1", record["author_id"])
}

func TestSubmitRejections(t *testing.T) {
	tests := []struct {
		name    string
		profile *model.Profile
		label   string
		fields  url.Values
		wantErr error
	}{
		{
			name:    "nil profile",
			profile: nil,
			label:   registry.LabelJob,
			fields:  url.Values{"title": {"x"}},
			wantErr: ErrUnauthenticated,
		},
		{
			name:    "unknown type",
			profile: companyProfile(),
			label:   "Blog",
			fields:  url.Values{"title": {"x"}},
			wantErr: registry.ErrUnknownType,
		},
		{
			name:    "role cannot create label",
			profile: individualProfile(),
			label:   registry.LabelJob,
			fields:  url.Values{"title": {"x"}},
			wantErr: ErrNotPermitted,
		},
		{
			name:    "missing title",
			profile: companyProfile(),
			label:   registry.LabelJob,
			fields:  url.Values{"location": {"Hargeisa"}},
			wantErr: ErrTitleRequired,
		},
		{
			name:    "blank title",
			profile: companyProfile(),
			label:   registry.LabelJob,
			fields:  url.Values{"title": {""}},
			wantErr: ErrTitleRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeContentRepo()
			svc := NewContentService(repo)

			_, err := svc.Submit(tt.profile, tt.label, tt.fields)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.inserts, "nothing may be written on rejection")
		})
	}
}

func TestSubmitStoreErrorPassesThrough(t *testing.T) {
	repo := newFakeContentRepo()
	storeErr := errors.New("disk full")
	repo.failTables["jobs"] = storeErr
	svc := NewContentService(repo)

	_, err := svc.Submit(companyProfile(), registry.LabelJob, url.Values{"title": {"x"}})
	assert.ErrorIs(t, err, storeErr)
}

func TestEditScopedByOwner(t *testing.T) {
	repo := newFakeContentRepo()
	svc := NewContentService(repo)

	err := svc.Edit(companyProfile(), registry.LabelJob, "job-9", url.Values{
		"title": {"Updated Title"},
	})
	require.NoError(t, err)

	record, ok := repo.updates["jobs/job-9/organization_id/org-1"]
	require.True(t, ok, "update must be scoped by id and owner column")
	assert.Equal(t, "Updated Title", record["title"])
}

func TestEditKeepsExistingSlug(t *testing.T) {
	repo := newFakeContentRepo()
	svc := NewContentService(repo)

	err := svc.Edit(companyProfile(), registry.LabelJob, "job-9", url.Values{
		"title": {"Renamed Position"},
	})
	require.NoError(t, err)

	record := repo.updates["jobs/job-9/organization_id/org-1"]
	assert.Equal(t, "Renamed Position", record["title"])
	assert.NotContains(t, record, "slug", "editing must not move the row's public URL")
}

func TestEditWithNoFieldsIsRejected(t *testing.T) {
	tests := []struct {
		name    string
		profile *model.Profile
		label   string
		fields  url.Values
	}{
		{
			name:    "author-owned with all fields blank",
			profile: individualProfile(),
			label:   registry.LabelIdea,
			fields:  url.Values{"title": {""}, "description": {""}},
		},
		{
			name:    "organization-owned with only meta fields",
			profile: companyProfile(),
			label:   registry.LabelJob,
			fields:  url.Values{"opportunity_type": {"Job"}, "csrf_token": {"tok"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeContentRepo()
			svc := NewContentService(repo)

			err := svc.Edit(tt.profile, tt.label, "row-1", tt.fields)
			assert.ErrorIs(t, err, ErrNothingToSave)
			assert.Empty(t, repo.updates, "nothing may be written")
		})
	}
}

func TestEditNotOwnedLooksLikeNotFound(t *testing.T) {
	repo := newFakeContentRepo()
	repo.missing = true
	svc := NewContentService(repo)

	err := svc.Edit(companyProfile(), registry.LabelJob, "someone-elses", url.Values{"title": {"x"}})
	assert.ErrorIs(t, err, repository.ErrContentNotFound)
}

func TestDeleteScopedByOwner(t *testing.T) {
	repo := newFakeContentRepo()
	svc := NewContentService(repo)

	err := svc.Delete(individualProfile(), registry.LabelIdea, "idea-3")
	require.NoError(t, err)
	assert.Equal(t, []string{"ideas/idea-3/author_id/person-1"}, repo.deleted)
}

func TestDeleteNotOwnedLooksLikeNotFound(t *testing.T) {
	repo := newFakeContentRepo()
	repo.missing = true
	svc := NewContentService(repo)

	err := svc.Delete(individualProfile(), registry.LabelIdea, "idea-3")
	assert.ErrorIs(t, err, repository.ErrContentNotFound)
}

func TestAvailableTypes(t *testing.T) {
	svc := NewContentService(newFakeContentRepo())

	assert.Nil(t, svc.AvailableTypes(nil))
	assert.Equal(t,
		[]string{registry.LabelIdea, registry.LabelHeritageSite},
		svc.AvailableTypes(individualProfile()),
	)
}

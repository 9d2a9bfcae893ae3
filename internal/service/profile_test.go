package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhiselink/dhiselink/internal/model"
	"github.com/dhiselink/dhiselink/internal/repository"
)

type fakeProfileRepo struct {
	profiles map[string]*model.Profile // keyed by user id
	updated  *model.Profile
	byRole   map[model.Role][]*model.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		profiles: map[string]*model.Profile{},
		byRole:   map[model.Role][]*model.Profile{},
	}
}

func (f *fakeProfileRepo) Create(profile *model.Profile) error { return nil }

func (f *fakeProfileRepo) ByUserID(userID string) (*model.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) ByID(id string) (*model.Profile, error) {
	return nil, repository.ErrProfileNotFound
}

func (f *fakeProfileRepo) BySlug(slug string) (*model.Profile, error) {
	return nil, repository.ErrProfileNotFound
}

func (f *fakeProfileRepo) Update(profile *model.Profile) error {
	f.updated = profile
	return nil
}

func (f *fakeProfileRepo) UpdateName(userID, name, newSlug string) error { return nil }

func (f *fakeProfileRepo) ByRole(role model.Role) ([]*model.Profile, error) {
	return f.byRole[role], nil
}

func (f *fakeProfileRepo) Delete(userID string) error { return nil }

func TestCompleteOnboardingIndividual(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.profiles["u1"] = &model.Profile{ID: "p1", UserID: "u1"}
	svc := NewProfileService(repo)

	profile, err := svc.CompleteOnboarding("u1", OnboardingForm{
		Role:     model.RoleIndividual,
		Name:     "Amina Yusuf",
		Location: " Hargeisa ",
		Title:    "Civil Engineer",
		Bio:      "<p>Ten years of infrastructure work</p><script>x()</script>",
		Skills:   "surveying, autocad, ",
	})
	require.NoError(t, err)

	assert.Equal(t, model.RoleIndividual, profile.Role)
	assert.True(t, profile.OnboardingComplete)
	assert.Equal(t, "Hargeisa", profile.Location)
	assert.Regexp(t, `^amina-yusuf-[0-9a-f]{6}$`, profile.Slug)

	require.NotNil(t, profile.Individual)
	assert.Nil(t, profile.Organization)
	assert.Equal(t, "Amina Yusuf", profile.Individual.FullName)
	assert.Equal(t, []string{"surveying", "autocad"}, profile.Individual.Skills)
	assert.Contains(t, profile.Individual.Bio, "Ten years")
	assert.NotContains(t, profile.Individual.Bio, "<script>")

	assert.Same(t, profile, repo.updated)
}

func TestCompleteOnboardingOrganization(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.profiles["u2"] = &model.Profile{ID: "p2", UserID: "u2"}
	svc := NewProfileService(repo)

	profile, err := svc.CompleteOnboarding("u2", OnboardingForm{
		Role:          model.RoleUniversity,
		Name:          "Coastal University",
		Subtype:       "Public University",
		Description:   "Engineering and marine sciences",
		EmployeeCount: "240",
		YearFounded:   "1998",
	})
	require.NoError(t, err)

	require.NotNil(t, profile.Organization)
	assert.Nil(t, profile.Individual)
	assert.Equal(t, "Coastal University", profile.Organization.Name)
	assert.Equal(t, "Public University", profile.Organization.Subtype)
	assert.Equal(t, 240, profile.Organization.EmployeeCount)
	assert.Equal(t, 1998, profile.Organization.YearFounded)
}

func TestCompleteOnboardingValidation(t *testing.T) {
	tests := []struct {
		name    string
		form    OnboardingForm
		wantErr error
	}{
		{
			name:    "invalid role",
			form:    OnboardingForm{Role: model.Role("superhero"), Name: "X Y"},
			wantErr: ErrInvalidRole,
		},
		{
			name:    "legacy organization role not offered",
			form:    OnboardingForm{Role: model.RoleOrganization, Name: "Acme"},
			wantErr: ErrInvalidRole,
		},
		{
			name:    "individual without bio",
			form:    OnboardingForm{Role: model.RoleIndividual, Name: "Amina Yusuf"},
			wantErr: ErrBioRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeProfileRepo()
			repo.profiles["u1"] = &model.Profile{ID: "p1", UserID: "u1"}
			svc := NewProfileService(repo)

			_, err := svc.CompleteOnboarding("u1", tt.form)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, repo.updated)
		})
	}
}

func TestCompleteOnboardingRejectsEmptyName(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.profiles["u1"] = &model.Profile{ID: "p1", UserID: "u1"}
	svc := NewProfileService(repo)

	_, err := svc.CompleteOnboarding("u1", OnboardingForm{
		Role: model.RoleCompany,
		Name: "   ",
	})
	assert.Error(t, err)
	assert.Nil(t, repo.updated)
}

func TestOrganizationsRejectsIndividualRole(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo())

	_, err := svc.Organizations(model.RoleIndividual)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestAllOrganizationsSpansRoles(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.byRole[model.RoleCompany] = []*model.Profile{{ID: "c1"}}
	repo.byRole[model.RoleOrganization] = []*model.Profile{{ID: "legacy1"}}
	svc := NewProfileService(repo)

	all, err := svc.AllOrganizations()
	require.NoError(t, err)

	ids := make([]string, 0, len(all))
	for _, p := range all {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{"c1", "legacy1"}, ids)
}

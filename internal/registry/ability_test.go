package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dhiselink/dhiselink/internal/model"
)

func TestAvailableTypes(t *testing.T) {
	tests := []struct {
		name    string
		role    model.Role
		subtype string
		want    []string
	}{
		{name: "individual", role: model.RoleIndividual, want: []string{LabelIdea, LabelHeritageSite}},
		{name: "company", role: model.RoleCompany, want: []string{LabelJob, LabelService, LabelHeritageSite}},
		{name: "university", role: model.RoleUniversity, want: []string{LabelJob, LabelProgram, LabelHeritageSite}},
		{name: "ngo", role: model.RoleNGO, want: []string{LabelJob, LabelInitiative, LabelHeritageSite}},
		{name: "government", role: model.RoleGovernment, want: []string{LabelJob, LabelInitiative, LabelHeritageSite}},
		{name: "other", role: model.RoleOther, want: []string{LabelJob, LabelHeritageSite}},
		{name: "unknown role", role: model.Role("alien"), want: nil},
		{name: "legacy org with university subtype", role: model.RoleOrganization, subtype: "Public University", want: []string{LabelJob, LabelProgram, LabelHeritageSite}},
		{name: "legacy org with ngo subtype", role: model.RoleOrganization, subtype: "International NGO", want: []string{LabelJob, LabelInitiative, LabelHeritageSite}},
		{name: "legacy org with government subtype", role: model.RoleOrganization, subtype: "Ministry of Education", want: []string{LabelJob, LabelInitiative, LabelHeritageSite}},
		{name: "legacy org with company subtype", role: model.RoleOrganization, subtype: "Private Company", want: []string{LabelJob, LabelService, LabelHeritageSite}},
		{name: "legacy org with unknown subtype", role: model.RoleOrganization, subtype: "Collective", want: []string{LabelJob, LabelHeritageSite}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AvailableTypes(tt.role, tt.subtype))
		})
	}
}

func TestEveryRoleMayCreateHeritageSites(t *testing.T) {
	roles := []model.Role{
		model.RoleIndividual, model.RoleCompany, model.RoleUniversity,
		model.RoleNGO, model.RoleGovernment, model.RoleOther,
	}
	for _, role := range roles {
		assert.True(t, CanCreate(role, "", LabelHeritageSite), "role %s", role)
	}
}

func TestCanCreate(t *testing.T) {
	assert.True(t, CanCreate(model.RoleIndividual, "", LabelIdea))
	assert.False(t, CanCreate(model.RoleIndividual, "", LabelJob))
	assert.False(t, CanCreate(model.RoleCompany, "", LabelIdea))
	assert.False(t, CanCreate(model.RoleCompany, "", LabelProgram))
	assert.True(t, CanCreate(model.RoleUniversity, "", LabelProgram))
	assert.False(t, CanCreate(model.RoleOther, "", LabelInitiative))
	assert.False(t, CanCreate(model.RoleCompany, "", "Unknown"))
}

func TestAvailableTypesReturnsCopy(t *testing.T) {
	first := AvailableTypes(model.RoleCompany, "")
	first[0] = "mutated"
	assert.Equal(t, LabelJob, AvailableTypes(model.RoleCompany, "")[0])
}

package registry

import (
	"strings"

	"github.com/dhiselink/dhiselink/internal/model"
)

// abilities maps a role to the content-type labels it may create. Heritage
// Site is universally permitted, so it appears in every set.
var abilities = map[model.Role][]string{
	model.RoleIndividual: {LabelIdea, LabelHeritageSite},
	model.RoleCompany:    {LabelJob, LabelService, LabelHeritageSite},
	model.RoleUniversity: {LabelJob, LabelProgram, LabelHeritageSite},
	model.RoleNGO:        {LabelJob, LabelInitiative, LabelHeritageSite},
	model.RoleGovernment: {LabelJob, LabelInitiative, LabelHeritageSite},
	model.RoleOther:      {LabelJob, LabelHeritageSite},
}

// AvailableTypes returns the content-type labels a (role, subtype) pair may
// create. Legacy "organization" rows are refined by their subtype; an
// unrecognized subtype falls back to the generic organization set.
func AvailableTypes(role model.Role, subtype string) []string {
	if role == model.RoleOrganization {
		role = roleFromSubtype(subtype)
	}

	labels, ok := abilities[role]
	if !ok {
		return nil
	}
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}

// CanCreate reports whether the (role, subtype) pair may create content of
// the given label. Handlers use it to filter creation options; the
// submission path re-checks it server-side.
func CanCreate(role model.Role, subtype, label string) bool {
	for _, l := range AvailableTypes(role, subtype) {
		if l == label {
			return true
		}
	}
	return false
}

func roleFromSubtype(subtype string) model.Role {
	s := strings.ToLower(subtype)
	switch {
	case strings.Contains(s, "universit"), strings.Contains(s, "college"), strings.Contains(s, "institute"):
		return model.RoleUniversity
	case strings.Contains(s, "ngo"), strings.Contains(s, "non-profit"), strings.Contains(s, "nonprofit"):
		return model.RoleNGO
	case strings.Contains(s, "government"), strings.Contains(s, "municipal"), strings.Contains(s, "ministry"):
		return model.RoleGovernment
	case strings.Contains(s, "company"), strings.Contains(s, "business"):
		return model.RoleCompany
	}
	return model.RoleOther
}

package model

import "time"

// Role discriminates which detail cluster of a Profile is active.
type Role string

const (
	RoleIndividual Role = "individual"
	RoleCompany    Role = "company"
	RoleUniversity Role = "university"
	RoleNGO        Role = "ngo"
	RoleGovernment Role = "government"
	RoleOther      Role = "other"

	// RoleOrganization is a legacy value from early signups that predates the
	// split into company/university/ngo/government. The subtype field carries
	// the finer classification for these rows.
	RoleOrganization Role = "organization"
)

func (r Role) IsOrganization() bool {
	switch r {
	case RoleCompany, RoleUniversity, RoleNGO, RoleGovernment, RoleOther, RoleOrganization:
		return true
	}
	return false
}

// Profile is the common envelope for an authenticated identity. Exactly one
// of Individual or Organization is set, selected by Role.
type Profile struct {
	ID                 string
	UserID             string
	Role               Role
	Slug               string
	Location           string
	Website            string
	AvatarURL          string
	OnboardingComplete bool
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Individual   *IndividualDetails
	Organization *OrganizationDetails
}

// IndividualDetails holds the person-specific attribute cluster.
type IndividualDetails struct {
	FullName  string
	Title     string
	Bio       string
	Skills    []string
	ResumeURL string
}

// OrganizationDetails holds the organization-specific attribute cluster.
// Subtype is a finer classification under the main type (e.g. "Public
// University") used only for display and filtering, never for ownership
// or table routing.
type OrganizationDetails struct {
	Name          string
	Subtype       string
	Description   string
	EmployeeCount int
	YearFounded   int
	LogoURL       string
}

// DisplayName returns the public-facing name for the active variant.
func (p *Profile) DisplayName() string {
	if p.Individual != nil {
		return p.Individual.FullName
	}
	if p.Organization != nil {
		return p.Organization.Name
	}
	return ""
}

// Subtype returns the organization subtype, or "" for individuals.
func (p *Profile) Subtype() string {
	if p.Organization != nil {
		return p.Organization.Subtype
	}
	return ""
}

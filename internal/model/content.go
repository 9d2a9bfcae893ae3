package model

import "time"

const (
	JobStatusActive = "active"
	JobStatusClosed = "closed"

	HeritageSiteStatusApproved = "approved"
)

// Initiative sub-types. The sub-type determines which optional fields
// (venue, event_datetime, funding_amount, end_date) are meaningful; fields
// for non-applicable sub-types stay null.
const (
	InitiativeProject      = "Project"
	InitiativeEvent        = "Event"
	InitiativeGrant        = "Grant"
	InitiativeTender       = "Tender"
	InitiativeAnnouncement = "Announcement"
)

type Job struct {
	ID               string     `db:"id"`
	OrganizationID   string     `db:"organization_id"`
	OrganizationName string     `db:"organization_name"`
	Title            string     `db:"title"`
	Slug             string     `db:"slug"`
	Description      string     `db:"description"`
	Requirements     string     `db:"requirements"`
	Location         string     `db:"location"`
	EmploymentType   string     `db:"employment_type"`
	Salary           string     `db:"salary"`
	Status           string     `db:"status"`
	Deadline         *time.Time `db:"deadline"`
	CreatedAt        time.Time  `db:"created_at"`
}

type Program struct {
	ID                  string    `db:"id"`
	OrganizationID      string    `db:"organization_id"`
	OrganizationName    string    `db:"organization_name"`
	Title               string    `db:"title"`
	Description         string    `db:"description"`
	EligibilityCriteria string    `db:"eligibility_criteria"`
	Duration            string    `db:"duration"`
	CoverImageURL       string    `db:"cover_image_url"`
	CreatedAt           time.Time `db:"created_at"`
}

type Service struct {
	ID               string    `db:"id"`
	OrganizationID   string    `db:"organization_id"`
	OrganizationName string    `db:"organization_name"`
	Title            string    `db:"title"`
	Description      string    `db:"description"`
	Category         string    `db:"category"`
	ContactEmail     string    `db:"contact_email"`
	CreatedAt        time.Time `db:"created_at"`
}

type Initiative struct {
	ID               string     `db:"id"`
	OrganizationID   string     `db:"organization_id"`
	OrganizationName string     `db:"organization_name"`
	Title            string     `db:"title"`
	Type             string     `db:"type"`
	Description      string     `db:"description"`
	Venue            *string    `db:"venue"`
	EventDatetime    *time.Time `db:"event_datetime"`
	FundingAmount    *string    `db:"funding_amount"`
	EndDate          *time.Time `db:"end_date"`
	Status           string     `db:"status"`
	CreatedAt        time.Time  `db:"created_at"`
}

type Idea struct {
	ID          string    `db:"id"`
	AuthorID    string    `db:"author_id"`
	Title       string    `db:"title"`
	Slug        string    `db:"slug"`
	Description string    `db:"description"`
	Tags        string    `db:"tags"` // comma-joined in storage
	CoverURL    string    `db:"cover_url"`
	CreatedAt   time.Time `db:"created_at"`
}

type HeritageSite struct {
	ID            string    `db:"id"`
	AuthorID      string    `db:"author_id"`
	Title         string    `db:"title"`
	Slug          string    `db:"slug"`
	Description   string    `db:"description"`
	Location      string    `db:"location"`
	Status        string    `db:"status"`
	GalleryImages string    `db:"gallery_images"` // comma-joined in storage
	CreatedAt     time.Time `db:"created_at"`
}

type Gallery struct {
	ID               string    `db:"id"`
	OrganizationID   string    `db:"organization_id"`
	OrganizationName string    `db:"organization_name"`
	Title            string    `db:"title"`
	Description      string    `db:"description"`
	GalleryImages    string    `db:"gallery_images"` // comma-joined in storage
	CreatedAt        time.Time `db:"created_at"`
}

// ContentSummary is one row of the unified "my content" feed: a projection
// of any content table tagged with its originating type label.
type ContentSummary struct {
	ID        string    `db:"id"`
	Label     string    `db:"-"`
	Title     string    `db:"title"`
	Status    string    `db:"status"`
	SubType   string    `db:"type"`
	CreatedAt time.Time `db:"created_at"`
}

package repository

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dhiselink/dhiselink/internal/model"
)

type ProfileRepository interface {
	Create(profile *model.Profile) error
	ByUserID(userID string) (*model.Profile, error)
	ByID(id string) (*model.Profile, error)
	BySlug(slug string) (*model.Profile, error)
	Update(profile *model.Profile) error
	UpdateName(userID, name, newSlug string) error
	ByRole(role model.Role) ([]*model.Profile, error)
	Delete(userID string) error
}

// profileRow is the wide storage schema: individual and organization
// attributes coexist as nullable columns on one table, discriminated by
// role. The repository converts rows to the tagged model.Profile so only
// the active cluster is ever visible above this layer.
type profileRow struct {
	ID                 string         `db:"id"`
	UserID             string         `db:"user_id"`
	Role               string         `db:"role"`
	Slug               sql.NullString `db:"slug"`
	Location           sql.NullString `db:"location"`
	Website            sql.NullString `db:"website"`
	AvatarURL          sql.NullString `db:"avatar_url"`
	OnboardingComplete bool           `db:"onboarding_complete"`

	FullName  sql.NullString `db:"full_name"`
	Title     sql.NullString `db:"title"`
	Bio       sql.NullString `db:"bio"`
	Skills    sql.NullString `db:"skills"` // comma-joined
	ResumeURL sql.NullString `db:"resume_url"`

	OrganizationName    sql.NullString `db:"organization_name"`
	OrganizationSubtype sql.NullString `db:"organization_subtype"`
	Description         sql.NullString `db:"description"`
	EmployeeCount       sql.NullInt64  `db:"employee_count"`
	YearFounded         sql.NullInt64  `db:"year_founded"`
	LogoURL             sql.NullString `db:"logo_url"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(profile *model.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = now
	}

	row := toRow(profile)
	_, err := r.db.NamedExec(`
		INSERT INTO profiles (
			id, user_id, role, slug, location, website, avatar_url, onboarding_complete,
			full_name, title, bio, skills, resume_url,
			organization_name, organization_subtype, description, employee_count, year_founded, logo_url,
			created_at, updated_at
		) VALUES (
			:id, :user_id, :role, :slug, :location, :website, :avatar_url, :onboarding_complete,
			:full_name, :title, :bio, :skills, :resume_url,
			:organization_name, :organization_subtype, :description, :employee_count, :year_founded, :logo_url,
			:created_at, :updated_at
		)
	`, row)

	return err
}

func (r *profileRepository) ByUserID(userID string) (*model.Profile, error) {
	return r.get(`SELECT * FROM profiles WHERE user_id = $1`, userID)
}

func (r *profileRepository) ByID(id string) (*model.Profile, error) {
	return r.get(`SELECT * FROM profiles WHERE id = $1`, id)
}

func (r *profileRepository) BySlug(slug string) (*model.Profile, error) {
	return r.get(`SELECT * FROM profiles WHERE slug = $1`, slug)
}

func (r *profileRepository) Update(profile *model.Profile) error {
	profile.UpdatedAt = time.Now()
	row := toRow(profile)

	result, err := r.db.NamedExec(`
		UPDATE profiles SET
			role = :role, slug = :slug, location = :location, website = :website,
			avatar_url = :avatar_url, onboarding_complete = :onboarding_complete,
			full_name = :full_name, title = :title, bio = :bio, skills = :skills, resume_url = :resume_url,
			organization_name = :organization_name, organization_subtype = :organization_subtype,
			description = :description, employee_count = :employee_count, year_founded = :year_founded,
			logo_url = :logo_url, updated_at = :updated_at
		WHERE id = :id
	`, row)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// UpdateName rewrites the display name for the active variant and replaces
// the slug. A name change through settings is the only event that
// recomputes a slug after creation.
func (r *profileRepository) UpdateName(userID, name, newSlug string) error {
	result, err := r.db.Exec(`
		UPDATE profiles
		SET full_name = CASE WHEN role = 'individual' THEN $1 ELSE full_name END,
		    organization_name = CASE WHEN role = 'individual' THEN organization_name ELSE $1 END,
		    slug = $2,
		    updated_at = $3
		WHERE user_id = $4
	`, name, newSlug, time.Now(), userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// ByRole lists completed profiles for the public directory.
func (r *profileRepository) ByRole(role model.Role) ([]*model.Profile, error) {
	var rows []profileRow
	err := r.db.Select(&rows, `
		SELECT * FROM profiles
		WHERE role = $1 AND onboarding_complete = $2
		ORDER BY created_at DESC
	`, string(role), true)
	if err != nil {
		return nil, err
	}

	profiles := make([]*model.Profile, len(rows))
	for i := range rows {
		profiles[i] = fromRow(&rows[i])
	}
	return profiles, nil
}

func (r *profileRepository) Delete(userID string) error {
	_, err := r.db.Exec(`DELETE FROM profiles WHERE user_id = $1`, userID)
	return err
}

func (r *profileRepository) get(query, arg string) (*model.Profile, error) {
	var row profileRow
	err := r.db.Get(&row, query, arg)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromRow(&row), nil
}

func toRow(p *model.Profile) *profileRow {
	row := &profileRow{
		ID:                 p.ID,
		UserID:             p.UserID,
		Role:               string(p.Role),
		Slug:               nullString(p.Slug),
		Location:           nullString(p.Location),
		Website:            nullString(p.Website),
		AvatarURL:          nullString(p.AvatarURL),
		OnboardingComplete: p.OnboardingComplete,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}

	if p.Individual != nil {
		row.FullName = nullString(p.Individual.FullName)
		row.Title = nullString(p.Individual.Title)
		row.Bio = nullString(p.Individual.Bio)
		row.Skills = nullString(strings.Join(p.Individual.Skills, ","))
		row.ResumeURL = nullString(p.Individual.ResumeURL)
	}

	if p.Organization != nil {
		row.OrganizationName = nullString(p.Organization.Name)
		row.OrganizationSubtype = nullString(p.Organization.Subtype)
		row.Description = nullString(p.Organization.Description)
		row.EmployeeCount = nullInt(p.Organization.EmployeeCount)
		row.YearFounded = nullInt(p.Organization.YearFounded)
		row.LogoURL = nullString(p.Organization.LogoURL)
	}

	return row
}

func fromRow(row *profileRow) *model.Profile {
	p := &model.Profile{
		ID:                 row.ID,
		UserID:             row.UserID,
		Role:               model.Role(row.Role),
		Slug:               row.Slug.String,
		Location:           row.Location.String,
		Website:            row.Website.String,
		AvatarURL:          row.AvatarURL.String,
		OnboardingComplete: row.OnboardingComplete,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}

	if p.Role.IsOrganization() {
		p.Organization = &model.OrganizationDetails{
			Name:          row.OrganizationName.String,
			Subtype:       row.OrganizationSubtype.String,
			Description:   row.Description.String,
			EmployeeCount: int(row.EmployeeCount.Int64),
			YearFounded:   int(row.YearFounded.Int64),
			LogoURL:       row.LogoURL.String,
		}
		return p
	}

	p.Individual = &model.IndividualDetails{
		FullName:  row.FullName.String,
		Title:     row.Title.String,
		Bio:       row.Bio.String,
		ResumeURL: row.ResumeURL.String,
	}
	if row.Skills.String != "" {
		p.Individual.Skills = strings.Split(row.Skills.String, ",")
	}
	return p
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}

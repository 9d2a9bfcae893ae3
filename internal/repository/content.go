package repository

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dhiselink/dhiselink/internal/model"
	"github.com/dhiselink/dhiselink/internal/registry"
)

var (
	ErrContentNotFound = errors.New("content not found")

	// Columns are derived from submitted field names, so they are validated
	// against this pattern before being interpolated into a statement.
	identPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

type ContentRepository interface {
	Insert(table string, record map[string]any) (string, error)
	UpdateOwned(table, id, ownerColumn, ownerID string, record map[string]any) error
	DeleteOwned(table, id, ownerColumn, ownerID string) error
	SummariesByOwner(spec registry.Spec, ownerID string) ([]*model.ContentSummary, error)
	Recent(table string, limit int) ([]map[string]any, error)
	ByID(table, id string) (map[string]any, error)
	BySlug(table, slug string) (map[string]any, error)
	SlugsFor(table string) ([]string, error)
	DeleteAllOwned(ownerID string) error
}

type contentRepository struct {
	db *sqlx.DB
}

func NewContentRepository(db *sqlx.DB) ContentRepository {
	return &contentRepository{db: db}
}

// Insert performs a single-table write. The id and created_at are assigned
// here when the record does not carry them. Array values are stored
// comma-joined; the store only ever holds URL/tag strings, never raw bytes.
func (r *contentRepository) Insert(table string, record map[string]any) (string, error) {
	row := flatten(record)

	id, ok := row["id"].(string)
	if !ok || id == "" {
		id = uuid.New().String()
		row["id"] = id
	}
	if _, ok := row["created_at"]; !ok {
		row["created_at"] = time.Now()
	}

	cols := make([]string, 0, len(row))
	for c := range row {
		if !identPattern.MatchString(c) {
			return "", fmt.Errorf("invalid column name %q", c)
		}
		cols = append(cols, c)
	}
	sort.Strings(cols)

	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = row[c]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	_, err := r.db.Exec(query, args...)
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateOwned rewrites the given columns of one row, scoped to the owner.
// A row that is missing or owned by someone else is the same error.
func (r *contentRepository) UpdateOwned(table, id, ownerColumn, ownerID string, record map[string]any) error {
	row := flatten(record)
	delete(row, "id")
	delete(row, "created_at")
	delete(row, ownerColumn)

	cols := make([]string, 0, len(row))
	for c := range row {
		if !identPattern.MatchString(c) {
			return fmt.Errorf("invalid column name %q", c)
		}
		cols = append(cols, c)
	}
	if len(cols) == 0 {
		return fmt.Errorf("no columns to update in %s", table)
	}
	sort.Strings(cols)

	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+2)
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", c, i+1)
		args = append(args, row[c])
	}
	args = append(args, id, ownerID)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d AND %s = $%d",
		table, strings.Join(sets, ", "), len(cols)+1, ownerColumn, len(cols)+2)

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrContentNotFound
	}
	return nil
}

// DeleteOwned is a hard delete scoped to the owner column.
func (r *contentRepository) DeleteOwned(table, id, ownerColumn, ownerID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND %s = $2", table, ownerColumn)

	result, err := r.db.Exec(query, id, ownerID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrContentNotFound
	}
	return nil
}

// SummariesByOwner projects the display columns of one table for the feed.
// Tables without a status or sub-type column project empty strings so every
// table scans into the same summary shape.
func (r *contentRepository) SummariesByOwner(spec registry.Spec, ownerID string) ([]*model.ContentSummary, error) {
	statusCol := "'' AS status"
	if spec.HasStatus {
		statusCol = "status"
	}
	typeCol := "'' AS type"
	if spec.HasSubtype {
		typeCol = "type"
	}

	query := fmt.Sprintf(
		"SELECT id, title, %s, %s, created_at FROM %s WHERE %s = $1 ORDER BY created_at DESC",
		statusCol, typeCol, spec.Table, spec.OwnerColumn)

	var summaries []*model.ContentSummary
	err := r.db.Select(&summaries, query, ownerID)
	if err != nil {
		return nil, err
	}

	for _, s := range summaries {
		s.Label = spec.Label
	}
	return summaries, nil
}

func (r *contentRepository) Recent(table string, limit int) ([]map[string]any, error) {
	query := fmt.Sprintf("SELECT * FROM %s ORDER BY created_at DESC LIMIT $1", table)

	rows, err := r.db.Queryx(query, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []map[string]any
	for rows.Next() {
		record := map[string]any{}
		err = rows.MapScan(record)
		if err != nil {
			return nil, err
		}
		out = append(out, stringify(record))
	}
	return out, rows.Err()
}

func (r *contentRepository) ByID(table, id string) (map[string]any, error) {
	return r.one(fmt.Sprintf("SELECT * FROM %s WHERE id = $1", table), id)
}

func (r *contentRepository) BySlug(table, slug string) (map[string]any, error) {
	return r.one(fmt.Sprintf("SELECT * FROM %s WHERE slug = $1", table), slug)
}

// SlugsFor lists the slugs of a slug-bearing table, newest first.
func (r *contentRepository) SlugsFor(table string) ([]string, error) {
	var slugs []string
	query := fmt.Sprintf("SELECT slug FROM %s ORDER BY created_at DESC", table)
	err := r.db.Select(&slugs, query)
	return slugs, err
}

// DeleteAllOwned removes every content row owned by the given profile
// across all registered tables. Used by account deletion.
func (r *contentRepository) DeleteAllOwned(ownerID string) error {
	for _, label := range registry.Labels() {
		spec, err := registry.Resolve(label)
		if err != nil {
			return err
		}
		query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", spec.Table, spec.OwnerColumn)
		_, err = r.db.Exec(query, ownerID)
		if err != nil {
			return fmt.Errorf("delete owned rows from %s: %w", spec.Table, err)
		}
	}
	return nil
}

func (r *contentRepository) one(query, arg string) (map[string]any, error) {
	rows, err := r.db.Queryx(query, arg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrContentNotFound
	}

	record := map[string]any{}
	err = rows.MapScan(record)
	if err != nil {
		return nil, err
	}
	return stringify(record), nil
}

// flatten joins array values with commas for storage.
func flatten(record map[string]any) map[string]any {
	out := make(map[string]any, len(record))
	for k, v := range record {
		list, ok := v.([]string)
		if ok {
			out[k] = strings.Join(list, ",")
			continue
		}
		out[k] = v
	}
	return out
}

// stringify converts []byte column values (sqlite TEXT scans) to strings.
func stringify(record map[string]any) map[string]any {
	for k, v := range record {
		b, ok := v.([]byte)
		if ok {
			record[k] = string(b)
		}
	}
	return record
}

// Package registry is the single source of truth mapping human-facing
// content-type labels to storage tables, ownership columns and per-table
// behavior. Every write, delete and listing consults it; no call site may
// re-derive the ownership rule.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownType = errors.New("unknown content type")

// Ownership columns. Each content table carries exactly one of these.
const (
	OwnerOrganization = "organization_id"
	OwnerAuthor       = "author_id"
)

// Content-type labels as they appear in submission forms.
const (
	LabelJob          = "Job"
	LabelProgram      = "Program"
	LabelService      = "Service"
	LabelInitiative   = "Initiative"
	LabelIdea         = "Idea"
	LabelHeritageSite = "Heritage Site"
	LabelGallery      = "Gallery"
)

// Spec describes how one content type is stored.
type Spec struct {
	Label       string
	Table       string
	OwnerColumn string

	// Slugged tables derive a slug from the title at creation time.
	Slugged bool

	// HasStatus/HasSubtype drive the columns projected into summaries.
	HasStatus  bool
	HasSubtype bool

	// DefaultStatus is applied on create when the submission carries none.
	DefaultStatus string
}

var specs = []Spec{
	{Label: LabelJob, Table: "jobs", OwnerColumn: OwnerOrganization, Slugged: true, HasStatus: true, DefaultStatus: "active"},
	{Label: LabelProgram, Table: "programs", OwnerColumn: OwnerOrganization},
	{Label: LabelService, Table: "services", OwnerColumn: OwnerOrganization},
	{Label: LabelInitiative, Table: "initiatives", OwnerColumn: OwnerOrganization, HasStatus: true, HasSubtype: true},
	{Label: LabelIdea, Table: "ideas", OwnerColumn: OwnerAuthor, Slugged: true},
	{Label: LabelHeritageSite, Table: "heritage_sites", OwnerColumn: OwnerAuthor, Slugged: true, HasStatus: true, DefaultStatus: "approved"},
	{Label: LabelGallery, Table: "galleries", OwnerColumn: OwnerOrganization},
}

var (
	byLabel = map[string]Spec{}
	byTable = map[string]Spec{}
	bySlug  = map[string]Spec{}
)

func init() {
	for _, s := range specs {
		byLabel[s.Label] = s
		byTable[s.Table] = s
		bySlug[s.PathSegment()] = s
	}
}

// PathSegment returns the URL form of the label ("Heritage Site" ->
// "heritage-site").
func (s Spec) PathSegment() string {
	return strings.ToLower(strings.ReplaceAll(s.Label, " ", "-"))
}

// Resolve maps a content-type label to its spec. Blank or unrecognized
// labels are an error, never a default table.
func Resolve(label string) (Spec, error) {
	s, ok := byLabel[label]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownType, label)
	}
	return s, nil
}

// ResolvePath maps a URL path segment ("job", "heritage-site") to its spec.
func ResolvePath(segment string) (Spec, error) {
	s, ok := bySlug[strings.ToLower(segment)]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownType, segment)
	}
	return s, nil
}

// ByTable maps a storage table name back to its spec.
func ByTable(table string) (Spec, error) {
	s, ok := byTable[table]
	if !ok {
		return Spec{}, fmt.Errorf("%w: table %q", ErrUnknownType, table)
	}
	return s, nil
}

// OwnerColumn returns the ownership column for a table: author_id for ideas
// and heritage_sites, organization_id for everything else.
func OwnerColumn(table string) (string, error) {
	s, err := ByTable(table)
	if err != nil {
		return "", err
	}
	return s.OwnerColumn, nil
}

// Labels returns all registered labels in stable order.
func Labels() []string {
	out := make([]string, 0, len(byLabel))
	for l := range byLabel {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

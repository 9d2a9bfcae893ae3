package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		label       string
		table       string
		ownerColumn string
		wantErr     bool
	}{
		{label: "Job", table: "jobs", ownerColumn: OwnerOrganization},
		{label: "Program", table: "programs", ownerColumn: OwnerOrganization},
		{label: "Service", table: "services", ownerColumn: OwnerOrganization},
		{label: "Initiative", table: "initiatives", ownerColumn: OwnerOrganization},
		{label: "Idea", table: "ideas", ownerColumn: OwnerAuthor},
		{label: "Heritage Site", table: "heritage_sites", ownerColumn: OwnerAuthor},
		{label: "Gallery", table: "galleries", ownerColumn: OwnerOrganization},
		{label: "", wantErr: true},
		{label: "job", wantErr: true},
		{label: "Blog", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			spec, err := Resolve(tt.label)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.table, spec.Table)
			assert.Equal(t, tt.ownerColumn, spec.OwnerColumn)
		})
	}
}

func TestResolvePath(t *testing.T) {
	spec, err := ResolvePath("heritage-site")
	require.NoError(t, err)
	assert.Equal(t, LabelHeritageSite, spec.Label)

	spec, err = ResolvePath("JOB")
	require.NoError(t, err)
	assert.Equal(t, LabelJob, spec.Label)

	_, err = ResolvePath("heritage site")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestByTableRoundTrip(t *testing.T) {
	// Every label resolves to a table that resolves back to the same spec.
	for _, label := range Labels() {
		spec, err := Resolve(label)
		require.NoError(t, err)

		back, err := ByTable(spec.Table)
		require.NoError(t, err)
		assert.Equal(t, spec, back)
	}
}

func TestOwnerColumn(t *testing.T) {
	// Only ideas and heritage_sites are author-owned.
	for _, label := range Labels() {
		spec, err := Resolve(label)
		require.NoError(t, err)

		col, err := OwnerColumn(spec.Table)
		require.NoError(t, err)

		if spec.Table == "ideas" || spec.Table == "heritage_sites" {
			assert.Equal(t, OwnerAuthor, col, "table %s", spec.Table)
		} else {
			assert.Equal(t, OwnerOrganization, col, "table %s", spec.Table)
		}
	}

	_, err := OwnerColumn("users")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestDefaults(t *testing.T) {
	job, err := Resolve(LabelJob)
	require.NoError(t, err)
	assert.Equal(t, "active", job.DefaultStatus)
	assert.True(t, job.Slugged)

	heritage, err := Resolve(LabelHeritageSite)
	require.NoError(t, err)
	assert.Equal(t, "approved", heritage.DefaultStatus)
	assert.True(t, heritage.Slugged)

	program, err := Resolve(LabelProgram)
	require.NoError(t, err)
	assert.Empty(t, program.DefaultStatus)
	assert.False(t, program.Slugged)

	initiative, err := Resolve(LabelInitiative)
	require.NoError(t, err)
	assert.True(t, initiative.HasSubtype)
	assert.Empty(t, initiative.DefaultStatus)
}

package service

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhiselink/dhiselink/internal/registry"
)

func mustSpec(t *testing.T, label string) registry.Spec {
	t.Helper()
	spec, err := registry.Resolve(label)
	require.NoError(t, err)
	return spec
}

func TestNormalizeDropsEmptyFields(t *testing.T) {
	spec := mustSpec(t, registry.LabelProgram)

	record := Normalize(spec, url.Values{
		"title":    {"Scholarship Program"},
		"duration": {""},
		"location": {""},
	})

	assert.Equal(t, "Scholarship Program", record["title"])
	assert.NotContains(t, record, "duration")
	assert.NotContains(t, record, "location")
}

func TestNormalizeStripsMetaFields(t *testing.T) {
	spec := mustSpec(t, registry.LabelService)

	record := Normalize(spec, url.Values{
		"title":            {"Consulting"},
		"opportunity_type": {"Service"},
		"csrf_token":       {"abc123"},
		"id":               {"sneaky-id"},
	})

	assert.NotContains(t, record, "opportunity_type")
	assert.NotContains(t, record, "csrf_token")
	assert.NotContains(t, record, "id")
}

func TestNormalizeSlugOnlyForSluggedTypes(t *testing.T) {
	job := Normalize(mustSpec(t, registry.LabelJob), url.Values{"title": {"Site Engineer"}})
	require.Contains(t, job, "slug")
	assert.Regexp(t, `^site-engineer-[0-9a-f]{6}$`, job["slug"])
	// Title itself is stored verbatim.
	assert.Equal(t, "Site Engineer", job["title"])

	program := Normalize(mustSpec(t, registry.LabelProgram), url.Values{"title": {"Site Engineer"}})
	assert.NotContains(t, program, "slug")
}

func TestNormalizeSanitizesRichText(t *testing.T) {
	spec := mustSpec(t, registry.LabelIdea)

	record := Normalize(spec, url.Values{
		"title":       {"Solar Kiosk"},
		"description": {`<p>Great idea</p><script>alert("x")</script>`},
	})

	desc, ok := record["description"].(string)
	require.True(t, ok)
	assert.Contains(t, desc, "<p>Great idea</p>")
	assert.NotContains(t, desc, "<script>")
}

func TestNormalizeSplitsTags(t *testing.T) {
	spec := mustSpec(t, registry.LabelIdea)

	record := Normalize(spec, url.Values{
		"title": {"Solar Kiosk"},
		"tags":  {"energy, solar , , retail"},
	})

	assert.Equal(t, []string{"energy", "solar", "retail"}, record["tags"])
}

func TestNormalizeGalleryImages(t *testing.T) {
	spec := mustSpec(t, registry.LabelHeritageSite)

	record := Normalize(spec, url.Values{
		"title":          {"Old Lighthouse"},
		"gallery_images": {"https://cdn/a.jpg", "https://cdn/b.jpg"},
	})

	assert.Equal(t, []string{"https://cdn/a.jpg", "https://cdn/b.jpg"}, record["gallery_images"])
}

func TestNormalizeSingleImageTakesFirst(t *testing.T) {
	spec := mustSpec(t, registry.LabelIdea)

	record := Normalize(spec, url.Values{
		"title":     {"Solar Kiosk"},
		"cover_url": {"https://cdn/a.jpg", "https://cdn/b.jpg"},
	})

	assert.Equal(t, "https://cdn/a.jpg", record["cover_url"])
}

func TestNormalizePassthroughFields(t *testing.T) {
	spec := mustSpec(t, registry.LabelJob)

	record := Normalize(spec, url.Values{
		"title":           {"Surveyor"},
		"employment_type": {"Full-time"},
		"salary":          {"negotiable"},
	})

	assert.Equal(t, "Full-time", record["employment_type"])
	assert.Equal(t, "negotiable", record["salary"])
}

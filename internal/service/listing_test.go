package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhiselink/dhiselink/internal/model"
	"github.com/dhiselink/dhiselink/internal/registry"
)

func TestMyContentMergesNewestFirst(t *testing.T) {
	now := time.Now()
	repo := newFakeContentRepo()
	repo.summaries["jobs"] = []*model.ContentSummary{
		{ID: "j1", Label: registry.LabelJob, Title: "Old Job", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "j2", Label: registry.LabelJob, Title: "New Job", CreatedAt: now},
	}
	repo.summaries["services"] = []*model.ContentSummary{
		{ID: "s1", Label: registry.LabelService, Title: "Consulting", CreatedAt: now.Add(-time.Hour)},
	}

	svc := NewListingService(repo)
	feed, err := svc.MyContent(companyProfile())
	require.NoError(t, err)
	require.Empty(t, feed.Failed)

	ids := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{"j2", "s1", "j1"}, ids)
}

func TestMyContentToleratesFailingTables(t *testing.T) {
	repo := newFakeContentRepo()
	repo.summaries["jobs"] = []*model.ContentSummary{
		{ID: "j1", Label: registry.LabelJob, Title: "Job", CreatedAt: time.Now()},
	}
	repo.failTables["services"] = errors.New("table vanished")

	svc := NewListingService(repo)
	feed, err := svc.MyContent(companyProfile())
	require.NoError(t, err, "one failing table must not fail the feed")

	assert.Len(t, feed.Items, 1)
	assert.Equal(t, []string{registry.LabelService}, feed.Failed)
}

func TestMyContentInitiativeSubtypesBecomeLabels(t *testing.T) {
	ngo := &model.Profile{
		ID:   "ngo-1",
		Role: model.RoleNGO,
		Organization: &model.OrganizationDetails{
			Name: "Relief Works",
		},
	}

	repo := newFakeContentRepo()
	repo.summaries["initiatives"] = []*model.ContentSummary{
		{ID: "i1", Label: registry.LabelInitiative, Title: "Food Drive", SubType: "Event", CreatedAt: time.Now()},
		{ID: "i2", Label: registry.LabelInitiative, Title: "Bridge", SubType: "", CreatedAt: time.Now().Add(-time.Minute)},
	}

	svc := NewListingService(repo)
	feed, err := svc.MyContent(ngo)
	require.NoError(t, err)

	byID := map[string]string{}
	for _, item := range feed.Items {
		byID[item.ID] = item.Label
	}
	assert.Equal(t, "event", byID["i1"])
	assert.Equal(t, registry.LabelInitiative, byID["i2"])
}

func TestMyContentRequiresProfile(t *testing.T) {
	svc := NewListingService(newFakeContentRepo())

	_, err := svc.MyContent(nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestMyContentOnlyQueriesPermittedTables(t *testing.T) {
	repo := newFakeContentRepo()
	// An ideas row exists, but a company never queries the ideas table.
	repo.summaries["ideas"] = []*model.ContentSummary{
		{ID: "x", Label: registry.LabelIdea, Title: "Stray", CreatedAt: time.Now()},
	}

	svc := NewListingService(repo)
	feed, err := svc.MyContent(companyProfile())
	require.NoError(t, err)
	assert.Empty(t, feed.Items)
}

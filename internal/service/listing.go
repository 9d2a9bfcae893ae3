package service

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/dhiselink/dhiselink/internal/model"
	"github.com/dhiselink/dhiselink/internal/registry"
	"github.com/dhiselink/dhiselink/internal/repository"
)

// Feed is the unified "my content" view. Failed lists the labels whose
// table query failed; the rest of the feed is still usable.
type Feed struct {
	Items  []*model.ContentSummary
	Failed []string
}

// ListingService merges a profile's owned rows across the tables its role
// can write to into one ordered feed.
type ListingService struct {
	repo repository.ContentRepository
}

func NewListingService(repo repository.ContentRepository) *ListingService {
	return &ListingService{repo: repo}
}

// MyContent fetches owned rows per relevant table and merges them, newest
// first. One failing table does not abort the others: partial results with
// a visible indication beat a total failure.
func (s *ListingService) MyContent(profile *model.Profile) (*Feed, error) {
	if profile == nil {
		return nil, ErrUnauthenticated
	}

	feed := &Feed{}
	for _, label := range registry.AvailableTypes(profile.Role, profile.Subtype()) {
		spec, err := registry.Resolve(label)
		if err != nil {
			return nil, err
		}

		summaries, err := s.repo.SummariesByOwner(spec, profile.ID)
		if err != nil {
			slog.Error("failed to load owned content", "error", err, "table", spec.Table, "profile_id", profile.ID)
			feed.Failed = append(feed.Failed, label)
			continue
		}

		for _, summary := range summaries {
			// Initiative sub-types surface as their own pseudo labels
			// (project, event, grant, ...) for display filtering.
			if summary.SubType != "" {
				summary.Label = strings.ToLower(summary.SubType)
			}
		}

		feed.Items = append(feed.Items, summaries...)
	}

	sort.SliceStable(feed.Items, func(i, j int) bool {
		return feed.Items[i].CreatedAt.After(feed.Items[j].CreatedAt)
	})

	return feed, nil
}

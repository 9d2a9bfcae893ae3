package handler

import (
	"log/slog"
	"net/http"

	"github.com/dhiselink/dhiselink/internal/ctxkeys"
	"github.com/dhiselink/dhiselink/internal/service"
	"github.com/dhiselink/dhiselink/internal/ui"
)

type DashboardHandler struct {
	listingService *service.ListingService
	contentService *service.ContentService
}

func NewDashboardHandler(listingService *service.ListingService, contentService *service.ContentService) *DashboardHandler {
	return &DashboardHandler{
		listingService: listingService,
		contentService: contentService,
	}
}

// MyContent returns everything the account owns across all content tables,
// newest first. Tables that fail to load are reported alongside the items
// that did load rather than failing the whole feed.
func (h *DashboardHandler) MyContent(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	feed, err := h.listingService.MyContent(profile)
	if err != nil {
		slog.Error("failed to load content feed", "error", err, "profile_id", profile.ID)
		ui.Error(w, http.StatusInternalServerError, "failed to load your content")
		return
	}

	items := make([]map[string]any, 0, len(feed.Items))
	for _, item := range feed.Items {
		entry := map[string]any{
			"id":         item.ID,
			"type":       item.Label,
			"title":      item.Title,
			"created_at": item.CreatedAt,
		}
		if item.Status != "" {
			entry["status"] = item.Status
		}
		items = append(items, entry)
	}

	resp := map[string]any{
		"items":           items,
		"available_types": h.contentService.AvailableTypes(profile),
	}
	if len(feed.Failed) > 0 {
		resp["failed_sections"] = feed.Failed
	}

	ui.JSON(w, http.StatusOK, resp)
}

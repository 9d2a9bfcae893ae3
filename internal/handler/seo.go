package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dhiselink/dhiselink/internal/config"
	"github.com/dhiselink/dhiselink/internal/registry"
	"github.com/dhiselink/dhiselink/internal/repository"
	"github.com/dhiselink/dhiselink/internal/service"
)

type SEOHandler struct {
	cfg            *config.Config
	profileService *service.ProfileService
	contentRepo    repository.ContentRepository
}

func NewSEOHandler(cfg *config.Config, profileService *service.ProfileService, contentRepo repository.ContentRepository) *SEOHandler {
	return &SEOHandler{
		cfg:            cfg,
		profileService: profileService,
		contentRepo:    contentRepo,
	}
}

func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\nDisallow: /app/\nDisallow: /auth/\n\nSitemap: %s/sitemap.xml\n", h.cfg.AppURL)
}

// Sitemap lists the public directory pages plus every slug-bearing record.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	urls := []string{
		h.cfg.AppURL + "/",
		h.cfg.AppURL + "/directory/organizations",
		h.cfg.AppURL + "/directory/individuals",
	}

	for _, label := range registry.Labels() {
		spec, err := registry.Resolve(label)
		if err != nil {
			continue
		}
		urls = append(urls, h.cfg.AppURL+"/directory/"+spec.PathSegment())

		if !spec.Slugged {
			continue
		}
		slugs, err := h.contentRepo.SlugsFor(spec.Table)
		if err != nil {
			slog.Warn("sitemap: failed to load slugs", "error", err, "table", spec.Table)
			continue
		}
		for _, s := range slugs {
			urls = append(urls, h.cfg.AppURL+"/directory/"+spec.PathSegment()+"/"+s)
		}
	}

	if profiles, err := h.profileService.AllOrganizations(); err == nil {
		for _, p := range profiles {
			if p.Slug != "" {
				urls = append(urls, h.cfg.AppURL+"/directory/profiles/"+p.Slug)
			}
		}
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	fmt.Fprint(w, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`+"\n")
	for _, u := range urls {
		fmt.Fprintf(w, "  <url><loc>%s</loc></url>\n", u)
	}
	fmt.Fprint(w, "</urlset>\n")
}

package service

import (
	"net/url"
	"strings"

	"github.com/dhiselink/dhiselink/internal/registry"
	"github.com/dhiselink/dhiselink/internal/sanitize"
	"github.com/dhiselink/dhiselink/internal/slug"
)

// metaFields are framework/internal keys that never reach the store.
var metaFields = map[string]bool{
	"opportunity_type": true,
	"csrf_token":       true,
	"id":               true,
}

// richTextFields carry user-authored markup and are sanitized before
// storage. This is a security boundary, not cosmetics.
var richTextFields = map[string]bool{
	"description":          true,
	"details":              true,
	"requirements":         true,
	"bio":                  true,
	"eligibility_criteria": true,
}

// Normalize converts raw submitted form fields into a record ready for a
// single-table insert. Empty strings mean "not provided" and are dropped
// entirely; they never reach the store as "" or null.
func Normalize(spec registry.Spec, fields url.Values) map[string]any {
	record := make(map[string]any, len(fields))

	for key, values := range fields {
		if metaFields[key] {
			continue
		}

		raw := strings.Join(values, ",")
		if raw == "" {
			continue
		}

		switch {
		case key == "title":
			record["title"] = raw
			if spec.Slugged {
				record["slug"] = slug.Make(raw)
			}

		case richTextFields[key]:
			record[key] = sanitize.HTML(raw)

		case key == "tags":
			tags := splitList(raw)
			if len(tags) > 0 {
				record["tags"] = tags
			}

		case strings.HasSuffix(key, "_images") || strings.Contains(key, "gallery_images"):
			images := splitList(raw)
			if len(images) > 0 {
				record[key] = images
			}

		case strings.HasSuffix(key, "_url"):
			// Single-image fields take the first uploaded file when
			// multiple are provided.
			urls := splitList(raw)
			if len(urls) > 0 {
				record[key] = urls[0]
			}

		default:
			record[key] = raw
		}
	}

	return record
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

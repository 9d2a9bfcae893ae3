// Package sanitize strips executable markup from user-submitted rich text
// before it reaches the store. Safe inline and block formatting survives.
package sanitize

import "github.com/microcosm-cc/bluemonday"

var policy = bluemonday.UGCPolicy()

// HTML removes script content, event handlers and unsafe tags from s,
// keeping the formatting elements allowed for user-generated content.
func HTML(s string) string {
	return policy.Sanitize(s)
}

// Package slug derives URL-safe identifiers from display titles. A short
// random suffix makes slugs unique by construction, so creation never needs
// a uniqueness query against the store.
package slug

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"strings"
)

var (
	whitespace = regexp.MustCompile(`\s+`)
	nonWord    = regexp.MustCompile(`[^\w-]`)
	hyphenRuns = regexp.MustCompile(`-{2,}`)
)

const suffixBytes = 3 // 6 hex chars

// Make converts a title to lowercase-hyphenated form and appends a random
// suffix. Two calls with the same title produce different slugs.
func Make(title string) string {
	return Base(title) + "-" + suffix()
}

// Base returns the deterministic part of the slug: lowercased, whitespace
// collapsed to hyphens, non-word characters stripped, hyphen runs collapsed.
func Base(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = whitespace.ReplaceAllString(s, "-")
	s = nonWord.ReplaceAllString(s, "")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func suffix() string {
	b := make([]byte, suffixBytes)
	_, err := rand.Read(b)
	if err != nil {
		// crypto/rand never fails on supported platforms
		panic("slug: rand.Read: " + err.Error())
	}
	return hex.EncodeToString(b)
}

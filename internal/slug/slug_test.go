package slug

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBase(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "simple", title: "Senior Engineer", want: "senior-engineer"},
		{name: "punctuation stripped", title: "Sr. Engineer (Backend)!", want: "sr-engineer-backend"},
		{name: "extra whitespace", title: "  Deep   Learning \t Researcher ", want: "deep-learning-researcher"},
		{name: "hyphen runs collapsed", title: "A -- B", want: "a-b"},
		{name: "leading and trailing hyphens trimmed", title: "--hello--", want: "hello"},
		{name: "already clean", title: "heritage-site", want: "heritage-site"},
		{name: "empty", title: "", want: ""},
		{name: "only punctuation", title: "!!!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Base(tt.title))
		})
	}
}

func TestMake(t *testing.T) {
	pattern := regexp.MustCompile(`^water-treatment-plant-[0-9a-f]{6}$`)

	s := Make("Water Treatment Plant")
	assert.Regexp(t, pattern, s)
}

func TestMakeIsUnique(t *testing.T) {
	// Same title, different slugs: uniqueness comes from the suffix, not
	// from querying the store.
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s := Make("Annual Grant")
		assert.False(t, seen[s], "duplicate slug %q", s)
		seen[s] = true
	}
}

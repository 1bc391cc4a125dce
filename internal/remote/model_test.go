package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	release1 = Release{
		ID:      1001,
		TagName: "1.1.0",
		Name:    "1.1.0 (2021-02-01)",
		Body:    "Second release.",
		HTMLURL: "https://github.com/octocat/Hello-World/releases/tag/1.1.0",
	}

	release2 = Release{
		ID:      1000,
		TagName: "1.0.0",
		Name:    "1.0.0 (2021-01-01)",
		Body:    "First release.",
		HTMLURL: "https://github.com/octocat/Hello-World/releases/tag/1.0.0",
	}
)

func TestReleaseString(t *testing.T) {
	assert.Equal(t, "1000 1.0.0 https://github.com/octocat/Hello-World/releases/tag/1.0.0", release2.String())
}

func TestReleasesFind(t *testing.T) {
	tests := []struct {
		name            string
		r               Releases
		tagName         string
		expectedOK      bool
		expectedRelease Release
	}{
		{
			name:       "Empty",
			r:          Releases{},
			tagName:    "1.0.0",
			expectedOK: false,
		},
		{
			name:            "Found",
			r:               Releases{release1, release2},
			tagName:         "1.0.0",
			expectedOK:      true,
			expectedRelease: release2,
		},
		{
			name:       "NotFound",
			r:          Releases{release1, release2},
			tagName:    "v1.0.0",
			expectedOK: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			release, ok := tc.r.Find(tc.tagName)

			assert.Equal(t, tc.expectedOK, ok)
			assert.Equal(t, tc.expectedRelease, release)
		})
	}
}

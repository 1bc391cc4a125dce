package github

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moorara/gitch/internal/remote"
)

func TestReleaseStore(t *testing.T) {
	tests := []struct {
		name             string
		pages            map[int][]release
		count            int
		expectedReleases remote.Releases
	}{
		{
			name:             "Empty",
			pages:            map[int][]release{},
			count:            1,
			expectedReleases: remote.Releases{},
		},
		{
			name: "InPageOrder",
			pages: map[int][]release{
				2: {gitHubRelease1},
				1: {gitHubRelease2},
			},
			count:            2,
			expectedReleases: remote.Releases{remoteRelease2, remoteRelease1},
		},
		{
			name: "MissingPage",
			pages: map[int][]release{
				1: {gitHubRelease2},
				3: {gitHubRelease1},
			},
			count:            3,
			expectedReleases: remote.Releases{remoteRelease2, remoteRelease1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newReleaseStore()
			for page, releases := range tc.pages {
				s.Save(page, releases)
			}

			assert.Equal(t, tc.expectedReleases, s.Releases(tc.count))
		})
	}
}

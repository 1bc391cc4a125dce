package remote

import "fmt"

// Release represents a release of a remote repository.
type Release struct {
	ID              int64
	TagName         string
	Name            string
	Body            string
	TargetCommitish string
	Draft           bool
	Prerelease      bool
	HTMLURL         string
}

func (r Release) String() string {
	return fmt.Sprintf("%d %s %s", r.ID, r.TagName, r.HTMLURL)
}

// Releases is a collection of releases.
type Releases []Release

// Find looks up a release by its tag name.
func (r Releases) Find(tagName string) (Release, bool) {
	for _, release := range r {
		if release.TagName == tagName {
			return release, true
		}
	}

	return Release{}, false
}

// ReleaseInput is the payload for creating or updating a release.
type ReleaseInput struct {
	TagName         string `yaml:"tag_name"`
	Name            string `yaml:"name"`
	Body            string `yaml:"body"`
	TargetCommitish string `yaml:"target_commitish,omitempty"`
}

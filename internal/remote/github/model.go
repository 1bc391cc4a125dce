package github

import (
	"time"

	"github.com/moorara/gitch/internal/remote"
)

type (
	user struct {
		ID      int64  `json:"id"`
		Login   string `json:"login"`
		Type    string `json:"type"`
		HTMLURL string `json:"html_url"`
	}

	release struct {
		ID              int64      `json:"id"`
		TagName         string     `json:"tag_name"`
		TargetCommitish string     `json:"target_commitish"`
		Name            string     `json:"name"`
		Body            string     `json:"body"`
		Draft           bool       `json:"draft"`
		Prerelease      bool       `json:"prerelease"`
		Author          user       `json:"author"`
		URL             string     `json:"url"`
		HTMLURL         string     `json:"html_url"`
		CreatedAt       time.Time  `json:"created_at"`
		PublishedAt     *time.Time `json:"published_at"`
	}

	releaseParams struct {
		TagName         string `json:"tag_name"`
		TargetCommitish string `json:"target_commitish,omitempty"`
		Name            string `json:"name"`
		Body            string `json:"body"`
	}
)

func toRelease(r release) remote.Release {
	return remote.Release{
		ID:              r.ID,
		TagName:         r.TagName,
		Name:            r.Name,
		Body:            r.Body,
		TargetCommitish: r.TargetCommitish,
		Draft:           r.Draft,
		Prerelease:      r.Prerelease,
		HTMLURL:         r.HTMLURL,
	}
}

func toReleaseParams(in remote.ReleaseInput) releaseParams {
	return releaseParams{
		TagName:         in.TagName,
		TargetCommitish: in.TargetCommitish,
		Name:            in.Name,
		Body:            in.Body,
	}
}

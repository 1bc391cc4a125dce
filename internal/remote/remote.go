package remote

import "context"

// Repo is the abstraction for the releases of a remote repository.
type Repo interface {
	// FetchReleases retrieves all releases.
	FetchReleases(context.Context) (Releases, error)
	// CreateRelease creates a new release.
	CreateRelease(context.Context, ReleaseInput) (Release, error)
	// UpdateRelease updates an existing release by its id.
	UpdateRelease(context.Context, int64, ReleaseInput) (Release, error)
}

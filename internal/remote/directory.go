package remote

import (
	"context"

	"github.com/moorara/gitch/pkg/log"
)

// Directory lists the releases of a remote repository and caches them.
// The releases are fetched at most once successfully; a failed fetch is retried on the next call.
type Directory struct {
	logger   log.Logger
	repo     Repo
	releases Releases
}

// NewDirectory creates a new release directory.
func NewDirectory(logger log.Logger, repo Repo) *Directory {
	return &Directory{
		logger: logger,
		repo:   repo,
	}
}

// List returns all releases of the remote repository.
func (d *Directory) List(ctx context.Context) (Releases, error) {
	if d.releases != nil {
		return d.releases, nil
	}

	releases, err := d.repo.FetchReleases(ctx)
	if err != nil {
		return nil, err
	}

	if releases == nil {
		releases = Releases{}
	}

	d.logger.Debugf("Cached %d releases", len(releases))
	d.releases = releases

	return d.releases, nil
}

// FindByTag looks up an existing release by its tag name.
func (d *Directory) FindByTag(ctx context.Context, tag string) (Release, bool, error) {
	releases, err := d.List(ctx)
	if err != nil {
		return Release{}, false, err
	}

	release, ok := releases.Find(tag)

	return release, ok, nil
}

// Create creates a new release and adds it to the cached releases.
func (d *Directory) Create(ctx context.Context, in ReleaseInput) (Release, error) {
	release, err := d.repo.CreateRelease(ctx, in)
	if err != nil {
		return Release{}, err
	}

	if d.releases != nil {
		d.releases = append(d.releases, release)
	}

	return release, nil
}

// Update updates an existing release by its id and replaces it in the cached releases.
func (d *Directory) Update(ctx context.Context, id int64, in ReleaseInput) (Release, error) {
	release, err := d.repo.UpdateRelease(ctx, id, in)
	if err != nil {
		return Release{}, err
	}

	for i := range d.releases {
		if d.releases[i].ID == id {
			d.releases[i] = release
		}
	}

	return release, nil
}

// Package publish syncs changelog sections to the releases of a remote repository.
package publish

import (
	"context"
	"errors"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/moorara/gitch/internal/changelog"
	"github.com/moorara/gitch/internal/git"
	"github.com/moorara/gitch/internal/remote"
	"github.com/moorara/gitch/internal/spec"
	"github.com/moorara/gitch/pkg/log"
)

type (
	// GitRepo is the local git repository.
	GitRepo interface {
		Root() (string, error)
		RemoteInfo() (git.RemoteInfo, error)
		Branch() (string, error)
		RemoteTagExists(context.Context, string) (bool, error)
	}

	// Changelog provides the sections of a changelog in document order.
	Changelog interface {
		Sections() (changelog.Sections, error)
	}

	// ReleaseDirectory reads and writes the releases of a remote repository.
	ReleaseDirectory interface {
		FindByTag(context.Context, string) (remote.Release, bool, error)
		Create(context.Context, remote.ReleaseInput) (remote.Release, error)
		Update(context.Context, int64, remote.ReleaseInput) (remote.Release, error)
	}
)

// RepoContext is the repository information resolved once per run.
type RepoContext struct {
	Owner         string
	Name          string
	ChangelogPath string
	// Branch is empty when HEAD is detached.
	Branch string
}

// Selection selects which changelog sections are synced.
type Selection struct {
	Tag string
	All bool
}

// SyncRequest describes the sync operation for one tag.
type SyncRequest struct {
	Tag       string
	Overwrite bool
}

// ResolveContext inspects the local git repository and locates the changelog file.
func ResolveContext(logger log.Logger, gitRepo GitRepo, s spec.Spec) (RepoContext, error) {
	root, err := gitRepo.Root()
	if err != nil {
		return RepoContext{}, newErrorf(Setup, "", "not a git repository: %w", err)
	}

	info, err := gitRepo.RemoteInfo()
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return RepoContext{}, newErrorf(Setup, "", "no git remote")
		}
		return RepoContext{}, newError(Setup, "", err)
	}

	if info.Domain != s.GitHubHost {
		return RepoContext{}, newErrorf(Setup, "", "not a github repository: %s", info.URL)
	}

	path := s.Changelog
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	chlog := changelog.NewFile(logger, path)
	if !chlog.Exists() {
		return RepoContext{}, newErrorf(Setup, "", "changelog not found: %s", chlog.Filename())
	}

	// A repository without any commit has no branch to target
	branch, err := gitRepo.Branch()
	if err != nil {
		logger.Debugf("Git branch cannot be resolved: %s", err)
		branch = ""
	}

	rc := RepoContext{
		Owner:         info.Owner,
		Name:          info.Name,
		ChangelogPath: chlog.Filename(),
		Branch:        branch,
	}

	logger.Debugf("Resolved repository %s/%s with changelog %s", rc.Owner, rc.Name, rc.ChangelogPath)

	return rc, nil
}

// Publisher syncs changelog sections to releases.
type Publisher struct {
	logger    log.Logger
	spec      spec.Spec
	rc        RepoContext
	gitRepo   GitRepo
	changelog Changelog
	releases  ReleaseDirectory
}

// New creates a new publisher.
func New(logger log.Logger, s spec.Spec, rc RepoContext, gitRepo GitRepo, chlog Changelog, releases ReleaseDirectory) *Publisher {
	return &Publisher{
		logger:    logger,
		spec:      s,
		rc:        rc,
		gitRepo:   gitRepo,
		changelog: chlog,
		releases:  releases,
	}
}

func (p *Publisher) sections() (changelog.Sections, error) {
	sections, err := p.changelog.Sections()
	if err != nil {
		return nil, newError(Setup, "", err)
	}

	return sections, nil
}

// Tags returns the tags of the changelog sections in document order.
func (p *Publisher) Tags() ([]string, error) {
	sections, err := p.sections()
	if err != nil {
		return nil, err
	}

	return sections.Tags(), nil
}

// ResolveTargets determines the tags to sync.
// An explicit tag takes precedence, then all tags, then the latest tag.
func (p *Publisher) ResolveTargets(sel Selection) ([]string, error) {
	if sel.Tag != "" && sel.All {
		return nil, newErrorf(Setup, "", "a tag cannot be used with all")
	}

	if sel.Tag != "" {
		return []string{sel.Tag}, nil
	}

	sections, err := p.sections()
	if err != nil {
		return nil, err
	}

	var tags []string
	if sel.All {
		tags = sections.Tags()
	} else if latest, ok := sections.Latest(); ok {
		tags = []string{latest.Tag}
	}

	if len(tags) == 0 {
		return nil, newErrorf(Setup, "", "no changelog entries")
	}

	p.logger.Debugf("Resolved tags to sync: %v", tags)

	return tags, nil
}

// SyncOne syncs the changelog section for a tag to its release and returns the release web address.
func (p *Publisher) SyncOne(ctx context.Context, tag string) (string, error) {
	return p.Sync(ctx, SyncRequest{
		Tag:       tag,
		Overwrite: p.spec.Overwrite,
	})
}

// SyncMany syncs the changelog sections for tags in order and returns the number of synced tags.
// Each tag that cannot be synced is logged as a warning and skipped.
// Setup errors and failures to list the releases abort the batch.
func (p *Publisher) SyncMany(ctx context.Context, tags []string) (int, error) {
	n := 0

	for _, tag := range tags {
		if err := ctx.Err(); err != nil {
			return n, err
		}

		if _, err := p.SyncOne(ctx, tag); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return n, err
			}

			var e *Error
			if !errors.As(err, &e) || e.Kind == Setup || e.Kind == ListReleases {
				return n, err
			}

			p.logger.Warn(e.Error())
			continue
		}

		n++
	}

	return n, nil
}

// Sync syncs the changelog section for a tag to its release and returns the release web address.
// In dry-run mode every step but the write is performed.
func (p *Publisher) Sync(ctx context.Context, req SyncRequest) (string, error) {
	tag := req.Tag

	p.logger.Infof("Syncing %s to github ...", tag)

	sections, err := p.sections()
	if err != nil {
		return "", err
	}

	section, ok := sections.Find(tag)
	if !ok {
		return "", newErrorf(SectionNotFound, tag, "no such tag %q in %s", tag, p.rc.ChangelogPath)
	}

	if p.spec.VerifyTag {
		exists, err := p.gitRepo.RemoteTagExists(ctx, tag)
		if err != nil {
			return "", newErrorf(Remote, tag, "listing remote tags: %w", err)
		}

		if !exists {
			return "", newErrorf(RemoteTagNotFound, tag, "tag %q does not exist at the remote", tag)
		}
	}

	release, found, err := p.releases.FindByTag(ctx, tag)
	if err != nil {
		return "", newErrorf(ListReleases, tag, "fetching releases: %w", err)
	}

	if found && !req.Overwrite {
		return "", newErrorf(ReleaseExists, tag, "github release %q already exists", tag)
	}

	in := remote.ReleaseInput{
		TagName:         tag,
		Name:            section.Header,
		Body:            section.Content,
		TargetCommitish: p.rc.Branch,
	}

	if p.spec.DryRun {
		return p.dryRun(release, found, in), nil
	}

	if found {
		p.logger.Debugf("Updating release %d for %s ...", release.ID, tag)
		release, err = p.releases.Update(ctx, release.ID, in)
	} else {
		p.logger.Debugf("Creating release for %s ...", tag)
		release, err = p.releases.Create(ctx, in)
	}

	if err != nil {
		return "", newErrorf(Remote, tag, "syncing release %s: %w", tag, err)
	}

	p.logger.Infof("%s synced, see %s", tag, release.HTMLURL)

	return release.HTMLURL, nil
}

func (p *Publisher) dryRun(release remote.Release, found bool, in remote.ReleaseInput) string {
	if b, err := yaml.Marshal(in); err == nil {
		p.logger.Debugf("Release payload for %s:\n%s", in.TagName, b)
	}

	url := p.spec.ReleaseURL(p.rc.Owner, p.rc.Name, in.TagName)
	if found && release.HTMLURL != "" {
		url = release.HTMLURL
	}

	p.logger.Infof("%s synced (dry run), see %s", in.TagName, url)

	return url
}

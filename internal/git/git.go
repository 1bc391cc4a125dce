package git

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/moorara/gitch/pkg/log"
)

const remoteName = "origin"

// ErrRemoteNotFound is returned when the repository has no origin remote.
var ErrRemoteNotFound = git.ErrRemoteNotFound

var (
	domainPattern = `(?:[0-9A-Za-z](?:[0-9A-Za-z-]*[0-9A-Za-z])?\.)+[A-Za-z]{2,63}`
	ownerPattern  = `[0-9A-Za-z](?:[0-9A-Za-z-]*[0-9A-Za-z])?`
	namePattern   = `[0-9A-Za-z_.-]+?`
	httpsPattern  = fmt.Sprintf(`^https://(%s)/(%s)/(%s)(?:\.git)?/?$`, domainPattern, ownerPattern, namePattern)
	sshPattern    = fmt.Sprintf(`^git@(%s):(%s)/(%s)(?:\.git)?$`, domainPattern, ownerPattern, namePattern)
	sshURLPattern = fmt.Sprintf(`^ssh://git@(%s)/(%s)/(%s)(?:\.git)?$`, domainPattern, ownerPattern, namePattern)
	httpsRE       = regexp.MustCompile(httpsPattern)
	sshRE         = regexp.MustCompile(sshPattern)
	sshURLRE      = regexp.MustCompile(sshURLPattern)
)

// RemoteInfo is the parsed form of a Git remote repository URL.
type RemoteInfo struct {
	URL    string
	Domain string
	Owner  string
	Name   string
}

// Path returns the owner/name path of the remote repository.
func (i RemoteInfo) Path() string {
	return i.Owner + "/" + i.Name
}

func (i RemoteInfo) String() string {
	return fmt.Sprintf("%s/%s", i.Domain, i.Path())
}

// ParseRemoteURL parses a Git remote URL of the form git@host:owner/name.git or https://host/owner/name.git.
// Any other form is rejected.
func ParseRemoteURL(remoteURL string) (RemoteInfo, error) {
	// Example: https://github.com/moorara/gitch.git --> matches = []string{"https://github.com/moorara/gitch.git", "github.com", "moorara", "gitch"}
	if matches := httpsRE.FindStringSubmatch(remoteURL); len(matches) == 4 {
		return RemoteInfo{
			URL:    remoteURL,
			Domain: matches[1],
			Owner:  matches[2],
			Name:   matches[3],
		}, nil
	}

	// Example: git@github.com:moorara/gitch.git --> matches = []string{"git@github.com:moorara/gitch.git", "github.com", "moorara", "gitch"}
	for _, re := range []*regexp.Regexp{sshRE, sshURLRE} {
		if matches := re.FindStringSubmatch(remoteURL); len(matches) == 4 {
			return RemoteInfo{
				URL:    remoteURL,
				Domain: matches[1],
				Owner:  matches[2],
				Name:   matches[3],
			}, nil
		}
	}

	return RemoteInfo{}, fmt.Errorf("invalid git remote url: %s", remoteURL)
}

// Option configures a Repo.
type Option func(*Repo)

// WithAccessToken sets the token used for authenticating against HTTPS remotes.
func WithAccessToken(token string) Option {
	return func(r *Repo) {
		if token != "" {
			r.auth = &http.BasicAuth{
				Username: "x-access-token",
				Password: token,
			}
		}
	}
}

// Repo is a local Git repository.
type Repo struct {
	logger log.Logger
	git    *git.Repository
	auth   transport.AuthMethod
	// httpsBase overrides https://{domain} when an ssh remote is listed over HTTPS.
	httpsBase string
}

// NewRepo opens the Git repository containing the given path.
func NewRepo(logger log.Logger, path string, opts ...Option) (*Repo, error) {
	g, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})

	if err != nil {
		return nil, err
	}

	logger.Debug("Git repository found.")

	r := &Repo{
		logger: logger,
		git:    g,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Root returns the root directory of the repository working tree.
func (r *Repo) Root() (string, error) {
	worktree, err := r.git.Worktree()
	if err != nil {
		return "", err
	}

	root := worktree.Filesystem.Root()
	r.logger.Debugf("Git repository root: %s", root)

	return root, nil
}

// RemoteInfo returns the parsed URL of the origin remote repository.
func (r *Repo) RemoteInfo() (RemoteInfo, error) {
	r.logger.Debug("Reading git remote URL ...")

	remote, err := r.git.Remote(remoteName)
	if err != nil {
		return RemoteInfo{}, err
	}

	remoteURL := firstURL(remote)

	info, err := ParseRemoteURL(remoteURL)
	if err != nil {
		return RemoteInfo{}, err
	}

	r.logger.Infof("Git remote URL: %s", remoteURL)

	return info, nil
}

// Branch returns the name of the checked out branch.
// An empty name is returned when HEAD is detached.
func (r *Repo) Branch() (string, error) {
	head, err := r.git.Head()
	if err != nil {
		return "", err
	}

	if !head.Name().IsBranch() {
		r.logger.Debug("Git HEAD is detached")
		return "", nil
	}

	branch := head.Name().Short()
	r.logger.Debugf("Git branch: %s", branch)

	return branch, nil
}

func firstURL(remote *git.Remote) string {
	if cfg := remote.Config(); len(cfg.URLs) > 0 {
		return cfg.URLs[0]
	}

	return ""
}

// listRemote returns the remote used for listing the references at origin and its authentication.
// With an access token, an ssh remote is listed over HTTPS so no ssh agent or key is needed.
func (r *Repo) listRemote(remote *git.Remote) (*git.Remote, transport.AuthMethod) {
	remoteURL := firstURL(remote)

	if strings.HasPrefix(remoteURL, "https://") {
		return remote, r.auth
	}

	if r.auth == nil {
		return remote, nil
	}

	info, err := ParseRemoteURL(remoteURL)
	if err != nil {
		return remote, nil
	}

	base := r.httpsBase
	if base == "" {
		base = "https://" + info.Domain
	}

	httpsURL := fmt.Sprintf("%s/%s.git", base, info.Path())
	r.logger.Debugf("Listing git references over %s", httpsURL)

	return git.NewRemote(memory.NewStorage(), &config.RemoteConfig{
		Name: remoteName,
		URLs: []string{httpsURL},
	}), r.auth
}

// RemoteTagExists determines whether a tag reference exists at the origin remote repository.
func (r *Repo) RemoteTagExists(ctx context.Context, tag string) (bool, error) {
	r.logger.Debugf("Listing git references at %s for tag %s ...", remoteName, tag)

	remote, err := r.git.Remote(remoteName)
	if err != nil {
		return false, err
	}

	remote, auth := r.listRemote(remote)
	refs, err := remote.ListContext(ctx, &git.ListOptions{
		Auth: auth,
	})

	if err != nil {
		if errors.Is(err, transport.ErrEmptyRemoteRepository) {
			return false, nil
		}
		return false, err
	}

	name := plumbing.NewTagReferenceName(tag)
	for _, ref := range refs {
		if ref.Name() == name {
			r.logger.Debugf("Found git tag %s at %s", tag, remoteName)
			return true, nil
		}
	}

	r.logger.Debugf("Git tag %s not found at %s", tag, remoteName)

	return false, nil
}

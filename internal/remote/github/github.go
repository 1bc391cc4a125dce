// Package github implements the release operations of a remote repository for GitHub.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"github.com/moorara/gitch/internal/remote"
	"github.com/moorara/gitch/pkg/log"
	"github.com/moorara/gitch/pkg/xhttp"
)

const (
	githubAPIURL      = "https://api.github.com"
	userAgentHeader   = "gitch"
	acceptHeader      = "application/vnd.github.v3+json"
	contentTypeHeader = "application/json"
	pageSize          = 100
)

var relLastRE = regexp.MustCompile(`<([^>]+)>;\s*rel="last"`)

// Option configures a GitHub repository.
type Option func(*repo)

// WithAPIURL sets the base URL of the GitHub API (e.g. for GitHub Enterprise).
func WithAPIURL(apiURL string) Option {
	return func(r *repo) {
		if apiURL != "" {
			r.apiURL = apiURL
		}
	}
}

// WithTimeout sets the timeout for every request sent to the GitHub API.
func WithTimeout(timeout time.Duration) Option {
	return func(r *repo) {
		r.client.Timeout = timeout
	}
}

// repo implements the remote.Repo interface for GitHub.
type repo struct {
	logger log.Logger
	client *http.Client
	apiURL string
	path   string
}

// NewRepo creates a new GitHub repository.
// The access token is sent as a bearer token with every request.
func NewRepo(logger log.Logger, owner, name, accessToken string, opts ...Option) remote.Repo {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	client := &http.Client{
		Transport: &oauth2.Transport{
			Source: ts,
			Base:   http.DefaultTransport,
		},
	}

	r := &repo{
		logger: logger,
		client: client,
		apiURL: githubAPIURL,
		path:   owner + "/" + name,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *repo) createRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, r.apiURL+endpoint, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgentHeader) // See https://docs.github.com/en/rest/overview/resources-in-the-rest-api#user-agent-required
	req.Header.Set("Accept", acceptHeader)        // See https://docs.github.com/en/rest/overview/media-types
	req.Header.Set("Content-Type", contentTypeHeader)

	return req, nil
}

func (r *repo) makeRequest(req *http.Request) (*http.Response, error) {
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, xhttp.NewClientError(resp)
	}

	return resp, nil
}

// parseLastPage reads the number of the last page from a Link header.
func parseLastPage(link string) (int, error) {
	sm := relLastRE.FindStringSubmatch(link)
	if len(sm) != 2 {
		return -1, fmt.Errorf("invalid Link header received from GitHub: %s", link)
	}

	u, err := url.Parse(sm[1])
	if err != nil {
		return -1, fmt.Errorf("invalid Link header received from GitHub: %s", link)
	}

	count, err := strconv.Atoi(u.Query().Get("page"))
	if err != nil || count < 1 {
		return -1, fmt.Errorf("invalid Link header received from GitHub: %s", link)
	}

	return count, nil
}

// fetchReleases retrieves one page of releases along with the Link header of the response.
func (r *repo) fetchReleases(ctx context.Context, pageNo int) ([]release, string, error) {
	// See https://docs.github.com/en/rest/releases/releases#list-releases

	r.logger.Debugf("Fetching GitHub releases page %d ...", pageNo)

	endpoint := fmt.Sprintf("/repos/%s/releases", r.path)
	req, err := r.createRequest(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, "", err
	}

	q := req.URL.Query()
	q.Add("per_page", strconv.Itoa(pageSize))
	q.Add("page", strconv.Itoa(pageNo))
	req.URL.RawQuery = q.Encode()

	resp, err := r.makeRequest(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	releases := []release{}
	if err = json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, "", err
	}

	r.logger.Debugf("Fetched GitHub releases page %d: %d", pageNo, len(releases))

	return releases, resp.Header.Get("Link"), nil
}

func (r *repo) sendRelease(ctx context.Context, method, endpoint string, in remote.ReleaseInput) (remote.Release, error) {
	body := new(bytes.Buffer)
	if err := json.NewEncoder(body).Encode(toReleaseParams(in)); err != nil {
		return remote.Release{}, err
	}

	req, err := r.createRequest(ctx, method, endpoint, body)
	if err != nil {
		return remote.Release{}, err
	}

	resp, err := r.makeRequest(req)
	if err != nil {
		return remote.Release{}, err
	}
	defer resp.Body.Close()

	rel := release{}
	if err = json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return remote.Release{}, err
	}

	return toRelease(rel), nil
}

// FetchReleases retrieves all releases for a GitHub repository.
func (r *repo) FetchReleases(ctx context.Context) (remote.Releases, error) {
	r.logger.Debug("Fetching GitHub releases ...")

	// The first page tells how many pages there are
	first, link, err := r.fetchReleases(ctx, 1)
	if err != nil {
		return nil, err
	}

	pages := 1
	if link != "" {
		if pages, err = parseLastPage(link); err != nil {
			return nil, err
		}
	}

	r.logger.Debugf("Fetched the total number of pages for GitHub releases: %d", pages)

	store := newReleaseStore()
	store.Save(1, first)

	g, gctx := errgroup.WithContext(ctx)

	for i := 2; i <= pages; i++ {
		g.Go(func() error {
			releases, _, err := r.fetchReleases(gctx, i)
			if err != nil {
				return err
			}
			store.Save(i, releases)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	releases := store.Releases(pages)

	r.logger.Infof("GitHub releases are fetched: %d", len(releases))

	return releases, nil
}

// CreateRelease creates a new release for a GitHub repository.
func (r *repo) CreateRelease(ctx context.Context, in remote.ReleaseInput) (remote.Release, error) {
	// See https://docs.github.com/en/rest/releases/releases#create-a-release

	r.logger.Debugf("Creating GitHub release %s ...", in.TagName)

	endpoint := fmt.Sprintf("/repos/%s/releases", r.path)
	rel, err := r.sendRelease(ctx, "POST", endpoint, in)
	if err != nil {
		return remote.Release{}, err
	}

	r.logger.Debugf("Created GitHub release %s: %d", rel.TagName, rel.ID)

	return rel, nil
}

// UpdateRelease updates an existing release for a GitHub repository.
func (r *repo) UpdateRelease(ctx context.Context, id int64, in remote.ReleaseInput) (remote.Release, error) {
	// See https://docs.github.com/en/rest/releases/releases#update-a-release

	r.logger.Debugf("Updating GitHub release %d for %s ...", id, in.TagName)

	endpoint := fmt.Sprintf("/repos/%s/releases/%d", r.path, id)
	rel, err := r.sendRelease(ctx, "PATCH", endpoint, in)
	if err != nil {
		return remote.Release{}, err
	}

	r.logger.Debugf("Updated GitHub release %s: %d", rel.TagName, rel.ID)

	return rel, nil
}

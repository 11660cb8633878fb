package bitbucket

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/forgefetch/forgefetch/pkg/cache"
	"github.com/forgefetch/forgefetch/pkg/integrations"
	"github.com/forgefetch/forgefetch/pkg/versions"
)

// Sentinel results for URL resolution. Both are distinct from transport and
// decoding errors, which propagate from the underlying HTTP client unchanged.
var (
	// ErrNotRepoURL is returned when a URL doesn't match any recognized
	// Bitbucket repository form.
	ErrNotRepoURL = errors.New("not a recognized bitbucket repository url")

	// ErrNoEligibleRelease is returned for a tag-listing URL whose tags,
	// after version filtering, leave nothing to release.
	ErrNoEligibleRelease = errors.New("no tags contain a valid version")
)

// Accepted URL shapes. Owner and repository segments must be non-empty and
// slash-free; anything else is no match.
var (
	repoPattern   = regexp.MustCompile(`^https?://bitbucket\.org/([^/]+)/([^/]+)/?$`)
	branchPattern = regexp.MustCompile(`^https?://bitbucket\.org/([^/]+)/([^/]+)/src/([^/]+)/?$`)
	tagsPattern   = regexp.MustCompile(`^https?://bitbucket\.org/([^/]+)/([^#/]+)/?#tags$`)
)

// readmeFilenames are the spellings recognized when scanning a repository's
// root listing for a readme. Matching is case-insensitive; the first match in
// listing order wins.
var readmeFilenames = map[string]bool{
	"readme":          true,
	"readme.txt":      true,
	"readme.md":       true,
	"readme.mkd":      true,
	"readme.mdown":    true,
	"readme.markdown": true,
	"readme.textile":  true,
	"readme.creole":   true,
	"readme.rst":      true,
}

// Options configure a Client beyond its cache backend.
type Options struct {
	// Username and AppPassword enable HTTP basic auth for private
	// repositories. Leave both empty for unauthenticated requests.
	Username    string
	AppPassword string

	// CacheTTL is how long API responses are cached.
	CacheTTL time.Duration

	// InstallPrereleases makes tag selection consider prerelease versions.
	InstallPrereleases bool
}

// Client resolves Bitbucket web URLs into release download metadata and
// repository information.
//
// All methods are safe for concurrent use; no state is shared across calls
// beyond the cache backend.
type Client struct {
	*integrations.Client
	apiURL             string // API base, e.g. "https://api.bitbucket.org/1.0"
	webURL             string // web base for constructed links, e.g. "https://bitbucket.org"
	installPrereleases bool
}

// NewClient creates a Bitbucket API client with the given cache backend.
func NewClient(backend cache.Cache, opts Options) *Client {
	var headers map[string]string
	if opts.Username != "" {
		cred := base64.StdEncoding.EncodeToString([]byte(opts.Username + ":" + opts.AppPassword))
		headers = map[string]string{"Authorization": "Basic " + cred}
	}

	return &Client{
		Client:             integrations.NewClient(backend, "bitbucket:", opts.CacheTTL, headers),
		apiURL:             "https://api.bitbucket.org/1.0",
		webURL:             "https://bitbucket.org",
		installPrereleases: opts.InstallPrereleases,
	}
}

// DownloadInfo resolves a repository URL into the newest downloadable build.
//
// Accepted URL forms:
//
//	https://bitbucket.org/{owner}/{repo}
//	https://bitbucket.org/{owner}/{repo}/src/{branch}
//	https://bitbucket.org/{owner}/{repo}/#tags
//
// The first two resolve the tip of a branch (discovering the default branch
// when none is given); the tag form selects the highest tag that carries a
// valid version. Returns ErrNotRepoURL for unrecognized URLs and
// ErrNoEligibleRelease when a tag listing yields no versioned tags.
// If refresh is true, cached responses are bypassed.
func (c *Client) DownloadInfo(ctx context.Context, repoURL string, refresh bool) (*DownloadInfo, error) {
	var info DownloadInfo
	err := c.Cached(ctx, "download:"+repoURL, refresh, &info, func() error {
		ci, err := c.commitInfo(ctx, repoURL)
		if err != nil {
			return err
		}
		info = DownloadInfo{
			Version: ci.version,
			URL:     fmt.Sprintf("%s/%s/get/%s.zip", c.webURL, ci.ownerRepo, ci.commit),
			Date:    ci.timestamp,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// RepoInfo resolves a repository URL into descriptive metadata.
//
// Accepted URL forms:
//
//	https://bitbucket.org/{owner}/{repo}
//	https://bitbucket.org/{owner}/{repo}/src/{branch}
//
// Returns ErrNotRepoURL for unrecognized URLs. If refresh is true, cached
// responses are bypassed.
func (c *Client) RepoInfo(ctx context.Context, repoURL string, refresh bool) (*RepoInfo, error) {
	var info RepoInfo
	err := c.Cached(ctx, "repo:"+repoURL, refresh, &info, func() error {
		ownerRepo, branch, err := c.ownerRepoBranch(ctx, repoURL)
		if err != nil {
			return err
		}

		var repo repoResponse
		if err := c.Get(ctx, c.api(ownerRepo, ""), &repo); err != nil {
			return err
		}

		readme, err := c.readmeURL(ctx, ownerRepo, branch)
		if err != nil {
			return err
		}

		info = RepoInfo{
			Name:        repo.Name,
			Description: repo.Description,
			Homepage:    repo.Website,
			Author:      repo.Owner,
			Donate:      fmt.Sprintf("https://www.gittip.com/on/bitbucket/%s/", repo.Owner),
			Readme:      readme,
		}
		if info.Description == "" {
			info.Description = "No description provided"
		}
		if info.Homepage == "" {
			info.Homepage = repoURL
		}
		if repo.HasIssues {
			info.Issues = fmt.Sprintf("%s/%s/issues", c.webURL, ownerRepo)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// commitInfo identifies the changeset a URL refers to: the highest versioned
// tag for a tag-listing URL, otherwise the tip of the explicit or default
// branch.
type commitInfo struct {
	ownerRepo string // "owner/repo"
	timestamp string // changeset timestamp, whole-second precision
	commit    string // branch or tag name
	version   string
}

func (c *Client) commitInfo(ctx context.Context, repoURL string) (*commitInfo, error) {
	var ownerRepo, commit, version string

	if m := tagsPattern.FindStringSubmatch(repoURL); m != nil {
		ownerRepo = m[1] + "/" + m[2]

		var tags tagsResponse
		if err := c.Get(ctx, c.api(ownerRepo, "/tags"), &tags); err != nil {
			return nil, err
		}
		names := make([]string, 0, len(tags))
		for name := range tags {
			names = append(names, name)
		}

		eligible := versions.Sort(versions.Filter(names, c.installPrereleases), true)
		if len(eligible) == 0 {
			return nil, ErrNoEligibleRelease
		}
		commit = eligible[0]
		version = strings.TrimPrefix(commit, "v")
	} else {
		var err error
		ownerRepo, commit, err = c.ownerRepoBranch(ctx, repoURL)
		if err != nil {
			return nil, err
		}
	}

	var cs changesetResponse
	if err := c.Get(ctx, c.api(ownerRepo, "/changesets/"+commit), &cs); err != nil {
		return nil, err
	}

	timestamp := truncateTimestamp(cs.Timestamp)
	if version == "" {
		version = versionFromTimestamp(timestamp)
	}

	return &commitInfo{
		ownerRepo: ownerRepo,
		timestamp: timestamp,
		commit:    commit,
		version:   version,
	}, nil
}

// ownerRepoBranch decomposes a repository URL into "owner/repo" and a branch
// name. A bare repository URL costs one extra fetch to discover the default
// branch.
func (c *Client) ownerRepoBranch(ctx context.Context, repoURL string) (string, string, error) {
	if m := repoPattern.FindStringSubmatch(repoURL); m != nil {
		ownerRepo := m[1] + "/" + m[2]
		branch, err := c.mainBranch(ctx, ownerRepo)
		if err != nil {
			return "", "", err
		}
		return ownerRepo, branch, nil
	}
	if m := branchPattern.FindStringSubmatch(repoURL); m != nil {
		return m[1] + "/" + m[2], m[3], nil
	}
	return "", "", ErrNotRepoURL
}

// mainBranch discovers the default branch name. Depending on the repository's
// version-control backend this is typically "master" or "default", so it has
// to be asked rather than assumed. The answer prefers the cache regardless of
// any refresh flag; it changes rarely.
func (c *Client) mainBranch(ctx context.Context, ownerRepo string) (string, error) {
	var resp mainBranchResponse
	err := c.Cached(ctx, "main-branch:"+ownerRepo, false, &resp, func() error {
		return c.Get(ctx, c.api(ownerRepo, "/main-branch"), &resp)
	})
	if err != nil {
		return "", err
	}
	return resp.Name, nil
}

// readmeURL scans the root directory listing of a branch for a readme file
// and returns its raw-content URL, or "" when none of the recognized
// spellings is present.
func (c *Client) readmeURL(ctx context.Context, ownerRepo, branch string) (string, error) {
	var listing srcListingResponse
	if err := c.Get(ctx, c.api(ownerRepo, "/src/"+branch+"/"), &listing); err != nil {
		return "", err
	}

	for _, entry := range listing.Files {
		if readmeFilenames[strings.ToLower(entry.Path)] {
			return fmt.Sprintf("%s/%s/raw/%s/%s", c.webURL, ownerRepo, branch, entry.Path), nil
		}
	}
	return "", nil
}

func (c *Client) api(ownerRepo, suffix string) string {
	return fmt.Sprintf("%s/repositories/%s%s", c.apiURL, ownerRepo, suffix)
}

// truncateTimestamp cuts a changeset timestamp to whole-second precision,
// dropping any timezone suffix: "2014-03-12 10:00:00+00:00" becomes
// "2014-03-12 10:00:00".
func truncateTimestamp(ts string) string {
	if len(ts) > 19 {
		return ts[:19]
	}
	return ts
}

// The API serves timestamps with either a space or a "T" separating date and
// time; both collapse to dots.
var timestampReplacer = strings.NewReplacer("-", ".", ":", ".", " ", ".", "T", ".")

// versionFromTimestamp synthesizes a version for a commit without a tag:
// "2014-03-12 10:00:00" becomes "2014.03.12.10.00.00".
func versionFromTimestamp(ts string) string {
	return timestampReplacer.Replace(ts)
}

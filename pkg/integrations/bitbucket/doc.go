// Package bitbucket resolves Bitbucket web URLs into release download
// metadata and repository information.
//
// # Overview
//
// Package-manager tooling points at repositories with ordinary web URLs.
// This package turns such a URL into something installable: the zip download
// of the newest eligible release together with a version identifier, or the
// repository's descriptive metadata (homepage, author, readme, issue
// tracker).
//
// # Usage
//
//	client := bitbucket.NewClient(backend, bitbucket.Options{
//	    CacheTTL: 24 * time.Hour,
//	})
//
//	info, err := client.DownloadInfo(ctx, "https://bitbucket.org/owner/repo/#tags", false)
//	if err != nil {
//	    // handle
//	}
//	fmt.Println(info.Version, info.URL)
//
// # Version selection
//
// For a tag-listing URL ({repo}/#tags) the client picks the highest tag that
// parses as a semantic version, skipping prereleases unless
// [Options.InstallPrereleases] is set. A leading "v" is stripped from the
// reported version. Branch URLs have no tag to draw a version from, so one
// is synthesized from the changeset timestamp.
//
// # Errors
//
// Resolution distinguishes three outcomes: a populated result, a URL that
// isn't a recognized repository form ([ErrNotRepoURL]), and a tag listing
// with nothing versioned to install ([ErrNoEligibleRelease]). Transport and
// response-shape failures from the underlying HTTP client propagate as-is;
// this package adds no retries, logging, or wrapping of its own.
package bitbucket

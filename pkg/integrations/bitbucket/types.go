package bitbucket

// DownloadInfo describes the newest downloadable build of a repository.
type DownloadInfo struct {
	Version string `json:"version"` // version number of the download
	URL     string `json:"url"`     // download URL of a zip of the repository
	Date    string `json:"date"`    // timestamp of the underlying changeset, whole-second precision
}

// RepoInfo holds descriptive repository metadata.
// Readme and Issues are empty when the repository has no readme file or has
// issue tracking disabled.
type RepoInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Homepage    string `json:"homepage"`
	Author      string `json:"author"`
	Donate      string `json:"donate"`
	Readme      string `json:"readme,omitempty"`
	Issues      string `json:"issues,omitempty"`
}

// tagsResponse maps tag names to changeset metadata. Only the names are used.
type tagsResponse map[string]struct {
	RawNode string `json:"raw_node"`
}

// changesetResponse is the API response for a single changeset.
type changesetResponse struct {
	Node      string `json:"node"`
	Timestamp string `json:"timestamp"` // "2014-03-12 10:00:00+00:00"
}

// repoResponse is the API response for repository metadata.
type repoResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Owner       string `json:"owner"`
	HasIssues   bool   `json:"has_issues"`
}

// mainBranchResponse is the API response naming the default branch.
type mainBranchResponse struct {
	Name string `json:"name"`
}

// srcListingResponse is the API response for a directory listing.
type srcListingResponse struct {
	Files []struct {
		Path string `json:"path"`
	} `json:"files"`
}

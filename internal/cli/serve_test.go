package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/forgefetch/forgefetch/pkg/integrations"
	"github.com/forgefetch/forgefetch/pkg/integrations/bitbucket"
)

// stubClient returns canned results for both resolution operations.
type stubClient struct {
	download *bitbucket.DownloadInfo
	repo     *bitbucket.RepoInfo
	err      error
}

func (s *stubClient) DownloadInfo(_ context.Context, _ string, _ bool) (*bitbucket.DownloadInfo, error) {
	return s.download, s.err
}

func (s *stubClient) RepoInfo(_ context.Context, _ string, _ bool) (*bitbucket.RepoInfo, error) {
	return s.repo, s.err
}

func testRouter(client repositoryClient) http.Handler {
	return newRouter(client, log.New(io.Discard))
}

func TestServeDownload(t *testing.T) {
	stub := &stubClient{download: &bitbucket.DownloadInfo{
		Version: "2.0.0",
		URL:     "https://bitbucket.org/owner/repo/get/v2.0.0.zip",
		Date:    "2014-03-12 10:00:00",
	}}
	srv := httptest.NewServer(testRouter(stub))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/download?url=https://bitbucket.org/owner/repo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Request-ID"); got == "" {
		t.Error("expected an X-Request-ID header")
	}

	var info bitbucket.DownloadInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if info.Version != "2.0.0" {
		t.Errorf("expected version 2.0.0, got %q", info.Version)
	}
}

func TestServeRepo(t *testing.T) {
	stub := &stubClient{repo: &bitbucket.RepoInfo{
		Name:        "repo",
		Description: "A handy tool",
		Author:      "owner",
	}}
	srv := httptest.NewServer(testRouter(stub))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/repo?url=https://bitbucket.org/owner/repo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var info bitbucket.RepoInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if info.Name != "repo" || info.Author != "owner" {
		t.Errorf("unexpected repo info: %+v", info)
	}
}

func TestServeErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{"missing url", "/v1/download", nil, http.StatusBadRequest},
		{"not a repo url", "/v1/download?url=https://example.com", bitbucket.ErrNotRepoURL, http.StatusBadRequest},
		{"no eligible release", "/v1/download?url=https://bitbucket.org/o/r", bitbucket.ErrNoEligibleRelease, http.StatusNotFound},
		{"repo not found", "/v1/repo?url=https://bitbucket.org/o/r", integrations.ErrNotFound, http.StatusNotFound},
		{"upstream failure", "/v1/repo?url=https://bitbucket.org/o/r", errors.New("boom"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(testRouter(&stubClient{err: tt.err}))
			defer srv.Close()

			resp, err := http.Get(srv.URL + tt.path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.status {
				t.Errorf("expected %d, got %d", tt.status, resp.StatusCode)
			}

			var body map[string]string
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if body["error"] == "" {
				t.Error("expected an error message in the body")
			}
		})
	}
}

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/forgefetch/forgefetch/internal/config"
	"github.com/forgefetch/forgefetch/pkg/integrations"
	"github.com/forgefetch/forgefetch/pkg/integrations/bitbucket"
)

// repositoryClient is the slice of the Bitbucket client the HTTP API needs.
type repositoryClient interface {
	DownloadInfo(ctx context.Context, url string, refresh bool) (*bitbucket.DownloadInfo, error)
	RepoInfo(ctx context.Context, url string, refresh bool) (*bitbucket.RepoInfo, error)
}

// newServeCmd creates the serve command, which exposes URL resolution over
// HTTP for other services.
func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the resolution HTTP API",
		Long: `Run the resolution HTTP API.

Endpoints:
  GET /v1/download?url={repo-url}&refresh={bool}
  GET /v1/repo?url={repo-url}&refresh={bool}

Responses are JSON. Unrecognized URLs yield 400, missing repositories and
repositories without an eligible release yield 404.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			client, backend, err := newRepoClient(ctx, *configPath)
			if err != nil {
				return err
			}
			defer backend.Close()

			srv := &http.Server{
				Addr:              addr,
				Handler:           newRouter(client, logger),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Listening", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to the configured server.addr)")

	return cmd
}

// newRouter builds the HTTP API router.
func newRouter(client repositoryClient, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger(logger))

	r.Get("/v1/download", func(w http.ResponseWriter, req *http.Request) {
		handleResolve(w, req, func(ctx context.Context, url string, refresh bool) (any, error) {
			return client.DownloadInfo(ctx, url, refresh)
		})
	})
	r.Get("/v1/repo", func(w http.ResponseWriter, req *http.Request) {
		handleResolve(w, req, func(ctx context.Context, url string, refresh bool) (any, error) {
			return client.RepoInfo(ctx, url, refresh)
		})
	})

	return r
}

// handleResolve runs a resolution operation for the url query parameter and
// maps resolution outcomes onto HTTP status codes.
func handleResolve(w http.ResponseWriter, req *http.Request, op func(context.Context, string, bool) (any, error)) {
	url := req.URL.Query().Get("url")
	if url == "" {
		writeError(w, http.StatusBadRequest, "missing url parameter")
		return
	}
	refresh := req.URL.Query().Get("refresh") == "true"

	result, err := op(req.Context(), url, refresh)
	switch {
	case errors.Is(err, bitbucket.ErrNotRepoURL):
		writeError(w, http.StatusBadRequest, "not a recognized repository url")
	case errors.Is(err, bitbucket.ErrNoEligibleRelease):
		writeError(w, http.StatusNotFound, "no eligible release")
	case errors.Is(err, integrations.ErrNotFound):
		writeError(w, http.StatusNotFound, "repository not found")
	case err != nil:
		writeError(w, http.StatusBadGateway, "upstream error")
	default:
		writeJSON(w, http.StatusOK, result)
	}
}

// requestLogger tags each request with an ID and logs its outcome.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			id := uuid.NewString()
			w.Header().Set("X-Request-ID", id)

			start := time.Now()
			next.ServeHTTP(w, req)
			logger.Debug("Request",
				"id", id,
				"method", req.Method,
				"path", req.URL.Path,
				"duration", time.Since(start).Round(time.Millisecond),
			)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

package cli

import (
	"context"
	"fmt"

	"github.com/forgefetch/forgefetch/internal/config"
	"github.com/forgefetch/forgefetch/pkg/cache"
	"github.com/forgefetch/forgefetch/pkg/integrations/bitbucket"
)

// newRepoClient builds a Bitbucket client from configuration. The returned
// cache backend must be closed by the caller; the client holds it for the
// lifetime of the command.
func newRepoClient(ctx context.Context, configPath string) (*bitbucket.Client, cache.Cache, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	backend, err := cfg.CacheBackend(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("open cache backend: %w", err)
	}

	client := bitbucket.NewClient(backend, bitbucket.Options{
		Username:           cfg.Auth.Username,
		AppPassword:        cfg.Auth.AppPassword,
		CacheTTL:           cfg.Cache.TTL.Duration,
		InstallPrereleases: cfg.InstallPrereleases,
	})
	return client, backend, nil
}

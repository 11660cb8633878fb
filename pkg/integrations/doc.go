// Package integrations provides HTTP clients for code-hosting provider APIs.
//
// # Overview
//
// This package contains the low-level plumbing for fetching repository
// metadata from hosting providers. Each provider has its own subpackage:
//
//   - [bitbucket]: Bitbucket repository and release resolution
//
// # Client Pattern
//
// Provider clients embed [Client], which handles:
//   - HTTP GET requests with JSON decoding
//   - Retry with exponential backoff on transient failures
//   - Response caching via [cache.Cache] backends
//
// A typical provider client:
//
//	client := bitbucket.NewClient(backend, bitbucket.Options{CacheTTL: 24 * time.Hour})
//	info, err := client.DownloadInfo(ctx, "https://bitbucket.org/owner/repo", false)
//
// # Errors
//
// [ErrNotFound] marks a missing upstream resource (HTTP 404). [ErrNetwork]
// covers connection failures, timeouts, and 5xx responses; 5xx responses are
// additionally wrapped as retryable so the backoff loop re-attempts them.
// Both are detectable with errors.Is.
//
// # Adding a New Provider
//
// To support another hosting provider:
//
//  1. Create a subpackage: pkg/integrations/<provider>/
//  2. Define response structs matching the API schema
//  3. Embed [Client] and build API URLs against a configurable base URL
//  4. Wire the provider into the CLI commands
//
// [bitbucket]: github.com/forgefetch/forgefetch/pkg/integrations/bitbucket
// [cache.Cache]: github.com/forgefetch/forgefetch/pkg/cache.Cache
package integrations

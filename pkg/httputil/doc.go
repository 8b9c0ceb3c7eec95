// Package httputil fetches remote item snapshots over HTTP.
//
// # Overview
//
// Item files do not have to live on disk: a tracker export published at a
// URL is a valid source. This package provides the transport pieces the
// HTTP item source builds on:
//
//   - [Fetch]: GET a URL and return the body and its content type
//   - [Retry]: Automatic retry with exponential backoff
//
// # Retry
//
// [Fetch] classifies failures so that [Retry] attempts the request again
// only when that can help:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses (honoring Retry-After)
//
// Other 4xx responses fail immediately.
//
//	body, ctype, err := httputil.Fetch(ctx, http.DefaultClient, url)
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Max attempts: 3
//   - Base backoff: 1 second, doubling
//   - Max body size: 32 MiB
package httputil

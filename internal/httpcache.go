/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/mikeb26/showdown-leaguebot/s3cache"
	"github.com/rs/zerolog"
)

// NewCachedHttpClient returns an http.Client that caches responses in the
// given S3 bucket. An empty bucket, or a bucket that cannot be reached, yields
// an uncached client; replay fetching still works, it just isn't cached.
// Origin cache headers are rewritten so every successful response is kept for
// maxAge.
func NewCachedHttpClient(ctx context.Context, bucket string,
	maxAge time.Duration, logger zerolog.Logger) *http.Client {

	if bucket == "" {
		return http.DefaultClient
	}

	cache, err := s3cache.NewFromDefaultConfig(ctx, bucket, ReplayCachePrefix,
		true, logger)
	if err != nil {
		logger.Warn().Err(err).Str("bucket", bucket).
			Msg("failed to init S3 replay cache; falling back to uncached http")
		return http.DefaultClient
	}

	return newCachingClient(cache, http.DefaultTransport, maxAge)
}

func newCachingClient(cache httpcache.Cache, base http.RoundTripper,
	maxAge time.Duration) *http.Client {

	hc := httpcache.NewTransport(cache)
	// origin servers may mark replays uncacheable; override so the TTL wins
	hc.Transport = &HeaderOverrideTransport{
		wrappedRT: base,
		Response: func(resp *http.Response) error {
			if resp.StatusCode != http.StatusOK {
				return nil
			}
			resp.Header.Del("Pragma")
			resp.Header.Del("Expires")
			resp.Header.Del("Cache-Control")
			resp.Header.Set("Cache-Control",
				fmt.Sprintf("public, max-age=%d", int(maxAge/time.Second)))
			return nil
		},
	}

	return &http.Client{Transport: hc}
}

type HeaderOverrideTransport struct {
	Request  func(req *http.Request)
	Response func(resp *http.Response) error

	wrappedRT http.RoundTripper
}

// RoundTrip applies Request and Response hooks around the underlying transport.
func (t *HeaderOverrideTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so we don’t stomp on the caller’s original
	req2 := req.Clone(req.Context())
	if t.Request != nil {
		t.Request(req2)
	}

	resp, err := t.wrappedRT.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	if t.Response != nil {
		if err := t.Response(resp); err != nil {
			resp.Body.Close()
			return nil, err
		}
	}
	return resp, nil
}

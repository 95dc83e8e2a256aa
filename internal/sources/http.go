// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/admitlens/internal/fetcher"
)

const (
	// maxErrorBodySize caps how much of an error response is kept.
	maxErrorBodySize = 4 * 1024

	// maxBodySize caps a successful response body.
	maxBodySize = 8 * 1024 * 1024

	defaultUserAgent = "admitlens/1.0 (+https://github.com/tomtom215/admitlens)"
)

// newHTTPClient returns a client whose timeout backs up the per-query
// context deadline set by the fetcher.
func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// readBodyForError reads a bounded prefix of an error response body.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("... (truncated)")...)
	}
	return body
}

// get performs a GET and returns the body of a 2xx response. Failures come
// back as *fetcher.SourceError.
func get(ctx context.Context, client *http.Client, source, reqURL, userAgent string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fetcher.NewSourceError(source, fetcher.KindTransport, fmt.Errorf("create request: %w", err))
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, application/rss+xml, application/atom+xml, text/xml;q=0.9, */*;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fetcher.NewSourceError(source, fetcher.KindTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fetcher.NewSourceError(source, fetcher.KindNotFound, fmt.Errorf("HTTP 404: %s", readBodyForError(resp.Body)))
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fetcher.NewSourceError(source, fetcher.KindRateLimited, fmt.Errorf("HTTP 429 (retry-after %q)", resp.Header.Get("Retry-After")))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fetcher.NewSourceError(source, fetcher.KindStatus, fmt.Errorf("HTTP %d: %s", resp.StatusCode, readBodyForError(resp.Body)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fetcher.NewSourceError(source, fetcher.KindTransport, fmt.Errorf("read body: %w", err))
	}
	return body, nil
}

// getJSON performs a GET and decodes the JSON response into out.
func getJSON(ctx context.Context, client *http.Client, source, reqURL, userAgent string, out any) error {
	body, err := get(ctx, client, source, reqURL, userAgent)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fetcher.NewSourceError(source, fetcher.KindDecode, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil is the transport boundary for arxivkit: one GET, the
// response body back as bytes. It does not retry, cache or pool connections;
// callers that need those wrap the *http.Client they pass in.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes caps the size of a response body. A full page of 2000
// entries is well under this.
var MaxBodyBytes int64 = 64 << 20

// StatusError is returned for any response other than 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.StatusCode)
}

// Fetch performs a single GET and returns the body. A nil client uses
// http.DefaultClient. Cancelling ctx aborts the request.
func Fetch(ctx context.Context, client *http.Client, url, userAgent string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if int64(len(body)) > MaxBodyBytes {
		return nil, fmt.Errorf("GET %s: response larger than %d bytes", url, MaxBodyBytes)
	}

	if resp.StatusCode != http.StatusOK {
		snippet := body
		if len(snippet) > 512 {
			snippet = snippet[:512]
		}
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Body: string(snippet)}
	}
	return body, nil
}

package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// MaxBodySize caps the size of a fetched snapshot.
const MaxBodySize = 32 << 20

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Fetch GETs url with retries and returns the body and its Content-Type.
// A nil client uses [http.DefaultClient].
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	var (
		body  []byte
		ctype string
	)
	err := RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json, application/yaml, application/toml, text/csv;q=0.9, */*;q=0.1")

		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return &RetryableError{Err: err}
		}
		defer resp.Body.Close()

		if err := checkStatus(url, resp); err != nil {
			return err
		}

		data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
		if err != nil {
			return &RetryableError{Err: fmt.Errorf("read %s: %w", url, err)}
		}
		if len(data) > MaxBodySize {
			return fmt.Errorf("GET %s: body exceeds %d bytes", url, MaxBodySize)
		}
		body, ctype = data, resp.Header.Get("Content-Type")
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return body, ctype, nil
}

func checkStatus(url string, resp *http.Response) error {
	code := resp.StatusCode
	if code >= 200 && code < 300 {
		return nil
	}
	err := &StatusError{URL: url, StatusCode: code}
	switch {
	case code == http.StatusTooManyRequests:
		return &RetryableError{Err: err, After: retryAfter(resp.Header.Get("Retry-After"))}
	case code >= 500:
		return &RetryableError{Err: err}
	}
	return err
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(v string) time.Duration {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

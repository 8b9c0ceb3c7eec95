package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func shortBackoff(t *testing.T) {
	old := backoff
	backoff = time.Millisecond
	t.Cleanup(func() { backoff = old })
}

func TestFetch(t *testing.T) {
	shortBackoff(t)

	tests := []struct {
		name      string
		failures  int
		failCode  int
		wantErr   bool
		wantCalls int32
	}{
		{"ok", 0, 0, false, 1},
		{"recovers from 503", 2, http.StatusServiceUnavailable, false, 3},
		{"gives up after 3 attempts", 5, http.StatusBadGateway, true, 3},
		{"retries 429", 1, http.StatusTooManyRequests, false, 2},
		{"no retry on 404", 5, http.StatusNotFound, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := calls.Add(1)
				if int(n) <= tt.failures {
					w.WriteHeader(tt.failCode)
					return
				}
				w.Header().Set("Content-Type", "application/yaml")
				w.Write([]byte("items: []\n"))
			}))
			defer srv.Close()

			body, ctype, err := Fetch(context.Background(), srv.Client(), srv.URL+"/items")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Fetch() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := calls.Load(); got != tt.wantCalls {
				t.Errorf("server called %d times, want %d", got, tt.wantCalls)
			}
			if tt.wantErr {
				var se *StatusError
				if !errors.As(err, &se) || se.StatusCode != tt.failCode {
					t.Errorf("error = %v, want StatusError %d", err, tt.failCode)
				}
				return
			}
			if string(body) != "items: []\n" || ctype != "application/yaml" {
				t.Errorf("Fetch() = %q, %q", body, ctype)
			}
		})
	}
}

func TestFetchCancelled(t *testing.T) {
	shortBackoff(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := Fetch(ctx, srv.Client(), srv.URL); err == nil {
		t.Fatal("Fetch() with cancelled context should fail")
	}
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	calls := 0
	perm := errors.New("permanent")
	err := Retry(context.Background(), 5, time.Millisecond, func() error {
		calls++
		return perm
	})
	if !errors.Is(err, perm) || calls != 1 {
		t.Errorf("Retry() = %v after %d calls, want permanent after 1", err, calls)
	}
}

func TestRetryAfter(t *testing.T) {
	tests := map[string]time.Duration{
		"":    0,
		"2":   2 * time.Second,
		"-1":  0,
		"Wed": 0,
	}
	for in, want := range tests {
		if got := retryAfter(in); got != want {
			t.Errorf("retryAfter(%q) = %v, want %v", in, got, want)
		}
	}
}

package source

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/matzehuels/roadmap/pkg/cache"
	"github.com/matzehuels/roadmap/pkg/core/item"
	"github.com/matzehuels/roadmap/pkg/errors"
	"github.com/matzehuels/roadmap/pkg/httputil"
)

// HTTP reads an item snapshot published at a URL. Decoded records are
// cached for [cache.TTLItems] when Cache is set.
type HTTP struct {
	URL    string
	Client *http.Client
	Cache  cache.Cache
	Keyer  cache.Keyer
}

// NewHTTP returns an uncached HTTP source.
func NewHTTP(rawURL string) *HTTP {
	return &HTTP{URL: rawURL}
}

// Name returns the URL.
func (h *HTTP) Name() string { return h.URL }

// Load fetches and decodes the snapshot.
func (h *HTTP) Load(ctx context.Context) ([]item.Item, error) {
	recs, err := h.Records(ctx)
	if err != nil {
		return nil, err
	}
	return item.Items(recs), nil
}

// Records fetches the snapshot without converting records to items.
func (h *HTTP) Records(ctx context.Context) ([]item.Record, error) {
	key := h.key()
	if h.Cache != nil {
		if data, ok, _ := h.Cache.Get(ctx, key); ok {
			var recs []item.Record
			if json.Unmarshal(data, &recs) == nil {
				return recs, nil
			}
		}
	}

	body, ctype, err := httputil.Fetch(ctx, h.Client, h.URL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "fetch %s", h.URL)
	}
	recs, err := Decode(body, formatExt(h.URL, ctype))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "items at %s", h.URL)
	}

	if h.Cache != nil {
		if data, err := json.Marshal(recs); err == nil {
			_ = h.Cache.Set(ctx, key, data, cache.TTLItems)
		}
	}
	return recs, nil
}

// Close does nothing.
func (h *HTTP) Close() error { return nil }

func (h *HTTP) key() string {
	k := h.Keyer
	if k == nil {
		k = cache.NewDefaultKeyer()
	}
	return k.ItemsKey("http", h.URL)
}

var _ Source = (*HTTP)(nil)

// formatExt picks a decoder extension from the URL path, falling back to
// the response content type, then JSON.
func formatExt(rawURL, ctype string) string {
	if u, err := url.Parse(rawURL); err == nil {
		switch ext := strings.ToLower(path.Ext(u.Path)); ext {
		case ".json", ".jsonc", ".yaml", ".yml", ".toml", ".csv":
			return ext
		}
	}
	mt, _, _ := mime.ParseMediaType(ctype)
	switch mt {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return ".yaml"
	case "application/toml":
		return ".toml"
	case "text/csv":
		return ".csv"
	}
	return ".json"
}

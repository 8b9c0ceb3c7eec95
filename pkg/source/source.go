package source

import (
	"context"
	stderrors "errors"
	"path/filepath"
	"strings"

	"github.com/matzehuels/roadmap/pkg/core/item"
)

// ErrUnsupportedFormat is returned for files whose extension has no decoder.
var ErrUnsupportedFormat = stderrors.New("unsupported item format")

// Source loads a snapshot of work items.
type Source interface {
	// Name identifies the source in logs and cache keys.
	Name() string

	// Load returns the items in source order.
	Load(ctx context.Context) ([]item.Item, error)

	// Close releases resources.
	Close() error
}

// Open returns the source for ref:
//
//	mongodb://host/db/collection   (also mongodb+srv://)
//	http(s)://host/items.json      a published snapshot
//	sqlite://path/to/items.db
//	path/to/items.db|.sqlite       SQLite by extension
//	anything else                  a file, by extension
func Open(ctx context.Context, ref string) (Source, error) {
	if strings.HasPrefix(ref, "mongodb://") || strings.HasPrefix(ref, "mongodb+srv://") {
		m, err := ConnectMongo(ctx, ref)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return NewHTTP(ref), nil
	}
	if path, ok := sqlitePath(ref); ok {
		db, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return db, nil
	}
	return NewFile(ref), nil
}

// sqlitePath reports whether ref names a SQLite database.
func sqlitePath(ref string) (string, bool) {
	if path, ok := strings.CutPrefix(ref, "sqlite://"); ok {
		return path, true
	}
	switch strings.ToLower(filepath.Ext(ref)) {
	case ".db", ".sqlite", ".sqlite3":
		return ref, true
	}
	return "", false
}

// Static is an in-memory source.
type Static struct {
	Label string
	Items []item.Item
}

// Name returns the label.
func (s *Static) Name() string { return s.Label }

// Load returns a copy of the items.
func (s *Static) Load(context.Context) ([]item.Item, error) {
	return append([]item.Item(nil), s.Items...), nil
}

// Close does nothing.
func (s *Static) Close() error { return nil }

var _ Source = (*Static)(nil)

package frame

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/roadmap/pkg/errors"
)

// Store keeps frames under names. Names must pass
// [errors.ValidateFrameName].
type Store interface {
	Save(ctx context.Context, name string, f Frame) error
	Load(ctx context.Context, name string) (Frame, error)
	List(ctx context.Context) ([]string, error)
	Close() error
}

// DirStore keeps each frame as <name>.json in a directory.
type DirStore struct {
	dir string
}

// NewDirStore creates the directory if needed.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &DirStore{dir: dir}, nil
}

// Save writes the frame atomically.
func (s *DirStore) Save(_ context.Context, name string, f Frame) error {
	if err := errors.ValidateFrameName(name); err != nil {
		return err
	}
	return WriteFile(f, s.path(name))
}

// Load reads the named frame.
func (s *DirStore) Load(_ context.Context, name string) (Frame, error) {
	if err := errors.ValidateFrameName(name); err != nil {
		return Frame{}, err
	}
	f, err := ReadFile(s.path(name))
	if stderrors.Is(err, fs.ErrNotExist) {
		return Frame{}, errors.New(errors.ErrCodeFrameNotFound, "frame %q not found", name)
	}
	return f, err
}

// List returns the stored names in ascending order.
func (s *DirStore) List(context.Context) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(filepath.Base(m), ".json"))
	}
	slices.Sort(names)
	return names, nil
}

// Close does nothing for directory stores.
func (s *DirStore) Close() error { return nil }

func (s *DirStore) path(name string) string {
	return filepath.Join(s.dir, strings.TrimSuffix(name, ".json")+".json")
}

var _ Store = (*DirStore)(nil)

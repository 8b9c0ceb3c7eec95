// Package session persists the view state of interactive hosts between runs.
//
// The engine keeps no state across cycles: the host owns which rows are
// collapsed, where it is scrolled and how it is zoomed. A terminal browser
// that is closed and reopened on the same items should come back where the
// user left it, so the host saves a [Session] per item source on exit and
// restores it on start.
//
// # Usage
//
//	store, err := session.NewFileStore("") // ~/.config/roadmap/sessions/
//	if err != nil {
//	    return err
//	}
//	sess, err := store.Get(ctx, session.IDFor(src.Name()))
//	if err != nil {
//	    return err
//	}
//	if sess != nil {
//	    s = sess.Apply(s)
//	}
//
// Sessions expire after [DefaultTTL] so stale state for deleted or renamed
// sources does not pile up; [Store.Cleanup] removes them.
package session

import (
	"context"
	"slices"
	"time"

	"github.com/matzehuels/roadmap/pkg/cache"
	"github.com/matzehuels/roadmap/pkg/settings"
)

// DefaultTTL is how long an untouched session is kept.
const DefaultTTL = 30 * 24 * time.Hour

// Session is the view state of one item source.
type Session struct {
	ID     string `json:"id"`
	Source string `json:"source"`

	// View settings the browser can change interactively.
	TimeScale     string   `json:"timeScale"`
	ZoomLevel     float64  `json:"zoomLevel"`
	GroupBy       string   `json:"groupBy"`
	ShowHierarchy bool     `json:"showHierarchy"`
	CollapsedKeys []string `json:"collapsedKeys,omitempty"`

	ScrollLeft float64 `json:"scrollLeft"`

	// Cursor is the key of the selected row.
	Cursor string `json:"cursor,omitempty"`

	UpdatedAt time.Time `json:"updatedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IDFor derives a file-safe session id from a source name.
func IDFor(source string) string {
	return cache.Hash([]byte(source))[:24]
}

// New captures the view state in s for source.
func New(source string, s settings.Settings, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:            IDFor(source),
		Source:        source,
		TimeScale:     s.TimeScale,
		ZoomLevel:     s.ZoomLevel,
		GroupBy:       s.GroupBy,
		ShowHierarchy: s.ShowHierarchy,
		CollapsedKeys: slices.Clone(s.CollapsedKeys),
		UpdatedAt:     now,
		ExpiresAt:     now.Add(ttl),
	}
}

// IsExpired reports whether the session has outlived its TTL.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Apply returns base with the saved view settings restored. Everything the
// session does not track is left as is.
func (s *Session) Apply(base settings.Settings) settings.Settings {
	base.TimeScale = s.TimeScale
	base.ZoomLevel = s.ZoomLevel
	base.GroupBy = s.GroupBy
	base.ShowHierarchy = s.ShowHierarchy
	base.CollapsedKeys = slices.Clone(s.CollapsedKeys)
	return base
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, sess *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error
}

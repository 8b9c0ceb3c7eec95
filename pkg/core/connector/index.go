package connector

import (
	"strconv"
	"strings"

	"github.com/matzehuels/roadmap/pkg/core/item"
	"github.com/matzehuels/roadmap/pkg/core/rows"
)

// Index maps item references to row positions. Build it with [NewIndex]
// after the row list is final; it is read-only afterwards.
type Index struct {
	byKey map[string]int
	byID  map[int]int
	epics map[string]int
}

// NewIndex indexes every item row of rs. When several rows share a bare id
// (an Epic and a Feature both numbered 7, say), the first row wins.
func NewIndex(rs []rows.Row) *Index {
	ix := &Index{
		byKey: make(map[string]int, len(rs)),
		byID:  make(map[int]int, len(rs)),
		epics: make(map[string]int),
	}
	for i := range rs {
		it := rs[i].Item
		if it == nil {
			continue
		}
		ix.byKey[it.Key()] = i
		if rs[i].Kind == rows.KindEpic {
			ix.epics[it.Key()] = i
		}
		if _, ok := ix.byID[it.ID]; !ok {
			ix.byID[it.ID] = i
		}
	}
	return ix
}

// Len returns the number of indexed rows.
func (ix *Index) Len() int { return len(ix.byKey) }

// Key returns the row holding the item with composite key k.
func (ix *Index) Key(k string) (int, bool) {
	i, ok := ix.byKey[k]
	return i, ok
}

// ID returns the first row holding an item with bare id id.
func (ix *Index) ID(id int) (int, bool) {
	i, ok := ix.byID[id]
	return i, ok
}

// Parent resolves a parent reference. Parents are always composite keys
// and only Epic rows can be parents.
func (ix *Index) Parent(ref string) (int, bool) {
	i, ok := ix.epics[ref]
	return i, ok
}

// Predecessor resolves a predecessor reference, which sources may give as a
// composite key or a bare id. See the package documentation for the order.
func (ix *Index) Predecessor(ref string) (int, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, false
	}
	if i, ok := ix.byKey[ref]; ok {
		return i, true
	}
	if id, err := strconv.Atoi(ref); err == nil {
		if i, ok := ix.byID[id]; ok {
			return i, true
		}
	}
	for _, p := range item.Prefixes() {
		if i, ok := ix.byKey[p+"-"+ref]; ok {
			return i, true
		}
	}
	return 0, false
}

package controller

import (
	"context"
	"strings"
)

// Lookup backs an identifier autocomplete: the reference collection is
// fetched once, then filtered in memory as the user types. Selecting writes
// the identifier into the owning form's draft; that wiring lives with the
// screen.
type Lookup struct {
	fetch  func(context.Context) ([]string, error)
	ids    []string
	loaded bool
}

// NewLookup builds a lookup over the identifiers returned by fetch.
func NewLookup(fetch func(context.Context) ([]string, error)) *Lookup {
	return &Lookup{fetch: fetch}
}

// Ensure loads the reference list on first use. Later calls are no-ops
// until Invalidate.
func (l *Lookup) Ensure(ctx context.Context) error {
	if l.loaded {
		return nil
	}
	ids, err := l.fetch(ctx)
	if err != nil {
		return err
	}
	l.ids = ids
	l.loaded = true
	return nil
}

// Fetch returns the cached identifiers, or runs the underlying fetch when
// nothing is cached yet. It does not install the result; pair with Install
// when the caller applies outcomes on an event loop.
func (l *Lookup) Fetch(ctx context.Context) ([]string, error) {
	if l.loaded {
		return l.ids, nil
	}
	return l.fetch(ctx)
}

// Install caches a fetched identifier list.
func (l *Lookup) Install(ids []string) {
	l.ids = ids
	l.loaded = true
}

// Invalidate forces a refetch on the next Ensure, for when the lookup's
// dependency changes.
func (l *Lookup) Invalidate() {
	l.loaded = false
	l.ids = nil
}

// Match returns the identifiers containing term, case-insensitively. An
// empty term matches the whole list.
func (l *Lookup) Match(term string) []string {
	if term == "" {
		return l.ids
	}
	needle := strings.ToLower(term)
	var out []string
	for _, id := range l.ids {
		if strings.Contains(strings.ToLower(id), needle) {
			out = append(out, id)
		}
	}
	return out
}

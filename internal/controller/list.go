package controller

import (
	"context"
	"fmt"

	"github.com/mamadbah2/dairydesk/pkg/clients/dairy"
)

// List owns one screen's view of an entity collection: the fetched records,
// the active filters, the loading flag and the last error. It is driven from
// a single event loop (the UI's update function), so it carries no locking.
type List[T Record] struct {
	schema Schema[T]
	client *dairy.Client

	records []T
	filters Filters
	loading bool
	lastErr *dairy.Error

	// gen identifies the newest fetch; responses carrying an older
	// generation are discarded so a slow response can never overwrite the
	// result of a later one.
	gen uint64

	deleting map[int]bool
}

// NewList builds a list controller for one entity screen.
func NewList[T Record](schema Schema[T], client *dairy.Client) *List[T] {
	return &List[T]{
		schema:   schema,
		client:   client,
		deleting: map[int]bool{},
	}
}

// Schema exposes the entity schema the controller was built from.
func (l *List[T]) Schema() Schema[T] { return l.schema }

// Records returns the current unfiltered collection.
func (l *List[T]) Records() []T { return l.records }

// Loading reports whether a fetch is in flight.
func (l *List[T]) Loading() bool { return l.loading }

// Err returns the last operational error, or nil.
func (l *List[T]) Err() *dairy.Error { return l.lastErr }

// ClearErr drops the surfaced error without touching the collection.
func (l *List[T]) ClearErr() { l.lastErr = nil }

// Filters returns the current filter state.
func (l *List[T]) Filters() Filters { return l.filters }

// SetFilters replaces the whole filter state in one update.
func (l *List[T]) SetFilters(f Filters) { l.filters = f }

// ClearFilters resets every predicate atomically.
func (l *List[T]) ClearFilters() { l.filters = Filters{} }

// Visible returns the records passing the active filters.
func (l *List[T]) Visible() []T {
	return Apply(l.schema, l.records, l.filters)
}

// Summary aggregates over the visible subset only.
func (l *List[T]) Summary() Summary {
	return Summarize(l.schema, l.Visible())
}

// BeginFetch marks the start of a new fetch: stale rows are cleared, the
// loading flag raises, and the returned generation must be handed back to
// ApplyFetch with the response. Each call invalidates all earlier
// generations.
func (l *List[T]) BeginFetch() uint64 {
	l.gen++
	l.loading = true
	l.records = nil
	l.lastErr = nil
	return l.gen
}

// ApplyFetch installs a fetch outcome. Outcomes from superseded generations
// are dropped and false is returned; the caller should simply ignore them.
// A 401 leaves the collection empty and surfaces the authentication variant;
// any other failure surfaces the generic retryable fetch error. Nothing here
// retries; re-fetching is always a deliberate user action.
func (l *List[T]) ApplyFetch(gen uint64, records []T, err error) bool {
	if gen != l.gen {
		return false
	}

	l.loading = false
	if err != nil {
		l.records = nil
		l.lastErr = dairy.As(err)
		return true
	}

	l.records = records
	l.lastErr = nil
	return true
}

// Fetch runs a full fetch synchronously; query is an optional raw query
// string, used for admin "scope to one supervisor" views.
func (l *List[T]) Fetch(ctx context.Context, query string) error {
	gen := l.BeginFetch()
	records, err := dairy.List[T](ctx, l.client, l.schema.Endpoint, query)
	l.ApplyFetch(gen, records, err)
	if err != nil {
		return err
	}
	return nil
}

// Deleting reports whether a delete for the given id is in flight; the UI
// disables only that row's control.
func (l *List[T]) Deleting(id int) bool { return l.deleting[id] }

// BeginDelete reserves the delete slot for one id; false means a delete for
// that id is already in flight.
func (l *List[T]) BeginDelete(id int) bool {
	if l.deleting[id] {
		return false
	}
	l.deleting[id] = true
	return true
}

// ApplyDelete installs a delete outcome. On success the record is dropped
// from the local collection without a refetch; on 404 the collection is left
// unchanged and the not-found variant is surfaced.
func (l *List[T]) ApplyDelete(id int, err error) {
	delete(l.deleting, id)

	if err != nil {
		l.lastErr = dairy.As(err)
		return
	}

	kept := l.records[:0:0]
	for _, rec := range l.records {
		if rec.RecordID() != id {
			kept = append(kept, rec)
		}
	}
	l.records = kept
}

// Delete removes one record by id, after the caller has obtained the user's
// confirmation. At most one delete per id may be in flight.
func (l *List[T]) Delete(ctx context.Context, id int) error {
	if !l.BeginDelete(id) {
		return fmt.Errorf("delete already in flight for record %d", id)
	}
	err := dairy.Delete(ctx, l.client, l.schema.Endpoint, id)
	l.ApplyDelete(id, err)
	return err
}

package controller

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/mamadbah2/dairydesk/pkg/clients/dairy"
)

// Exporter downloads the server-generated spreadsheet for one entity and
// writes it to the downloads directory, the desktop analog of the browser's
// object-URL download. A boolean flag disables the trigger for the duration
// of one request; concurrent triggers are not deduplicated beyond that.
type Exporter struct {
	client       *dairy.Client
	downloadsDir string
	busy         bool
	lastErr      *dairy.Error
}

// NewExporter builds an exporter writing into downloadsDir.
func NewExporter(client *dairy.Client, downloadsDir string) *Exporter {
	return &Exporter{client: client, downloadsDir: downloadsDir}
}

// Busy reports whether an export request is in flight.
func (e *Exporter) Busy() bool { return e.busy }

// Err returns the last export failure. Export errors are kept apart from
// list-fetch errors and never block the list view.
func (e *Exporter) Err() *dairy.Error { return e.lastErr }

// ExportQuery merges the screen's filter state with the session's role
// scope into the export query string.
func ExportQuery[T Record](l *List[T]) url.Values {
	q := url.Values{}
	f := l.Filters()
	if f.StartDate != "" {
		q.Set("start_date", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("end_date", f.EndDate)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	for field, value := range f.Enums {
		if value != "" {
			q.Set(field, value)
		}
	}
	for key, values := range l.client.Session().ExportScope() {
		for _, v := range values {
			q.Set(key, v)
		}
	}
	return q
}

// FileName derives the download name from the entity and the active date
// range, falling back to today's date when no range is set.
func FileName(entity string, f Filters, now time.Time) string {
	switch {
	case f.StartDate != "" && f.EndDate != "":
		return fmt.Sprintf("%s-%s_%s.xlsx", entity, f.StartDate, f.EndDate)
	case f.StartDate != "":
		return fmt.Sprintf("%s-from-%s.xlsx", entity, f.StartDate)
	case f.EndDate != "":
		return fmt.Sprintf("%s-until-%s.xlsx", entity, f.EndDate)
	default:
		return fmt.Sprintf("%s-%s.xlsx", entity, now.Format("2006-01-02"))
	}
}

// Export runs the download and returns the written file path. On a non-2xx
// response nothing is written and the export-specific error is surfaced.
func (e *Exporter) Export(ctx context.Context, endpoint, filename string, query url.Values) (string, error) {
	if e.busy {
		return "", fmt.Errorf("an export is already running")
	}
	e.busy = true
	defer func() { e.busy = false }()

	payload, err := dairy.Export(ctx, e.client, endpoint, query)
	if err != nil {
		e.lastErr = dairy.As(err)
		return "", err
	}

	if err := os.MkdirAll(e.downloadsDir, 0o755); err != nil {
		e.lastErr = &dairy.Error{Kind: dairy.KindExport, Message: fmt.Sprintf("create downloads dir: %v", err)}
		return "", e.lastErr
	}

	path := filepath.Join(e.downloadsDir, filename)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		e.lastErr = &dairy.Error{Kind: dairy.KindExport, Message: fmt.Sprintf("write spreadsheet: %v", err)}
		return "", e.lastErr
	}

	e.lastErr = nil
	return path, nil
}

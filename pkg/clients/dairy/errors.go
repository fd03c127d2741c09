package dairy

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies API failures so callers can pick the right recovery path:
// re-login, edit the draft, drop the row, or offer a manual retry.
type Kind int

const (
	// KindTransport covers network failures and unexpected server errors.
	// Recoverable by a deliberate user retry, never automatically.
	KindTransport Kind = iota
	// KindAuth means the bearer token is missing or rejected; terminal for
	// the current action, the user must sign in again.
	KindAuth
	// KindValidation carries server-side field errors on create/update.
	KindValidation
	// KindNotFound means the target record is already gone.
	KindNotFound
	// KindExport marks failures of the spreadsheet download, kept distinct
	// so they never displace the list view's own error state.
	KindExport
)

// Error is the single error type crossing the client boundary. Every
// operation converts transport-level and HTTP-level failures into one of
// these; nothing else escapes.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	// Fields holds the server's field→messages payload on validation
	// failures, preserved for callers that want per-field display.
	Fields map[string][]string
}

func (e *Error) Error() string {
	return e.Message
}

// As unwraps err into a *Error, or wraps an unknown error as a transport
// failure so callers always have a Kind to switch on.
func As(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &Error{Kind: KindTransport, Message: err.Error()}
}

// IsKind reports whether err is a client error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

func authError() *Error {
	return &Error{Kind: KindAuth, Status: 401, Message: "authentication failed, please sign in again"}
}

func notAuthenticatedError() *Error {
	return &Error{Kind: KindAuth, Message: "not authenticated, please sign in"}
}

// joinFieldErrors flattens a field→messages map into one display string,
// fields in stable order: "date: this field is required; litres: must be positive".
func joinFieldErrors(fields map[string][]string) string {
	if len(fields) == 0 {
		return ""
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(fields[name], ", ")))
	}
	return strings.Join(parts, "; ")
}

// decodeFieldErrors normalizes the server's validation payload, which may
// carry either a single message or a list per field.
func decodeFieldErrors(raw map[string]any) map[string][]string {
	if len(raw) == 0 {
		return nil
	}

	fields := make(map[string][]string, len(raw))
	for name, value := range raw {
		switch v := value.(type) {
		case string:
			fields[name] = []string{v}
		case []any:
			msgs := make([]string, 0, len(v))
			for _, item := range v {
				msgs = append(msgs, fmt.Sprint(item))
			}
			fields[name] = msgs
		default:
			fields[name] = []string{fmt.Sprint(v)}
		}
	}
	return fields
}

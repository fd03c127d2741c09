package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/dairydesk/pkg/clients/dairy"
)

// FormState tracks the modal's lifecycle:
// closed → open(draft) → submitting → closed on success, or back to open
// with the draft intact on failure.
type FormState int

const (
	FormClosed FormState = iota
	FormOpen
	FormSubmitting
)

// FormMode distinguishes create from edit submissions.
type FormMode int

const (
	ModeAdd FormMode = iota
	ModeEdit
)

// Field describes one input of an entity form.
type Field struct {
	Name     string
	Label    string
	Required bool
	// Numeric fields must parse as a decimal and be >= 0. The server stays
	// authoritative for anything stricter.
	Numeric bool
	// Enum restricts accepted values when non-empty.
	Enum []string
}

// FormSpec wires a form to one entity: its fields, the defaults seeded on
// "add", how an existing record coerces into draft strings for "edit", and
// how a valid draft serializes back into the request payload.
type FormSpec[T Record] struct {
	// Endpoint is the collection base path shared with the list schema.
	Endpoint string
	Fields   []Field
	// Defaults seeds the add-mode draft (e.g. today's date).
	Defaults func() map[string]string
	// FromRecord coerces server types to input strings for edit mode.
	FromRecord func(T) map[string]string
	// Payload turns the draft into the create/update body, attaching the
	// acting user's id and coercing numeric strings back to numbers where
	// the server expects them.
	Payload func(draft map[string]string, actorID int) any
}

// Form owns one modal's draft and drives the submit flow.
type Form[T Record] struct {
	spec   FormSpec[T]
	client *dairy.Client

	state  FormState
	mode   FormMode
	draft  map[string]string
	editID int
	errMsg string
}

// NewForm builds a closed form for one entity.
func NewForm[T Record](spec FormSpec[T], client *dairy.Client) *Form[T] {
	return &Form[T]{spec: spec, client: client, state: FormClosed}
}

// State returns the current lifecycle state.
func (f *Form[T]) State() FormState { return f.state }

// Mode returns the current mode; meaningful only while open.
func (f *Form[T]) Mode() FormMode { return f.mode }

// EditID returns the id being edited; zero in add mode.
func (f *Form[T]) EditID() int { return f.editID }

// Fields returns the form's field descriptors in display order.
func (f *Form[T]) Fields() []Field { return f.spec.Fields }

// Err returns the message shown inside the modal, empty when none.
func (f *Form[T]) Err() string { return f.errMsg }

// Value returns the draft value for a field.
func (f *Form[T]) Value(name string) string { return f.draft[name] }

// Set writes one draft field. Ignored unless the form is open.
func (f *Form[T]) Set(name, value string) {
	if f.state != FormOpen {
		return
	}
	f.draft[name] = value
}

// Open readies an empty draft seeded with entity defaults.
func (f *Form[T]) Open() {
	f.state = FormOpen
	f.mode = ModeAdd
	f.editID = 0
	f.errMsg = ""
	f.draft = map[string]string{}
	if f.spec.Defaults != nil {
		for k, v := range f.spec.Defaults() {
			f.draft[k] = v
		}
	}
}

// OpenEdit populates the draft from an existing record.
func (f *Form[T]) OpenEdit(rec T) {
	f.state = FormOpen
	f.mode = ModeEdit
	f.editID = rec.RecordID()
	f.errMsg = ""
	f.draft = f.spec.FromRecord(rec)
	if f.draft == nil {
		f.draft = map[string]string{}
	}
}

// Cancel closes the modal and discards the draft unconditionally; there is
// no unsaved-changes guard.
func (f *Form[T]) Cancel() {
	f.state = FormClosed
	f.draft = nil
	f.errMsg = ""
}

// Validate runs the local required/range checks. The returned message is
// empty when the draft passes. Cross-field and uniqueness rules are left to
// the server.
func (f *Form[T]) Validate() string {
	var problems []string
	for _, field := range f.spec.Fields {
		value := strings.TrimSpace(f.draft[field.Name])

		if value == "" {
			if field.Required {
				problems = append(problems, fmt.Sprintf("%s is required", field.Label))
			}
			continue
		}

		if field.Numeric {
			d, err := decimal.NewFromString(value)
			if err != nil {
				problems = append(problems, fmt.Sprintf("%s must be a number", field.Label))
				continue
			}
			if d.IsNegative() {
				problems = append(problems, fmt.Sprintf("%s must not be negative", field.Label))
			}
		}

		if len(field.Enum) > 0 {
			ok := false
			for _, allowed := range field.Enum {
				if value == allowed {
					ok = true
					break
				}
			}
			if !ok {
				problems = append(problems, fmt.Sprintf("%s must be one of %s", field.Label, strings.Join(field.Enum, ", ")))
			}
		}
	}
	return strings.Join(problems, "; ")
}

// BeginSubmit runs the local checks and, when they pass, moves the form to
// submitting and hands back the serialized payload for the network call. A
// false result means the draft failed validation and the message is already
// displayed.
func (f *Form[T]) BeginSubmit() (payload any, ok bool) {
	if f.state != FormOpen {
		return nil, false
	}
	if msg := f.Validate(); msg != "" {
		f.errMsg = msg
		return nil, false
	}
	f.state = FormSubmitting
	return f.spec.Payload(f.draft, f.client.Session().UserID), true
}

// ApplySubmit installs the submit outcome: success closes the modal and
// resets the draft (the caller refetches the owning list); failure reopens
// it with the draft intact and the server's joined field errors displayed.
func (f *Form[T]) ApplySubmit(err error) bool {
	if err != nil {
		f.state = FormOpen
		f.errMsg = dairy.As(err).Message
		return false
	}
	f.Cancel()
	return true
}

// Submit validates and sends the draft synchronously.
func (f *Form[T]) Submit(ctx context.Context) (*T, error) {
	payload, ok := f.BeginSubmit()
	if !ok {
		if f.state != FormOpen {
			return nil, fmt.Errorf("form is not open")
		}
		return nil, &dairy.Error{Kind: dairy.KindValidation, Message: f.errMsg}
	}

	var (
		saved *T
		err   error
	)
	if f.mode == ModeEdit {
		saved, err = dairy.Update[T](ctx, f.client, f.endpoint(), f.editID, payload)
	} else {
		saved, err = dairy.Create[T](ctx, f.client, f.endpoint(), payload)
	}

	if !f.ApplySubmit(err) {
		return nil, err
	}
	return saved, nil
}

func (f *Form[T]) endpoint() string { return f.spec.Endpoint }

package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/dairydesk/internal/controller"
	"github.com/mamadbah2/dairydesk/pkg/clients/dairy"
)

const opTimeout = 20 * time.Second

// pageMode is the page's interaction state. Only modeView lets navigation
// keys through to the app.
type pageMode int

const (
	modeView pageMode = iota
	modeFilter
	modeForm
	modeConfirm
)

// Column maps a record JSON field onto a table column.
type Column struct {
	Key   string
	Title string
	Width int
}

// EntityPage is the generic screen: filterable table, summary footer, modal
// form, per-row delete with confirmation, export trigger and an optional
// identifier autocomplete bound to one form field.
type EntityPage[T controller.Record] struct {
	title   string
	client  *dairy.Client
	list    *controller.List[T]
	form    *controller.Form[T] // nil for read-only entities
	export  *controller.Exporter
	columns []Column

	// lookup autocompletes lookupField in the form, when set.
	lookup      *controller.Lookup
	lookupField string

	mode     pageMode
	cursor   int
	styles   Styles
	spin     spinner.Model
	status   string
	exportOn bool

	filterInputs []textinput.Model // start date, end date, search

	formInputs []textinput.Model
	formFocus  int

	dropdownOpen bool
	dropdownIdx  int
	dropdownHits []string

	confirmID int
}

// NewEntityPage assembles a screen from its catalog pieces. form may be nil
// for read-only collections; lookup binds the autocomplete to lookupField.
func NewEntityPage[T controller.Record](
	title string,
	client *dairy.Client,
	list *controller.List[T],
	form *controller.Form[T],
	export *controller.Exporter,
	columns []Column,
	lookup *controller.Lookup,
	lookupField string,
) *EntityPage[T] {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	filters := make([]textinput.Model, 3)
	for i, placeholder := range []string{"start YYYY-MM-DD", "end YYYY-MM-DD", "search"} {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 64
		filters[i] = in
	}

	return &EntityPage[T]{
		title:        title,
		client:       client,
		list:         list,
		form:         form,
		export:       export,
		columns:      columns,
		lookup:       lookup,
		lookupField:  lookupField,
		styles:       DefaultStyles(),
		spin:         sp,
		filterInputs: filters,
	}
}

// Title implements Page.
func (p *EntityPage[T]) Title() string { return p.title }

// Busy implements Page: modal states capture all keys.
func (p *EntityPage[T]) Busy() bool { return p.mode != modeView }

// Refresh implements Page: begins a fetch and returns the command that
// completes it. Superseded responses are discarded by the controller.
func (p *EntityPage[T]) Refresh() tea.Cmd {
	gen := p.list.BeginFetch()
	client, schema := p.client, p.list.Schema()
	page := p.title
	return tea.Batch(p.spin.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		records, err := dairy.List[T](ctx, client, schema.Endpoint, "")
		return opDoneMsg{page: page, apply: func() tea.Cmd {
			p.list.ApplyFetch(gen, records, err)
			p.clampCursor()
			return nil
		}}
	})
}

// Update implements Page.
func (p *EntityPage[T]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case opDoneMsg:
		return msg.apply()
	case spinner.TickMsg:
		if !p.list.Loading() && !p.exportOn {
			return nil
		}
		var cmd tea.Cmd
		p.spin, cmd = p.spin.Update(msg)
		return cmd
	case tea.KeyMsg:
		switch p.mode {
		case modeFilter:
			return p.updateFilter(msg)
		case modeForm:
			return p.updateForm(msg)
		case modeConfirm:
			return p.updateConfirm(msg)
		default:
			return p.updateView(msg)
		}
	}
	return nil
}

func (p *EntityPage[T]) updateView(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.list.Visible())-1 {
			p.cursor++
		}
	case "r":
		return p.Refresh()
	case "f":
		p.mode = modeFilter
		f := p.list.Filters()
		p.filterInputs[0].SetValue(f.StartDate)
		p.filterInputs[1].SetValue(f.EndDate)
		p.filterInputs[2].SetValue(f.Search)
		return p.focusFilter(0)
	case "c":
		p.list.ClearFilters()
		p.clampCursor()
	case "a":
		if p.form != nil {
			p.form.Open()
			return p.openFormInputs()
		}
	case "e":
		if p.form != nil {
			if rec, ok := p.selected(); ok {
				p.form.OpenEdit(rec)
				return p.openFormInputs()
			}
		}
	case "d":
		if p.form != nil {
			if rec, ok := p.selected(); ok && !p.list.Deleting(rec.RecordID()) {
				p.confirmID = rec.RecordID()
				p.mode = modeConfirm
			}
		}
	case "x":
		return p.runExport()
	}
	return nil
}

func (p *EntityPage[T]) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		p.mode = modeView
		return nil
	case "enter":
		f := p.list.Filters()
		f.StartDate = strings.TrimSpace(p.filterInputs[0].Value())
		f.EndDate = strings.TrimSpace(p.filterInputs[1].Value())
		f.Search = strings.TrimSpace(p.filterInputs[2].Value())
		p.list.SetFilters(f)
		p.clampCursor()
		p.mode = modeView
		return nil
	case "tab", "down":
		return p.focusFilter((p.filterFocus() + 1) % len(p.filterInputs))
	case "shift+tab", "up":
		return p.focusFilter((p.filterFocus() - 1 + len(p.filterInputs)) % len(p.filterInputs))
	}

	idx := p.filterFocus()
	var cmd tea.Cmd
	p.filterInputs[idx], cmd = p.filterInputs[idx].Update(msg)
	return cmd
}

func (p *EntityPage[T]) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		id := p.confirmID
		p.mode = modeView
		if !p.list.BeginDelete(id) {
			return nil
		}
		client, schema, page := p.client, p.list.Schema(), p.title
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
			defer cancel()
			err := dairy.Delete(ctx, client, schema.Endpoint, id)
			return opDoneMsg{page: page, apply: func() tea.Cmd {
				p.list.ApplyDelete(id, err)
				p.clampCursor()
				return nil
			}}
		}
	default:
		p.mode = modeView
	}
	return nil
}

func (p *EntityPage[T]) updateForm(msg tea.KeyMsg) tea.Cmd {
	if p.form.State() == controller.FormSubmitting {
		return nil
	}

	if p.dropdownOpen {
		switch msg.String() {
		case "esc":
			p.dropdownOpen = false
			return nil
		case "down":
			if p.dropdownIdx < len(p.dropdownHits)-1 {
				p.dropdownIdx++
			}
			return nil
		case "up":
			if p.dropdownIdx > 0 {
				p.dropdownIdx--
			}
			return nil
		case "enter":
			if p.dropdownIdx < len(p.dropdownHits) {
				pick := p.dropdownHits[p.dropdownIdx]
				p.formInputs[p.formFocus].SetValue(pick)
				p.form.Set(p.lookupField, pick)
			}
			p.dropdownOpen = false
			return nil
		}
	}

	switch msg.String() {
	case "esc":
		p.form.Cancel()
		p.dropdownOpen = false
		p.mode = modeView
		return nil
	case "tab", "down":
		p.syncDraft()
		p.dropdownOpen = false
		return p.focusForm((p.formFocus + 1) % len(p.formInputs))
	case "shift+tab", "up":
		p.syncDraft()
		p.dropdownOpen = false
		return p.focusForm((p.formFocus - 1 + len(p.formInputs)) % len(p.formInputs))
	case "enter":
		p.syncDraft()
		return p.runSubmit()
	}

	var cmd tea.Cmd
	p.formInputs[p.formFocus], cmd = p.formInputs[p.formFocus].Update(msg)
	p.syncDraft()

	// An autocomplete-backed field keeps its dropdown in sync while the
	// user types; leaving the field dismisses it without changing the
	// selection.
	if p.lookup != nil && p.currentField().Name == p.lookupField {
		p.dropdownHits = p.lookup.Match(p.formInputs[p.formFocus].Value())
		if len(p.dropdownHits) > 8 {
			p.dropdownHits = p.dropdownHits[:8]
		}
		p.dropdownOpen = len(p.dropdownHits) > 0
		p.dropdownIdx = 0
	}
	return cmd
}

func (p *EntityPage[T]) runSubmit() tea.Cmd {
	payload, ok := p.form.BeginSubmit()
	if !ok {
		return nil
	}

	client, page := p.client, p.title
	endpoint := p.list.Schema().Endpoint
	mode, editID := p.form.Mode(), p.form.EditID()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		var err error
		if mode == controller.ModeEdit {
			_, err = dairy.Update[T](ctx, client, endpoint, editID, payload)
		} else {
			_, err = dairy.Create[T](ctx, client, endpoint, payload)
		}

		return opDoneMsg{page: page, apply: func() tea.Cmd {
			if p.form.ApplySubmit(err) {
				p.mode = modeView
				return p.Refresh()
			}
			return nil
		}}
	}
}

func (p *EntityPage[T]) runExport() tea.Cmd {
	if p.exportOn {
		return nil
	}
	p.exportOn = true

	query := controller.ExportQuery(p.list)
	filename := controller.FileName(p.list.Schema().Name, p.list.Filters(), time.Now())
	endpoint, page := p.list.Schema().Endpoint, p.title
	export := p.export

	return tea.Batch(p.spin.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		path, err := export.Export(ctx, endpoint, filename, query)
		return opDoneMsg{page: page, apply: func() tea.Cmd {
			p.exportOn = false
			if err == nil {
				p.status = "saved " + path
			}
			return nil
		}}
	})
}

// View implements Page.
func (p *EntityPage[T]) View(width, height int) string {
	switch p.mode {
	case modeForm:
		return p.viewForm()
	case modeConfirm:
		return p.styles.Modal.Render(fmt.Sprintf("Delete record %d? (y/n)", p.confirmID))
	default:
		return p.viewTable(width, height)
	}
}

func (p *EntityPage[T]) viewTable(width, height int) string {
	var b strings.Builder

	if p.mode == modeFilter {
		b.WriteString(p.styles.Label.Render("Filters") + "  ")
		for i, in := range p.filterInputs {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(in.View())
		}
		b.WriteString("\n" + p.styles.Help.Render("enter apply · esc cancel · tab next") + "\n\n")
	}

	if err := p.list.Err(); err != nil {
		style := p.styles.Error
		hint := " (press r to retry)"
		if err.Kind == dairy.KindAuth {
			style = p.styles.AuthError
			hint = ""
		}
		b.WriteString(style.Render(err.Message+hint) + "\n\n")
	}
	if err := p.export.Err(); err != nil {
		b.WriteString(p.styles.Error.Render("export: "+err.Message) + "\n\n")
	}
	if p.status != "" {
		b.WriteString(p.styles.Summary.Render(p.status) + "\n\n")
	}

	if p.list.Loading() {
		b.WriteString(p.spin.View() + " loading…\n")
		return b.String()
	}

	var head strings.Builder
	for _, col := range p.columns {
		head.WriteString(pad(col.Title, col.Width))
	}
	b.WriteString(p.styles.TableHead.Render(head.String()) + "\n")

	visible := p.list.Visible()
	maxRows := height - 8
	if maxRows < 3 {
		maxRows = 3
	}
	for i, rec := range visible {
		if i >= maxRows {
			b.WriteString(p.styles.Help.Render(fmt.Sprintf("… %d more", len(visible)-maxRows)) + "\n")
			break
		}
		fields := recordFields(rec)
		var row strings.Builder
		for _, col := range p.columns {
			row.WriteString(pad(fields[col.Key], col.Width))
		}
		line := row.String()
		if i == p.cursor {
			line = p.styles.Selected.Render(line)
		}
		if p.list.Deleting(rec.RecordID()) {
			line = p.styles.Help.Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + p.styles.Summary.Render(p.summaryLine()) + "\n")
	b.WriteString(p.styles.Help.Render("r refresh · f filter · c clear · a add · e edit · d delete · x export · tab page · q quit"))
	return b.String()
}

func (p *EntityPage[T]) viewForm() string {
	var b strings.Builder

	action := "Add"
	if p.form.Mode() == controller.ModeEdit {
		action = "Edit"
	}
	b.WriteString(p.styles.Label.Render(action+" "+p.title) + "\n\n")

	for i, field := range p.form.Fields() {
		label := field.Label
		if field.Required {
			label += " *"
		}
		b.WriteString(pad(label, 18) + p.formInputs[i].View() + "\n")
		if p.dropdownOpen && i == p.formFocus {
			for j, hit := range p.dropdownHits {
				line := hit
				if j == p.dropdownIdx {
					line = p.styles.Highlight.Render(line)
				}
				b.WriteString(p.styles.Dropdown.Render(line) + "\n")
			}
		}
	}

	if msg := p.form.Err(); msg != "" {
		b.WriteString("\n" + p.styles.Error.Render(msg) + "\n")
	}
	if p.form.State() == controller.FormSubmitting {
		b.WriteString("\n" + p.spin.View() + " saving…\n")
	}

	b.WriteString("\n" + p.styles.Help.Render("enter save · esc cancel · tab next field"))
	return p.styles.Modal.Render(b.String())
}

func (p *EntityPage[T]) summaryLine() string {
	s := p.list.Summary()
	parts := []string{fmt.Sprintf("%d records", s.Count)}
	for _, label := range sortedLabels(s.Totals) {
		parts = append(parts, fmt.Sprintf("Σ %s %s", label, s.Totals[label].String()))
	}
	for _, label := range sortedLabels(s.Maxima) {
		parts = append(parts, fmt.Sprintf("max %s %s", label, s.Maxima[label].String()))
	}
	return strings.Join(parts, " · ")
}

// sortedLabels keeps the summary footer stable across renders.
func sortedLabels(m map[string]decimal.Decimal) []string {
	labels := make([]string, 0, len(m))
	for label := range m {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func (p *EntityPage[T]) selected() (T, bool) {
	visible := p.list.Visible()
	if p.cursor < 0 || p.cursor >= len(visible) {
		var zero T
		return zero, false
	}
	return visible[p.cursor], true
}

func (p *EntityPage[T]) clampCursor() {
	if n := len(p.list.Visible()); p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *EntityPage[T]) openFormInputs() tea.Cmd {
	fields := p.form.Fields()
	p.formInputs = make([]textinput.Model, len(fields))
	for i, field := range fields {
		in := textinput.New()
		in.Placeholder = field.Label
		in.CharLimit = 128
		in.SetValue(p.form.Value(field.Name))
		p.formInputs[i] = in
	}
	p.formFocus = 0
	p.formInputs[0].Focus()
	p.dropdownOpen = false
	p.mode = modeForm

	if p.lookup == nil {
		return textinput.Blink
	}

	// Load the reference list once per mount; Match sees it after the
	// apply closure runs on the event loop.
	lookup, page := p.lookup, p.title
	return tea.Batch(textinput.Blink, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		items, err := lookup.Fetch(ctx)
		return opDoneMsg{page: page, apply: func() tea.Cmd {
			if err == nil {
				lookup.Install(items)
			}
			return nil
		}}
	})
}

func (p *EntityPage[T]) currentField() controller.Field {
	return p.form.Fields()[p.formFocus]
}

func (p *EntityPage[T]) syncDraft() {
	for i, field := range p.form.Fields() {
		p.form.Set(field.Name, strings.TrimSpace(p.formInputs[i].Value()))
	}
}

func (p *EntityPage[T]) focusForm(idx int) tea.Cmd {
	p.formInputs[p.formFocus].Blur()
	p.formFocus = idx
	return p.formInputs[idx].Focus()
}

func (p *EntityPage[T]) filterFocus() int {
	for i := range p.filterInputs {
		if p.filterInputs[i].Focused() {
			return i
		}
	}
	return 0
}

func (p *EntityPage[T]) focusFilter(idx int) tea.Cmd {
	for i := range p.filterInputs {
		p.filterInputs[i].Blur()
	}
	return p.filterInputs[idx].Focus()
}

// recordFields flattens a record into display strings keyed by JSON field
// name, so column definitions stay declarative.
func recordFields(rec any) map[string]string {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil
	}
	out := make(map[string]string, len(doc))
	for k, v := range doc {
		switch value := v.(type) {
		case string:
			out[k] = value
		case float64:
			out[k] = strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", value), "0"), ".")
		case bool:
			if value {
				out[k] = "yes"
			} else {
				out[k] = "no"
			}
		case nil:
			out[k] = ""
		default:
			out[k] = fmt.Sprint(v)
		}
	}
	return out
}

func pad(s string, width int) string {
	// Cells can hold arbitrary text, so truncate on rune boundaries rather
	// than bytes.
	r := []rune(s)
	if len(r) > width-1 {
		if width > 4 {
			return string(r[:width-2]) + "… "
		}
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

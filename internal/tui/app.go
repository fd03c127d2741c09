// Package tui renders the dashboard in the terminal: one page per entity
// screen, each an instantiation of the generic list/form controllers.
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mamadbah2/dairydesk/internal/session"
)

// Page is one entity screen. Concrete pages are EntityPage instantiations;
// the app only needs this view of them.
type Page interface {
	Title() string
	Refresh() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
	// Busy reports whether the page currently captures all key input
	// (modal form, confirmation prompt).
	Busy() bool
}

// opDoneMsg carries the outcome of an async operation back to its page.
// apply runs inside Update, so controller mutation stays on the event loop.
type opDoneMsg struct {
	page  string
	apply func() tea.Cmd
}

// App is the root model: a tab strip of pages plus global navigation.
type App struct {
	pages  []Page
	active int
	sess   session.Session
	styles Styles
	width  int
	height int
}

// NewApp builds the root model over the given pages.
func NewApp(sess session.Session, pages []Page) App {
	return App{
		pages:  pages,
		sess:   sess,
		styles: DefaultStyles(),
		width:  100,
		height: 30,
	}
}

// Init fetches the first page's collection.
func (a App) Init() tea.Cmd {
	if len(a.pages) == 0 {
		return nil
	}
	return a.pages[a.active].Refresh()
}

// Update routes messages: window sizing and tab switching here, everything
// else to the active page.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case opDoneMsg:
		for _, page := range a.pages {
			if page.Title() == msg.page {
				return a, page.Update(msg)
			}
		}
		return a, nil

	case tea.KeyMsg:
		if !a.pages[a.active].Busy() {
			switch msg.String() {
			case "ctrl+c", "q":
				return a, tea.Quit
			case "tab", "right":
				a.active = (a.active + 1) % len(a.pages)
				return a, a.pages[a.active].Refresh()
			case "shift+tab", "left":
				a.active = (a.active - 1 + len(a.pages)) % len(a.pages)
				return a, a.pages[a.active].Refresh()
			}
		} else if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	}

	return a, a.pages[a.active].Update(msg)
}

// View renders the header, tab strip and the active page.
func (a App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Header.Render("dairydesk | " + a.sess.Username + " (" + string(a.sess.Role) + ")"))
	b.WriteString("\n")

	var tabs []string
	for i, page := range a.pages {
		if i == a.active {
			tabs = append(tabs, a.styles.ActiveTab.Render(page.Title()))
		} else {
			tabs = append(tabs, a.styles.Tab.Render(page.Title()))
		}
	}
	b.WriteString(strings.Join(tabs, ""))
	b.WriteString("\n\n")

	b.WriteString(a.pages[a.active].View(a.width, a.height-4))
	return b.String()
}

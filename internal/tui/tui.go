// Package tui renders the controller's state and turns key presses into actions.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/items/internal/app"
	"github.com/idilsaglam/items/internal/model"
	"github.com/idilsaglam/items/internal/ui"
)

const emptyHint = "No items found. Press f to fetch or n to create a random item."

// listItem adapts model.Item to bubbles/list.Item
type listItem struct{ model.Item }

func (i listItem) Title() string       { return i.Name }
func (i listItem) Description() string { return i.Item.Description }
func (i listItem) FilterValue() string { return i.Name }

// Line renders "name - $price (description) ✅".
func (i listItem) Line(st styles) string {
	var b strings.Builder
	b.WriteString(st.title.Render(i.Name))
	fmt.Fprintf(&b, " - $%.2f", i.Price)
	if i.Item.Description != "" {
		b.WriteString(st.muted.Render(" (" + i.Item.Description + ")"))
	}
	if i.IsAvailable {
		b.WriteString(" " + st.available)
	} else {
		b.WriteString(" " + st.unavailable)
	}
	return b.String()
}

// single-line delegate, as in the todo list
type itemDelegate struct{ st styles }

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.st.selected.Render("> ")
	}
	fmt.Fprintln(w, prefix+it.Line(d.st))
}

type keyMap struct {
	Counter key.Binding
	Fetch   key.Binding
	Create  key.Binding
	Health  key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Counter: key.NewBinding(key.WithKeys("+", "c"), key.WithHelp("+", "count")),
		Fetch:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fetch items")),
		Create:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "create random item")),
		Health:  key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "check api health")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model is the Bubble Tea model. It holds no state of its own beyond
// presentation; everything it shows comes from the controller.
type Model struct {
	ctrl    *app.Controller
	st      styles
	keys    keyMap
	list    list.Model
	spinner spinner.Model
	width   int
	height  int
}

// New builds the view over ctrl, styled by the current ui theme.
func New(ctrl *app.Controller) Model {
	keys := newKeyMap()
	st := newStyles(ui.Current())

	l := list.New(nil, itemDelegate{st: st}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.Styles.Title = st.title
	l.Styles.HelpStyle = st.help
	l.Styles.PaginationStyle = st.help
	l.SetStatusBarItemName("item", "items")

	// f, h, d and u are ours; page with arrows only.
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("right", "pgdown"), key.WithHelp("→/pgdn", "next page"))
	l.KeyMap.PrevPage = key.NewBinding(key.WithKeys("left", "pgup"), key.WithHelp("←/pgup", "prev page"))
	l.KeyMap.Quit = keys.Quit
	bindings := func() []key.Binding {
		return []key.Binding{keys.Counter, keys.Fetch, keys.Create, keys.Health}
	}
	l.AdditionalShortHelpKeys = bindings
	l.AdditionalFullHelpKeys = bindings

	s := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(st.pending))

	m := Model{ctrl: ctrl, st: st, keys: keys, list: l, spinner: s, width: 80, height: 24}
	m.resize()
	m.sync()
	return m
}

// Run starts the program on the alt screen and blocks until quit.
func Run(ctrl *app.Controller) error {
	p := tea.NewProgram(New(ctrl), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init fires the mount actions.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.ctrl.Mount(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if next, ok := m.ctrl.Settle(msg); ok {
		cmd := tea.Batch(next, m.sync())
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Counter):
			m.ctrl.IncrementCounter()
			return m, nil
		case key.Matches(msg, m.keys.Fetch):
			// the fetch button is disabled while loading
			if m.ctrl.State().Loading {
				return m, nil
			}
			return m, m.ctrl.RefreshItems()
		case key.Matches(msg, m.keys.Create):
			return m, m.ctrl.CreateRandomItem()
		case key.Matches(msg, m.keys.Health):
			return m, m.ctrl.CheckHealth()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// sync copies the controller's items into the list.
func (m *Model) sync() tea.Cmd {
	s := m.ctrl.State()
	li := make([]list.Item, 0, len(s.Items))
	avail := 0
	for _, it := range s.Items {
		li = append(li, listItem{it})
		if it.IsAvailable {
			avail++
		}
	}
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d",
		m.st.title.Render("Items from API"),
		m.st.success.Render(m.st.available), avail,
		m.st.accent.Render("Total"), len(s.Items),
	)
	return m.list.SetItems(li)
}

func (m *Model) resize() {
	h := m.height - 10
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
}

func (m Model) View() string {
	s := m.ctrl.State()

	fetch := m.st.button.Render("f  Fetch Items")
	if s.Loading {
		fetch = m.st.disabledButton.Render(m.spinner.View() + " Loading...")
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		m.st.button.Render(fmt.Sprintf("+  count is %d", s.Counter)), " ",
		fetch, " ",
		m.st.button.Render("n  Create Random Item"), " ",
		m.st.button.Render("h  Check API Health"),
	)

	var body string
	if len(s.Items) == 0 {
		body = m.st.muted.Render(emptyHint)
	} else {
		body = m.list.View()
	}

	content := strings.Join([]string{
		m.st.title.Render("Items client"),
		buttons,
		"",
		body,
		"",
		m.st.help.Render("API responses are written to the log file."),
	}, "\n")
	return m.st.panel.Render(content)
}

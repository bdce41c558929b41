// Package tui is the interactive todo list. It renders the store's derived
// view and forwards every user action to the store.
package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/Makepad-fr/todos/internal/model"
	"github.com/Makepad-fr/todos/internal/store"
	"github.com/Makepad-fr/todos/internal/ui"
)

// todoItem adapts model.Todo to bubbles/list.Item
type todoItem struct{ todo model.Todo }

func (i todoItem) Title() string       { return i.todo.Title }
func (i todoItem) Description() string { return "" }
func (i todoItem) FilterValue() string { return i.todo.Title }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(todoItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = ui.Current().Selected.Render("> ")
	}
	fmt.Fprint(w, prefix+ui.TodoLine(it.todo))
}

// ------- messages -------

// loadedMsg reports the end of a LoadAll.
type loadedMsg struct{ err error }

// doneMsg reports the end of any other store operation.
type doneMsg struct {
	verb string
	err  error
}

func loadCmd(s *store.Store) tea.Cmd {
	return func() tea.Msg { return loadedMsg{err: s.LoadAll()} }
}

func opCmd(verb string, op func() error) tea.Cmd {
	return func() tea.Msg { return doneMsg{verb: verb, err: op()} }
}

// ------- model -------

type modelTUI struct {
	store   *store.Store
	keys    keyMap
	list    list.Model
	spinner spinner.Model

	// Inline add
	adding bool
	ti     textinput.Model
	addErr string

	inFlight int // store operations not yet reported back
	status   string
	err      error

	width, height int
}

func newModel(s *store.Store) modelTUI {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false) // the store filters
	l.DisableQuitKeybindings()
	l.SetStatusBarItemName("todo", "todos")
	l.Styles.HelpStyle = ui.Current().Help
	l.Styles.PaginationStyle = ui.Current().Help
	l.AdditionalShortHelpKeys = defaultKeys.short
	l.AdditionalFullHelpKeys = defaultKeys.full

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.Current().Accent

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New todo title..."
	ti.CharLimit = 200

	m := modelTUI{
		store:    s,
		keys:     defaultKeys,
		list:     l,
		spinner:  sp,
		ti:       ti,
		inFlight: 1, // the load Init starts
	}
	m.width, m.height = widthHeight()
	m.resize()
	m.refresh()
	return m
}

// Run starts the interactive list in the alternate screen and blocks until
// the user quits.
func Run(s *store.Store) error {
	p := tea.NewProgram(newModel(s), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(modelTUI); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

func (m modelTUI) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadCmd(m.store))
}

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		m.settle()
		if msg.err != nil {
			m.err, m.status = msg.err, ""
		} else {
			m.err, m.status = nil, fmt.Sprintf("loaded %d todos", len(m.store.Todos()))
		}
		cmd := m.refresh()
		return m, cmd

	case doneMsg:
		m.settle()
		if msg.err != nil {
			m.err, m.status = msg.err, ""
		} else {
			m.err, m.status = nil, msg.verb
		}
		cmd := m.refresh()
		return m, cmd
	}

	if m.adding {
		return m.updateAdding(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			if it, ok := m.selected(); ok {
				return m.start(opCmd("toggled", func() error { return m.store.Toggle(it.todo.ID) }))
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if it, ok := m.selected(); ok {
				return m.start(opCmd("deleted", func() error { return m.store.DeleteTodo(it.todo.ID) }))
			}
			return m, nil
		case key.Matches(msg, m.keys.Add):
			m.adding = true
			m.addErr = ""
			m.ti.SetValue("")
			m.resize()
			cmd := m.ti.Focus()
			return m, cmd
		case key.Matches(msg, m.keys.NextFilter):
			return m.setFilter(m.store.Filter().Next())
		case key.Matches(msg, m.keys.All):
			return m.setFilter(model.FilterAll)
		case key.Matches(msg, m.keys.Pending):
			return m.setFilter(model.FilterPending)
		case key.Matches(msg, m.keys.Completed):
			return m.setFilter(model.FilterCompleted)
		case key.Matches(msg, m.keys.Reload):
			m.inFlight++
			return m, tea.Batch(m.spinner.Tick, loadCmd(m.store))
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if x, ok := msg.(tea.KeyMsg); ok {
		switch x.String() {
		case "enter":
			title := strings.TrimSpace(m.ti.Value())
			if title == "" {
				m.addErr = "Title cannot be empty"
				return m, nil
			}
			m.adding = false
			m.ti.SetValue("")
			m.ti.Blur()
			m.resize()
			return m.start(opCmd("added", func() error { return m.store.Add(title) }))
		case "esc":
			m.adding = false
			m.ti.SetValue("")
			m.ti.Blur()
			m.resize()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

// start counts op as in flight and keeps the spinner turning until it lands.
func (m modelTUI) start(op tea.Cmd) (tea.Model, tea.Cmd) {
	wasIdle := !m.busy()
	m.inFlight++
	m.status = ""
	if wasIdle {
		return m, tea.Batch(op, m.spinner.Tick)
	}
	return m, op
}

func (m modelTUI) setFilter(f model.Filter) (tea.Model, tea.Cmd) {
	m.store.UpdateFilter(f)
	cmd := m.refresh()
	m.list.Select(0)
	return m, cmd
}

func (m *modelTUI) settle() {
	if m.inFlight > 0 {
		m.inFlight--
	}
}

func (m modelTUI) busy() bool { return m.inFlight > 0 || m.store.Loading() }

func (m modelTUI) selected() (todoItem, bool) {
	it, ok := m.list.SelectedItem().(todoItem)
	return it, ok
}

// refresh copies the store's derived view into the list.
func (m *modelTUI) refresh() tea.Cmd {
	view := m.store.FilteredTodos()
	items := make([]list.Item, 0, len(view))
	for _, t := range view {
		items = append(items, todoItem{t})
	}
	return m.list.SetItems(items)
}

func (m *modelTUI) resize() {
	// border + padding, header, tabs, status
	h := m.height - 6
	if m.adding {
		h -= 4
	}
	if h < 3 {
		h = 3
	}
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	m.list.SetSize(w, h)
}

func (m modelTUI) View() string {
	var b strings.Builder
	b.WriteString(ui.Header(m.store.Todos()))
	b.WriteString("\n")
	b.WriteString(ui.FilterTabs(m.store.Filter()))
	b.WriteString("\n\n")

	if m.busy() {
		b.WriteString(m.spinner.View() + " " + ui.Current().Muted.Render("working..."))
		b.WriteString("\n")
	}

	b.WriteString(m.list.View())

	if m.adding {
		title := "Add new todo"
		if m.addErr != "" {
			title += " - " + ui.Current().Error.Render(m.addErr)
		}
		b.WriteString("\n")
		b.WriteString(ui.PanelString(title + "\n" + m.ti.View()))
	}

	switch {
	case m.err != nil:
		b.WriteString("\n" + ui.Current().Error.Render("✖ "+errorText(m.err)))
	case m.status != "":
		b.WriteString("\n" + ui.Current().Success.Render(ui.Current().SymDone+" "+m.status))
	}
	return ui.PanelString(b.String())
}

func errorText(err error) string {
	if errors.Is(err, store.ErrNotFound) {
		return "that todo is gone, press r to reload"
	}
	return err.Error()
}

// ------- terminal size -------

func widthHeight() (int, int) {
	w, h := 80, 24
	if tw, th, err := term.GetSize(int(os.Stdout.Fd())); err == nil && tw > 0 && th > 0 {
		w, h = tw, th
	}
	return w, h
}

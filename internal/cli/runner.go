package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Makepad-fr/todos/internal/model"
	"github.com/Makepad-fr/todos/internal/service"
	"github.com/Makepad-fr/todos/internal/store"
	"github.com/Makepad-fr/todos/internal/tui"
	"github.com/Makepad-fr/todos/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	Service service.Service
	Filter  model.Filter
	Group   bool // list grouped by pending/done

	Out, Err io.Writer // default os.Stdout / os.Stderr

	// Interactive starts the list UI; tests swap it out.
	Interactive func(*store.Store) error
}

func (o *Options) defaults() {
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
	if o.Service == nil {
		o.Service = service.NewMock()
	}
	if !o.Filter.Valid() {
		o.Filter = model.FilterAll
	}
	if o.Interactive == nil {
		o.Interactive = tui.Run
	}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
// Every invocation starts from a fresh store: nothing outlives the process.
func Run(args []string, opt Options) int {
	opt.defaults()
	if len(args) == 0 {
		PrintHelp(opt.Err)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Out)
		return 0

	case "ls":
		return doList(opt)

	case "filters":
		return doFilters(opt)

	case "ui":
		return doInteractive(opt)

	case "add":
		if len(a) == 0 {
			ui.Fail(opt.Err, "usage: todos add <title...>")
			return 2
		}
		return doAdd(opt, strings.Join(a, " "))

	case "done":
		if len(a) != 1 {
			ui.Fail(opt.Err, "usage: todos done <id>")
			return 2
		}
		return doToggle(opt, a[0])

	case "rm":
		if len(a) != 1 {
			ui.Fail(opt.Err, "usage: todos rm <id>")
			return 2
		}
		return doRemove(opt, a[0])
	}

	ui.Fail(opt.Err, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Err)
	PrintHelp(opt.Err)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `todos - a signal-store todo list

Usage:
  todos [flags] <subcommand> [args]

Subcommands:
  ui                 Interactive list
  ls                 Load and print the filtered list
  add <title...>     Add a todo (title can be multiple words)
  done <id>          Toggle completion of a todo
  rm <id>            Remove a todo
  filters            Show the available filters

Nothing is saved: every command starts from the seed collection.

Examples:
  todos ls --filter pending
  todos add "Buy milk"
  todos done 2
  todos rm 3
`)
}

// -------------- subcommand impls ----------------

func newStore(opt Options) *store.Store {
	return store.New(opt.Service, store.WithFilter(opt.Filter))
}

// load returns a store holding the service's collection, or an exit code.
func load(opt Options) (*store.Store, int) {
	s := newStore(opt)
	if err := s.LoadAll(); err != nil {
		ui.Fail(opt.Err, "load: "+err.Error())
		return nil, 1
	}
	return s, 0
}

func doList(opt Options) int {
	s, code := load(opt)
	if s == nil {
		return code
	}
	printView(opt, s)
	return 0
}

func doFilters(opt Options) int {
	t := ui.Current()
	for _, f := range model.Filters() {
		marker := "  "
		if f == opt.Filter {
			marker = t.Accent.Render("> ")
		}
		fmt.Fprintf(opt.Out, "%s%-10s %s\n", marker, f, t.Muted.Render(f.Description()))
	}
	return 0
}

func doInteractive(opt Options) int {
	if err := opt.Interactive(newStore(opt)); err != nil {
		ui.Fail(opt.Err, "ui: "+err.Error())
		return 1
	}
	return 0
}

func doAdd(opt Options, title string) int {
	title = strings.TrimSpace(title)
	if title == "" {
		ui.Fail(opt.Err, "add: empty title")
		return 2
	}
	s, code := load(opt)
	if s == nil {
		return code
	}
	if err := s.Add(title); err != nil {
		ui.Fail(opt.Err, "add: "+err.Error())
		return 1
	}
	ui.OK(opt.Out, "added")
	printView(opt, s)
	return 0
}

func doToggle(opt Options, id string) int {
	s, code := load(opt)
	if s == nil {
		return code
	}
	if err := s.Toggle(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			missing(opt, id)
			return 2
		}
		ui.Fail(opt.Err, "done: "+err.Error())
		return 1
	}
	ui.OK(opt.Out, "toggled")
	printView(opt, s)
	return 0
}

func doRemove(opt Options, id string) int {
	s, code := load(opt)
	if s == nil {
		return code
	}
	if !contains(s.Todos(), id) {
		missing(opt, id)
		return 2
	}
	if err := s.DeleteTodo(id); err != nil {
		ui.Fail(opt.Err, "rm: "+err.Error())
		return 1
	}
	ui.OK(opt.Out, "removed")
	printView(opt, s)
	return 0
}

func missing(opt Options, id string) {
	ui.Fail(opt.Err, fmt.Sprintf("no todo with id %q", id))
	ui.Hint(opt.Err, "run `todos ls` to see valid ids")
}

// -------------- rendering helpers --------------

func printView(opt Options, s *store.Store) {
	todos := s.Todos()
	view := s.FilteredTodos()
	d, _ := model.Stats(todos)

	lines := []string{
		ui.Header(todos),
		ui.Current().Muted.Render(ui.ProgressBar(d, len(todos), 28)),
		ui.FilterTabs(s.Filter()),
		"",
	}
	if opt.Group {
		lines = append(lines, ui.GroupLines(view)...)
	} else {
		lines = append(lines, ui.FlatLines(view)...)
	}
	lines = append(lines, "", ui.Current().Muted.Render("Tip: add with `todos add \"Buy milk\"`"))
	ui.Panel(opt.Out, lines)
}

func contains(todos []model.Todo, id string) bool {
	for _, t := range todos {
		if t.ID == id {
			return true
		}
	}
	return false
}

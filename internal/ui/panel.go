package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Makepad-fr/todos/internal/model"
)

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// PanelString frames inner with the current theme's border.
func PanelString(inner string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(inner)
}

// Panel draws a framed box around lines.
func Panel(w io.Writer, lines []string) {
	fmt.Fprintln(w, PanelString(strings.Join(lines, "\n")))
}

// Header is the one-line summary shown above every list.
func Header(todos []model.Todo) string {
	t := Current()
	d, p := model.Stats(todos)
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), len(todos),
	)
}

// FilterTabs renders every filter with the active one highlighted.
func FilterTabs(active model.Filter) string {
	t := Current()
	tabs := make([]string, 0, 3)
	for _, f := range model.Filters() {
		label := f.Label()
		if f == active {
			tabs = append(tabs, t.Selected.Render(" "+label+" "))
		} else {
			tabs = append(tabs, t.Muted.Render(" "+label+" "))
		}
	}
	return strings.Join(tabs, " ")
}

// TodoLine renders one item: checkbox, title, and the id the CLI expects.
func TodoLine(td model.Todo) string {
	t := Current()
	box := t.Muted.Render(t.BoxUnchecked)
	// Cut by display width so multi-byte titles stay valid UTF-8.
	title := ansi.Truncate(td.Title, 80, "...")
	if td.Completed {
		box = t.Success.Render(t.BoxChecked)
		title = t.Done.Render(title)
	}
	return fmt.Sprintf("%s %s %s", box, title, t.Muted.Render("#"+shortID(td.ID)))
}

// shortID keeps generated uuids readable; seed ids are short already.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FlatLines renders todos in collection order.
func FlatLines(todos []model.Todo) []string {
	if len(todos) == 0 {
		return []string{Current().Muted.Render("no items")}
	}
	out := make([]string, 0, len(todos))
	for i, td := range todos {
		out = append(out, fmt.Sprintf("%s %s", Current().Muted.Render(fmt.Sprintf("%2d.", i+1)), TodoLine(td)))
	}
	return out
}

// GroupLines renders the pending partition, then the completed one.
func GroupLines(todos []model.Todo) []string {
	t := Current()
	var lines []string
	for i, f := range []model.Filter{model.FilterPending, model.FilterCompleted} {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, t.Accent.Render(f.Label()))
		part := model.Apply(todos, f)
		if len(part) == 0 {
			lines = append(lines, t.Muted.Render("(none)"))
			continue
		}
		lines = append(lines, FlatLines(part)...)
	}
	return lines
}

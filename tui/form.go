package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"airplane-seating-cli/model"
)

type formField int

const (
	fieldClass formField = iota
	fieldCount
	fieldNames
)

type assignForm struct {
	field formField
	class model.FareClass
	count int
	names textarea.Model
	err   error
}

func newAssignForm() assignForm {
	ta := textarea.New()
	ta.Placeholder = "One passenger name per line"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(40)
	ta.SetHeight(4)
	return assignForm{
		field: fieldClass,
		class: model.First,
		count: 1,
		names: ta,
	}
}

func (f *assignForm) reset() {
	f.field = fieldClass
	f.count = 1
	f.err = nil
	f.names.Reset()
	f.names.Blur()
}

func (f *assignForm) focus() tea.Cmd {
	if f.field == fieldNames {
		return f.names.Focus()
	}
	f.names.Blur()
	return nil
}

func (f *assignForm) blur() {
	f.names.Blur()
}

func (f *assignForm) nextField() tea.Cmd {
	f.field = (f.field + 1) % 3
	return f.focus()
}

func (f *assignForm) prevField() tea.Cmd {
	f.field = (f.field + 2) % 3
	return f.focus()
}

func (f *assignForm) toggleClass() {
	if f.class == model.First {
		f.class = model.Economy
	} else {
		f.class = model.First
	}
}

func (f *assignForm) clampCount(limit int) {
	if f.count > limit {
		f.count = limit
	}
	if f.count < 1 {
		f.count = 1
	}
}

func (f *assignForm) setWidth(width int) {
	w := width - 4
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	f.names.SetWidth(w)
}

func (f *assignForm) update(msg tea.Msg) tea.Cmd {
	if f.field != fieldNames {
		return nil
	}
	var cmd tea.Cmd
	f.names, cmd = f.names.Update(msg)
	return cmd
}

// passengerNames returns the non-empty lines of the names box, trimmed.
func (f assignForm) passengerNames() []string {
	var names []string
	for _, line := range strings.Split(f.names.Value(), "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func (f assignForm) request() (model.AssignmentRequest, error) {
	names := f.passengerNames()
	if len(names) != f.count {
		return model.AssignmentRequest{}, &model.AllocationError{
			Kind:      model.ErrNameCountMismatch,
			Class:     f.class,
			Requested: f.count,
			Names:     len(names),
		}
	}
	return model.AssignmentRequest{Class: f.class, Count: f.count, Names: names}, nil
}

func (f assignForm) view(avail model.Availability) string {
	label := lipgloss.NewStyle().Width(12)
	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	marker := func(field formField) string {
		if f.field == field {
			return active.Render("›")
		}
		return " "
	}

	limit := model.DefaultPolicy().Limit(f.class)
	available := 0
	if c, ok := avail.For(f.class); ok {
		limit = c.MaxPerBooking
		available = c.Available
	}

	classValue := fmt.Sprintf("< %s Class >", f.class)
	countValue := fmt.Sprintf("< %d >", f.count)
	if f.field == fieldClass {
		classValue = active.Render(classValue)
	}
	if f.field == fieldCount {
		countValue = active.Render(countValue)
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render("Assign seats"),
		"",
		marker(fieldClass) + " " + label.Render("Class") + classValue,
		marker(fieldCount) + " " + label.Render("Seats") + countValue + "  " + hint(fmt.Sprintf("1 to %d per booking", limit)),
		"  " + hint(fmt.Sprintf("Available seats in %s Class: %d", f.class, available)),
		"",
		marker(fieldNames) + " " + label.Render("Passengers"),
		f.names.View(),
	}
	if f.err != nil {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(describeError(f.err)))
	}
	return strings.Join(lines, "\n")
}

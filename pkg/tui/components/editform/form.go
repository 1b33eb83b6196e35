// Package editform is the field editor shown inside the entity overlays.
package editform

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/tui/theme"
)

type kind int

const (
	kindText kind = iota
	kindChoice
	kindMulti
)

// Option is one value of a choice or multi-select field.
type Option struct {
	Value string
	Label string
}

type field struct {
	name  string
	label string
	kind  kind

	input   textinput.Model
	options []Option
	index   int
	chosen  map[string]bool
}

func (f *field) value() string {
	switch f.kind {
	case kindText:
		return f.input.Value()
	case kindChoice:
		if f.index < len(f.options) {
			return f.options[f.index].Value
		}
	}
	return ""
}

func (f *field) values() []string {
	var out []string
	for _, o := range f.options {
		if f.chosen[o.Value] {
			out = append(out, o.Value)
		}
	}
	return out
}

// Model edits the fields of one entity. It reports every change through
// Changed so the owner can apply it to the overlay draft.
type Model struct {
	Type   entity.Type
	fields []*field
	focus  int
	// cursor is the highlighted option of a multi-select field.
	cursor int

	changed []string
}

func newText(name, label, value string) *field {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 512
	ti.SetValue(value)
	return &field{name: name, label: label, kind: kindText, input: ti}
}

func newChoice(name, label string, options []Option, value string) *field {
	f := &field{name: name, label: label, kind: kindChoice, options: options}
	for i, o := range options {
		if o.Value == value {
			f.index = i
		}
	}
	return f
}

func newMulti(name, label string, options []Option, values []string) *field {
	f := &field{name: name, label: label, kind: kindMulti, options: options, chosen: map[string]bool{}}
	for _, v := range values {
		f.chosen[v] = true
	}
	return f
}

func statusOptions() []Option {
	var out []Option
	for _, s := range entity.Statuses() {
		out = append(out, Option{Value: string(s), Label: string(s)})
	}
	return out
}

func campaignOptions(campaigns []entity.Campaign) []Option {
	out := []Option{{Value: "", Label: "no campaign"}}
	for _, c := range campaigns {
		out = append(out, Option{Value: string(c.ID), Label: c.Title})
	}
	return out
}

// New builds the form for e. campaigns populate the campaign picker.
func New(e entity.Entity, campaigns []entity.Campaign) *Model {
	m := &Model{Type: e.EntityType()}
	switch v := e.(type) {
	case entity.ContentItem:
		m.fields = []*field{
			newText(entity.FieldTitle, "Title", v.Title),
			newText(entity.FieldDescription, "Description", v.Description),
			newText(entity.FieldDate, "Date", v.Date.String()),
			newChoice(entity.FieldStatus, "Status", statusOptions(), string(v.Status)),
			newChoice(entity.FieldCampaign, "Campaign", campaignOptions(campaigns), string(v.CampaignID)),
		}
	case entity.SocialPost:
		var platforms []Option
		for _, p := range entity.Platforms() {
			platforms = append(platforms, Option{Value: string(p.ID), Label: p.Name})
		}
		chosen := make([]string, len(v.Platforms))
		for i, p := range v.Platforms {
			chosen[i] = string(p)
		}
		m.fields = []*field{
			newText(entity.FieldTitle, "Title", v.Title),
			newText(entity.FieldMessage, "Message", v.Message),
			newMulti(entity.FieldPlatforms, "Platforms", platforms, chosen),
			newText(entity.FieldDate, "Date", v.Date.String()),
			newChoice(entity.FieldStatus, "Status", statusOptions(), string(v.Status)),
			newChoice(entity.FieldCampaign, "Campaign", campaignOptions(campaigns), string(v.CampaignID)),
		}
	case entity.Campaign:
		var colors []Option
		for _, c := range entity.Palette {
			colors = append(colors, Option{Value: c, Label: c})
		}
		m.fields = []*field{
			newText(entity.FieldTitle, "Title", v.Title),
			newText(entity.FieldDescription, "Description", v.Description),
			newText(entity.FieldStartDate, "Start", v.StartDate.String()),
			newText(entity.FieldEndDate, "End", v.EndDate.String()),
			newChoice(entity.FieldColor, "Color", colors, v.Color),
		}
	}
	return m
}

// Focus focuses the first field.
func (m *Model) Focus() tea.Cmd {
	m.focus = 0
	return m.refocus()
}

func (m *Model) refocus() tea.Cmd {
	var cmd tea.Cmd
	for i, f := range m.fields {
		if f.kind != kindText {
			continue
		}
		if i == m.focus {
			cmd = f.input.Focus()
		} else {
			f.input.Blur()
		}
	}
	m.cursor = 0
	return cmd
}

// Focused returns the name of the focused field.
func (m *Model) Focused() string {
	if len(m.fields) == 0 {
		return ""
	}
	return m.fields[m.focus].name
}

// Text returns the value of a text or choice field.
func (m *Model) Text(name string) string {
	if f := m.field(name); f != nil {
		return f.value()
	}
	return ""
}

// Values returns the chosen values of a multi-select field.
func (m *Model) Values(name string) []string {
	if f := m.field(name); f != nil {
		return f.values()
	}
	return nil
}

// SetText replaces a text field's value and records the change.
func (m *Model) SetText(name, value string) {
	if f := m.field(name); f != nil && f.kind == kindText {
		f.input.SetValue(value)
		m.changed = append(m.changed, name)
	}
}

// Changed returns and clears the fields changed since the last call.
func (m *Model) Changed() []string {
	out := m.changed
	m.changed = nil
	return out
}

func (m *Model) field(name string) *field {
	for _, f := range m.fields {
		if f.name == name {
			return f
		}
	}
	return nil
}

// Update handles navigation and editing keys. Enter and esc are left to the
// owner.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	f := m.fields[m.focus]
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "tab", "down":
			m.focus = (m.focus + 1) % len(m.fields)
			return m.refocus()
		case "shift+tab", "up":
			m.focus = (m.focus - 1 + len(m.fields)) % len(m.fields)
			return m.refocus()
		}
		switch f.kind {
		case kindChoice:
			switch key.String() {
			case "left", "h":
				f.index = (f.index - 1 + len(f.options)) % len(f.options)
				m.changed = append(m.changed, f.name)
			case "right", "l", "space":
				f.index = (f.index + 1) % len(f.options)
				m.changed = append(m.changed, f.name)
			}
			return nil
		case kindMulti:
			switch key.String() {
			case "left", "h":
				m.cursor = (m.cursor - 1 + len(f.options)) % len(f.options)
			case "right", "l":
				m.cursor = (m.cursor + 1) % len(f.options)
			case "space", "x":
				v := f.options[m.cursor].Value
				f.chosen[v] = !f.chosen[v]
				m.changed = append(m.changed, f.name)
			}
			return nil
		}
	}

	if f.kind != kindText {
		return nil
	}
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if f.input.Value() != before {
		m.changed = append(m.changed, f.name)
	}
	return cmd
}

// View renders every field with its visible validation message.
func (m *Model) View(th theme.ModalTheme, errs entity.Errors) string {
	var rows []string
	for i, f := range m.fields {
		label := th.Label.Render(f.label)
		if i == m.focus {
			label = th.Focused.Render(f.label)
		}
		var value string
		switch f.kind {
		case kindText:
			value = f.input.View()
		case kindChoice:
			if f.index < len(f.options) {
				value = "‹ " + f.options[f.index].Label + " ›"
			}
		case kindMulti:
			parts := make([]string, len(f.options))
			for j, o := range f.options {
				box := "[ ]"
				if f.chosen[o.Value] {
					box = "[x]"
				}
				part := box + " " + o.Label
				if i == m.focus && j == m.cursor {
					part = lipgloss.NewStyle().Underline(true).Render(part)
				}
				parts[j] = part
			}
			value = strings.Join(parts, "  ")
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label, value))
		if msg := errs[f.name]; msg != "" {
			rows = append(rows, th.Label.Render("")+th.Error.Render(msg))
		}
	}
	return strings.Join(rows, "\n")
}

package teaui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/contentcal/pkg/calendar"
	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/printers"
	"tableflip.dev/contentcal/pkg/tui/components/month"
)

const panelWidth = 26

func (m *Model) View() string {
	var sections []string

	active, _ := m.prefs.View(m.prefs.ActiveView)
	header := fmt.Sprintf("%s · filters: %s", active.Name, printers.Describe(m.prefs.Filters))
	sections = append(sections, m.theme.Footer.Status.Render(header))

	gridWidth := m.width
	var left string
	if m.prefs.NavPanelOpen {
		left = m.renderViewsPanel()
		gridWidth -= lipgloss.Width(left) + 1
	}

	opts := month.Options{
		Width:    gridWidth,
		Height:   m.height - 6,
		Cursor:   m.cursor,
		Deleting: m.snap.InProgress,
	}
	if ref, ok := m.selected(); ok {
		opts.Selected = ref
	}
	if ref, _, target, ok := m.drag.Dragging(); ok {
		opts.Dragging = ref
		opts.Target = target
	}
	grid := month.Render(m.grid, m.theme.Month, opts)
	if left != "" {
		grid = lipgloss.JoinHorizontal(lipgloss.Top, left, " ", grid)
	}
	sections = append(sections, grid)

	switch m.mode {
	case modeAddNew:
		sections = append(sections, m.renderAddNew())
	case modeForm:
		sections = append(sections, m.renderForm())
	case modeConfirm:
		sections = append(sections, m.renderModal("Delete", fmt.Sprintf("Delete %s %q? (y/n)", m.confirmRef.Type.Noun(), m.title(m.confirmRef))))
	case modeFilter:
		sections = append(sections, m.renderFilters())
	case modePrompt:
		sections = append(sections, m.prompt.View())
	}

	if toasts := month.Toasts(m.sess.Notifier.Active(), m.theme.Toast, m.width); toasts != "" {
		sections = append(sections, toasts)
	}
	sections = append(sections, m.renderFooter())
	return strings.Join(sections, "\n")
}

func (m *Model) renderFooter() string {
	bindings := m.keys.normalHelp()
	switch {
	case m.mode == modeForm:
		bindings = m.keys.formHelp()
	default:
		if _, _, _, ok := m.drag.Dragging(); ok {
			bindings = m.keys.dragHelp()
		}
	}
	helpView := m.theme.Footer.Help.Render(m.help.ShortHelpView(bindings))
	if m.status == "" {
		return helpView
	}
	return m.theme.Footer.Status.Render(m.status) + "\n" + helpView
}

func (m *Model) renderModal(title, body string) string {
	th := m.theme.Modal
	return th.Frame.Render(th.Title.Render(title) + "\n" + th.Body.Render(body))
}

func (m *Model) renderAddNew() string {
	d, _ := m.addNew.OpenOn()
	body := strings.Join([]string{
		"1  Content item",
		"2  Social post",
		"3  Campaign",
	}, "\n")
	return m.renderModal("Add on "+d.String(), body)
}

func (m *Model) renderForm() string {
	if m.form == nil {
		return ""
	}
	verb := "Edit"
	if !m.editingExisting() {
		verb = "New"
	}
	title := fmt.Sprintf("%s %s · %s", verb, m.form.Type.Noun(), m.overlayPhase())
	body := m.form.View(m.theme.Modal, m.overlayErrors())
	if err := m.overlayErr(); err != nil {
		body += "\n" + m.theme.Modal.Error.Render("Save failed: "+err.Error())
	}
	return m.renderModal(title, body)
}

func (m *Model) editingExisting() bool {
	switch m.form.Type {
	case entity.TypeContent:
		return m.overlays.Content.Draft().ID != ""
	case entity.TypeSocial:
		return m.overlays.Social.Draft().ID != ""
	case entity.TypeCampaign:
		return m.overlays.Campaign.Draft().ID != ""
	}
	return false
}

func (m *Model) renderFilters() string {
	var lines []string
	var axis string
	for i, o := range m.filterOptions() {
		if string(o.axis) != axis {
			axis = string(o.axis)
			lines = append(lines, m.theme.Modal.Title.Render(axis))
		}
		box := "[ ]"
		if m.prefs.Filters.Has(o.axis, o.value) {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s", box, o.label)
		if i == m.filterIdx {
			line = m.theme.Modal.Focused.UnsetWidth().Render(line)
		}
		lines = append(lines, "  "+line)
	}
	return m.renderModal("Filters", strings.Join(lines, "\n"))
}

func (m *Model) renderViewsPanel() string {
	th := m.theme.Panel
	starred, others := m.sess.Views.Grouped("")
	lines := []string{th.Title.Render("Views")}
	add := func(name, id string, star bool) {
		label := name
		if star {
			label = "★ " + label
		}
		label = calendar.Preview(label)
		if id == m.prefs.ActiveView {
			lines = append(lines, th.Active.Render("→ "+label))
			return
		}
		style := th.Body
		if star {
			style = th.Starred
		}
		lines = append(lines, style.Render("  "+label))
	}
	for _, v := range starred {
		add(v.Name, v.ID, true)
	}
	for _, v := range others {
		add(v.Name, v.ID, false)
	}
	return th.Frame.Width(panelWidth).Render(strings.Join(lines, "\n"))
}

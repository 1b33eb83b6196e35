package teaui

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/filter"
	"tableflip.dev/contentcal/pkg/prefs"
)

type filterOption struct {
	axis  filter.Axis
	value string
	label string
}

// filterOptions lists every toggleable value: statuses, the loaded
// campaigns, then entity types.
func (m *Model) filterOptions() []filterOption {
	var out []filterOption
	for _, s := range entity.Statuses() {
		out = append(out, filterOption{axis: filter.AxisStatus, value: string(s), label: string(s)})
	}
	for _, c := range m.snap.Campaigns {
		out = append(out, filterOption{axis: filter.AxisCampaign, value: string(c.ID), label: c.Title})
	}
	for _, t := range entity.Types() {
		out = append(out, filterOption{axis: filter.AxisType, value: string(t), label: t.Label()})
	}
	return out
}

func (m *Model) handleFilterKey(msg tea.KeyPressMsg) tea.Cmd {
	opts := m.filterOptions()
	switch msg.String() {
	case "esc", "f", "q":
		m.mode = modeNormal
	case "down", "j":
		if len(opts) > 0 {
			m.filterIdx = (m.filterIdx + 1) % len(opts)
		}
	case "up", "k":
		if len(opts) > 0 {
			m.filterIdx = (m.filterIdx - 1 + len(opts)) % len(opts)
		}
	case "space", "enter", "x":
		if m.filterIdx < len(opts) {
			o := opts[m.filterIdx]
			m.updatePrefs(prefs.KeyFilters, m.prefs.Filters.Toggle(o.axis, o.value))
		}
	case "c":
		m.updatePrefs(prefs.KeyFilters, filter.Clear())
	}
	return nil
}

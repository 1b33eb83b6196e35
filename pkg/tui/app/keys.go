package teaui

import "github.com/charmbracelet/bubbles/v2/key"

type keyMap struct {
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	NextMonth  key.Binding
	PrevMonth  key.Binding
	Today      key.Binding
	NextItem   key.Binding
	Open       key.Binding
	Add        key.Binding
	Campaign   key.Binding
	Drag       key.Binding
	Delete     key.Binding
	Filters    key.Binding
	Clear      key.Binding
	Views      key.Binding
	SaveView   key.Binding
	Star       key.Binding
	Nav        key.Binding
	Theme      key.Binding
	Refresh    key.Binding
	Quit       key.Binding
	Cancel     key.Binding
	NextField  key.Binding
	Submit     key.Binding
	ConfirmYes key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev week")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next week")),
		NextMonth:  key.NewBinding(key.WithKeys("n", "pgdown"), key.WithHelp("n", "next month")),
		PrevMonth:  key.NewBinding(key.WithKeys("p", "pgup"), key.WithHelp("p", "prev month")),
		Today:      key.NewBinding(key.WithKeys("."), key.WithHelp(".", "today")),
		NextItem:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next item")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Campaign:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit campaign")),
		Drag:       key.NewBinding(key.WithKeys("m", "space"), key.WithHelp("m", "move")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Filters:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filters")),
		Clear:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
		Views:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "next view")),
		SaveView:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "save view")),
		Star:       key.NewBinding(key.WithKeys("*"), key.WithHelp("*", "star view")),
		Nav:        key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "views panel")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		NextField:  key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		ConfirmYes: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
	}
}

func (k keyMap) normalHelp() []key.Binding {
	return []key.Binding{k.Open, k.Add, k.Drag, k.Delete, k.Filters, k.Views, k.Nav, k.Theme, k.Quit}
}

func (k keyMap) dragHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Up, k.Down, k.Drag, k.Cancel}
}

func (k keyMap) formHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Submit, k.Cancel}
}

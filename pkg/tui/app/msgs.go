package teaui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/prefs"
)

type refreshedMsg struct{ err error }

type stateChangedMsg struct{}

type toastsChangedMsg struct{}

type saveDoneMsg struct {
	typ   entity.Type
	token int
	err   error
}

type mutationDoneMsg struct {
	what string
	err  error
}

type prefsWatchStartedMsg struct {
	ch     <-chan prefs.Preferences
	cancel context.CancelFunc
	err    error
}

type prefsChangedMsg struct {
	prefs prefs.Preferences
}

type prefsWatchStoppedMsg struct{}

func refreshCmd(ctx context.Context, c *app.Coordinator) tea.Cmd {
	return func() tea.Msg {
		return refreshedMsg{err: c.Refresh(ctx)}
	}
}

// waitForSignal delivers msg after the next value on ch.
func waitForSignal(ch <-chan struct{}, msg tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return msg
	}
}

func startPrefsWatchCmd(parent context.Context, ps *prefs.Store) tea.Cmd {
	if ps == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := ps.Watch(ctx)
		if err != nil {
			cancel()
			return prefsWatchStartedMsg{err: err}
		}
		return prefsWatchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForPrefs() tea.Cmd {
	if m.prefsCh == nil {
		return nil
	}
	ch := m.prefsCh
	return func() tea.Msg {
		if p, ok := <-ch; ok {
			return prefsChangedMsg{prefs: p}
		}
		return prefsWatchStoppedMsg{}
	}
}

func (m *Model) stopPrefsWatch() {
	if m.prefsCancel != nil {
		m.prefsCancel()
		m.prefsCancel = nil
	}
	m.prefsCh = nil
}

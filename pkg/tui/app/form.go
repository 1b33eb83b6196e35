package teaui

import (
	"errors"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/contentcal/pkg/calendar"
	"tableflip.dev/contentcal/pkg/entity"
)

// overlayPhase reports the phase of the overlay the form edits.
func (m *Model) overlayPhase() calendar.Phase {
	if m.form == nil {
		return calendar.PhaseClosed
	}
	switch m.form.Type {
	case entity.TypeContent:
		return m.overlays.Content.Phase()
	case entity.TypeSocial:
		return m.overlays.Social.Phase()
	case entity.TypeCampaign:
		return m.overlays.Campaign.Phase()
	}
	return calendar.PhaseClosed
}

func (m *Model) overlayErrors() entity.Errors {
	if m.form == nil {
		return nil
	}
	switch m.form.Type {
	case entity.TypeContent:
		return m.overlays.Content.Errors(m.today)
	case entity.TypeSocial:
		return m.overlays.Social.Errors(m.today)
	case entity.TypeCampaign:
		return m.overlays.Campaign.Errors(m.today)
	}
	return nil
}

func (m *Model) overlayErr() error {
	if m.form == nil {
		return nil
	}
	switch m.form.Type {
	case entity.TypeContent:
		return m.overlays.Content.Err()
	case entity.TypeSocial:
		return m.overlays.Social.Err()
	case entity.TypeCampaign:
		return m.overlays.Campaign.Err()
	}
	return nil
}

func (m *Model) closeOverlay(force bool) error {
	var err error
	switch m.form.Type {
	case entity.TypeContent:
		err = m.overlays.Content.Close(force)
	case entity.TypeSocial:
		err = m.overlays.Social.Close(force)
	case entity.TypeCampaign:
		err = m.overlays.Campaign.Close(force)
	}
	if err != nil {
		return err
	}
	m.closeForm()
	return nil
}

func (m *Model) closeForm() {
	m.form = nil
	m.discardArmed = false
	m.mode = modeNormal
}

func (m *Model) handleFormKey(msg tea.KeyPressMsg) tea.Cmd {
	if m.form == nil {
		m.mode = modeNormal
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Cancel):
		err := m.closeOverlay(m.discardArmed)
		if errors.Is(err, calendar.ErrUnsavedChanges) {
			m.discardArmed = true
			m.setStatus("Unsaved changes: press esc again to discard")
			return nil
		}
		m.setStatus("")
		return nil
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	m.discardArmed = false
	if m.overlayPhase() == calendar.PhaseSaving {
		return nil
	}
	cmd := m.form.Update(msg)
	if err := m.form.Apply(&m.overlays); err != nil {
		m.setStatus("ERR: " + err.Error())
	}
	return cmd
}

// submit validates the draft and starts the save. A failed save is retried
// with the same draft.
func (m *Model) submit() tea.Cmd {
	if err := m.form.Apply(&m.overlays); err != nil {
		m.setStatus("ERR: " + err.Error())
		return nil
	}
	var (
		token int
		err   error
		save  func() error
	)
	coord, ctx := m.sess.Coordinator, m.ctx
	switch m.form.Type {
	case entity.TypeContent:
		o := &m.overlays.Content
		if o.Phase() == calendar.PhaseError {
			_ = o.Retry()
		}
		var draft entity.ContentItem
		token, draft, err = o.Submit(m.today)
		save = func() error { _, err := coord.SaveContentItem(ctx, draft); return err }
	case entity.TypeSocial:
		o := &m.overlays.Social
		if o.Phase() == calendar.PhaseError {
			_ = o.Retry()
		}
		var draft entity.SocialPost
		token, draft, err = o.Submit(m.today)
		save = func() error { _, err := coord.SaveSocialPost(ctx, draft); return err }
	case entity.TypeCampaign:
		o := &m.overlays.Campaign
		if o.Phase() == calendar.PhaseError {
			_ = o.Retry()
		}
		var draft entity.Campaign
		token, draft, err = o.Submit(m.today)
		save = func() error { _, err := coord.SaveCampaign(ctx, draft); return err }
	}

	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr):
		m.setStatus("Fix the highlighted fields")
		return nil
	case err != nil:
		m.setStatus("ERR: " + err.Error())
		return nil
	}
	m.setStatus("Saving…")
	typ := m.form.Type
	return func() tea.Msg {
		return saveDoneMsg{typ: typ, token: token, err: save()}
	}
}

func (m *Model) resolveSave(msg saveDoneMsg) {
	switch msg.typ {
	case entity.TypeContent:
		m.overlays.Content.Resolve(msg.token, msg.err)
	case entity.TypeSocial:
		m.overlays.Social.Resolve(msg.token, msg.err)
	case entity.TypeCampaign:
		m.overlays.Campaign.Resolve(msg.token, msg.err)
	}
	if m.form == nil || m.form.Type != msg.typ {
		return
	}
	switch m.overlayPhase() {
	case calendar.PhaseClosed:
		m.closeForm()
		m.setStatus("")
	case calendar.PhaseError:
		m.setStatus("Save failed: press enter to retry or esc to close")
	}
}

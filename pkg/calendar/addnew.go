package calendar

import (
	"fmt"

	"tableflip.dev/contentcal/pkg/entity"
)

// AddNew is the inline "add new" menu shown on an empty cell.
type AddNew struct {
	open bool
	date entity.Date
}

// Toggle opens the menu on d, or closes it if it is already open there.
func (a *AddNew) Toggle(d entity.Date) {
	if a.open && a.date.Equal(d) {
		a.Close()
		return
	}
	a.open = true
	a.date = d
}

func (a *AddNew) Close() {
	a.open = false
	a.date = entity.Date{}
}

// OpenOn returns the date the menu is open on.
func (a *AddNew) OpenOn() (entity.Date, bool) {
	return a.date, a.open
}

// Choose closes the menu and returns a draft of type t dated on the menu's
// date, or today when the menu was not open.
func (a *AddNew) Choose(t entity.Type, today entity.Date) (entity.Entity, error) {
	d := today
	if a.open {
		d = a.date
	}
	draft, err := NewDraft(t, d)
	if err != nil {
		return nil, err
	}
	a.Close()
	return draft, nil
}

// NewDraft returns an empty entity of type t scheduled on d.
func NewDraft(t entity.Type, d entity.Date) (entity.Entity, error) {
	switch t {
	case entity.TypeContent:
		return entity.NewContentDraft(d), nil
	case entity.TypeSocial:
		return entity.NewSocialDraft(d), nil
	case entity.TypeCampaign:
		return entity.NewCampaignDraft(d), nil
	}
	return nil, fmt.Errorf("calendar: unknown entity type %q", t)
}

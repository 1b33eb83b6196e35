package editform

import (
	"errors"

	"tableflip.dev/contentcal/pkg/calendar"
	"tableflip.dev/contentcal/pkg/entity"
)

// ErrClosed is returned when applying to an overlay that is not open.
var ErrClosed = errors.New("editform: overlay is not open")

// Apply copies the changed fields into the draft of the open overlay.
// Unparseable dates clear the date so validation reports it.
func (m *Model) Apply(o *calendar.Overlays) error {
	changed := m.Changed()
	if len(changed) == 0 {
		return nil
	}
	switch m.Type {
	case entity.TypeContent:
		if !o.Content.IsOpen() {
			return ErrClosed
		}
		return o.Content.Edit(func(c *entity.ContentItem) {
			c.Title = m.Text(entity.FieldTitle)
			c.Description = m.Text(entity.FieldDescription)
			c.Date = date(m.Text(entity.FieldDate))
			c.Status = entity.Status(m.Text(entity.FieldStatus))
			c.CampaignID = entity.ID(m.Text(entity.FieldCampaign))
		}, changed...)
	case entity.TypeSocial:
		if !o.Social.IsOpen() {
			return ErrClosed
		}
		return o.Social.Edit(func(p *entity.SocialPost) {
			p.Title = m.Text(entity.FieldTitle)
			p.Message = m.Text(entity.FieldMessage)
			platforms := []entity.Platform{}
			for _, v := range m.Values(entity.FieldPlatforms) {
				platforms = append(platforms, entity.Platform(v))
			}
			p.Platforms = platforms
			p.Date = date(m.Text(entity.FieldDate))
			p.Status = entity.Status(m.Text(entity.FieldStatus))
			p.CampaignID = entity.ID(m.Text(entity.FieldCampaign))
		}, changed...)
	case entity.TypeCampaign:
		if !o.Campaign.IsOpen() {
			return ErrClosed
		}
		return o.Campaign.Edit(func(c *entity.Campaign) {
			c.Title = m.Text(entity.FieldTitle)
			c.Description = m.Text(entity.FieldDescription)
			c.StartDate = date(m.Text(entity.FieldStartDate))
			c.EndDate = date(m.Text(entity.FieldEndDate))
			c.Color = m.Text(entity.FieldColor)
		}, changed...)
	}
	return ErrClosed
}

func date(v string) entity.Date {
	d, err := entity.ParseDate(v)
	if err != nil {
		return entity.Date{}
	}
	return d
}

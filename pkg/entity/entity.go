// Package entity holds the calendar's domain model: campaigns, content items
// and social posts, plus the form validation rules applied before any of them
// is sent to the backend.
package entity

import "fmt"

// Entity is anything stored in one of the three collections.
type Entity interface {
	EntityID() string
	EntityType() Type
	EntityTitle() string
}

// Filterable exposes the attributes the filter engine inspects.
type Filterable interface {
	Entity
	StatusValue() Status
	CampaignRef() string
}

// Ref identifies an entity across collections. Ids are only unique within a
// collection, so the type is part of the identity.
type Ref struct {
	Type Type
	ID   string
}

func RefOf(e Entity) Ref {
	return Ref{Type: e.EntityType(), ID: e.EntityID()}
}

func (r Ref) String() string {
	return fmt.Sprintf("%s/%s", r.Type, r.ID)
}

// Campaign is a date-ranged effort that content items and social posts may
// belong to.
type Campaign struct {
	ID          ID     `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartDate   Date   `json:"startDate"`
	EndDate     Date   `json:"endDate"`
	Color       string `json:"color,omitempty"`

	// Related rows included by GET /api/campaigns. Informational only; the
	// top-level collections stay the source of truth.
	ContentItems []ContentItem `json:"ContentItems,omitempty"`
	SocialPosts  []SocialPost  `json:"SocialPosts,omitempty"`
}

func (c Campaign) EntityID() string    { return string(c.ID) }
func (c Campaign) EntityType() Type    { return TypeCampaign }
func (c Campaign) EntityTitle() string { return c.Title }
func (c Campaign) StatusValue() Status { return "" }

// CampaignRef of a campaign is its own id.
func (c Campaign) CampaignRef() string { return string(c.ID) }

// Contains reports whether d falls within [StartDate, EndDate].
func (c Campaign) Contains(d Date) bool {
	return !d.Before(c.StartDate) && !d.After(c.EndDate)
}

// WithoutRelated drops the included rows so the campaign can be written back.
func (c Campaign) WithoutRelated() Campaign {
	c.ContentItems = nil
	c.SocialPosts = nil
	return c
}

// ContentItem is a single dated piece of content.
type ContentItem struct {
	ID          ID     `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        Date   `json:"date"`
	Status      Status `json:"status,omitempty"`
	CampaignID  ID     `json:"campaignId,omitempty"`
}

func (c ContentItem) EntityID() string            { return string(c.ID) }
func (c ContentItem) EntityType() Type            { return TypeContent }
func (c ContentItem) EntityTitle() string         { return c.Title }
func (c ContentItem) StatusValue() Status         { return c.Status }
func (c ContentItem) CampaignRef() string         { return string(c.CampaignID) }
func (c ContentItem) ScheduledOn() Date           { return c.Date }
func (c ContentItem) WithDate(d Date) ContentItem { c.Date = d; return c }

// SocialPost is a message published to one or more platforms on a date.
type SocialPost struct {
	ID         ID         `json:"id,omitempty"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	Platforms  []Platform `json:"platforms"`
	Date       Date       `json:"date"`
	Status     Status     `json:"status,omitempty"`
	CampaignID ID         `json:"campaignId,omitempty"`
}

func (p SocialPost) EntityID() string    { return string(p.ID) }
func (p SocialPost) EntityType() Type    { return TypeSocial }
func (p SocialPost) EntityTitle() string { return p.Title }
func (p SocialPost) StatusValue() Status { return p.Status }
func (p SocialPost) CampaignRef() string { return string(p.CampaignID) }
func (p SocialPost) ScheduledOn() Date   { return p.Date }

func (p SocialPost) WithDate(d Date) SocialPost {
	p = p.Clone()
	p.Date = d
	return p
}

// Clone copies the platform slice so the result shares no memory with p.
func (p SocialPost) Clone() SocialPost {
	if p.Platforms != nil {
		platforms := make([]Platform, len(p.Platforms))
		copy(platforms, p.Platforms)
		p.Platforms = platforms
	}
	return p
}

// Color is the display colour of the post, taken from its first platform.
func (p SocialPost) Color() string {
	if len(p.Platforms) == 0 {
		return UnknownPlatformColor
	}
	return PlatformColor(p.Platforms[0])
}

// NewContentDraft returns an empty content item scheduled on d.
func NewContentDraft(d Date) ContentItem {
	return ContentItem{Date: d, Status: StatusBacklog}
}

// NewSocialDraft returns an empty social post scheduled on d.
func NewSocialDraft(d Date) SocialPost {
	return SocialPost{Date: d, Status: StatusPlanned, Platforms: []Platform{}}
}

// NewCampaignDraft returns an empty one-day campaign on d.
func NewCampaignDraft(d Date) Campaign {
	return Campaign{StartDate: d, EndDate: d, Color: DefaultColor}
}

// CampaignTitle resolves a weak campaign reference. Dangling or empty
// references resolve to "no campaign".
func CampaignTitle(campaigns []Campaign, id ID) string {
	if id == "" {
		return "no campaign"
	}
	for _, c := range campaigns {
		if c.ID == id {
			return c.Title
		}
	}
	return "no campaign"
}

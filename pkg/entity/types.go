package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Type tags which collection an entity belongs to.
type Type string

const (
	TypeContent  Type = "content"
	TypeCampaign Type = "campaign"
	TypeSocial   Type = "social"
)

// Types returns the entity type tags in menu order.
func Types() []Type {
	return []Type{TypeContent, TypeCampaign, TypeSocial}
}

func (t Type) Valid() bool {
	switch t {
	case TypeContent, TypeCampaign, TypeSocial:
		return true
	}
	return false
}

// Label is the human name used in menus.
func (t Type) Label() string {
	switch t {
	case TypeContent:
		return "Content Item"
	case TypeCampaign:
		return "Campaign"
	case TypeSocial:
		return "Social Post"
	}
	return string(t)
}

// Noun is the lower case name used in notifications.
func (t Type) Noun() string {
	return strings.ToLower(t.Label())
}

// ParseType accepts the tag itself and a few common aliases.
func ParseType(v string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "content", "contents", "content-item", "content-items", "item", "items":
		return TypeContent, nil
	case "campaign", "campaigns":
		return TypeCampaign, nil
	case "social", "socials", "social-post", "social-posts", "post", "posts":
		return TypeSocial, nil
	}
	return "", fmt.Errorf("entity: unknown type %q", v)
}

// Status is the workflow state of content items and social posts.
type Status string

const (
	StatusBacklog    Status = "Backlog"
	StatusPlanned    Status = "Planned"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

func Statuses() []Status {
	return []Status{StatusBacklog, StatusPlanned, StatusInProgress, StatusDone}
}

func (s Status) Valid() bool {
	for _, v := range Statuses() {
		if v == s {
			return true
		}
	}
	return false
}

// ParseStatus matches case-insensitively and ignores separators, so
// "in-progress" and "InProgress" both resolve to StatusInProgress.
func ParseStatus(v string) (Status, error) {
	key := squash(v)
	for _, s := range Statuses() {
		if squash(string(s)) == key {
			return s, nil
		}
	}
	return "", fmt.Errorf("entity: unknown status %q", v)
}

func squash(v string) string {
	r := strings.NewReplacer(" ", "", "-", "", "_", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(v)))
}

// Platform identifies a social network a post is published to.
type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformLinkedIn  Platform = "linkedin"
)

// PlatformInfo carries the display and validation facts of a platform.
type PlatformInfo struct {
	ID        Platform
	Name      string
	MaxLength int
	Color     string
}

var platforms = []PlatformInfo{
	{ID: PlatformTwitter, Name: "Twitter", MaxLength: 280, Color: "#1DA1F2"},
	{ID: PlatformFacebook, Name: "Facebook", MaxLength: 63206, Color: "#4267B2"},
	{ID: PlatformInstagram, Name: "Instagram", MaxLength: 2200, Color: "#E1306C"},
	{ID: PlatformLinkedIn, Name: "LinkedIn", MaxLength: 3000, Color: "#0077B5"},
}

// Colours for networks that posts may reference but cannot be created for.
var extraPlatformColors = map[Platform]string{
	"youtube":   "#FF0000",
	"tiktok":    "#000000",
	"pinterest": "#E60023",
}

// UnknownPlatformColor is used for unrecognised platforms and posts without any.
const UnknownPlatformColor = "#808080"

// Platforms returns the publishable platforms in display order.
func Platforms() []PlatformInfo {
	out := make([]PlatformInfo, len(platforms))
	copy(out, platforms)
	return out
}

func LookupPlatform(p Platform) (PlatformInfo, bool) {
	for _, info := range platforms {
		if info.ID == p {
			return info, true
		}
	}
	return PlatformInfo{}, false
}

// PlatformColor returns the brand colour of p, grey when unknown.
func PlatformColor(p Platform) string {
	if info, ok := LookupPlatform(p); ok {
		return info.Color
	}
	if c, ok := extraPlatformColors[p]; ok {
		return c
	}
	return UnknownPlatformColor
}

// Palette is the fixed set of campaign colours.
var Palette = []string{
	"#FFB3BA", // pastel red
	"#BAFFC9", // pastel green
	"#BAE1FF", // pastel blue
	"#FFFFBA", // pastel yellow
	"#FFB3F7", // pastel pink
	"#E0BBE4", // pastel purple
}

// DefaultColor is the colour of a new campaign.
const DefaultColor = "#FFB3BA"

func ValidColor(c string) bool {
	for _, p := range Palette {
		if strings.EqualFold(p, c) {
			return true
		}
	}
	return false
}

// ID is an opaque entity identifier. Backends that number their rows send
// JSON numbers; those decode to their decimal string.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("entity: id must be a string or number: %w", err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("entity: invalid numeric id %s", n)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

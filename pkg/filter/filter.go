// Package filter narrows entity collections to what the calendar should show.
package filter

import (
	"encoding/json"
	"fmt"

	"tableflip.dev/contentcal/pkg/entity"
)

// Axis names one dimension of a Spec.
type Axis string

const (
	AxisStatus   Axis = "status"
	AxisCampaign Axis = "campaign"
	AxisType     Axis = "type"
)

func Axes() []Axis {
	return []Axis{AxisStatus, AxisCampaign, AxisType}
}

func ParseAxis(v string) (Axis, error) {
	for _, a := range Axes() {
		if string(a) == v {
			return a, nil
		}
	}
	return "", fmt.Errorf("filter: unknown axis %q", v)
}

// Spec is a filter specification. Each axis is a set kept in insertion
// order; an empty axis places no restriction.
type Spec struct {
	Status   []entity.Status `json:"status"`
	Campaign []string        `json:"campaign"`
	Type     []entity.Type   `json:"type"`
}

// MarshalJSON always writes arrays, never null, so persisted specs keep the
// shape the preferences validator expects.
func (s Spec) MarshalJSON() ([]byte, error) {
	type plain Spec
	return json.Marshal(plain(s.normalized()))
}

func (s Spec) normalized() Spec {
	if s.Status == nil {
		s.Status = []entity.Status{}
	}
	if s.Campaign == nil {
		s.Campaign = []string{}
	}
	if s.Type == nil {
		s.Type = []entity.Type{}
	}
	return s
}

// Apply returns the items that pass spec, in input order. items is never
// modified.
func Apply[T entity.Filterable](items []T, typ entity.Type, spec Spec) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if Match(item, typ, spec) {
			out = append(out, item)
		}
	}
	return out
}

// Match reports whether a single item of the given type passes spec. All
// axes are ANDed. Campaigns are only subject to the campaign axis, matched
// against their own id.
func Match(item entity.Filterable, typ entity.Type, spec Spec) bool {
	if !matchCampaign(item.CampaignRef(), spec.Campaign) {
		return false
	}
	if typ == entity.TypeCampaign {
		return true
	}
	return matchStatus(item.StatusValue(), spec.Status) && matchType(typ, spec.Type)
}

func matchStatus(s entity.Status, set []entity.Status) bool {
	if len(set) == 0 {
		return true
	}
	if s == "" {
		return false
	}
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func matchCampaign(id string, set []string) bool {
	if len(set) == 0 {
		return true
	}
	if id == "" {
		return false
	}
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}

func matchType(t entity.Type, set []entity.Type) bool {
	if len(set) == 0 {
		return true
	}
	for _, v := range set {
		if v == t {
			return true
		}
	}
	return false
}

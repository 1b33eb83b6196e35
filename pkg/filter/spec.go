package filter

import (
	"fmt"

	"tableflip.dev/contentcal/pkg/entity"
)

// Clone returns a deep copy of s.
func (s Spec) Clone() Spec {
	out := Spec{}
	if s.Status != nil {
		out.Status = append([]entity.Status{}, s.Status...)
	}
	if s.Campaign != nil {
		out.Campaign = append([]string{}, s.Campaign...)
	}
	if s.Type != nil {
		out.Type = append([]entity.Type{}, s.Type...)
	}
	return out
}

// Active reports whether any axis restricts the result.
func (s Spec) Active() bool {
	return len(s.Status) > 0 || len(s.Campaign) > 0 || len(s.Type) > 0
}

// Count returns the number of values selected on axis.
func (s Spec) Count(axis Axis) int {
	return len(s.Values(axis))
}

// Values returns the selected values of axis as strings.
func (s Spec) Values(axis Axis) []string {
	var out []string
	switch axis {
	case AxisStatus:
		for _, v := range s.Status {
			out = append(out, string(v))
		}
	case AxisCampaign:
		out = append(out, s.Campaign...)
	case AxisType:
		for _, v := range s.Type {
			out = append(out, string(v))
		}
	}
	return out
}

// Has reports whether value is selected on axis.
func (s Spec) Has(axis Axis, value string) bool {
	for _, v := range s.Values(axis) {
		if v == value {
			return true
		}
	}
	return false
}

// Toggle adds value to axis when absent and removes it when present. The
// receiver is left untouched.
func (s Spec) Toggle(axis Axis, value string) Spec {
	out := s.Clone().normalized()
	switch axis {
	case AxisStatus:
		out.Status = toggle(out.Status, entity.Status(value))
	case AxisCampaign:
		out.Campaign = toggle(out.Campaign, value)
	case AxisType:
		out.Type = toggle(out.Type, entity.Type(value))
	}
	return out
}

func toggle[T comparable](set []T, v T) []T {
	out := make([]T, 0, len(set)+1)
	found := false
	for _, x := range set {
		if x == v {
			found = true
			continue
		}
		out = append(out, x)
	}
	if !found {
		out = append(out, v)
	}
	return out
}

// Clear returns the unrestricted spec.
func Clear() Spec {
	return Spec{}.normalized()
}

// Equal compares two specs as ordered sets.
func (s Spec) Equal(o Spec) bool {
	for _, axis := range Axes() {
		a, b := s.Values(axis), o.Values(axis)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}

// Validate rejects statuses and type tags outside their enumerations.
// Campaign ids are weak references and are not checked.
func (s Spec) Validate() error {
	for _, v := range s.Status {
		if !v.Valid() {
			return fmt.Errorf("filter: unknown status %q", v)
		}
	}
	for _, v := range s.Type {
		if !v.Valid() {
			return fmt.Errorf("filter: unknown type %q", v)
		}
	}
	return nil
}

// Normalize parses a user-supplied value for axis into its canonical form,
// so "in-progress" becomes "In Progress" and "posts" becomes "social".
func Normalize(axis Axis, value string) (string, error) {
	switch axis {
	case AxisStatus:
		st, err := entity.ParseStatus(value)
		return string(st), err
	case AxisType:
		t, err := entity.ParseType(value)
		return string(t), err
	case AxisCampaign:
		if value == "" {
			return "", fmt.Errorf("filter: campaign id required")
		}
		return value, nil
	}
	return "", fmt.Errorf("filter: unknown axis %q", axis)
}

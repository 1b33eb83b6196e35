package prefs

import "fmt"

// validateDoc checks the decoded JSON shape before it is bound to
// Preferences, so a wrong-typed value is rejected rather than zeroed.
func validateDoc(doc map[string]any) error {
	theme, ok := doc["theme"].(string)
	if !ok || !Theme(theme).Valid() {
		return fmt.Errorf("%w: theme must be light or dark", ErrInvalid)
	}
	if err := validateFiltersDoc(doc["filters"]); err != nil {
		return fmt.Errorf("%w: filters: %v", ErrInvalid, err)
	}
	if _, ok := doc["navPanelOpen"].(bool); !ok {
		return fmt.Errorf("%w: navPanelOpen must be a boolean", ErrInvalid)
	}
	views, ok := doc["savedViews"].([]any)
	if !ok {
		return fmt.Errorf("%w: savedViews must be a list", ErrInvalid)
	}
	for i, raw := range views {
		v, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: savedViews[%d] is not an object", ErrInvalid, i)
		}
		if id, ok := v["id"].(string); !ok || id == "" {
			return fmt.Errorf("%w: savedViews[%d] has no id", ErrInvalid, i)
		}
		if _, ok := v["name"].(string); !ok {
			return fmt.Errorf("%w: savedViews[%d] has no name", ErrInvalid, i)
		}
		if err := validateFiltersDoc(v["filters"]); err != nil {
			return fmt.Errorf("%w: savedViews[%d].filters: %v", ErrInvalid, i, err)
		}
		if s, present := v["starred"]; present {
			if _, ok := s.(bool); !ok {
				return fmt.Errorf("%w: savedViews[%d].starred must be a boolean", ErrInvalid, i)
			}
		}
	}
	if _, ok := doc["activeView"].(string); !ok {
		return fmt.Errorf("%w: activeView must be a string", ErrInvalid)
	}
	if _, ok := doc["version"].(float64); !ok {
		return fmt.Errorf("%w: version must be a number", ErrInvalid)
	}
	return nil
}

func validateFiltersDoc(raw any) error {
	f, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("not an object")
	}
	for _, axis := range []string{"status", "campaign", "type"} {
		values, ok := f[axis].([]any)
		if !ok {
			return fmt.Errorf("%s must be a list", axis)
		}
		for _, v := range values {
			if _, ok := v.(string); !ok {
				return fmt.Errorf("%s values must be strings", axis)
			}
		}
	}
	return nil
}

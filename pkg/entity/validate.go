package entity

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Field names used as validation keys.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDate        = "date"
	FieldMessage     = "message"
	FieldPlatforms   = "platforms"
	FieldStartDate   = "startDate"
	FieldEndDate     = "endDate"
	FieldColor       = "color"
	FieldStatus      = "status"
	FieldCampaign    = "campaignId"
)

const (
	minTitleLength       = 3
	maxDescriptionLength = 500
)

// Errors maps a field name to the message shown next to it.
type Errors map[string]string

// Err returns nil when there are no messages.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	fields := make(map[string]string, len(e))
	for k, v := range e {
		fields[k] = v
	}
	return &ValidationError{Fields: fields}
}

// Validator is implemented by every entity draft.
type Validator interface {
	Validate(today Date) Errors
}

// ValidationError blocks a submission. It is never produced by the network.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Validate checks a content item form.
func (c ContentItem) Validate(today Date) Errors {
	errs := Errors{}
	title := strings.TrimSpace(c.Title)
	switch {
	case title == "":
		errs[FieldTitle] = "Title is required"
	case utf8.RuneCountInString(title) < minTitleLength:
		errs[FieldTitle] = "Title must be at least 3 characters"
	}
	switch {
	case c.Date.IsZero():
		errs[FieldDate] = "Date is required"
	case !today.IsZero() && c.Date.Before(today):
		errs[FieldDate] = "Date cannot be in the past"
	}
	if utf8.RuneCountInString(c.Description) > maxDescriptionLength {
		errs[FieldDescription] = "Description must be less than 500 characters"
	}
	if c.Status != "" && !c.Status.Valid() {
		errs[FieldStatus] = fmt.Sprintf("Unknown status %q", c.Status)
	}
	return errs
}

// Validate checks a social post form. The message must fit the strictest of
// the selected platforms; every platform it overruns is named.
func (p SocialPost) Validate(_ Date) Errors {
	errs := Errors{}
	if strings.TrimSpace(p.Title) == "" {
		errs[FieldTitle] = "Title is required"
	}
	if strings.TrimSpace(p.Message) == "" {
		errs[FieldMessage] = "Message is required"
	}
	if p.Date.IsZero() {
		errs[FieldDate] = "Date is required"
	}
	if p.Status != "" && !p.Status.Valid() {
		errs[FieldStatus] = fmt.Sprintf("Unknown status %q", p.Status)
	}

	if len(p.Platforms) == 0 {
		errs[FieldPlatforms] = "Please select at least one platform"
		return errs
	}

	var invalid []string
	var violations []string
	length := utf8.RuneCountInString(p.Message)
	for _, id := range p.Platforms {
		info, ok := LookupPlatform(id)
		if !ok {
			invalid = append(invalid, string(id))
			continue
		}
		if length > info.MaxLength {
			violations = append(violations, fmt.Sprintf("%s (max %d characters)", info.Name, info.MaxLength))
		}
	}
	if len(invalid) > 0 {
		errs[FieldPlatforms] = "Invalid platform(s): " + strings.Join(invalid, ", ")
	}
	if len(violations) > 0 {
		errs[FieldMessage] = "Message too long for: " + strings.Join(violations, ", ")
	}
	return errs
}

// Validate checks a campaign form.
func (c Campaign) Validate(_ Date) Errors {
	errs := Errors{}
	if strings.TrimSpace(c.Title) == "" {
		errs[FieldTitle] = "Title is required"
	}
	if c.StartDate.IsZero() {
		errs[FieldStartDate] = "Start date is required"
	}
	if c.EndDate.IsZero() {
		errs[FieldEndDate] = "End date is required"
	}
	if !c.StartDate.IsZero() && !c.EndDate.IsZero() && c.EndDate.Before(c.StartDate) {
		errs[FieldEndDate] = "End date must not be before start date"
	}
	if c.Color != "" && !ValidColor(c.Color) {
		errs[FieldColor] = fmt.Sprintf("Color %s is not in the palette", c.Color)
	}
	return errs
}

// MessageBudget reports, per selected platform, how many characters remain.
// Negative values mean the message is over that platform's limit.
func (p SocialPost) MessageBudget() map[Platform]int {
	out := make(map[Platform]int, len(p.Platforms))
	length := utf8.RuneCountInString(p.Message)
	for _, id := range p.Platforms {
		if info, ok := LookupPlatform(id); ok {
			out[id] = info.MaxLength - length
		}
	}
	return out
}

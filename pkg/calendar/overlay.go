package calendar

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"tableflip.dev/contentcal/pkg/entity"
)

// ErrUnsavedChanges is returned when closing an edited overlay without force.
var ErrUnsavedChanges = errors.New("calendar: discard unsaved changes?")

// ErrNotEditing is returned for edits and submits outside the editing phase.
var ErrNotEditing = errors.New("calendar: overlay is not editing")

type Phase int

const (
	PhaseClosed Phase = iota
	PhaseEditing
	PhaseSaving
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "editing"
	case PhaseSaving:
		return "saving"
	case PhaseError:
		return "error"
	}
	return "closed"
}

// Editable is an entity with form validation.
type Editable interface {
	entity.Entity
	entity.Validator
}

// Overlay is the edit form of one entity type. It moves
// closed → editing → saving → closed, or saving → error → editing when the
// save fails. Opening while open replaces the current draft.
type Overlay[T Editable] struct {
	phase Phase
	draft T
	form  entity.Form
	dirty bool
	err   error
	// token identifies the save in flight; results for older tokens are
	// dropped.
	token int
}

// Open starts editing draft, discarding whatever was open.
func (o *Overlay[T]) Open(draft T) {
	o.token++
	o.phase = PhaseEditing
	o.draft = draft
	o.form.Reset()
	o.dirty = false
	o.err = nil
}

func (o *Overlay[T]) Phase() Phase { return o.phase }
func (o *Overlay[T]) Draft() T     { return o.draft }
func (o *Overlay[T]) Err() error   { return o.err }
func (o *Overlay[T]) Dirty() bool  { return o.dirty }

func (o *Overlay[T]) IsOpen() bool {
	return o.phase != PhaseClosed
}

// Edit applies fn to the draft and marks fields touched. Editing after a
// failed save returns the overlay to editing.
func (o *Overlay[T]) Edit(fn func(*T), fields ...string) error {
	switch o.phase {
	case PhaseEditing:
	case PhaseError:
		o.phase = PhaseEditing
		o.err = nil
	default:
		return fmt.Errorf("%w: %s", ErrNotEditing, o.phase)
	}
	fn(&o.draft)
	o.form.Touch(fields...)
	o.dirty = true
	return nil
}

// Touch marks fields as interacted with, without changing the draft.
func (o *Overlay[T]) Touch(fields ...string) {
	o.form.Touch(fields...)
}

// Errors returns the validation messages of touched fields.
func (o *Overlay[T]) Errors(today entity.Date) entity.Errors {
	return o.form.Visible(o.draft.Validate(today))
}

// Retry returns a failed overlay to editing with the same draft.
func (o *Overlay[T]) Retry() error {
	if o.phase != PhaseError {
		return fmt.Errorf("%w: %s", ErrNotEditing, o.phase)
	}
	o.phase = PhaseEditing
	o.err = nil
	return nil
}

// Submit validates the draft. When valid the overlay enters saving and the
// draft is returned with a token for Resolve. Invalid drafts stay editing
// with every failing field touched.
func (o *Overlay[T]) Submit(today entity.Date) (int, T, error) {
	var zero T
	if o.phase != PhaseEditing {
		return 0, zero, fmt.Errorf("%w: %s", ErrNotEditing, o.phase)
	}
	if err := o.form.Submit(o.draft, today); err != nil {
		return 0, zero, err
	}
	o.token++
	o.phase = PhaseSaving
	return o.token, o.draft, nil
}

// Resolve reports the outcome of the save identified by token. Outcomes of
// saves the overlay has since moved past are ignored.
func (o *Overlay[T]) Resolve(token int, err error) {
	if token != o.token || o.phase != PhaseSaving {
		return
	}
	if err != nil {
		o.phase = PhaseError
		o.err = err
		return
	}
	o.close()
}

// Close closes the overlay. An edited draft needs force. Closing while saving
// does not cancel the save.
func (o *Overlay[T]) Close(force bool) error {
	if o.phase == PhaseEditing && o.dirty && !force {
		return ErrUnsavedChanges
	}
	o.close()
	return nil
}

func (o *Overlay[T]) close() {
	var zero T
	o.token++
	o.phase = PhaseClosed
	o.draft = zero
	o.form.Reset()
	o.dirty = false
	o.err = nil
}

// Save submits the overlay and runs save, resolving with its outcome. It is
// the synchronous path for callers that do not need to render the saving
// phase.
func Save[T Editable](ctx context.Context, o *Overlay[T], today entity.Date, save func(context.Context, T) (T, error)) (T, error) {
	token, draft, err := o.Submit(today)
	if err != nil {
		var zero T
		return zero, err
	}
	saved, err := save(ctx, draft)
	o.Resolve(token, err)
	return saved, err
}

// Overlays holds one overlay per entity type.
type Overlays struct {
	Content  Overlay[entity.ContentItem]
	Social   Overlay[entity.SocialPost]
	Campaign Overlay[entity.Campaign]
}

// Open opens the overlay matching e's type with e as the draft.
func (o *Overlays) Open(e entity.Entity) error {
	switch v := e.(type) {
	case entity.ContentItem:
		o.Content.Open(v)
	case entity.SocialPost:
		o.Social.Open(v.Clone())
	case entity.Campaign:
		o.Campaign.Open(v.WithoutRelated())
	default:
		return fmt.Errorf("calendar: cannot edit %T", e)
	}
	return nil
}

// PreviewLength is the rune limit of description previews.
const PreviewLength = 50

// Preview shortens s to PreviewLength runes, marking the cut with "...".
func Preview(s string) string {
	if utf8.RuneCountInString(s) <= PreviewLength {
		return s
	}
	r := []rune(s)
	return string(r[:PreviewLength]) + "..."
}

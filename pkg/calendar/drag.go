package calendar

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tableflip.dev/contentcal/pkg/entity"
)

var (
	ErrNoDrag       = errors.New("calendar: no drag in progress")
	ErrNoTarget     = errors.New("calendar: no drop target")
	ErrNotDraggable = errors.New("calendar: campaigns cannot be dragged")
)

// Mover reschedules an entity. app.Coordinator implements it.
type Mover interface {
	Move(ctx context.Context, ref entity.Ref, date entity.Date) error
}

// DragController tracks a single drag gesture: BeginDrag, any number of
// DropTarget calls, then Commit or Cancel.
type DragController struct {
	mover Mover

	mu     sync.Mutex
	active bool
	ref    entity.Ref
	from   entity.Date
	target entity.Date
}

func NewDragController(m Mover) *DragController {
	return &DragController{mover: m}
}

// BeginDrag picks up ref from its current date, replacing any drag already
// in progress.
func (d *DragController) BeginDrag(ref entity.Ref, from entity.Date) error {
	if ref.Type != entity.TypeContent && ref.Type != entity.TypeSocial {
		return fmt.Errorf("%w: %s", ErrNotDraggable, ref)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.active = true
	d.ref = ref
	d.from = from
	d.target = entity.Date{}
	return nil
}

// DropTarget sets the date the dragged item is over.
func (d *DragController) DropTarget(date entity.Date) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.active {
		return ErrNoDrag
	}
	d.target = date
	return nil
}

// Dragging returns the drag in progress, if any. target is zero until a
// DropTarget call.
func (d *DragController) Dragging() (ref entity.Ref, from, target entity.Date, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ref, d.from, d.target, d.active
}

// Commit ends the drag and moves the item to the drop target. Dropping on
// the original date ends the drag without a request.
func (d *DragController) Commit(ctx context.Context) error {
	d.mu.Lock()
	if !d.active {
		d.mu.Unlock()
		return ErrNoDrag
	}
	if d.target.IsZero() {
		d.mu.Unlock()
		return ErrNoTarget
	}
	ref, from, target := d.ref, d.from, d.target
	d.active = false
	d.target = entity.Date{}
	d.mu.Unlock()

	if target.Equal(from) {
		return nil
	}
	return d.mover.Move(ctx, ref, target)
}

// Cancel abandons the drag.
func (d *DragController) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.active = false
	d.target = entity.Date{}
}

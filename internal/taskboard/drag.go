package taskboard

import (
	"context"

	"github.com/google/uuid"
)

// DragSession accumulates the pointer events of one drag-and-drop gesture and
// resolves them into a single Move on drop. Dragging never crosses groups;
// the session is pinned to the group the drag started in.
type DragSession struct {
	engine *Engine
	group  Group
	taskID uuid.UUID
	from   int
	to     int
	done   bool
}

// StartDrag begins a gesture for the task at index within the group's view.
func (e *Engine) StartDrag(id uuid.UUID, g Group, index int) (*DragSession, error) {
	list := e.Open()
	if g == GroupClosed {
		list = e.Closed()
	}
	if index < 0 || index >= len(list) {
		return nil, ErrIndexOutOfRange
	}
	if list[index].ID != id {
		return nil, ErrGroupMismatch
	}
	return &DragSession{engine: e, group: g, taskID: id, from: index, to: index}, nil
}

// Hover records the current candidate drop index. Indexes past the end of the
// list are clamped at drop time.
func (d *DragSession) Hover(index int) {
	if d.done || index < 0 {
		return
	}
	d.to = index
}

// Drop finishes the gesture. Dropping a task back where it started is a
// no-op; otherwise the move is applied and persisted.
func (d *DragSession) Drop(ctx context.Context) error {
	if d.done {
		return nil
	}
	d.done = true
	if d.to == d.from {
		return nil
	}
	_, err := d.engine.Move(ctx, d.taskID, d.from, d.to, d.group)
	return err
}

// Cancel abandons the gesture without moving anything.
func (d *DragSession) Cancel() {
	d.done = true
}

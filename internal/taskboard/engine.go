package taskboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"famboard/internal/model"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrGroupMismatch   = errors.New("task not in group")
)

// Fields is a partial task update. Nil members are left untouched by the
// persistence layer.
type Fields struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *int
	IsOpen      *bool
	Position    *int
}

// EditFields are the attributes the edit operation may change. Status,
// position and recurrence are owned by toggle and move.
type EditFields struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *int
}

// Port is the persistence contract the engine drives. Implementations assign
// ids on insert and report not-found and constraint violations as errors.
type Port interface {
	InsertTask(ctx context.Context, t model.Task) (model.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, fields Fields) (model.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
	ListTasksForAssignees(ctx context.Context, ids []uuid.UUID) ([]model.Task, error)
}

// Events carries the notification callbacks presentation layers register to
// re-render after an operation. Any of them may be nil.
type Events struct {
	TaskAdded            func(model.Task)
	TaskDeleted          func(model.Task)
	TaskToggled          func(model.Task)
	TaskMoved            func(Group, []model.Task)
	RecurringTaskSpawned func(model.Task)
}

func (e Events) taskAdded(t model.Task) {
	if e.TaskAdded != nil {
		e.TaskAdded(t)
	}
}

func (e Events) taskDeleted(t model.Task) {
	if e.TaskDeleted != nil {
		e.TaskDeleted(t)
	}
}

func (e Events) taskToggled(t model.Task) {
	if e.TaskToggled != nil {
		e.TaskToggled(t)
	}
}

func (e Events) taskMoved(g Group, list []model.Task) {
	if e.TaskMoved != nil {
		e.TaskMoved(g, list)
	}
}

func (e Events) recurringTaskSpawned(t model.Task) {
	if e.RecurringTaskSpawned != nil {
		e.RecurringTaskSpawned(t)
	}
}

// Engine applies user intent (add, edit, delete, toggle, drag-and-drop move)
// to one board: it mutates the store optimistically, persists through the
// port and rolls the in-memory change back when persistence fails. The mutex
// keeps one writer at a time; overlapping operations from different requests
// still resolve last-write-wins at the persistence layer.
type Engine struct {
	mu          sync.Mutex
	store       *Store
	port        Port
	events      Events
	lastDeleted *model.Task
}

func NewEngine(store *Store, port Port, events Events) *Engine {
	return &Engine{store: store, port: port, events: events}
}

// Open returns the open view of the board.
func (e *Engine) Open() []model.Task {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.View(GroupOpen)
}

// Closed returns the closed view of the board.
func (e *Engine) Closed() []model.Task {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.View(GroupClosed)
}

// Task returns one task by id.
func (e *Engine) Task(id uuid.UUID) (model.Task, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Get(id)
}

// Add inserts a new open task at the end of the open list and publishes it to
// the store once the persistence layer has assigned an id.
func (e *Engine) Add(ctx context.Context, draft model.Task) (model.Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	draft.IsOpen = true
	// Append after the last open task. Positions can be sparse (toggles and
	// deletes leave gaps until the next move densifies), so the list length is
	// not a valid end position.
	draft.Position = 0
	if open := e.store.View(GroupOpen); len(open) > 0 {
		draft.Position = open[len(open)-1].Position + 1
	}
	if draft.Recurrence == "" {
		draft.Recurrence = model.RecurrenceNone
	}

	created, err := e.port.InsertTask(ctx, draft)
	if err != nil {
		return model.Task{}, fmt.Errorf("add task: %w", err)
	}
	e.store.Upsert(created)
	e.events.taskAdded(created)
	return created, nil
}

// Edit persists a partial update to title, description, due date or priority
// and reconciles the store with the persisted row.
func (e *Engine) Edit(ctx context.Context, id uuid.UUID, fields EditFields) (model.Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev, ok := e.store.Get(id)
	if !ok {
		return model.Task{}, ErrTaskNotFound
	}

	next := prev
	if fields.Title != nil {
		next.Title = *fields.Title
	}
	if fields.Description != nil {
		next.Description = *fields.Description
	}
	if fields.DueDate != nil {
		d := *fields.DueDate
		next.DueDate = &d
	}
	if fields.Priority != nil {
		next.Priority = *fields.Priority
	}
	e.store.Upsert(next)

	updated, err := e.port.UpdateTask(ctx, id, Fields{
		Title:       fields.Title,
		Description: fields.Description,
		DueDate:     fields.DueDate,
		Priority:    fields.Priority,
	})
	if err != nil {
		e.store.Upsert(prev)
		return model.Task{}, fmt.Errorf("edit task: %w", err)
	}
	e.store.Upsert(updated)
	return updated, nil
}

// Delete removes a task and retains its full record in the single undo slot.
// A second delete overwrites the slot. The slot is only filled for deletes
// that actually persisted.
func (e *Engine) Delete(ctx context.Context, id uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.store.Get(id)
	if !ok {
		return ErrTaskNotFound
	}

	e.store.Remove(id)
	if err := e.port.DeleteTask(ctx, id); err != nil {
		e.store.Upsert(t)
		return fmt.Errorf("delete task: %w", err)
	}
	e.lastDeleted = &t
	e.events.taskDeleted(t)
	return nil
}

// Undo re-inserts the last deleted task. The restored task gets a fresh id
// from the persistence layer. Without a retained delete it is a no-op and
// returns nil.
func (e *Engine) Undo(ctx context.Context) (*model.Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.lastDeleted == nil {
		return nil, nil
	}
	record := *e.lastDeleted
	record.ID = uuid.Nil

	created, err := e.port.InsertTask(ctx, record)
	if err != nil {
		// Slot stays filled so the user can retry.
		return nil, fmt.Errorf("restore task: %w", err)
	}
	e.lastDeleted = nil
	e.store.Upsert(created)
	e.events.taskAdded(created)
	return &created, nil
}

// ToggleStatus flips a task between open and closed, leaving its position
// untouched, and returns the toggled task. Closing a recurring task spawns
// exactly one new open task with the due date advanced by one recurrence
// unit; the spawned task is the second return value, nil otherwise.
func (e *Engine) ToggleStatus(ctx context.Context, id uuid.UUID) (model.Task, *model.Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev, ok := e.store.Get(id)
	if !ok {
		return model.Task{}, nil, ErrTaskNotFound
	}
	newStatus := !prev.IsOpen

	next := prev
	next.IsOpen = newStatus
	e.store.Upsert(next)

	updated, err := e.port.UpdateTask(ctx, id, Fields{IsOpen: &newStatus})
	if err != nil {
		e.store.Upsert(prev)
		return model.Task{}, nil, fmt.Errorf("toggle task: %w", err)
	}
	e.store.Upsert(updated)
	e.events.taskToggled(updated)

	// Recurrence fires only on the open -> closed transition.
	if newStatus || updated.Recurrence == model.RecurrenceNone {
		return updated, nil, nil
	}
	spawned, err := e.port.InsertTask(ctx, updated.NextOccurrence())
	if err != nil {
		// The completed toggle stands; only the spawn failed.
		return updated, nil, fmt.Errorf("spawn recurring task: %w", err)
	}
	e.store.Upsert(spawned)
	e.events.recurringTaskSpawned(spawned)
	return updated, &spawned, nil
}

// Move takes the task at fromIndex out of the group's ordered list, reinserts
// it at toIndex (list-splice semantics, toIndex == length means the end) and
// densely reindexes the whole group to positions 0..N-1. Changed positions
// are persisted one task at a time, in list order; on failure the in-memory
// order is rolled back. The returned slice is the group's new order.
func (e *Engine) Move(ctx context.Context, id uuid.UUID, fromIndex, toIndex int, g Group) ([]model.Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	list := e.store.View(g)
	if fromIndex < 0 || fromIndex >= len(list) {
		return nil, fmt.Errorf("%w: from %d of %d", ErrIndexOutOfRange, fromIndex, len(list))
	}
	if toIndex < 0 || toIndex > len(list) {
		return nil, fmt.Errorf("%w: to %d of %d", ErrIndexOutOfRange, toIndex, len(list))
	}
	if list[fromIndex].ID != id {
		return nil, fmt.Errorf("%w: task %s is not at index %d of the %s list", ErrGroupMismatch, id, fromIndex, g)
	}

	moved := list[fromIndex]
	rest := append(append([]model.Task{}, list[:fromIndex]...), list[fromIndex+1:]...)
	if toIndex > len(rest) {
		toIndex = len(rest)
	}
	reordered := make([]model.Task, 0, len(list))
	reordered = append(reordered, rest[:toIndex]...)
	reordered = append(reordered, moved)
	reordered = append(reordered, rest[toIndex:]...)

	// Dense reindex; remember what changed for persistence and rollback.
	type change struct {
		id       uuid.UUID
		from, to int
	}
	var changes []change
	for i := range reordered {
		if reordered[i].Position != i {
			changes = append(changes, change{id: reordered[i].ID, from: reordered[i].Position, to: i})
			reordered[i].Position = i
			e.store.Upsert(reordered[i])
		}
	}

	for i, ch := range changes {
		pos := ch.to
		if _, err := e.port.UpdateTask(ctx, ch.id, Fields{Position: &pos}); err != nil {
			for _, undo := range changes {
				if t, ok := e.store.Get(undo.id); ok {
					t.Position = undo.from
					e.store.Upsert(t)
				}
			}
			return nil, fmt.Errorf("persist order (%d of %d): %w", i+1, len(changes), err)
		}
	}

	result := e.store.View(g)
	e.events.taskMoved(g, result)
	return result, nil
}

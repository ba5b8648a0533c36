package taskboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"famboard/internal/model"
	"famboard/internal/taskboard"
)

var errPersistence = errors.New("persistence failure")

// fakePort is an in-memory stand-in for the gorm repository. It records the
// order of update calls and can be told to fail any operation.
type fakePort struct {
	rows    map[uuid.UUID]model.Task
	inserts int
	lists   int
	updated []uuid.UUID

	failInsert bool
	failUpdate bool
	failDelete bool
	// failUpdateAt fails the Nth update call (1-based) when > 0.
	failUpdateAt int
}

func newFakePort(tasks ...model.Task) *fakePort {
	p := &fakePort{rows: make(map[uuid.UUID]model.Task)}
	for _, t := range tasks {
		p.rows[t.ID] = t
	}
	return p
}

func (p *fakePort) InsertTask(_ context.Context, t model.Task) (model.Task, error) {
	if p.failInsert {
		return model.Task{}, errPersistence
	}
	t.ID = uuid.New()
	p.rows[t.ID] = t
	p.inserts++
	return t, nil
}

func (p *fakePort) UpdateTask(_ context.Context, id uuid.UUID, fields taskboard.Fields) (model.Task, error) {
	if p.failUpdate {
		return model.Task{}, errPersistence
	}
	if p.failUpdateAt > 0 && len(p.updated)+1 == p.failUpdateAt {
		return model.Task{}, errPersistence
	}
	t, ok := p.rows[id]
	if !ok {
		return model.Task{}, errors.New("not found")
	}
	if fields.Title != nil {
		t.Title = *fields.Title
	}
	if fields.Description != nil {
		t.Description = *fields.Description
	}
	if fields.DueDate != nil {
		d := *fields.DueDate
		t.DueDate = &d
	}
	if fields.Priority != nil {
		t.Priority = *fields.Priority
	}
	if fields.IsOpen != nil {
		t.IsOpen = *fields.IsOpen
	}
	if fields.Position != nil {
		t.Position = *fields.Position
	}
	p.rows[id] = t
	p.updated = append(p.updated, id)
	return t, nil
}

func (p *fakePort) DeleteTask(_ context.Context, id uuid.UUID) error {
	if p.failDelete {
		return errPersistence
	}
	if _, ok := p.rows[id]; !ok {
		return errors.New("not found")
	}
	delete(p.rows, id)
	return nil
}

func (p *fakePort) ListTasksForAssignees(_ context.Context, ids []uuid.UUID) ([]model.Task, error) {
	p.lists++
	var out []model.Task
	for _, t := range p.rows {
		for _, id := range ids {
			if t.AssigneeID == id {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

var testAssignee = uuid.MustParse("0d9c4b1e-0b7a-4c53-9b1f-62c2a9f3a001")

func openTask(title string, pos int) model.Task {
	return model.Task{
		ID:         uuid.New(),
		Title:      title,
		Priority:   model.PriorityMedium,
		IsOpen:     true,
		AssigneeID: testAssignee,
		Position:   pos,
		Recurrence: model.RecurrenceNone,
	}
}

func closedTask(title string, pos int) model.Task {
	t := openTask(title, pos)
	t.IsOpen = false
	return t
}

// seedBoard builds an engine whose store and fake port agree on the given
// tasks.
func seedBoard(t *testing.T, tasks ...model.Task) (*taskboard.Engine, *fakePort) {
	t.Helper()
	port := newFakePort(tasks...)
	store := taskboard.NewStore()
	store.Load(tasks)
	return taskboard.NewEngine(store, port, taskboard.Events{}), port
}

func titles(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func positions(tasks []model.Task) []int {
	out := make([]int, len(tasks))
	for i, t := range tasks {
		out[i] = t.Position
	}
	return out
}

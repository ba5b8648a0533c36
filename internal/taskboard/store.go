package taskboard

import (
	"sort"

	"github.com/google/uuid"

	"famboard/internal/model"
)

// Group identifies one of the two ordered sublists of a board.
type Group string

const (
	GroupOpen   Group = "open"
	GroupClosed Group = "closed"
)

// GroupOf returns the group a task currently belongs to.
func GroupOf(t model.Task) Group {
	if t.IsOpen {
		return GroupOpen
	}
	return GroupClosed
}

type entry struct {
	task model.Task
	seq  int
}

// Store holds the session copy of one board's tasks and derives the open and
// closed views from it. It is a plain in-memory index; persistence failures
// belong to the engine.
type Store struct {
	entries map[uuid.UUID]entry
	seq     int
}

func NewStore() *Store {
	return &Store{entries: make(map[uuid.UUID]entry)}
}

// Load replaces the whole collection, e.g. on first render or refresh.
func (s *Store) Load(tasks []model.Task) {
	s.entries = make(map[uuid.UUID]entry, len(tasks))
	s.seq = 0
	for _, t := range tasks {
		s.entries[t.ID] = entry{task: t, seq: s.seq}
		s.seq++
	}
}

// Upsert inserts a task or replaces it in place when the id is already known.
func (s *Store) Upsert(t model.Task) {
	if e, ok := s.entries[t.ID]; ok {
		e.task = t
		s.entries[t.ID] = e
		return
	}
	s.entries[t.ID] = entry{task: t, seq: s.seq}
	s.seq++
}

// Remove drops a task by id. Unknown ids are a no-op.
func (s *Store) Remove(id uuid.UUID) {
	delete(s.entries, id)
}

// Get returns a task by id.
func (s *Store) Get(id uuid.UUID) (model.Task, bool) {
	e, ok := s.entries[id]
	return e.task, ok
}

// Len returns the number of tasks across both groups.
func (s *Store) Len() int {
	return len(s.entries)
}

// View returns the tasks of one group sorted ascending by position. Position
// ties (possible right after a toggle, before the next explicit move) are
// broken by insertion order so the rendering stays deterministic. The
// returned slice is a copy.
func (s *Store) View(g Group) []model.Task {
	picked := make([]entry, 0, len(s.entries))
	for _, e := range s.entries {
		if GroupOf(e.task) == g {
			picked = append(picked, e)
		}
	}
	sort.Slice(picked, func(i, j int) bool {
		if picked[i].task.Position != picked[j].task.Position {
			return picked[i].task.Position < picked[j].task.Position
		}
		return picked[i].seq < picked[j].seq
	})
	tasks := make([]model.Task, len(picked))
	for i, e := range picked {
		tasks[i] = e.task
	}
	return tasks
}

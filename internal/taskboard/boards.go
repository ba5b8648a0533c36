package taskboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Boards hands out one engine per assignee so optimistic state and the undo
// slot survive across requests. Engines are loaded lazily through the port.
type Boards struct {
	mu      sync.Mutex
	port    Port
	events  Events
	engines map[uuid.UUID]*Engine
}

func NewBoards(port Port, events Events) *Boards {
	return &Boards{
		port:    port,
		events:  events,
		engines: make(map[uuid.UUID]*Engine),
	}
}

// Get returns the engine for one assignee's board, loading the task list on
// first access.
func (b *Boards) Get(ctx context.Context, assigneeID uuid.UUID) (*Engine, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if eng, ok := b.engines[assigneeID]; ok {
		return eng, nil
	}
	tasks, err := b.port.ListTasksForAssignees(ctx, []uuid.UUID{assigneeID})
	if err != nil {
		return nil, fmt.Errorf("load board for %s: %w", assigneeID, err)
	}
	store := NewStore()
	store.Load(tasks)
	eng := NewEngine(store, b.port, b.events)
	b.engines[assigneeID] = eng
	return eng, nil
}

// Invalidate drops a cached board so the next access reloads it from
// persistence, e.g. after the member was deleted or rows changed out of band.
func (b *Boards) Invalidate(assigneeID uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.engines, assigneeID)
}

package taskboard_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"famboard/internal/taskboard"
)

func TestDragDropMovesTask(t *testing.T) {
	a, b, c := openTask("A", 0), openTask("B", 1), openTask("C", 2)
	engine, _ := seedBoard(t, a, b, c)

	session, err := engine.StartDrag(a.ID, taskboard.GroupOpen, 0)
	assert.NoError(t, err)

	session.Hover(1)
	session.Hover(2)
	assert.NoError(t, session.Drop(context.Background()))

	assert.Equal(t, []string{"B", "C", "A"}, titles(engine.Open()))
}

func TestDragDropBackToOriginIsNoOp(t *testing.T) {
	a, b := openTask("A", 0), openTask("B", 1)
	engine, port := seedBoard(t, a, b)

	session, err := engine.StartDrag(b.ID, taskboard.GroupOpen, 1)
	assert.NoError(t, err)
	session.Hover(0)
	session.Hover(1)

	assert.NoError(t, session.Drop(context.Background()))
	assert.Empty(t, port.updated)
}

func TestDragCancelDropsNothing(t *testing.T) {
	a, b := openTask("A", 0), openTask("B", 1)
	engine, port := seedBoard(t, a, b)

	session, err := engine.StartDrag(a.ID, taskboard.GroupOpen, 0)
	assert.NoError(t, err)
	session.Hover(1)
	session.Cancel()

	assert.NoError(t, session.Drop(context.Background()))
	assert.Equal(t, []string{"A", "B"}, titles(engine.Open()))
	assert.Empty(t, port.updated)
}

func TestStartDragValidatesIndex(t *testing.T) {
	a := openTask("A", 0)
	engine, _ := seedBoard(t, a)

	_, err := engine.StartDrag(a.ID, taskboard.GroupOpen, 3)
	assert.ErrorIs(t, err, taskboard.ErrIndexOutOfRange)

	_, err = engine.StartDrag(a.ID, taskboard.GroupClosed, 0)
	assert.ErrorIs(t, err, taskboard.ErrIndexOutOfRange)
}

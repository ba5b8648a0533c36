package taskboard_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"famboard/internal/taskboard"
)

func TestBoardsCachesEnginePerAssignee(t *testing.T) {
	port := newFakePort(openTask("A", 0))
	boards := taskboard.NewBoards(port, taskboard.Events{})
	ctx := context.Background()

	first, err := boards.Get(ctx, testAssignee)
	assert.NoError(t, err)
	second, err := boards.Get(ctx, testAssignee)
	assert.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, port.lists)
	assert.Equal(t, []string{"A"}, titles(first.Open()))
}

func TestBoardsInvalidateReloads(t *testing.T) {
	port := newFakePort(openTask("A", 0))
	boards := taskboard.NewBoards(port, taskboard.Events{})
	ctx := context.Background()

	first, err := boards.Get(ctx, testAssignee)
	assert.NoError(t, err)

	boards.Invalidate(testAssignee)
	reloaded, err := boards.Get(ctx, testAssignee)
	assert.NoError(t, err)

	assert.NotSame(t, first, reloaded)
	assert.Equal(t, 2, port.lists)
}

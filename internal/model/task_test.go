package model_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"famboard/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRecurrenceNext(t *testing.T) {
	tests := []struct {
		name       string
		recurrence model.Recurrence
		from       time.Time
		want       time.Time
	}{
		{"daily", model.RecurrenceDaily, date(2024, 3, 10), date(2024, 3, 11)},
		{"daily across month end", model.RecurrenceDaily, date(2024, 2, 29), date(2024, 3, 1)},
		{"weekly", model.RecurrenceWeekly, date(2024, 3, 10), date(2024, 3, 17)},
		{"weekly across year end", model.RecurrenceWeekly, date(2024, 12, 30), date(2025, 1, 6)},
		{"monthly", model.RecurrenceMonthly, date(2024, 3, 10), date(2024, 4, 10)},
		// AddDate normalization: Jan 31 + 1 month overflows into March.
		{"monthly overflow", model.RecurrenceMonthly, date(2024, 1, 31), date(2024, 3, 2)},
		{"yearly", model.RecurrenceYearly, date(2024, 3, 10), date(2025, 3, 10)},
		{"yearly from leap day", model.RecurrenceYearly, date(2024, 2, 29), date(2025, 3, 1)},
		{"none leaves date alone", model.RecurrenceNone, date(2024, 3, 10), date(2024, 3, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.recurrence.Next(tt.from))
		})
	}
}

func TestRecurrenceValid(t *testing.T) {
	for _, r := range []model.Recurrence{
		model.RecurrenceNone, model.RecurrenceDaily, model.RecurrenceWeekly,
		model.RecurrenceMonthly, model.RecurrenceYearly,
	} {
		assert.True(t, r.Valid(), string(r))
	}
	assert.False(t, model.Recurrence("fortnightly").Valid())
	assert.False(t, model.Recurrence("").Valid())
}

func TestNextOccurrence(t *testing.T) {
	due := date(2024, 3, 10)
	task := model.Task{
		ID:          uuid.New(),
		Title:       "Water the plants",
		Description: "the balcony ones too",
		DueDate:     &due,
		Priority:    model.PriorityHigh,
		IsOpen:      false,
		AssigneeID:  uuid.New(),
		Position:    4,
		Recurrence:  model.RecurrenceWeekly,
	}

	next := task.NextOccurrence()

	assert.Equal(t, uuid.Nil, next.ID)
	assert.True(t, next.IsOpen)
	assert.Equal(t, task.Title, next.Title)
	assert.Equal(t, task.Description, next.Description)
	assert.Equal(t, task.Priority, next.Priority)
	assert.Equal(t, task.AssigneeID, next.AssigneeID)
	assert.Equal(t, task.Position, next.Position)
	assert.Equal(t, task.Recurrence, next.Recurrence)
	assert.Equal(t, date(2024, 3, 17), *next.DueDate)
}

func TestNextOccurrenceWithoutDueDate(t *testing.T) {
	task := model.Task{Title: "No date", Recurrence: model.RecurrenceDaily}

	next := task.NextOccurrence()

	assert.Nil(t, next.DueDate)
	assert.True(t, next.IsOpen)
}

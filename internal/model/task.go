package model

import (
	"time"

	"github.com/google/uuid"
)

// Recurrence describes how often a task repeats once it is marked done.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
)

// Valid reports whether r is one of the known recurrence values.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

// Next advances a due date by one recurrence unit. Month and year additions
// follow time.AddDate normalization, so Jan 31 + 1 month lands in early March.
func (r Recurrence) Next(d time.Time) time.Time {
	switch r {
	case RecurrenceDaily:
		return d.AddDate(0, 0, 1)
	case RecurrenceWeekly:
		return d.AddDate(0, 0, 7)
	case RecurrenceMonthly:
		return d.AddDate(0, 1, 0)
	case RecurrenceYearly:
		return d.AddDate(1, 0, 0)
	}
	return d
}

// Task priorities, low to high.
const (
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
)

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string    `gorm:"not null"`
	Description string
	DueDate     *time.Time
	Priority    int        `gorm:"not null;default:2"`
	IsOpen      bool       `gorm:"not null;default:true"`
	AssigneeID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Position    int        `gorm:"not null"`
	Recurrence  Recurrence `gorm:"not null;default:'none'"`

	Assignee Member `gorm:"foreignKey:AssigneeID"`
}

// NextOccurrence builds the open task spawned when a recurring task is
// completed: same attributes, due date advanced by one unit, id left for the
// persistence layer to assign.
func (t Task) NextOccurrence() Task {
	next := Task{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		IsOpen:      true,
		AssigneeID:  t.AssigneeID,
		Position:    t.Position,
		Recurrence:  t.Recurrence,
	}
	if t.DueDate != nil {
		d := t.Recurrence.Next(*t.DueDate)
		next.DueDate = &d
	}
	return next
}

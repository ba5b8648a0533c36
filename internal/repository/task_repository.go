package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"famboard/internal/model"
	"famboard/internal/taskboard"
)

// TaskRepository is the gorm-backed implementation of the board engine's
// persistence port.
type TaskRepository struct {
	db *gorm.DB
}

var _ taskboard.Port = (*TaskRepository)(nil)

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// InsertTask stores a new task row. The database assigns the id; whatever id
// the caller set is discarded.
func (r *TaskRepository) InsertTask(ctx context.Context, task model.Task) (model.Task, error) {
	task.ID = uuid.Nil
	if err := r.db.WithContext(ctx).Create(&task).Error; err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// UpdateTask applies a partial update and returns the persisted row.
func (r *TaskRepository) UpdateTask(ctx context.Context, id uuid.UUID, fields taskboard.Fields) (model.Task, error) {
	updates := map[string]interface{}{}
	if fields.Title != nil {
		updates["title"] = *fields.Title
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.DueDate != nil {
		updates["due_date"] = *fields.DueDate
	}
	if fields.Priority != nil {
		updates["priority"] = *fields.Priority
	}
	if fields.IsOpen != nil {
		updates["is_open"] = *fields.IsOpen
	}
	if fields.Position != nil {
		updates["position"] = *fields.Position
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return model.Task{}, result.Error
		}
		if result.RowsAffected == 0 {
			return model.Task{}, ErrTaskNotFound
		}
	}

	return r.GetByID(ctx, id)
}

// DeleteTask removes a task row permanently.
func (r *TaskRepository) DeleteTask(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// ListTasksForAssignees retrieves every task assigned to any of the given
// members, ordered by position.
func (r *TaskRepository) ListTasksForAssignees(ctx context.Context, ids []uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("assignee_id IN ?", ids).
		Order("position").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetByID retrieves a task by its id.
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Task{}, ErrTaskNotFound
		}
		return model.Task{}, err
	}
	return task, nil
}

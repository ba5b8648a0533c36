package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"famboard/internal/model"
	"famboard/internal/repository"
	"famboard/internal/taskboard"
)

type TaskHandler struct {
	boards     *taskboard.Boards
	taskRepo   *repository.TaskRepository
	memberRepo *repository.MemberRepository
	userRepo   *repository.UserRepository
}

func NewTaskHandler(
	boards *taskboard.Boards,
	taskRepo *repository.TaskRepository,
	memberRepo *repository.MemberRepository,
	userRepo *repository.UserRepository,
) *TaskHandler {
	return &TaskHandler{
		boards:     boards,
		taskRepo:   taskRepo,
		memberRepo: memberRepo,
		userRepo:   userRepo,
	}
}

// TaskRequest is the payload for creating a task
type TaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Priority    int    `json:"priority" binding:"omitempty,min=1,max=3"`
	AssigneeID  string `json:"assignee_id" binding:"required,uuid"`
	Recurrence  string `json:"recurrence"`
}

// TaskUpdateRequest is a partial edit; absent fields are left untouched
type TaskUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    *int    `json:"priority" binding:"omitempty,min=1,max=3"`
}

// TaskMoveRequest describes a drag-and-drop move within one group
type TaskMoveRequest struct {
	Group     string `json:"group" binding:"required,oneof=open closed"`
	FromIndex int    `json:"from_index" binding:"min=0"`
	ToIndex   int    `json:"to_index" binding:"min=0"`
}

// TaskResponse is the task representation returned by every task endpoint
type TaskResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Priority    int     `json:"priority"`
	IsOpen      bool    `json:"is_open"`
	AssigneeID  string  `json:"assignee_id"`
	Position    int     `json:"position"`
	Recurrence  string  `json:"recurrence"`
}

// BoardResponse is one member's board split into its two ordered lists
type BoardResponse struct {
	Open   []TaskResponse `json:"open"`
	Closed []TaskResponse `json:"closed"`
}

func toTaskResponse(t model.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		DueDate:     formatDueDate(t.DueDate),
		Priority:    t.Priority,
		IsOpen:      t.IsOpen,
		AssigneeID:  t.AssigneeID.String(),
		Position:    t.Position,
		Recurrence:  string(t.Recurrence),
	}
}

func toTaskResponses(tasks []model.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskResponse(t)
	}
	return out
}

// board fetches the engine for the task's assignee, resolving the task first.
func (h *TaskHandler) board(c *gin.Context) (*taskboard.Engine, model.Task, bool) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return nil, model.Task{}, false
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return nil, model.Task{}, false
	}

	engine, err := h.boards.Get(c.Request.Context(), task.AssigneeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load board"})
		return nil, model.Task{}, false
	}
	return engine, task, true
}

// Create adds a new task to the end of the assignee's open list
// @Summary  Create a task
// @Tags     Tasks
// @Security BearerAuth
// @Router   /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	if _, ok := authenticatedUser(c); !ok {
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	assigneeID, err := uuid.Parse(req.AssigneeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignee ID format"})
		return
	}

	member, err := h.memberRepo.GetByID(c.Request.Context(), assigneeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve member"})
		return
	}
	if member == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	recurrence := model.Recurrence(req.Recurrence)
	if req.Recurrence == "" {
		recurrence = model.RecurrenceNone
	}
	if !recurrence.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recurrence"})
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due date, expected YYYY-MM-DD"})
		return
	}

	priority := req.Priority
	if priority == 0 {
		priority = model.PriorityMedium
	}

	engine, err := h.boards.Get(c.Request.Context(), assigneeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load board"})
		return
	}

	created, err := engine.Add(c.Request.Context(), model.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Priority:    priority,
		AssigneeID:  assigneeID,
		Recurrence:  recurrence,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, toTaskResponse(created))
}

// GetBoard returns one member's board as its open and closed lists
// @Summary  Get a member's task board
// @Tags     Tasks
// @Security BearerAuth
// @Router   /members/{id}/tasks [get]
func (h *TaskHandler) GetBoard(c *gin.Context) {
	if _, ok := authenticatedUser(c); !ok {
		return
	}

	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID format"})
		return
	}

	member, err := h.memberRepo.GetByID(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve member"})
		return
	}
	if member == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	engine, err := h.boards.Get(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load board"})
		return
	}

	c.JSON(http.StatusOK, BoardResponse{
		Open:   toTaskResponses(engine.Open()),
		Closed: toTaskResponses(engine.Closed()),
	})
}

// HouseholdTasks returns every board of the caller's household, grouped by
// assignee in member display order
// @Summary  List household tasks grouped by assignee
// @Tags     Tasks
// @Security BearerAuth
// @Router   /tasks [get]
func (h *TaskHandler) HouseholdTasks(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	user, err := h.userRepo.GetByID(c.Request.Context(), userID)
	if err != nil || user == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	// The caller's member record (linked by email) determines the household.
	self, err := h.memberRepo.FindByEmail(c.Request.Context(), user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve member"})
		return
	}
	if self == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No household member linked to this account"})
		return
	}

	members, err := h.memberRepo.GetByHousehold(c.Request.Context(), self.HouseholdID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve members"})
		return
	}

	ids := make([]uuid.UUID, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	tasks, err := h.taskRepo.ListTasksForAssignees(c.Request.Context(), ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	byAssignee := make(map[uuid.UUID][]model.Task)
	for _, t := range tasks {
		byAssignee[t.AssigneeID] = append(byAssignee[t.AssigneeID], t)
	}

	type memberTasks struct {
		Member MemberResponse `json:"member"`
		Tasks  []TaskResponse `json:"tasks"`
	}
	response := make([]memberTasks, len(members))
	for i, m := range members {
		response[i] = memberTasks{
			Member: toMemberResponse(m),
			Tasks:  toTaskResponses(byAssignee[m.ID]),
		}
	}

	c.JSON(http.StatusOK, response)
}

// Update edits title, description, due date or priority of a task
// @Summary  Edit a task
// @Tags     Tasks
// @Security BearerAuth
// @Router   /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	if _, ok := authenticatedUser(c); !ok {
		return
	}

	var req TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	engine, task, ok := h.board(c)
	if !ok {
		return
	}

	fields := taskboard.EditFields{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil || dueDate == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due date, expected YYYY-MM-DD"})
			return
		}
		fields.DueDate = dueDate
	}

	updated, err := engine.Edit(c.Request.Context(), task.ID, fields)
	if err != nil {
		if errors.Is(err, taskboard.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		}
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(updated))
}

// Delete removes a task; the board keeps it in a single undo slot
// @Summary  Delete a task
// @Tags     Tasks
// @Security BearerAuth
// @Router   /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	if _, ok := authenticatedUser(c); !ok {
		return
	}

	engine, task, ok := h.board(c)
	if !ok {
		return
	}

	if err := engine.Delete(c.Request.Context(), task.ID); err != nil {
		if errors.Is(err, taskboard.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// Undo restores the board's last deleted task under a fresh id
// @Summary  Undo the last delete on a member's board
// @Tags     Tasks
// @Security BearerAuth
// @Router   /members/{id}/tasks/undo [post]
func (h *TaskHandler) Undo(c *gin.Context) {
	if _, ok := authenticatedUser(c); !ok {
		return
	}

	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID format"})
		return
	}

	engine, err := h.boards.Get(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load board"})
		return
	}

	restored, err := engine.Undo(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restore task"})
		return
	}
	if restored == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Nothing to undo"})
		return
	}

	c.JSON(http.StatusCreated, toTaskResponse(*restored))
}

// Toggle flips a task between open and closed; closing a recurring task also
// returns the spawned follow-up
// @Summary  Toggle a task's status
// @Tags     Tasks
// @Security BearerAuth
// @Router   /tasks/{id}/toggle [post]
func (h *TaskHandler) Toggle(c *gin.Context) {
	if _, ok := authenticatedUser(c); !ok {
		return
	}

	engine, task, ok := h.board(c)
	if !ok {
		return
	}

	toggled, spawned, err := engine.ToggleStatus(c.Request.Context(), task.ID)
	if err != nil {
		if errors.Is(err, taskboard.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle task"})
		}
		return
	}

	response := gin.H{"task": toTaskResponse(toggled)}
	if spawned != nil {
		response["spawned"] = toTaskResponse(*spawned)
	}
	c.JSON(http.StatusOK, response)
}

// Move applies a drag-and-drop reorder within one group of the task's board
// @Summary  Move a task within its list
// @Tags     Tasks
// @Security BearerAuth
// @Router   /tasks/{id}/move [post]
func (h *TaskHandler) Move(c *gin.Context) {
	if _, ok := authenticatedUser(c); !ok {
		return
	}

	var req TaskMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	engine, task, ok := h.board(c)
	if !ok {
		return
	}

	list, err := engine.Move(c.Request.Context(), task.ID, req.FromIndex, req.ToIndex, taskboard.Group(req.Group))
	if err != nil {
		switch {
		case errors.Is(err, taskboard.ErrIndexOutOfRange), errors.Is(err, taskboard.ErrGroupMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, taskboard.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move task"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"group": req.Group, "tasks": toTaskResponses(list)})
}

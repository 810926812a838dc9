package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/myne7x/store-api/internal/core/ports"
)

// TaskHandler handles HTTP requests for admin task assignment.
type TaskHandler struct {
	tasks ports.TaskService
}

func NewTaskHandler(tasks ports.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type assignTaskRequest struct {
	AssignedTo  string     `json:"assigned_to" validate:"required"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
}

type updateTaskStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Assign handles POST /v1/tasks (admin only).
//
// @Summary      Assign a task to a user
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      assignTaskRequest  true  "Task details"
// @Success      201   {object}  domain.Task
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/tasks [post]
func (h *TaskHandler) Assign(c echo.Context) error {
	var req assignTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	task, err := h.tasks.Assign(c.Request().Context(), ports.AssignTaskInput{
		AssignerID:   userID,
		AssignerRole: role,
		AssigneeID:   req.AssignedTo,
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
		Status:       req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

// List handles GET /v1/tasks — tasks where the caller is assignee or
// assigner.
//
// @Summary      List the caller's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Task
// @Router       /v1/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	tasks, err := h.tasks.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// UpdateStatus handles PATCH /v1/tasks/:id/status.
//
// @Summary      Update a task's status
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Task id"
// @Param        body  body      updateTaskStatusRequest  true  "New status"
// @Success      200   {object}  domain.Task
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/tasks/{id}/status [patch]
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	var req updateTaskStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	task, err := h.tasks.UpdateStatus(c.Request().Context(), c.Param("id"), userID, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

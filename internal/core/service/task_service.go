package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/myne7x/store-api/internal/core/authz"
	"github.com/myne7x/store-api/internal/core/domain"
	"github.com/myne7x/store-api/internal/core/ports"
)

// TaskService manages admin-assigned work items.
type TaskService struct {
	tasks    ports.TaskRepository
	profiles ports.ProfileRepository
	notifier Notifier
	log      zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, profiles ports.ProfileRepository, notifier Notifier, log zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, profiles: profiles, notifier: notifier, log: log}
}

// Assign creates a task for the assignee and enqueues a task_assigned
// notification. Only admins may assign.
func (s *TaskService) Assign(ctx context.Context, input ports.AssignTaskInput) (*domain.Task, error) {
	if err := authz.Authorize(input.AssignerRole, authz.OpAssignTask); err != nil {
		return nil, err
	}
	if input.Title == "" || input.AssigneeID == "" {
		return nil, fmt.Errorf("%w: title and assignee are required", domain.ErrValidation)
	}

	// The assignee must be a known profile; tasks for unknown identities
	// would never be seen.
	if _, err := s.profiles.FindByUserID(ctx, input.AssigneeID); err != nil {
		return nil, fmt.Errorf("assign task: %w", err)
	}

	status := input.Status
	if status == "" {
		status = domain.TaskStatusOpen
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ID:          uuid.NewString(),
		AssignedBy:  input.AssignerID,
		AssignedTo:  input.AssigneeID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("assign task: %w", err)
	}

	s.notifier.Notify(ports.NotificationInput{
		UserID:    task.AssignedTo,
		Type:      domain.NotifyTaskAssigned,
		Title:     "New task assigned",
		Message:   fmt.Sprintf("You have been assigned a new task: %s", task.Title),
		RelatedID: task.ID,
	})

	s.log.Info().
		Str("task_id", task.ID).
		Str("assigned_by", task.AssignedBy).
		Str("assigned_to", task.AssignedTo).
		Msg("task assigned")

	return task, nil
}

// List returns tasks where the caller is assignee or assigner.
func (s *TaskService) List(ctx context.Context, userID string) ([]*domain.Task, error) {
	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateStatus sets a free-form status on a task. Only the assignee or the
// assigner may update; status transitions themselves are unconstrained.
func (s *TaskService) UpdateStatus(ctx context.Context, taskID, userID, status string) (*domain.Task, error) {
	if status == "" {
		return nil, fmt.Errorf("%w: status is required", domain.ErrValidation)
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("update task status: %w", err)
	}
	if task.AssignedTo != userID && task.AssignedBy != userID {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now().UTC()
	if err := s.tasks.UpdateStatus(ctx, taskID, status, now); err != nil {
		return nil, fmt.Errorf("update task status: %w", err)
	}

	task.Status = status
	task.UpdatedAt = now
	return task, nil
}

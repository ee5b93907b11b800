package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// TaskFilterInput carries the optional list constraints. Empty fields are absent.
type TaskFilterInput struct {
	Status domain.TaskStatus
	Search string
}

// CreateTaskInput carries the caller-supplied fields of a new task.
type CreateTaskInput struct {
	Title       string
	Description string
}

// TaskService provides the task operations. Every method acts only on tasks
// owned by caller.
type TaskService interface {
	// ListTasks returns the caller's tasks matching filter, oldest first.
	// The result is never nil.
	ListTasks(ctx context.Context, filter TaskFilterInput, caller domain.User) ([]*domain.Task, error)

	// GetTask returns the caller's task with the given id, or ErrTaskNotFound.
	GetTask(ctx context.Context, id uuid.UUID, caller domain.User) (*domain.Task, error)

	// CreateTask creates an OPEN task owned by caller.
	CreateTask(ctx context.Context, input CreateTaskInput, caller domain.User) (*domain.Task, error)

	// DeleteTask permanently removes the caller's task, or returns ErrTaskNotFound.
	DeleteTask(ctx context.Context, id uuid.UUID, caller domain.User) error

	// UpdateTaskStatus changes only the status of the caller's task.
	UpdateTaskStatus(
		ctx context.Context,
		id uuid.UUID,
		status domain.TaskStatus,
		caller domain.User,
	) (*domain.Task, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks       store.TaskStore
	diagnostics Diagnostics
	logger      *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if the store or diagnostics are nil.
func NewTaskService(
	tasks store.TaskStore,
	diagnostics Diagnostics,
	logger *slog.Logger,
) (TaskService, error) {
	if tasks == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "task store cannot be nil",
		}
	}
	if diagnostics == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "diagnostics cannot be nil",
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:       tasks,
		diagnostics: diagnostics,
		logger:      logger.With(slog.String("component", "task_service")),
	}, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(
	ctx context.Context,
	input TaskFilterInput,
	caller domain.User,
) ([]*domain.Task, error) {
	if err := checkCaller(caller); err != nil {
		return nil, err
	}
	if input.Status != "" && !input.Status.IsValid() {
		return nil, domain.NewValidationError("status",
			fmt.Sprintf("%q is not a task status", input.Status), domain.ErrInvalidTaskStatus)
	}

	filter := store.NewTaskFilter(caller.ID, input.Status, input.Search)

	tasks, err := s.tasks.FindMany(ctx, filter)
	if err != nil {
		return nil, s.fail(ctx, "list_tasks", "failed to list tasks", caller, map[string]any{
			"filter": filterJSON(filter),
		}, err)
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id uuid.UUID, caller domain.User) (*domain.Task, error) {
	if err := checkCaller(caller); err != nil {
		return nil, err
	}

	task, err := s.tasks.FindOne(ctx, id, caller.ID)
	if err != nil {
		return nil, s.fail(ctx, "get_task", "failed to get task", caller, map[string]any{
			"task_id": id.String(),
		}, err)
	}
	return task, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	input CreateTaskInput,
	caller domain.User,
) (*domain.Task, error) {
	if err := checkCaller(caller); err != nil {
		return nil, err
	}

	task, err := domain.NewTask(caller.ID, input.Title, input.Description)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, s.fail(ctx, "create_task", "failed to create task", caller, map[string]any{
			"task_id": task.ID.String(),
		}, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", caller.ID.String()))
	return task, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id uuid.UUID, caller domain.User) error {
	if err := checkCaller(caller); err != nil {
		return err
	}

	affected, err := s.tasks.Delete(ctx, id, caller.ID)
	if err != nil {
		return s.fail(ctx, "delete_task", "failed to delete task", caller, map[string]any{
			"task_id": id.String(),
		}, err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted",
		slog.String("task_id", id.String()),
		slog.String("user_id", caller.ID.String()))
	return nil
}

// UpdateTaskStatus implements TaskService.UpdateTaskStatus
func (s *taskServiceImpl) UpdateTaskStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.TaskStatus,
	caller domain.User,
) (*domain.Task, error) {
	task, err := s.GetTask(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	if err := task.UpdateStatus(status); err != nil {
		return nil, err
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, s.fail(ctx, "update_task_status", "failed to update task status", caller, map[string]any{
			"task_id": id.String(),
			"status":  string(status),
		}, err)
	}

	return task, nil
}

// fail translates a storage error. Not-found conditions come back as
// ErrTaskNotFound without being recorded; anything else is recorded in
// diagnostics and wrapped so it matches ErrInternal.
func (s *taskServiceImpl) fail(
	ctx context.Context,
	operation, message string,
	caller domain.User,
	details map[string]any,
	err error,
) error {
	wrapped := NewTaskServiceError(operation, message, err)
	if errors.Is(wrapped, ErrTaskNotFound) {
		return wrapped
	}

	details["user_id"] = caller.ID.String()
	details["username"] = caller.Username
	s.diagnostics.Record(ctx, operation, details, err)
	return wrapped
}

func checkCaller(caller domain.User) error {
	if caller.ID == uuid.Nil {
		return domain.ErrUnauthorized
	}
	return nil
}

func filterJSON(filter store.TaskFilter) string {
	data, err := json.Marshal(filter)
	if err != nil {
		return fmt.Sprintf("%+v", filter)
	}
	return string(data)
}

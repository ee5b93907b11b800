package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
)

// MockTaskService implements service.TaskService for handler tests.
// Unset function fields return the zero task and Err.
type MockTaskService struct {
	ListTasksFn        func(ctx context.Context, filter service.TaskFilterInput, caller domain.User) ([]*domain.Task, error)
	GetTaskFn          func(ctx context.Context, id uuid.UUID, caller domain.User) (*domain.Task, error)
	CreateTaskFn       func(ctx context.Context, input service.CreateTaskInput, caller domain.User) (*domain.Task, error)
	DeleteTaskFn       func(ctx context.Context, id uuid.UUID, caller domain.User) error
	UpdateTaskStatusFn func(ctx context.Context, id uuid.UUID, status domain.TaskStatus, caller domain.User) (*domain.Task, error)

	Task *domain.Task
	Err  error
}

var _ service.TaskService = (*MockTaskService)(nil)

// ListTasks implements service.TaskService
func (m *MockTaskService) ListTasks(
	ctx context.Context,
	filter service.TaskFilterInput,
	caller domain.User,
) ([]*domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx, filter, caller)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Task == nil {
		return []*domain.Task{}, nil
	}
	return []*domain.Task{m.Task}, nil
}

// GetTask implements service.TaskService
func (m *MockTaskService) GetTask(ctx context.Context, id uuid.UUID, caller domain.User) (*domain.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id, caller)
	}
	return m.Task, m.Err
}

// CreateTask implements service.TaskService
func (m *MockTaskService) CreateTask(
	ctx context.Context,
	input service.CreateTaskInput,
	caller domain.User,
) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, input, caller)
	}
	return m.Task, m.Err
}

// DeleteTask implements service.TaskService
func (m *MockTaskService) DeleteTask(ctx context.Context, id uuid.UUID, caller domain.User) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id, caller)
	}
	return m.Err
}

// UpdateTaskStatus implements service.TaskService
func (m *MockTaskService) UpdateTaskStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.TaskStatus,
	caller domain.User,
) (*domain.Task, error) {
	if m.UpdateTaskStatusFn != nil {
		return m.UpdateTaskStatusFn(ctx, id, status, caller)
	}
	return m.Task, m.Err
}

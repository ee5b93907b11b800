package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/tasks-api/internal/store"
)

// Service errors callers check with errors.Is.
//
// Error handling principles:
// 1. Expected conditions (ErrTaskNotFound, domain validation) are returned as sentinels
// 2. Every other storage fault is wrapped in *TaskServiceError, which matches ErrInternal
// 3. Faults are recorded in Diagnostics before the wrapped error is returned
// 4. The API layer maps these errors to HTTP status codes
var (
	// ErrTaskNotFound means no task with that id belongs to the caller.
	// Absent tasks and tasks owned by someone else are indistinguishable.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInternal marks storage faults outside the service's control.
	// Details stay in the wrapped error and in diagnostics; never show them to clients.
	ErrInternal = errors.New("internal error")
)

// TaskServiceError wraps an unexpected failure from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "list_tasks", "create_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// Is makes every TaskServiceError match ErrInternal.
func (e *TaskServiceError) Is(target error) bool {
	return target == ErrInternal
}

// NewTaskServiceError creates a new TaskServiceError.
// It returns ErrTaskNotFound directly when err is a task-not-found condition.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrTaskNotFound) || errors.Is(err, store.ErrTaskNotFound) {
		return ErrTaskNotFound
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

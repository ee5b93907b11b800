package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents where a task is in its lifecycle.
type TaskStatus string

// Possible task status values
const (
	TaskStatusOpen       TaskStatus = "OPEN"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// Common validation errors for Task
var (
	ErrEmptyTaskID       = errors.New("task ID cannot be empty")
	ErrEmptyTaskUserID   = errors.New("task user ID cannot be empty")
	ErrEmptyTaskTitle    = errors.New("task title cannot be empty")
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// Task is a unit of to-do work owned by exactly one user.
// Only Status changes after creation; the owner is fixed for the task's lifetime.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a new open Task owned by userID.
// It generates a new UUID for the task ID and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewTask(userID uuid.UUID, title, description string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      TaskStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Field failures are returned as *ValidationError wrapping the specific sentinel.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrEmptyTaskID)
	}

	if t.UserID == uuid.Nil {
		return NewValidationError("user_id", "cannot be empty", ErrEmptyTaskUserID)
	}

	if t.Title == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTaskTitle)
	}

	if !t.Status.IsValid() {
		return NewValidationError("status", fmt.Sprintf("%q is not a task status", t.Status), ErrInvalidTaskStatus)
	}

	return nil
}

// UpdateStatus updates the task's status and its UpdatedAt timestamp.
// No other field is touched.
func (t *Task) UpdateStatus(status TaskStatus) error {
	if !status.IsValid() {
		return NewValidationError("status", fmt.Sprintf("%q is not a task status", status), ErrInvalidTaskStatus)
	}

	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// IsValid reports whether s is one of the known statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

// TaskStatuses lists every valid status in lifecycle order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusOpen, TaskStatusInProgress, TaskStatusDone}
}

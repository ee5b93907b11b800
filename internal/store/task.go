package store

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// TaskStore persists tasks. Every read and delete is scoped by owner; a task
// owned by someone else is reported exactly like one that does not exist.
type TaskStore interface {
	// Create saves a new task.
	// Returns ErrInvalidEntity if the task fails validation or references an unknown owner.
	Create(ctx context.Context, task *domain.Task) error

	// FindOne retrieves the task with the given id owned by ownerID.
	// Returns ErrTaskNotFound if no task matches both.
	FindOne(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)

	// FindMany returns every task matching filter, ordered by created_at then id.
	// The result is never nil.
	FindMany(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)

	// Update saves the mutable fields of an existing task (status and updated_at).
	// Returns ErrTaskNotFound if the row is gone.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the task with the given id owned by ownerID and
	// returns the number of rows removed (0 or 1).
	Delete(ctx context.Context, id, ownerID uuid.UUID) (int64, error)
}

// TaskFilter is the predicate passed whole to TaskStore.FindMany:
// owner equals, optionally status equals, optionally title or description
// contains a case-insensitive substring. Its fields are fixed at construction.
type TaskFilter struct {
	ownerID uuid.UUID
	status  domain.TaskStatus
	search  string
}

// NewTaskFilter builds a filter for ownerID. An empty status or search
// leaves that constraint out.
func NewTaskFilter(ownerID uuid.UUID, status domain.TaskStatus, search string) TaskFilter {
	return TaskFilter{
		ownerID: ownerID,
		status:  status,
		search:  search,
	}
}

// OwnerID returns the owner every matching task must belong to.
func (f TaskFilter) OwnerID() uuid.UUID { return f.ownerID }

// Status returns the required status, or "" when any status matches.
func (f TaskFilter) Status() domain.TaskStatus { return f.status }

// Search returns the substring to look for, or "" when absent.
func (f TaskFilter) Search() string { return f.search }

// HasStatus reports whether the filter constrains status.
func (f TaskFilter) HasStatus() bool { return f.status != "" }

// HasSearch reports whether the filter constrains title/description text.
func (f TaskFilter) HasSearch() bool { return f.search != "" }

// Matches evaluates the filter against a single task in memory.
// Store implementations must select exactly the tasks for which Matches is true.
func (f TaskFilter) Matches(task *domain.Task) bool {
	if task == nil || task.UserID != f.ownerID {
		return false
	}
	if f.HasStatus() && task.Status != f.status {
		return false
	}
	if f.HasSearch() {
		needle := strings.ToLower(f.search)
		if !strings.Contains(strings.ToLower(task.Title), needle) &&
			!strings.Contains(strings.ToLower(task.Description), needle) {
			return false
		}
	}
	return true
}

// MarshalJSON renders the filter for diagnostics; absent constraints are omitted.
func (f TaskFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		OwnerID uuid.UUID         `json:"owner_id"`
		Status  domain.TaskStatus `json:"status,omitempty"`
		Search  string            `json:"search,omitempty"`
	}{
		OwnerID: f.ownerID,
		Status:  f.status,
		Search:  f.search,
	})
}

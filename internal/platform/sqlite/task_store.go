package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/phrazzld/tasks-api/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLiteTaskStore implements the store.TaskStore interface on SQLite via gorm.
type SQLiteTaskStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewSQLiteTaskStore creates a TaskStore backed by db, which must already be migrated.
// If logger is nil, a default logger will be used.
func NewSQLiteTaskStore(db *gorm.DB, logger *slog.Logger) *SQLiteTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &SQLiteTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store"), slog.String("driver", "sqlite")),
	}
}

// Ensure SQLiteTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*SQLiteTaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *SQLiteTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(newTaskRecord(task)).Error; err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrInvalidEntity) {
			log.Warn("task rejected by constraint",
				slog.String("task_id", task.ID.String()),
				slog.String("user_id", task.UserID.String()))
			return mapped
		}
		log.Error("failed to create task",
			slog.String("error", redact.Error(err)),
			slog.String("task_id", task.ID.String()))
		return store.NewStoreError("task", "create", "insert failed", mapped)
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()))
	return nil
}

// FindOne implements store.TaskStore.FindOne
func (s *SQLiteTaskStore) FindOne(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var rec taskRecord
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id.String(), ownerID.String()).
		Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Debug("task not found",
				slog.String("task_id", id.String()),
				slog.String("user_id", ownerID.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.String("error", redact.Error(err)),
			slog.String("task_id", id.String()))
		return nil, store.NewStoreError("task", "find_one", "select failed", MapError(err))
	}

	return rec.toDomain()
}

// FindMany implements store.TaskStore.FindMany
func (s *SQLiteTaskStore) FindMany(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := s.db.WithContext(ctx).Where("user_id = ?", filter.OwnerID().String())
	if filter.HasStatus() {
		query = query.Where("status = ?", string(filter.Status()))
	}
	if filter.HasSearch() {
		// instr() keeps '%' and '_' literal, unlike LIKE.
		query = query.Where(
			"(instr(unicode_lower(title), unicode_lower(?)) > 0 OR "+
				"instr(unicode_lower(description), unicode_lower(?)) > 0)",
			filter.Search(), filter.Search(),
		)
	}

	var records []taskRecord
	if err := query.Order("created_at ASC").Order("id ASC").Find(&records).Error; err != nil {
		log.Error("failed to query tasks",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", filter.OwnerID().String()))
		return nil, store.NewStoreError("task", "find_many", "query failed", MapError(err))
	}

	tasks := make([]*domain.Task, 0, len(records))
	for i := range records {
		task, err := records[i].toDomain()
		if err != nil {
			log.Error("corrupt task row", slog.String("task_id", records[i].ID))
			return nil, store.NewStoreError("task", "find_many", "corrupt row", err)
		}
		tasks = append(tasks, task)
	}

	log.Debug("tasks listed",
		slog.String("user_id", filter.OwnerID().String()),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// Update implements store.TaskStore.Update
func (s *SQLiteTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	result := s.db.WithContext(ctx).
		Model(&taskRecord{}).
		Where("id = ? AND user_id = ?", task.ID.String(), task.UserID.String()).
		Updates(map[string]any{
			"status":     string(task.Status),
			"updated_at": task.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		log.Error("failed to update task",
			slog.String("error", redact.Error(result.Error)),
			slog.String("task_id", task.ID.String()))
		return store.NewStoreError("task", "update", "update failed", MapError(result.Error))
	}

	if result.RowsAffected == 0 {
		log.Debug("task not found for update", slog.String("task_id", task.ID.String()))
		return store.ErrTaskNotFound
	}

	return nil
}

// Delete implements store.TaskStore.Delete
func (s *SQLiteTaskStore) Delete(ctx context.Context, id, ownerID uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id.String(), ownerID.String()).
		Delete(&taskRecord{})
	if result.Error != nil {
		log.Error("failed to delete task",
			slog.String("error", redact.Error(result.Error)),
			slog.String("task_id", id.String()))
		return 0, store.NewStoreError("task", "delete", "delete failed", MapError(result.Error))
	}

	log.Debug("task delete executed",
		slog.String("task_id", id.String()),
		slog.Int64("rows_affected", result.RowsAffected))
	return result.RowsAffected, nil
}

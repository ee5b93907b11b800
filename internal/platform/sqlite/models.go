package sqlite

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

type userRecord struct {
	ID        string    `gorm:"primarykey;size:36"`
	Username  string    `gorm:"size:64;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"not null"`
}

func (userRecord) TableName() string {
	return "users"
}

type taskRecord struct {
	ID          string     `gorm:"primarykey;size:36"`
	UserID      string     `gorm:"size:36;not null;index:idx_tasks_user_id_created_at,priority:1"`
	User        userRecord `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Title       string     `gorm:"not null;check:chk_tasks_title,title <> ''"`
	Description string     `gorm:"not null;default:''"`
	Status      string     `gorm:"size:16;not null;check:chk_tasks_status,status IN ('OPEN','IN_PROGRESS','DONE')"`
	CreatedAt   time.Time  `gorm:"not null;index:idx_tasks_user_id_created_at,priority:2"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

func (taskRecord) TableName() string {
	return "tasks"
}

func newTaskRecord(task *domain.Task) *taskRecord {
	return &taskRecord{
		ID:          task.ID.String(),
		UserID:      task.UserID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt.UTC(),
		UpdatedAt:   task.UpdatedAt.UTC(),
	}
}

func (r *taskRecord) toDomain() (*domain.Task, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(r.UserID)
	if err != nil {
		return nil, err
	}
	return &domain.Task{
		ID:          id,
		UserID:      userID,
		Title:       r.Title,
		Description: r.Description,
		Status:      domain.TaskStatus(r.Status),
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}, nil
}

func newUserRecord(user *domain.User) *userRecord {
	return &userRecord{
		ID:        user.ID.String(),
		Username:  user.Username,
		CreatedAt: user.CreatedAt.UTC(),
	}
}

func (r *userRecord) toDomain() (*domain.User, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		ID:        id,
		Username:  r.Username,
		CreatedAt: r.CreatedAt.UTC(),
	}, nil
}

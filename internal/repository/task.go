package repository

import (
	"context"

	"tasktracker/internal/domain"
)

// TaskRepository exposes persistence operations for Task rows.
type TaskRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, task *domain.Task) (int64, error)
	Update(ctx context.Context, task *domain.Task) error
	Get(ctx context.Context, id int64) (*domain.Task, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Task, error)
	Delete(ctx context.Context, id int64) error
}

// AttachmentRepository manages per-task attachment metadata.
type AttachmentRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, att *domain.Attachment) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Attachment, error)
	ListByTask(ctx context.Context, taskID int64) ([]domain.Attachment, error)
	Delete(ctx context.Context, id int64) error
}

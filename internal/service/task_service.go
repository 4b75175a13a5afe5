package service

import (
	"context"
	"errors"

	"tasktracker/internal/domain"
	"tasktracker/internal/repository"
)

var (
	// ErrUserNotFound is returned when an operation references a user id with no account.
	ErrUserNotFound = errors.New("user not found")
	// ErrTaskNotFound is returned when an operation references a missing task.
	ErrTaskNotFound = errors.New("task not found")
	// ErrAttachmentNotFound is returned when an attachment id does not exist.
	ErrAttachmentNotFound = errors.New("attachment not found")
)

// TaskService coordinates task and attachment operations backed by repositories.
type TaskService interface {
	ListTasks(ctx context.Context, userID int64) ([]domain.Task, error)
	CreateTask(ctx context.Context, userID int64, title, description string) (*domain.Task, error)
	UpdateTask(ctx context.Context, taskID int64, title, description string, completed bool) (*domain.Task, error)
	DeleteTask(ctx context.Context, taskID int64) error
	GetTask(ctx context.Context, taskID int64) (*domain.Task, error)

	AddAttachment(ctx context.Context, att *domain.Attachment) (*domain.Attachment, error)
	ListAttachments(ctx context.Context, taskID int64) ([]domain.Attachment, error)
	GetAttachment(ctx context.Context, id int64) (*domain.Attachment, error)
	DeleteAttachment(ctx context.Context, id int64) error
}

type taskService struct {
	tasks       repository.TaskRepository
	users       repository.UserRepository
	attachments repository.AttachmentRepository
}

func NewTaskService(tasks repository.TaskRepository, users repository.UserRepository, attachments repository.AttachmentRepository) TaskService {
	return &taskService{
		tasks:       tasks,
		users:       users,
		attachments: attachments,
	}
}

func (s *taskService) ListTasks(ctx context.Context, userID int64) ([]domain.Task, error) {
	if err := s.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.tasks.ListByUser(ctx, userID)
}

func (s *taskService) CreateTask(ctx context.Context, userID int64, title, description string) (*domain.Task, error) {
	if err := s.resolveUser(ctx, userID); err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:       title,
		Description: description,
		Completed:   false,
		UserID:      userID,
	}
	if _, err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask overwrites the mutable fields wholesale; callers must supply the
// full record. Ownership is neither changed nor checked.
func (s *taskService) UpdateTask(ctx context.Context, taskID int64, title, description string, completed bool) (*domain.Task, error) {
	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	task.Title = title
	task.Description = description
	task.Completed = completed

	if err := s.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, taskID int64) error {
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return nil
}

func (s *taskService) GetTask(ctx context.Context, taskID int64) (*domain.Task, error) {
	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *taskService) AddAttachment(ctx context.Context, att *domain.Attachment) (*domain.Attachment, error) {
	if _, err := s.GetTask(ctx, att.TaskID); err != nil {
		return nil, err
	}
	if _, err := s.attachments.Create(ctx, att); err != nil {
		return nil, err
	}
	return att, nil
}

func (s *taskService) ListAttachments(ctx context.Context, taskID int64) ([]domain.Attachment, error) {
	if _, err := s.GetTask(ctx, taskID); err != nil {
		return nil, err
	}
	return s.attachments.ListByTask(ctx, taskID)
}

func (s *taskService) GetAttachment(ctx context.Context, id int64) (*domain.Attachment, error) {
	att, err := s.attachments.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAttachmentNotFound
		}
		return nil, err
	}
	return att, nil
}

func (s *taskService) DeleteAttachment(ctx context.Context, id int64) error {
	if err := s.attachments.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAttachmentNotFound
		}
		return err
	}
	return nil
}

func (s *taskService) resolveUser(ctx context.Context, userID int64) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/infrastructure/logger"
	"github.com/daybook/core/internal/ports"
)

const tasksListCacheKey = "tasks:list"

// TaskService handles task-related operations
type TaskService struct {
	taskRepo ports.TaskRepository
	files    ports.AttachmentStore
	cache    ports.CacheRepository
	cacheTTL time.Duration
	logger   *logger.Logger
}

// NewTaskService creates a new task service. cache may be nil, in which case
// every list call goes to the repository.
func NewTaskService(taskRepo ports.TaskRepository, files ports.AttachmentStore, cache ports.CacheRepository, cacheTTL time.Duration, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		files:    files,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// ListTasks returns all tasks ordered ascending by scheduled time.
func (s *TaskService) ListTasks(ctx context.Context) ([]*entities.Task, error) {
	if s.cache != nil {
		var cached []*entities.Task
		if err := s.cache.Get(ctx, tasksListCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, tasksListCacheKey, tasks, s.cacheTTL); err != nil {
			s.logger.Warnw("Failed to cache task list", "error", err)
		}
	}

	return tasks, nil
}

// CreateTask creates a new task. Title is the only required field; status
// defaults to Pending and the scheduled time to now.
func (s *TaskService) CreateTask(ctx context.Context, req ports.SaveTaskRequest) (*entities.Task, error) {
	if req.Title == "" {
		return nil, entities.ErrTitleRequired
	}

	task := &entities.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      entities.NormalizeStatus(req.Status),
		DateTime:    time.Now(),
	}
	if req.DateTime != nil {
		task.DateTime = *req.DateTime
	}

	if req.File != nil {
		name, err := s.files.Save(req.File.Filename, req.File.Reader)
		if err != nil {
			return nil, fmt.Errorf("failed to store attachment: %w", err)
		}
		preview := s.files.PreviewPath(name)
		task.File = &name
		task.FilePreview = &preview
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.evictListCache(ctx)
	s.logger.Infow("Task created", "task_id", task.ID, "title", task.Title)

	return task, nil
}

// UpdateTask performs a full-field replace of the writable task fields. A new
// attachment replaces both the stored filename and the derived preview path;
// when no file is supplied the existing attachment is preserved.
func (s *TaskService) UpdateTask(ctx context.Context, id uuid.UUID, req ports.SaveTaskRequest) (*entities.Task, error) {
	existing, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	existing.Title = req.Title
	existing.Description = req.Description
	existing.Status = entities.NormalizeStatus(req.Status)
	if req.DateTime != nil {
		existing.DateTime = *req.DateTime
	}

	if req.File != nil {
		name, err := s.files.Save(req.File.Filename, req.File.Reader)
		if err != nil {
			return nil, fmt.Errorf("failed to store attachment: %w", err)
		}
		preview := s.files.PreviewPath(name)
		existing.File = &name
		existing.FilePreview = &preview
	}

	if err := s.taskRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.evictListCache(ctx)

	return existing, nil
}

// DeleteTask removes a task by id. Deleting an absent id succeeds.
func (s *TaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.evictListCache(ctx)
	s.logger.Infow("Task deleted", "task_id", id)

	return nil
}

func (s *TaskService) evictListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, tasksListCacheKey); err != nil {
		s.logger.Warnw("Failed to evict task list cache", "error", err)
	}
}

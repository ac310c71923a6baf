package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskwell/todo-system/internal/core/domain"
	"github.com/taskwell/todo-system/internal/core/ports"
)

// TaskService implements the owner-scoped task lifecycle.
type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger}
}

func (s *TaskService) List(ctx context.Context, ownerID, filter string) ([]*domain.Task, error) {
	return s.repo.List(ctx, ownerID, domain.ParseFilter(filter))
}

// Create persists a new task with defaults applied: empty description,
// medium priority, not completed, not deleted.
func (s *TaskService) Create(ctx context.Context, ownerID string, input ports.CreateTaskInput) (*domain.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.ErrTitleRequired
	}

	priority := domain.Priority(input.Priority)
	if !priority.IsValid() {
		priority = domain.PriorityMedium
	}

	now := time.Now().UTC()
	task := &domain.Task{
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		Completed:   false,
		Deleted:     false,
		Priority:    priority,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", created.ID).Str("owner_id", ownerID).Msg("task created")
	return created, nil
}

// Update applies the allow-listed partial fields and refreshes updatedAt.
// An empty title in the update is rejected rather than stored.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, upd ports.TaskUpdate) (*domain.Task, error) {
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return nil, domain.ErrTitleRequired
	}
	if upd.Priority != nil && !upd.Priority.IsValid() {
		medium := domain.PriorityMedium
		upd.Priority = &medium
	}
	return s.repo.Update(ctx, ownerID, taskID, upd, time.Now().UTC())
}

func (s *TaskService) SoftDelete(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	task, err := s.repo.SetDeleted(ctx, ownerID, taskID, true, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("task_id", taskID).Msg("task moved to trash")
	return task, nil
}

// HardDelete permanently removes the task. There is no undo.
func (s *TaskService) HardDelete(ctx context.Context, ownerID, taskID string) error {
	if err := s.repo.HardDelete(ctx, ownerID, taskID); err != nil {
		return err
	}
	s.logger.Info().Str("task_id", taskID).Msg("task permanently deleted")
	return nil
}

// Restore clears the soft-delete flag. Only valid on a task currently in
// the trash; anything else reads as not found.
func (s *TaskService) Restore(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	task, err := s.repo.SetDeleted(ctx, ownerID, taskID, false, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("task_id", taskID).Msg("task restored")
	return task, nil
}

// Package board holds the task-board view-model: the ordered task collection
// mirrored from the last successful server call, partitioned into the three
// fixed lanes.
package board

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/pkg/client"
)

// API is the slice of the SDK the board needs. *client.Client satisfies it.
type API interface {
	ListTasks(ctx context.Context) ([]*entities.Task, error)
	CreateTask(ctx context.Context, params client.TaskParams) (*entities.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, params client.TaskParams) (*entities.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
}

// Board mirrors the server's task list and partitions it into lanes.
type Board struct {
	api   API
	tasks []*entities.Task
}

// New creates an empty board over the given API.
func New(api API) *Board {
	return &Board{api: api}
}

// Load refreshes the mirror from the server.
func (b *Board) Load(ctx context.Context) error {
	tasks, err := b.api.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("load board: %w", err)
	}
	b.tasks = tasks
	return nil
}

// Tasks returns the mirrored collection in server order.
func (b *Board) Tasks() []*entities.Task {
	return b.tasks
}

// Lane returns the tasks in one lane, preserving server order.
func (b *Board) Lane(status entities.TaskStatus) []*entities.Task {
	var lane []*entities.Task
	for _, t := range b.tasks {
		if t.Status == status {
			lane = append(lane, t)
		}
	}
	return lane
}

// Get returns the mirrored task with the given id, or nil.
func (b *Board) Get(id uuid.UUID) *entities.Task {
	for _, t := range b.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Save creates the task when params describe a new one (id == uuid.Nil) or
// updates the existing record, then refreshes the mirror entry in place.
func (b *Board) Save(ctx context.Context, id uuid.UUID, params client.TaskParams) (*entities.Task, error) {
	if id == uuid.Nil {
		task, err := b.api.CreateTask(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("save task: %w", err)
		}
		b.tasks = append(b.tasks, task)
		return task, nil
	}

	task, err := b.api.UpdateTask(ctx, id, params)
	if err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}
	b.replace(task)
	return task, nil
}

// Delete removes the task on the server and from the mirror.
func (b *Board) Delete(ctx context.Context, id uuid.UUID) error {
	if err := b.api.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	b.remove(id)
	return nil
}

// Move transitions a task to another lane. The mirror is mutated
// optimistically before the server round-trip; if the round-trip fails the
// mutation is rolled back and the error returned, so the board and the
// server never diverge.
func (b *Board) Move(ctx context.Context, id uuid.UUID, lane entities.TaskStatus) error {
	if !lane.Valid() {
		return entities.ErrInvalidStatus
	}

	task := b.Get(id)
	if task == nil {
		return entities.ErrTaskNotFound
	}
	if task.Status == lane {
		return nil
	}

	previous := task.Status
	task.Status = lane

	params := client.TaskParams{
		Title:    task.Title,
		Status:   string(lane),
		DateTime: &task.DateTime,
	}
	if task.Description != nil {
		params.Description = *task.Description
	}

	updated, err := b.api.UpdateTask(ctx, id, params)
	if err != nil {
		task.Status = previous
		return fmt.Errorf("move task: %w", err)
	}

	b.replace(updated)
	return nil
}

func (b *Board) replace(task *entities.Task) {
	for i, t := range b.tasks {
		if t.ID == task.ID {
			b.tasks[i] = task
			return
		}
	}
	b.tasks = append(b.tasks, task)
}

func (b *Board) remove(id uuid.UUID) {
	for i, t := range b.tasks {
		if t.ID == id {
			b.tasks = append(b.tasks[:i], b.tasks[i+1:]...)
			return
		}
	}
}

package service

import (
	"context"
	"time"

	"github.com/bagdasarian/crm-service/internal/domain"
)

type TaskService interface {
	CreateTask(ctx context.Context, cmd domain.CreateTaskCommand) (*domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	ListTasks(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error)
	CompleteTask(ctx context.Context, id string, cmd domain.CompleteTaskCommand) (*domain.CompletionReceipt, error)
	ReassignTeam(ctx context.Context, id string, teamID string) (*domain.Task, error)
	AddObservation(ctx context.Context, id string, text string) (*domain.Task, error)
	Reschedule(ctx context.Context, id string, dueDate time.Time) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

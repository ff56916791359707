package repository

import (
	"context"
	"time"

	"github.com/bagdasarian/crm-service/internal/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error)
	ListByTeamIDs(ctx context.Context, teamIDs []string) ([]*domain.Task, error)
	// Update перезаписывает запись целиком, последняя запись побеждает
	Update(ctx context.Context, task *domain.Task) error
	UpdateDueDate(ctx context.Context, id string, dueDate time.Time, at time.Time) error
	Delete(ctx context.Context, id string) error
}

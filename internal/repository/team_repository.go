package repository

import (
	"context"
	"time"

	"github.com/bagdasarian/crm-service/internal/domain"
)

type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	GetByID(ctx context.Context, id string) (*domain.Team, error)
	List(ctx context.Context) ([]*domain.Team, error)
	ListByMember(ctx context.Context, employeeID string) ([]*domain.Team, error)
	Update(ctx context.Context, team *domain.Team) error
	AddMember(ctx context.Context, teamID, employeeID string, at time.Time) error
	RemoveMember(ctx context.Context, teamID, employeeID string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

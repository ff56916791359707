package repository

import (
	"context"
	"time"

	"github.com/bagdasarian/crm-service/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	SetConnected(ctx context.Context, userID string, connected bool, lastLogin *time.Time) error
	SetTeam(ctx context.Context, userID string, teamID *string) error
	ClearTeam(ctx context.Context, teamID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

package service

import (
	"context"

	"github.com/bagdasarian/crm-service/internal/domain"
)

type UserService interface {
	Register(ctx context.Context, cmd domain.RegisterUserCommand) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, error)
	Logout(ctx context.Context, session domain.Session) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	ListEmployees(ctx context.Context) ([]*domain.User, error)
}

package service

import (
	"context"

	"github.com/bagdasarian/crm-service/internal/domain"
)

type ClientService interface {
	CreateClient(ctx context.Context, cmd domain.CreateClientCommand) (*domain.Client, error)
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	ListClients(ctx context.Context) ([]*domain.Client, error)
	SearchByName(ctx context.Context, query string) ([]*domain.Client, error)
	UpdateClient(ctx context.Context, id string, cmd domain.UpdateClientCommand) (*domain.Client, error)
	DeleteClient(ctx context.Context, id string) error
}

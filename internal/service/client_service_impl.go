package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/bagdasarian/crm-service/internal/domain"
	"github.com/bagdasarian/crm-service/internal/repository"
	"github.com/bagdasarian/crm-service/internal/scheduler"
)

type clientService struct {
	clientRepo repository.ClientRepository
	clock      scheduler.Clock
}

func NewClientService(clientRepo repository.ClientRepository, clock scheduler.Clock) ClientService {
	return &clientService{
		clientRepo: clientRepo,
		clock:      clock,
	}
}

func (s *clientService) CreateClient(ctx context.Context, cmd domain.CreateClientCommand) (*domain.Client, error) {
	name := strings.TrimSpace(cmd.Name)
	phone := strings.TrimSpace(cmd.Phone)
	if name == "" {
		return nil, domain.NewValidationError("client name is required")
	}
	if phone == "" {
		return nil, domain.NewValidationError("client phone is required")
	}

	now := s.clock.Now()
	client := &domain.Client{
		Name:      name,
		Phone:     phone,
		Address:   sanitizeText(cmd.Address),
		Needs:     sanitizeText(cmd.Needs),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

func (s *clientService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, clientErr(err, id)
	}
	return client, nil
}

func (s *clientService) ListClients(ctx context.Context) ([]*domain.Client, error) {
	return s.clientRepo.List(ctx)
}

// SearchByName ищет подстроку в имени без учета регистра.
// Пустая строка - это отсутствие фильтра, возвращаются все клиенты.
func (s *clientService) SearchByName(ctx context.Context, query string) ([]*domain.Client, error) {
	if query == "" {
		return s.clientRepo.List(ctx)
	}
	return s.clientRepo.SearchByName(ctx, regexp.QuoteMeta(query))
}

// UpdateClient заменяет переданные непустые поля
func (s *clientService) UpdateClient(ctx context.Context, id string, cmd domain.UpdateClientCommand) (*domain.Client, error) {
	client, err := s.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(cmd.Name); name != "" {
		client.Name = name
	}
	if phone := strings.TrimSpace(cmd.Phone); phone != "" {
		client.Phone = phone
	}
	if address := sanitizeText(cmd.Address); address != "" {
		client.Address = address
	}
	if needs := sanitizeText(cmd.Needs); needs != "" {
		client.Needs = needs
	}
	client.UpdatedAt = s.clock.Now()

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, clientErr(err, id)
	}

	return client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, id string) error {
	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return clientErr(err, id)
	}
	return nil
}

func clientErr(err error, id string) error {
	if errors.Is(err, repository.ErrClientNotFound) {
		return domain.NewNotFoundError("client with id " + id)
	}
	return err
}

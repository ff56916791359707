package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bagdasarian/crm-service/internal/domain"
	"github.com/bagdasarian/crm-service/internal/repository"
)

type clientRepository struct {
	executor DBExecutor
}

func NewClientRepository(db *sql.DB) *clientRepository {
	return &clientRepository{executor: db}
}

const clientColumns = `id, name, phone, address, needs, created_at, updated_at`

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	if client.ID == "" {
		client.ID = newID()
	}

	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.executor.ExecContext(
		ctx,
		query,
		client.ID,
		client.Name,
		client.Phone,
		client.Address,
		client.Needs,
		client.CreatedAt,
		client.UpdatedAt,
	)

	return err
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	clientID, err := parseID(id)
	if err != nil {
		return nil, repository.ErrClientNotFound
	}

	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	client, err := scanClient(r.executor.QueryRowContext(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrClientNotFound
		}
		return nil, err
	}

	return client, nil
}

func (r *clientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY name, created_at`

	return r.queryClients(ctx, query)
}

// SearchByName ищет по регулярному выражению без учета регистра.
// Экранирование пользовательского ввода - забота вызывающего.
func (r *clientRepository) SearchByName(ctx context.Context, pattern string) ([]*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE name ~* $1 ORDER BY name, created_at`

	return r.queryClients(ctx, query, pattern)
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	clientID, err := parseID(client.ID)
	if err != nil {
		return repository.ErrClientNotFound
	}

	query := `
		UPDATE clients
		SET name = $2, phone = $3, address = $4, needs = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.executor.ExecContext(
		ctx,
		query,
		clientID,
		client.Name,
		client.Phone,
		client.Address,
		client.Needs,
		client.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return checkAffected(result, repository.ErrClientNotFound)
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	clientID, err := parseID(id)
	if err != nil {
		return repository.ErrClientNotFound
	}

	result, err := r.executor.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, clientID)
	if err != nil {
		return err
	}

	return checkAffected(result, repository.ErrClientNotFound)
}

func (r *clientRepository) queryClients(ctx context.Context, query string, args ...any) ([]*domain.Client, error) {
	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}

	return clients, rows.Err()
}

func scanClient(row rowScanner) (*domain.Client, error) {
	client := &domain.Client{}
	err := row.Scan(
		&client.ID,
		&client.Name,
		&client.Phone,
		&client.Address,
		&client.Needs,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

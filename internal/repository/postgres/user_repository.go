package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/bagdasarian/crm-service/internal/domain"
	"github.com/bagdasarian/crm-service/internal/repository"
)

type userRepository struct {
	executor DBExecutor
}

func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{executor: db}
}

func NewUserRepositoryWithTx(tx *sql.Tx) *userRepository {
	return &userRepository{executor: tx}
}

const userColumns = `id, username, password_hash, role, team_id, is_connected, last_login, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = newID()
	}

	query := `
		INSERT INTO users (id, username, password_hash, role, team_id, is_connected, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.executor.ExecContext(
		ctx,
		query,
		user.ID,
		user.Username,
		user.PasswordHash,
		string(user.Role),
		nullString(user.TeamID),
		user.IsConnected,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateKey
		}
		return err
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	userID, err := parseID(id)
	if err != nil {
		return nil, repository.ErrUserNotFound
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	return r.getOne(ctx, query, userID)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	return r.getOne(ctx, query, username)
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at, username`

	rows, err := r.executor.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *userRepository) SetConnected(ctx context.Context, userID string, connected bool, lastLogin *time.Time) error {
	dbID, err := parseID(userID)
	if err != nil {
		return repository.ErrUserNotFound
	}

	query := `
		UPDATE users
		SET is_connected = $2, last_login = COALESCE($3, last_login), updated_at = $4
		WHERE id = $1
	`

	var login sql.NullTime
	if lastLogin != nil {
		login = sql.NullTime{Time: *lastLogin, Valid: true}
	}

	result, err := r.executor.ExecContext(ctx, query, dbID, connected, login, time.Now())
	if err != nil {
		return err
	}

	return checkAffected(result, repository.ErrUserNotFound)
}

// SetTeam меняет ссылку сотрудника на команду; nil снимает ее
func (r *userRepository) SetTeam(ctx context.Context, userID string, teamID *string) error {
	dbID, err := parseID(userID)
	if err != nil {
		return repository.ErrUserNotFound
	}

	query := `
		UPDATE users
		SET team_id = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.executor.ExecContext(ctx, query, dbID, nullString(teamID), time.Now())
	if err != nil {
		return err
	}

	return checkAffected(result, repository.ErrUserNotFound)
}

// ClearTeam снимает ссылку на команду у всех ее бывших участников
func (r *userRepository) ClearTeam(ctx context.Context, teamID string) (int64, error) {
	dbID, err := parseID(teamID)
	if err != nil {
		return 0, nil
	}

	query := `
		UPDATE users
		SET team_id = NULL, updated_at = $2
		WHERE team_id = $1
	`

	result, err := r.executor.ExecContext(ctx, query, dbID, time.Now())
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	dbID, err := parseID(id)
	if err != nil {
		return repository.ErrUserNotFound
	}

	result, err := r.executor.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, dbID)
	if err != nil {
		return err
	}

	return checkAffected(result, repository.ErrUserNotFound)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	user, err := scanUser(r.executor.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}
	var role string
	var teamID sql.NullString
	var lastLogin sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&role,
		&teamID,
		&user.IsConnected,
		&lastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Role = domain.Role(role)
	user.TeamID = stringPtr(teamID)
	user.LastLogin = timePtr(lastLogin)

	return user, nil
}

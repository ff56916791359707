package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/bagdasarian/crm-service/internal/domain"
	"github.com/bagdasarian/crm-service/internal/repository"
)

type teamRepository struct {
	db *sql.DB
}

func NewTeamRepository(db *sql.DB) *teamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, team *domain.Team) error {
	if team.ID == "" {
		team.ID = newID()
	}

	query := `
		INSERT INTO teams (id, name, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query, team.ID, team.Name, team.Color, team.CreatedAt, team.UpdatedAt)
	if err != nil {
		return err
	}

	if team.Members == nil {
		team.Members = []string{}
	}

	return nil
}

func (r *teamRepository) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	teamID, err := parseID(id)
	if err != nil {
		return nil, repository.ErrTeamNotFound
	}

	query := `
		SELECT id, name, color, created_at, updated_at
		FROM teams
		WHERE id = $1
	`

	team := &domain.Team{}
	err = r.db.QueryRowContext(ctx, query, teamID).Scan(
		&team.ID,
		&team.Name,
		&team.Color,
		&team.CreatedAt,
		&team.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrTeamNotFound
		}
		return nil, err
	}

	team.Members, err = r.getMembers(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	return team, nil
}

func (r *teamRepository) List(ctx context.Context) ([]*domain.Team, error) {
	query := `
		SELECT id, name, color, created_at, updated_at
		FROM teams
		ORDER BY created_at, id
	`

	teams, err := r.queryTeams(ctx, query)
	if err != nil {
		return nil, err
	}

	return teams, r.attachMembers(ctx, teams)
}

// ListByMember возвращает команды, в составе которых есть сотрудник.
// При соблюдении инварианта команда не больше одной, но хранилище его не гарантирует.
func (r *teamRepository) ListByMember(ctx context.Context, employeeID string) ([]*domain.Team, error) {
	userID, err := parseID(employeeID)
	if err != nil {
		return []*domain.Team{}, nil
	}

	query := `
		SELECT t.id, t.name, t.color, t.created_at, t.updated_at
		FROM teams t
		JOIN team_members m ON m.team_id = t.id
		WHERE m.user_id = $1
		ORDER BY t.created_at, t.id
	`

	teams, err := r.queryTeams(ctx, query, userID)
	if err != nil {
		return nil, err
	}

	return teams, r.attachMembers(ctx, teams)
}

func (r *teamRepository) Update(ctx context.Context, team *domain.Team) error {
	teamID, err := parseID(team.ID)
	if err != nil {
		return repository.ErrTeamNotFound
	}

	query := `
		UPDATE teams
		SET name = $2, color = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, teamID, team.Name, team.Color, team.UpdatedAt)
	if err != nil {
		return err
	}

	return checkAffected(result, repository.ErrTeamNotFound)
}

// AddMember добавляет сотрудника в состав. Повторное добавление ничего не меняет в составе.
func (r *teamRepository) AddMember(ctx context.Context, teamID, employeeID string, at time.Time) error {
	tID, err := parseID(teamID)
	if err != nil {
		return repository.ErrTeamNotFound
	}
	uID, err := parseID(employeeID)
	if err != nil {
		return repository.ErrUserNotFound
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE teams SET updated_at = $2 WHERE id = $1`, tID, at)
	if err != nil {
		return err
	}
	if err := checkAffected(result, repository.ErrTeamNotFound); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO team_members (team_id, user_id, added_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (team_id, user_id) DO NOTHING
	`, tID, uID, at)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// RemoveMember убирает сотрудника из состава; отсутствующий участник не ошибка
func (r *teamRepository) RemoveMember(ctx context.Context, teamID, employeeID string, at time.Time) error {
	tID, err := parseID(teamID)
	if err != nil {
		return repository.ErrTeamNotFound
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE teams SET updated_at = $2 WHERE id = $1`, tID, at)
	if err != nil {
		return err
	}
	if err := checkAffected(result, repository.ErrTeamNotFound); err != nil {
		return err
	}

	if uID, err := parseID(employeeID); err == nil {
		_, err = tx.ExecContext(ctx, `DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`, tID, uID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *teamRepository) Delete(ctx context.Context, id string) error {
	teamID, err := parseID(id)
	if err != nil {
		return repository.ErrTeamNotFound
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, teamID)
	if err != nil {
		return err
	}

	return checkAffected(result, repository.ErrTeamNotFound)
}

func (r *teamRepository) queryTeams(ctx context.Context, query string, args ...any) ([]*domain.Team, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*domain.Team, 0)
	for rows.Next() {
		team := &domain.Team{}
		if err := rows.Scan(&team.ID, &team.Name, &team.Color, &team.CreatedAt, &team.UpdatedAt); err != nil {
			return nil, err
		}
		team.Members = []string{}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

func (r *teamRepository) getMembers(ctx context.Context, teamID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id
		FROM team_members
		WHERE team_id = $1
		ORDER BY added_at, user_id
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]string, 0)
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		members = append(members, userID)
	}

	return members, rows.Err()
}

func (r *teamRepository) attachMembers(ctx context.Context, teams []*domain.Team) error {
	for _, team := range teams {
		members, err := r.getMembers(ctx, team.ID)
		if err != nil {
			return err
		}
		team.Members = members
	}
	return nil
}

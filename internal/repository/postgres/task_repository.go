package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bagdasarian/crm-service/internal/domain"
	"github.com/bagdasarian/crm-service/internal/repository"
	"github.com/shopspring/decimal"
)

type taskRepository struct {
	executor DBExecutor
}

func NewTaskRepository(db *sql.DB) *taskRepository {
	return &taskRepository{executor: db}
}

const taskColumns = `id, title, description, status, team_id, commission_rate, due_date, observation, amount_charged, payment_method, created_at, updated_at`

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task.ID == "" {
		task.ID = newID()
	}

	amount, method := paymentArgs(task.Payment)

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.executor.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		string(task.Status),
		nullString(task.TeamID),
		task.CommissionRate,
		task.DueDate,
		task.Observation,
		amount,
		method,
		task.CreatedAt,
		task.UpdatedAt,
	)

	return err
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	taskID, err := parseID(id)
	if err != nil {
		return nil, repository.ErrTaskNotFound
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.executor.QueryRowContext(ctx, query, taskID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	var conditions []string
	var args []any

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.TeamID != nil {
		teamID, err := parseID(*filter.TeamID)
		if err != nil {
			return []*domain.Task{}, nil
		}
		args = append(args, teamID)
		conditions = append(conditions, fmt.Sprintf("team_id = $%d", len(args)))
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY due_date, created_at`

	return r.queryTasks(ctx, query, args...)
}

// ListByTeamIDs возвращает задачи, привязанные к любой из команд
func (r *taskRepository) ListByTeamIDs(ctx context.Context, teamIDs []string) ([]*domain.Task, error) {
	placeholders := make([]string, 0, len(teamIDs))
	args := make([]any, 0, len(teamIDs))
	for _, id := range teamIDs {
		teamID, err := parseID(id)
		if err != nil {
			continue
		}
		args = append(args, teamID)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	if len(args) == 0 {
		return []*domain.Task{}, nil
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE team_id IN (` + strings.Join(placeholders, ", ") + `) ORDER BY due_date, created_at`

	return r.queryTasks(ctx, query, args...)
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	taskID, err := parseID(task.ID)
	if err != nil {
		return repository.ErrTaskNotFound
	}

	amount, method := paymentArgs(task.Payment)

	query := `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, team_id = $5, commission_rate = $6,
		    due_date = $7, observation = $8, amount_charged = $9, payment_method = $10, updated_at = $11
		WHERE id = $1
	`

	result, err := r.executor.ExecContext(
		ctx,
		query,
		taskID,
		task.Title,
		task.Description,
		string(task.Status),
		nullString(task.TeamID),
		task.CommissionRate,
		task.DueDate,
		task.Observation,
		amount,
		method,
		task.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return checkAffected(result, repository.ErrTaskNotFound)
}

func (r *taskRepository) UpdateDueDate(ctx context.Context, id string, dueDate time.Time, at time.Time) error {
	taskID, err := parseID(id)
	if err != nil {
		return repository.ErrTaskNotFound
	}

	query := `
		UPDATE tasks
		SET due_date = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.executor.ExecContext(ctx, query, taskID, dueDate, at)
	if err != nil {
		return err
	}

	return checkAffected(result, repository.ErrTaskNotFound)
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	taskID, err := parseID(id)
	if err != nil {
		return repository.ErrTaskNotFound
	}

	result, err := r.executor.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, taskID)
	if err != nil {
		return err
	}

	return checkAffected(result, repository.ErrTaskNotFound)
}

func (r *taskRepository) queryTasks(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

func paymentArgs(p *domain.Payment) (decimal.NullDecimal, sql.NullString) {
	if p == nil {
		return decimal.NullDecimal{}, sql.NullString{}
	}
	return decimal.NullDecimal{Decimal: p.AmountCharged, Valid: true},
		sql.NullString{String: string(p.Method), Valid: true}
}

func scanTask(row rowScanner) (*domain.Task, error) {
	task := &domain.Task{}
	var status string
	var teamID sql.NullString
	var amount decimal.NullDecimal
	var method sql.NullString

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&status,
		&teamID,
		&task.CommissionRate,
		&task.DueDate,
		&task.Observation,
		&amount,
		&method,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Status = domain.Status(status)
	task.TeamID = stringPtr(teamID)
	if amount.Valid && method.Valid {
		task.Payment = &domain.Payment{
			AmountCharged: amount.Decimal,
			Method:        domain.PaymentMethod(method.String),
		}
	}

	return task, nil
}

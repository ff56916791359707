package service

import (
	"context"

	"github.com/bagdasarian/crm-service/internal/domain"
)

// CRMService согласует состав команд, ссылки сотрудников на команды и задачи.
// Многошаговые операции - последовательность независимых записей без отката.
type CRMService interface {
	AssignEmployee(ctx context.Context, employeeID, teamID string) (*domain.User, error)
	RemoveFromTeam(ctx context.Context, teamID, employeeID string) (*domain.Team, error)
	MoveMembers(ctx context.Context, fromTeamID, toTeamID string) ([]string, error)
	DeleteTeam(ctx context.Context, teamID string) error
	DissolveTeam(ctx context.Context, teamID string) ([]string, error)
	DeleteEmployee(ctx context.Context, employeeID string) error
	TeamOfEmployee(ctx context.Context, employeeID string) (*domain.Team, error)
	TasksForEmployee(ctx context.Context, employeeID string) ([]*domain.Task, error)
	CommissionReport(ctx context.Context, employeeID string) (*domain.CommissionReport, error)
	CommissionReports(ctx context.Context) ([]*domain.CommissionReport, error)
	SearchClients(ctx context.Context, query string) ([]*domain.Client, error)
}

package service

import (
	"context"

	"github.com/bagdasarian/crm-service/internal/domain"
)

// MemberRemovedFunc вызывается после удаления каждого участника при роспуске команды
type MemberRemovedFunc func(ctx context.Context, teamID, employeeID string) error

type TeamService interface {
	CreateTeam(ctx context.Context, cmd domain.CreateTeamCommand) (*domain.Team, error)
	GetTeam(ctx context.Context, id string) (*domain.Team, error)
	ListTeams(ctx context.Context) ([]*domain.Team, error)
	ListTeamsByMember(ctx context.Context, employeeID string) ([]*domain.Team, error)
	UpdateTeam(ctx context.Context, id string, cmd domain.UpdateTeamCommand) (*domain.Team, error)
	GetMembers(ctx context.Context, id string) ([]string, error)
	AddMember(ctx context.Context, teamID, employeeID string) (*domain.Team, error)
	RemoveMember(ctx context.Context, teamID, employeeID string) (*domain.Team, error)
	DeleteTeam(ctx context.Context, id string) error
	DissolveTeam(ctx context.Context, id string, onRemoved MemberRemovedFunc) ([]string, error)
}

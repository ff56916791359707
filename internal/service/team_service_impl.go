package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bagdasarian/crm-service/internal/domain"
	"github.com/bagdasarian/crm-service/internal/repository"
	"github.com/bagdasarian/crm-service/internal/scheduler"
	"go.uber.org/zap"
)

type teamService struct {
	teamRepo repository.TeamRepository
	clock    scheduler.Clock
	log      *zap.Logger
}

// NewTeamService создает новый экземпляр TeamService
func NewTeamService(teamRepo repository.TeamRepository, clock scheduler.Clock, logger *zap.Logger) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		clock:    clock,
		log:      logger,
	}
}

// CreateTeam создает команду с пустым составом
func (s *teamService) CreateTeam(ctx context.Context, cmd domain.CreateTeamCommand) (*domain.Team, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, domain.NewValidationError("team name is required")
	}

	color := strings.TrimSpace(cmd.Color)
	if color == "" {
		color = domain.DefaultTeamColor
	}

	now := s.clock.Now()
	team := &domain.Team{
		Name:      name,
		Color:     color,
		Members:   []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}

	s.log.Info("team created", zap.String("team_id", team.ID), zap.String("name", team.Name))

	return team, nil
}

// GetTeam получает команду с составом по ID
func (s *teamService) GetTeam(ctx context.Context, id string) (*domain.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, teamErr(err, id)
	}
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]*domain.Team, error) {
	return s.teamRepo.List(ctx)
}

// ListTeamsByMember возвращает команды, в составе которых есть сотрудник
func (s *teamService) ListTeamsByMember(ctx context.Context, employeeID string) ([]*domain.Team, error) {
	return s.teamRepo.ListByMember(ctx, employeeID)
}

func (s *teamService) UpdateTeam(ctx context.Context, id string, cmd domain.UpdateTeamCommand) (*domain.Team, error) {
	team, err := s.GetTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(cmd.Name); name != "" {
		team.Name = name
	}
	if color := strings.TrimSpace(cmd.Color); color != "" {
		team.Color = color
	}
	team.UpdatedAt = s.clock.Now()

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, teamErr(err, id)
	}

	return team, nil
}

func (s *teamService) GetMembers(ctx context.Context, id string) ([]string, error) {
	team, err := s.GetTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	return team.Members, nil
}

// AddMember идемпотентен: если сотрудник уже в составе, ничего не меняется.
// Из других команд сотрудник не удаляется, это делает CRMService.
func (s *teamService) AddMember(ctx context.Context, teamID, employeeID string) (*domain.Team, error) {
	if strings.TrimSpace(employeeID) == "" {
		return nil, domain.NewValidationError("employee id is required")
	}

	team, err := s.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if team.HasMember(employeeID) {
		return team, nil
	}

	now := s.clock.Now()
	if err := s.teamRepo.AddMember(ctx, team.ID, employeeID, now); err != nil {
		return nil, teamErr(err, teamID)
	}

	team.Members = append(team.Members, employeeID)
	team.UpdatedAt = now

	return team, nil
}

// RemoveMember идемпотентен: удаление отсутствующего участника - не ошибка
func (s *teamService) RemoveMember(ctx context.Context, teamID, employeeID string) (*domain.Team, error) {
	team, err := s.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := s.teamRepo.RemoveMember(ctx, team.ID, employeeID, now); err != nil {
		return nil, teamErr(err, teamID)
	}

	members := make([]string, 0, len(team.Members))
	for _, id := range team.Members {
		if id != employeeID {
			members = append(members, id)
		}
	}
	team.Members = members
	team.UpdatedAt = now

	return team, nil
}

// DeleteTeam удаляет команду. Ссылки сотрудников на нее снимает вызывающий.
func (s *teamService) DeleteTeam(ctx context.Context, id string) error {
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return teamErr(err, id)
	}

	s.log.Info("team deleted", zap.String("team_id", id))

	return nil
}

// DissolveTeam по одному убирает всех участников, затем удаляет команду.
// onRemoved (может быть nil) вызывается после каждого удаления; его ошибка
// прерывает роспуск. Уже убранные участники не возвращаются.
func (s *teamService) DissolveTeam(ctx context.Context, id string, onRemoved MemberRemovedFunc) ([]string, error) {
	team, err := s.GetTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0, len(team.Members))
	for _, employeeID := range team.Members {
		if _, err := s.RemoveMember(ctx, team.ID, employeeID); err != nil {
			return removed, err
		}
		if onRemoved != nil {
			if err := onRemoved(ctx, team.ID, employeeID); err != nil {
				return removed, err
			}
		}
		removed = append(removed, employeeID)
	}

	if err := s.DeleteTeam(ctx, team.ID); err != nil {
		return removed, err
	}

	return removed, nil
}

func teamErr(err error, id string) error {
	if errors.Is(err, repository.ErrTeamNotFound) {
		return domain.NewNotFoundError("team with id " + id)
	}
	if errors.Is(err, repository.ErrUserNotFound) {
		return domain.NewNotFoundError("employee")
	}
	return err
}

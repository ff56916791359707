package service

import (
	"context"
	"strings"
	"time"

	"github.com/bagdasarian/crm-service/internal/domain"
	"github.com/bagdasarian/crm-service/internal/repository"
	"github.com/bagdasarian/crm-service/internal/scheduler"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type crmService struct {
	teams    TeamService
	clients  ClientService
	userRepo repository.UserRepository
	taskRepo repository.TaskRepository
	clock    scheduler.Clock
	loc      *time.Location
	log      *zap.Logger
}

// NewCRMService создает новый экземпляр CRMService
func NewCRMService(
	teams TeamService,
	clients ClientService,
	userRepo repository.UserRepository,
	taskRepo repository.TaskRepository,
	clock scheduler.Clock,
	loc *time.Location,
	logger *zap.Logger,
) CRMService {
	return &crmService{
		teams:    teams,
		clients:  clients,
		userRepo: userRepo,
		taskRepo: taskRepo,
		clock:    clock,
		loc:      loc,
		log:      logger,
	}
}

// AssignEmployee переводит сотрудника в команду: сначала removeMember из всех
// прежних команд, затем addMember в новую. Пустой teamID - оставить без команды.
func (s *crmService) AssignEmployee(ctx context.Context, employeeID, teamID string) (*domain.User, error) {
	teamID = strings.TrimSpace(teamID)

	user, err := s.userRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, userErr(err, employeeID)
	}

	if teamID != "" {
		if _, err := s.teams.GetTeam(ctx, teamID); err != nil {
			return nil, err
		}
	}

	current, err := s.teams.ListTeamsByMember(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	for _, team := range current {
		if team.ID == teamID {
			continue
		}
		if _, err := s.teams.RemoveMember(ctx, team.ID, user.ID); err != nil {
			return nil, err
		}
	}

	if teamID == "" {
		if err := s.userRepo.SetTeam(ctx, user.ID, nil); err != nil {
			return nil, userErr(err, user.ID)
		}
		user.TeamID = nil
		return withoutCredential(user), nil
	}

	if _, err := s.teams.AddMember(ctx, teamID, user.ID); err != nil {
		return nil, err
	}
	if err := s.userRepo.SetTeam(ctx, user.ID, &teamID); err != nil {
		return nil, userErr(err, user.ID)
	}
	user.TeamID = &teamID

	s.log.Info("employee assigned to team",
		zap.String("employee_id", user.ID),
		zap.String("team_id", teamID))

	return withoutCredential(user), nil
}

// RemoveFromTeam убирает сотрудника из состава и снимает его ссылку на эту команду
func (s *crmService) RemoveFromTeam(ctx context.Context, teamID, employeeID string) (*domain.Team, error) {
	team, err := s.teams.RemoveMember(ctx, teamID, employeeID)
	if err != nil {
		return nil, err
	}

	if err := s.clearReference(ctx, employeeID, team.ID); err != nil {
		return nil, err
	}

	return team, nil
}

// MoveMembers переносит всех участников одной команды в другую, по одному
func (s *crmService) MoveMembers(ctx context.Context, fromTeamID, toTeamID string) ([]string, error) {
	if fromTeamID == toTeamID {
		return nil, domain.NewValidationError("source and target team must differ")
	}

	from, err := s.teams.GetTeam(ctx, fromTeamID)
	if err != nil {
		return nil, err
	}
	to, err := s.teams.GetTeam(ctx, toTeamID)
	if err != nil {
		return nil, err
	}

	moved := make([]string, 0, len(from.Members))
	for _, employeeID := range from.Members {
		if _, err := s.teams.RemoveMember(ctx, from.ID, employeeID); err != nil {
			return moved, err
		}
		if _, err := s.teams.AddMember(ctx, to.ID, employeeID); err != nil {
			return moved, err
		}
		toID := to.ID
		if err := s.userRepo.SetTeam(ctx, employeeID, &toID); err != nil {
			return moved, userErr(err, employeeID)
		}
		moved = append(moved, employeeID)
	}

	return moved, nil
}

// DeleteTeam сначала снимает ссылки сотрудников на команду, затем удаляет ее.
// Сотрудники и задачи команды не удаляются.
func (s *crmService) DeleteTeam(ctx context.Context, teamID string) error {
	team, err := s.teams.GetTeam(ctx, teamID)
	if err != nil {
		return err
	}

	cleared, err := s.userRepo.ClearTeam(ctx, team.ID)
	if err != nil {
		return err
	}

	if err := s.teams.DeleteTeam(ctx, team.ID); err != nil {
		return err
	}

	s.log.Info("team deleted with orphaned members",
		zap.String("team_id", team.ID),
		zap.Int64("orphaned", cleared))

	return nil
}

// DissolveTeam распускает команду через TeamService: после удаления каждого
// участника из состава снимается и его ссылка на команду.
// Сбой посередине оставляет часть участников в составе.
func (s *crmService) DissolveTeam(ctx context.Context, teamID string) ([]string, error) {
	return s.teams.DissolveTeam(ctx, teamID, func(ctx context.Context, teamID, employeeID string) error {
		return s.clearReference(ctx, employeeID, teamID)
	})
}

// DeleteEmployee убирает сотрудника из всех команд, затем удаляет учетную запись
func (s *crmService) DeleteEmployee(ctx context.Context, employeeID string) error {
	if _, err := s.userRepo.GetByID(ctx, employeeID); err != nil {
		return userErr(err, employeeID)
	}

	teams, err := s.teams.ListTeamsByMember(ctx, employeeID)
	if err != nil {
		return err
	}
	for _, team := range teams {
		if _, err := s.teams.RemoveMember(ctx, team.ID, employeeID); err != nil {
			return err
		}
	}

	if err := s.userRepo.Delete(ctx, employeeID); err != nil {
		return userErr(err, employeeID)
	}

	s.log.Info("employee deleted", zap.String("employee_id", employeeID))

	return nil
}

func (s *crmService) TeamOfEmployee(ctx context.Context, employeeID string) (*domain.Team, error) {
	teams, err := s.teams.ListTeamsByMember(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, domain.NewNotFoundError("team of employee " + employeeID)
	}
	return teams[0], nil
}

// TasksForEmployee - задачи команд, в составе которых есть сотрудник.
// Соединение выполняется на каждый запрос, без кеша.
func (s *crmService) TasksForEmployee(ctx context.Context, employeeID string) ([]*domain.Task, error) {
	teams, err := s.teams.ListTeamsByMember(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return []*domain.Task{}, nil
	}

	teamIDs := make([]string, 0, len(teams))
	for _, team := range teams {
		teamIDs = append(teamIDs, team.ID)
	}

	tasks, err := s.taskRepo.ListByTeamIDs(ctx, teamIDs)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	for _, task := range tasks {
		task.Status = scheduler.EffectiveStatus(task, now, s.loc)
	}

	return tasks, nil
}

// CommissionReport собирает завершенные задачи сотрудника с комиссией 1%
func (s *crmService) CommissionReport(ctx context.Context, employeeID string) (*domain.CommissionReport, error) {
	user, err := s.userRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, userErr(err, employeeID)
	}

	return s.buildReport(ctx, user)
}

func (s *crmService) CommissionReports(ctx context.Context) ([]*domain.CommissionReport, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]*domain.CommissionReport, 0, len(users))
	for _, user := range users {
		if user.Role != domain.RoleEmployee {
			continue
		}
		report, err := s.buildReport(ctx, user)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, nil
}

func (s *crmService) SearchClients(ctx context.Context, query string) ([]*domain.Client, error) {
	return s.clients.SearchByName(ctx, query)
}

func (s *crmService) buildReport(ctx context.Context, user *domain.User) (*domain.CommissionReport, error) {
	tasks, err := s.TasksForEmployee(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	report := &domain.CommissionReport{
		EmployeeID:      user.ID,
		Username:        user.Username,
		Lines:           make([]domain.CommissionLine, 0),
		TotalAmount:     decimal.Zero,
		TotalCommission: decimal.Zero,
		GrandTotal:      decimal.Zero,
	}

	for _, task := range tasks {
		if task.Status != domain.StatusCompleted || task.Payment == nil {
			continue
		}
		amount := task.Payment.AmountCharged
		line := domain.CommissionLine{
			Task:       task,
			Amount:     amount,
			Commission: Commission(amount),
			Total:      Total(amount),
		}
		report.Lines = append(report.Lines, line)
		report.TotalAmount = report.TotalAmount.Add(line.Amount)
		report.TotalCommission = report.TotalCommission.Add(line.Commission)
		report.GrandTotal = report.GrandTotal.Add(line.Total)
	}

	return report, nil
}

func (s *crmService) clearReference(ctx context.Context, employeeID, teamID string) error {
	user, err := s.userRepo.GetByID(ctx, employeeID)
	if err != nil {
		// участник мог быть удален раньше, состав уже очищен
		s.log.Debug("skip team reference clear", zap.String("employee_id", employeeID), zap.Error(err))
		return nil
	}
	if user.TeamID == nil || *user.TeamID != teamID {
		return nil
	}
	if err := s.userRepo.SetTeam(ctx, employeeID, nil); err != nil {
		return userErr(err, employeeID)
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bagdasarian/crm-service/internal/domain"
	"github.com/bagdasarian/crm-service/internal/repository"
	"github.com/bagdasarian/crm-service/internal/scheduler"
	"go.uber.org/zap"
)

type taskService struct {
	taskRepo repository.TaskRepository
	teamRepo repository.TeamRepository
	clock    scheduler.Clock
	loc      *time.Location
	log      *zap.Logger
}

// NewTaskService создает новый экземпляр TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	teamRepo repository.TeamRepository,
	clock scheduler.Clock,
	loc *time.Location,
	logger *zap.Logger,
) TaskService {
	return &taskService{
		taskRepo: taskRepo,
		teamRepo: teamRepo,
		clock:    clock,
		loc:      loc,
		log:      logger,
	}
}

// CreateTask создает задачу в статусе pending без оплаты и замечаний
func (s *taskService) CreateTask(ctx context.Context, cmd domain.CreateTaskCommand) (*domain.Task, error) {
	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		return nil, domain.NewValidationError("task title is required")
	}
	if cmd.DueDate.IsZero() {
		return nil, domain.NewValidationError("task due date is required")
	}
	if cmd.CommissionRate.IsNegative() {
		return nil, domain.NewValidationError("commission rate must not be negative")
	}
	if !fitsMoney(cmd.CommissionRate, MaxCommissionRate) {
		return nil, domain.NewValidationError("commission rate must have at most 2 decimals and not exceed %s", MaxCommissionRate)
	}

	var teamID *string
	if id := strings.TrimSpace(cmd.TeamID); id != "" {
		if _, err := s.teamRepo.GetByID(ctx, id); err != nil {
			return nil, teamErr(err, id)
		}
		teamID = &id
	}

	now := s.clock.Now()
	task := &domain.Task{
		Title:          title,
		Description:    sanitizeText(cmd.Description),
		Status:         domain.StatusPending,
		TeamID:         teamID,
		CommissionRate: cmd.CommissionRate,
		DueDate:        cmd.DueDate,
		Observation:    "",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.log.Info("task created", zap.String("task_id", task.ID), zap.Time("due_date", task.DueDate))

	return task, nil
}

// GetTask возвращает задачу с пересчитанным при чтении статусом
func (s *taskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	task.Status = scheduler.EffectiveStatus(task, s.clock.Now(), s.loc)
	return task, nil
}

// ListTasks применяет проверку статуса при чтении. Фильтр по статусу
// сравнивается с уже пересчитанным статусом.
func (s *taskService) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	statusFilter := filter.Status
	filter.Status = nil

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	result := make([]*domain.Task, 0, len(tasks))
	for _, task := range tasks {
		task.Status = scheduler.EffectiveStatus(task, now, s.loc)
		if statusFilter != nil && task.Status != *statusFilter {
			continue
		}
		result = append(result, task)
	}

	return result, nil
}

// CompleteTask переводит pending-задачу в completed, фиксируя сумму и способ оплаты
func (s *taskService) CompleteTask(ctx context.Context, id string, cmd domain.CompleteTaskCommand) (*domain.CompletionReceipt, error) {
	if !cmd.AmountCharged.IsPositive() {
		return nil, domain.NewValidationError("amount charged must be greater than zero")
	}
	if !fitsMoney(cmd.AmountCharged, MaxAmountCharged) {
		return nil, domain.NewValidationError("amount charged must have at most 2 decimals and not exceed %s", MaxAmountCharged)
	}
	if cmd.Method != domain.PaymentCash && cmd.Method != domain.PaymentCard {
		return nil, domain.NewValidationError("payment method must be cash or card")
	}

	task, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if task.Status != domain.StatusPending {
		return nil, domain.ErrTaskNotPending
	}

	task.Status = domain.StatusCompleted
	task.Payment = &domain.Payment{
		AmountCharged: cmd.AmountCharged,
		Method:        cmd.Method,
	}
	task.UpdatedAt = s.clock.Now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, taskErr(err, id)
	}

	commission := Commission(cmd.AmountCharged)
	total := Total(cmd.AmountCharged)

	s.log.Info("task completed",
		zap.String("task_id", task.ID),
		zap.String("amount", FormatMoney(cmd.AmountCharged)),
		zap.String("commission", FormatMoney(commission)),
		zap.String("method", string(cmd.Method)))

	return &domain.CompletionReceipt{
		Task:       task,
		Commission: commission,
		Total:      total,
	}, nil
}

// ReassignTeam меняет команду задачи в любом статусе; статус не трогается.
// Пустой teamID отвязывает задачу от команды.
func (s *taskService) ReassignTeam(ctx context.Context, id string, teamID string) (*domain.Task, error) {
	task, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		task.TeamID = nil
	} else {
		if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
			return nil, teamErr(err, teamID)
		}
		task.TeamID = &teamID
	}
	task.UpdatedAt = s.clock.Now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, taskErr(err, id)
	}

	return task, nil
}

// AddObservation перезаписывает замечание; пустой текст - без изменений
func (s *taskService) AddObservation(ctx context.Context, id string, text string) (*domain.Task, error) {
	task, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	clean := sanitizeText(text)
	if clean == "" {
		return task, nil
	}

	task.Observation = clean
	task.UpdatedAt = s.clock.Now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, taskErr(err, id)
	}

	return task, nil
}

// Reschedule переносит срок. Просроченная задача с новой датой не раньше
// сегодняшнего дня снова становится pending.
func (s *taskService) Reschedule(ctx context.Context, id string, dueDate time.Time) (*domain.Task, error) {
	if dueDate.IsZero() {
		return nil, domain.NewValidationError("due date is required")
	}

	task, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	task.DueDate = dueDate
	if task.Status == domain.StatusOverdue && scheduler.CheckStatus(dueDate, now, s.loc) == domain.StatusPending {
		task.Status = domain.StatusPending
	}
	task.UpdatedAt = now

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, taskErr(err, id)
	}

	task.Status = scheduler.EffectiveStatus(task, now, s.loc)

	return task, nil
}

// DeleteTask удаляет задачу безусловно
func (s *taskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return taskErr(err, id)
	}
	return nil
}

func (s *taskService) load(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, taskErr(err, id)
	}
	return task, nil
}

func taskErr(err error, id string) error {
	if errors.Is(err, repository.ErrTaskNotFound) {
		return domain.NewNotFoundError("task with id " + id)
	}
	return err
}

package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/bagdasarian/crm-service/internal/domain"
	"github.com/bagdasarian/crm-service/internal/repository"
	"go.uber.org/zap"
)

// Sweeper - фоновый обход pending-задач с переносом просроченных дат
type Sweeper struct {
	tasks    repository.TaskRepository
	clock    Clock
	loc      *time.Location
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func NewSweeper(tasks repository.TaskRepository, clock Clock, loc *time.Location, logger *zap.Logger, interval time.Duration) *Sweeper {
	return &Sweeper{
		tasks:    tasks,
		clock:    clock,
		loc:      loc,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

func (s *Sweeper) Start() {
	s.wg.Add(1)
	go s.run()
	s.log.Info("task sweeper started", zap.Duration("interval", s.interval))
}

// Stop останавливает цикл и ждет завершения текущего обхода
func (s *Sweeper) Stop() {
	close(s.stopCh)
	s.wg.Wait()
	s.log.Info("task sweeper stopped")
}

func (s *Sweeper) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if _, err := s.SweepOnce(ctx); err != nil {
				s.log.Error("task sweep failed", zap.Error(err))
			}
			cancel()
		}
	}
}

// SweepOnce выполняет один обход и возвращает число перенесенных задач.
// Ошибка записи одной задачи не прерывает обход остальных.
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	pending := domain.StatusPending
	tasks, err := s.tasks.List(ctx, domain.TaskFilter{Status: &pending})
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	moved := 0
	for _, task := range tasks {
		next, ok := RollForward(task, now, s.loc)
		if !ok {
			continue
		}
		if err := s.tasks.UpdateDueDate(ctx, task.ID, next, now); err != nil {
			s.log.Warn("failed to roll task forward",
				zap.String("task_id", task.ID),
				zap.Error(err))
			continue
		}
		moved++
	}

	if moved > 0 {
		s.log.Info("rolled pending tasks forward", zap.Int("count", moved))
	}

	return moved, nil
}

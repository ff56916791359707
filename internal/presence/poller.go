package presence

import (
	"context"
	"sync"
	"time"

	"github.com/bagdasarian/crm-service/internal/domain"
	"github.com/bagdasarian/crm-service/internal/scheduler"
	"go.uber.org/zap"
)

// Source - источник списка пользователей без хешей паролей
type Source interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
}

// Snapshot - состояние присутствия на момент последней загрузки
type Snapshot struct {
	Employees []*domain.User
	Connected []*domain.User
	LoadedAt  time.Time
}

// Poller периодически перечитывает пользователей и держит последний снимок.
// Параллельные Refresh не объединяются: побеждает последняя завершенная загрузка.
type Poller struct {
	source   Source
	clock    scheduler.Clock
	log      *zap.Logger
	interval time.Duration

	mu       sync.RWMutex
	snapshot Snapshot

	stopCh chan struct{}
	wg     sync.WaitGroup
}

func NewPoller(source Source, clock scheduler.Clock, logger *zap.Logger, interval time.Duration) *Poller {
	return &Poller{
		source:   source,
		clock:    clock,
		log:      logger,
		interval: interval,
		snapshot: Snapshot{
			Employees: []*domain.User{},
			Connected: []*domain.User{},
		},
		stopCh: make(chan struct{}),
	}
}

// Start выполняет первую загрузку сразу, затем по таймеру
func (p *Poller) Start() {
	p.wg.Add(1)
	go p.run()
	p.log.Info("presence poller started", zap.Duration("interval", p.interval))
}

func (p *Poller) Stop() {
	close(p.stopCh)
	p.wg.Wait()
	p.log.Info("presence poller stopped")
}

func (p *Poller) run() {
	defer p.wg.Done()

	p.refreshWithTimeout()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.refreshWithTimeout()
		}
	}
}

func (p *Poller) refreshWithTimeout() {
	ctx, cancel := context.WithTimeout(context.Background(), p.interval)
	defer cancel()

	if _, err := p.Refresh(ctx); err != nil {
		p.log.Warn("presence refresh failed", zap.Error(err))
	}
}

// Refresh перечитывает пользователей вне расписания. При ошибке прежний снимок сохраняется.
func (p *Poller) Refresh(ctx context.Context) (Snapshot, error) {
	users, err := p.source.ListUsers(ctx)
	if err != nil {
		return p.Snapshot(), err
	}

	next := Snapshot{
		Employees: make([]*domain.User, 0, len(users)),
		Connected: make([]*domain.User, 0),
		LoadedAt:  p.clock.Now(),
	}
	for _, u := range users {
		if u.Role != domain.RoleEmployee {
			continue
		}
		next.Employees = append(next.Employees, u)
		if u.IsConnected {
			next.Connected = append(next.Connected, u)
		}
	}

	p.mu.Lock()
	p.snapshot = next
	p.mu.Unlock()

	return next, nil
}

func (p *Poller) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

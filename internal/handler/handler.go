package handler

import (
	"context"
	"time"

	"github.com/bagdasarian/crm-service/internal/presence"
	"github.com/bagdasarian/crm-service/internal/service"
	"go.uber.org/zap"
)

// PresenceReader - опрашиваемая модель присутствия сотрудников
type PresenceReader interface {
	Snapshot() presence.Snapshot
	Refresh(ctx context.Context) (presence.Snapshot, error)
}

type Handler struct {
	userService   service.UserService
	teamService   service.TeamService
	taskService   service.TaskService
	clientService service.ClientService
	crmService    service.CRMService
	presence      PresenceReader
	sessions      *SessionManager
	loc           *time.Location
	log           *zap.Logger
}

func NewHandler(
	userService service.UserService,
	teamService service.TeamService,
	taskService service.TaskService,
	clientService service.ClientService,
	crmService service.CRMService,
	presence PresenceReader,
	sessions *SessionManager,
	loc *time.Location,
	logger *zap.Logger,
) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		userService:   userService,
		teamService:   teamService,
		taskService:   taskService,
		clientService: clientService,
		crmService:    crmService,
		presence:      presence,
		sessions:      sessions,
		loc:           loc,
		log:           logger,
	}
}

// Sessions нужен роутеру для подключения middleware
func (h *Handler) Sessions() *SessionManager {
	return h.sessions
}

package handler

import (
	"net/http"

	"github.com/bagdasarian/crm-service/internal/domain"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	user, err := h.userService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.sessions.Save(w, r, user); err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, domainUserToHTTP(user))
}

// Logout всегда удаляет cookie, даже если отметку онлайн снять не удалось
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := CurrentSession(r)

	if err := h.userService.Logout(r.Context(), session); err != nil {
		h.log.Warn("logout failed", zap.String("user_id", session.UserID), zap.Error(err))
	}

	if err := h.sessions.Clear(w, r); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	role, ok := domain.ParseRole(req.Role)
	if !ok {
		h.handleError(w, r, domain.NewValidationError("unknown role %q", req.Role))
		return
	}

	user, err := h.userService.Register(r.Context(), domain.RegisterUserCommand{
		Username: req.Username,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, domainUserToHTTP(user))
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	session, _ := CurrentSession(r)
	writeJSON(w, http.StatusOK, SessionResponse{
		UserID:   session.UserID,
		Username: session.Username,
		Role:     string(session.Role),
	})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, UsersResponse{Users: domainUsersToHTTP(users)})
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	if err := h.crmService.DeleteEmployee(r.Context(), userID); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetPresence(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, snapshotToHTTP(h.presence.Snapshot()))
}

// RefreshPresence - внеплановый опрос (аналог возврата фокуса в окно)
func (h *Handler) RefreshPresence(w http.ResponseWriter, r *http.Request) {
	snap, err := h.presence.Refresh(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, snapshotToHTTP(snap))
}

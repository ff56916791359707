package handler

import (
	"net/http"

	"github.com/bagdasarian/crm-service/internal/domain"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req TeamRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), domain.CreateTeamCommand{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, domainTeamToHTTP(team))
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.teamService.GetTeam(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, domainTeamToHTTP(team))
}

func (h *Handler) GetTeamMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.teamService.GetMembers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if members == nil {
		members = []string{}
	}

	writeJSON(w, http.StatusOK, TeamMembersResponse{Members: members})
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.ListTeams(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TeamsResponse{Teams: domainTeamsToHTTP(teams)})
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	var req TeamRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	team, err := h.teamService.UpdateTeam(r.Context(), chi.URLParam(r, "id"), domain.UpdateTeamCommand{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, domainTeamToHTTP(team))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	if err := h.crmService.DeleteTeam(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddTeamMember переводит сотрудника в команду, убирая его из прежней
func (h *Handler) AddTeamMember(w http.ResponseWriter, r *http.Request) {
	var req TeamMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if req.EmployeeID == "" {
		h.handleError(w, r, domain.NewValidationError("employee_id is required"))
		return
	}

	teamID := chi.URLParam(r, "id")
	if _, err := h.crmService.AssignEmployee(r.Context(), req.EmployeeID, teamID); err != nil {
		h.handleError(w, r, err)
		return
	}

	team, err := h.teamService.GetTeam(r.Context(), teamID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, domainTeamToHTTP(team))
}

func (h *Handler) RemoveTeamMember(w http.ResponseWriter, r *http.Request) {
	team, err := h.crmService.RemoveFromTeam(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, domainTeamToHTTP(team))
}

func (h *Handler) DissolveTeam(w http.ResponseWriter, r *http.Request) {
	removed, err := h.crmService.DissolveTeam(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, DissolveTeamResponse{Removed: removed})
}

func (h *Handler) MoveTeamMembers(w http.ResponseWriter, r *http.Request) {
	var req MoveMembersRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if req.TargetTeamID == "" {
		h.handleError(w, r, domain.NewValidationError("target_team_id is required"))
		return
	}

	moved, err := h.crmService.MoveMembers(r.Context(), chi.URLParam(r, "id"), req.TargetTeamID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, MoveMembersResponse{Moved: moved})
}

// AssignEmployeeTeam: пустой team_id оставляет сотрудника без команды
func (h *Handler) AssignEmployeeTeam(w http.ResponseWriter, r *http.Request) {
	var req AssignTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	user, err := h.crmService.AssignEmployee(r.Context(), chi.URLParam(r, "id"), req.TeamID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, domainUserToHTTP(user))
}

func (h *Handler) MyTeam(w http.ResponseWriter, r *http.Request) {
	session, _ := CurrentSession(r)

	team, err := h.crmService.TeamOfEmployee(r.Context(), session.UserID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, domainTeamToHTTP(team))
}

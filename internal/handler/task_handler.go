package handler

import (
	"net/http"

	"github.com/bagdasarian/crm-service/internal/domain"
	"github.com/bagdasarian/crm-service/internal/service"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	dueDate, err := parseDate(req.DueDate, h.loc)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), domain.CreateTaskCommand{
		Title:          req.Title,
		Description:    req.Description,
		TeamID:         req.TeamID,
		CommissionRate: req.CommissionRate,
		DueDate:        dueDate,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, h.domainTaskToHTTP(task))
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.taskService.GetTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.domainTaskToHTTP(task))
}

// ListTasks поддерживает фильтры ?status= и ?team_id=
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	var filter domain.TaskFilter

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := domain.ParseStatus(raw)
		if !ok {
			h.handleError(w, r, domain.NewValidationError("unknown status %q", raw))
			return
		}
		filter.Status = &status
	}
	if teamID := r.URL.Query().Get("team_id"); teamID != "" {
		filter.TeamID = &teamID
	}

	tasks, err := h.taskService.ListTasks(r.Context(), filter)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TasksResponse{Tasks: h.domainTasksToHTTP(tasks)})
}

func (h *Handler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	var req CompleteTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	method, ok := domain.ParsePaymentMethod(req.PaymentMethod)
	if !ok {
		h.handleError(w, r, domain.NewValidationError("payment_method must be cash or card"))
		return
	}

	receipt, err := h.taskService.CompleteTask(r.Context(), chi.URLParam(r, "id"), domain.CompleteTaskCommand{
		AmountCharged: req.AmountCharged,
		Method:        method,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, CompleteTaskResponse{
		Task:       h.domainTaskToHTTP(receipt.Task),
		Commission: service.FormatMoney(receipt.Commission),
		Total:      service.FormatMoney(receipt.Total),
	})
}

func (h *Handler) ReassignTask(w http.ResponseWriter, r *http.Request) {
	var req ReassignTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	task, err := h.taskService.ReassignTeam(r.Context(), chi.URLParam(r, "id"), req.TeamID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.domainTaskToHTTP(task))
}

func (h *Handler) AddTaskObservation(w http.ResponseWriter, r *http.Request) {
	var req ObservationRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	task, err := h.taskService.AddObservation(r.Context(), chi.URLParam(r, "id"), req.Observation)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.domainTaskToHTTP(task))
}

func (h *Handler) RescheduleTask(w http.ResponseWriter, r *http.Request) {
	var req RescheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	dueDate, err := parseDate(req.DueDate, h.loc)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	task, err := h.taskService.Reschedule(r.Context(), chi.URLParam(r, "id"), dueDate)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.domainTaskToHTTP(task))
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.taskService.DeleteTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) MyTasks(w http.ResponseWriter, r *http.Request) {
	session, _ := CurrentSession(r)

	tasks, err := h.crmService.TasksForEmployee(r.Context(), session.UserID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TasksResponse{Tasks: h.domainTasksToHTTP(tasks)})
}

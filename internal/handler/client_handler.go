package handler

import (
	"net/http"

	"github.com/bagdasarian/crm-service/internal/domain"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req ClientRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	client, err := h.clientService.CreateClient(r.Context(), domain.CreateClientCommand{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Needs:   req.Needs,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, domainClientToHTTP(client))
}

func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	client, err := h.clientService.GetClient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, domainClientToHTTP(client))
}

func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clientService.ListClients(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ClientsResponse{Clients: domainClientsToHTTP(clients)})
}

// SearchClients требует параметр nombre; пустое значение возвращает всех клиентов
func (h *Handler) SearchClients(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !query.Has("nombre") {
		h.handleError(w, r, domain.NewValidationError("nombre parameter is required"))
		return
	}

	clients, err := h.crmService.SearchClients(r.Context(), query.Get("nombre"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ClientsResponse{Clients: domainClientsToHTTP(clients)})
}

func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	var req ClientRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	client, err := h.clientService.UpdateClient(r.Context(), chi.URLParam(r, "id"), domain.UpdateClientCommand{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Needs:   req.Needs,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, domainClientToHTTP(client))
}

func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := h.clientService.DeleteClient(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"net/http"

	"github.com/bagdasarian/crm-service/internal/domain"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListCommissions(w http.ResponseWriter, r *http.Request) {
	reports, err := h.crmService.CommissionReports(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	result := make([]CommissionReportResponse, 0, len(reports))
	for _, report := range reports {
		result = append(result, commissionReportToHTTP(report))
	}

	writeJSON(w, http.StatusOK, CommissionReportsResponse{Reports: result})
}

// GetCommission доступен администратору и самому сотруднику
func (h *Handler) GetCommission(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	session, _ := CurrentSession(r)
	if !session.IsAdmin() && session.UserID != employeeID {
		h.handleError(w, r, domain.ErrForbidden)
		return
	}

	report, err := h.crmService.CommissionReport(r.Context(), employeeID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, commissionReportToHTTP(report))
}

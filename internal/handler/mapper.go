package handler

import (
	"time"

	"github.com/bagdasarian/crm-service/internal/domain"
	"github.com/bagdasarian/crm-service/internal/presence"
	"github.com/bagdasarian/crm-service/internal/service"
)

const dateLayout = "2006-01-02"

// parseDate принимает дату (YYYY-MM-DD, в часовом поясе сервиса) или RFC3339
func parseDate(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, domain.NewValidationError("due_date is required")
	}
	if t, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, domain.NewValidationError("due_date must be YYYY-MM-DD or RFC3339")
	}
	return t, nil
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func domainUserToHTTP(user *domain.User) UserResponse {
	var lastLogin *string
	if user.LastLogin != nil {
		s := formatTime(*user.LastLogin)
		lastLogin = &s
	}

	return UserResponse{
		UserID:      user.ID,
		Username:    user.Username,
		Role:        string(user.Role),
		TeamID:      user.TeamID,
		IsConnected: user.IsConnected,
		LastLogin:   lastLogin,
	}
}

func domainUsersToHTTP(users []*domain.User) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, domainUserToHTTP(u))
	}
	return result
}

func snapshotToHTTP(snap presence.Snapshot) PresenceResponse {
	var loadedAt *string
	if !snap.LoadedAt.IsZero() {
		s := formatTime(snap.LoadedAt)
		loadedAt = &s
	}
	return PresenceResponse{
		Employees: domainUsersToHTTP(snap.Employees),
		Connected: domainUsersToHTTP(snap.Connected),
		LoadedAt:  loadedAt,
	}
}

func domainClientToHTTP(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:  c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		Needs:     c.Needs,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}

func domainClientsToHTTP(clients []*domain.Client) []ClientResponse {
	result := make([]ClientResponse, 0, len(clients))
	for _, c := range clients {
		result = append(result, domainClientToHTTP(c))
	}
	return result
}

func domainTeamToHTTP(team *domain.Team) TeamResponse {
	members := team.Members
	if members == nil {
		members = []string{}
	}
	return TeamResponse{
		TeamID:    team.ID,
		Name:      team.Name,
		Color:     team.Color,
		Members:   members,
		CreatedAt: formatTime(team.CreatedAt),
		UpdatedAt: formatTime(team.UpdatedAt),
	}
}

func domainTeamsToHTTP(teams []*domain.Team) []TeamResponse {
	result := make([]TeamResponse, 0, len(teams))
	for _, t := range teams {
		result = append(result, domainTeamToHTTP(t))
	}
	return result
}

func (h *Handler) domainTaskToHTTP(task *domain.Task) TaskResponse {
	resp := TaskResponse{
		TaskID:         task.ID,
		Title:          task.Title,
		Description:    task.Description,
		Status:         string(task.Status),
		TeamID:         task.TeamID,
		CommissionRate: task.CommissionRate.String(),
		DueDate:        task.DueDate.In(h.loc).Format(dateLayout),
		Observation:    task.Observation,
		CreatedAt:      formatTime(task.CreatedAt),
		UpdatedAt:      formatTime(task.UpdatedAt),
	}
	if task.Payment != nil {
		amount := service.FormatMoney(task.Payment.AmountCharged)
		method := string(task.Payment.Method)
		resp.AmountCharged = &amount
		resp.PaymentMethod = &method
	}
	return resp
}

func (h *Handler) domainTasksToHTTP(tasks []*domain.Task) []TaskResponse {
	result := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		result = append(result, h.domainTaskToHTTP(t))
	}
	return result
}

func commissionReportToHTTP(report *domain.CommissionReport) CommissionReportResponse {
	lines := make([]CommissionLineResponse, 0, len(report.Lines))
	for _, line := range report.Lines {
		lines = append(lines, CommissionLineResponse{
			TaskID:     line.Task.ID,
			Title:      line.Task.Title,
			Amount:     service.FormatMoney(line.Amount),
			Commission: service.FormatMoney(line.Commission),
			Total:      service.FormatMoney(line.Total),
		})
	}

	return CommissionReportResponse{
		EmployeeID:      report.EmployeeID,
		Username:        report.Username,
		Lines:           lines,
		TotalAmount:     service.FormatMoney(report.TotalAmount),
		TotalCommission: service.FormatMoney(report.TotalCommission),
		GrandTotal:      service.FormatMoney(report.GrandTotal),
	}
}

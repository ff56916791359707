package handler

import "github.com/shopspring/decimal"

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UserResponse struct {
	UserID      string  `json:"user_id"`
	Username    string  `json:"username"`
	Role        string  `json:"role"`
	TeamID      *string `json:"team_id"`
	IsConnected bool    `json:"is_connected"`
	LastLogin   *string `json:"last_login,omitempty"`
}

type UsersResponse struct {
	Users []UserResponse `json:"users"`
}

type SessionResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type PresenceResponse struct {
	Employees []UserResponse `json:"employees"`
	Connected []UserResponse `json:"connected"`
	LoadedAt  *string        `json:"loaded_at,omitempty"`
}

type ClientRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Needs   string `json:"needs"`
}

type ClientResponse struct {
	ClientID  string `json:"client_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Needs     string `json:"needs"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ClientsResponse struct {
	Clients []ClientResponse `json:"clients"`
}

type TeamRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type TeamResponse struct {
	TeamID    string   `json:"team_id"`
	Name      string   `json:"name"`
	Color     string   `json:"color"`
	Members   []string `json:"members"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

type TeamsResponse struct {
	Teams []TeamResponse `json:"teams"`
}

type TeamMembersResponse struct {
	Members []string `json:"members"`
}

type TeamMemberRequest struct {
	EmployeeID string `json:"employee_id"`
}

type MoveMembersRequest struct {
	TargetTeamID string `json:"target_team_id"`
}

type MoveMembersResponse struct {
	Moved []string `json:"moved"`
}

type DissolveTeamResponse struct {
	Removed []string `json:"removed"`
}

type AssignTeamRequest struct {
	TeamID string `json:"team_id"`
}

type CreateTaskRequest struct {
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	TeamID         string          `json:"team_id"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	DueDate        string          `json:"due_date"`
}

type CompleteTaskRequest struct {
	AmountCharged decimal.Decimal `json:"amount_charged"`
	PaymentMethod string          `json:"payment_method"`
}

type ReassignTaskRequest struct {
	TeamID string `json:"team_id"`
}

type ObservationRequest struct {
	Observation string `json:"observation"`
}

type RescheduleRequest struct {
	DueDate string `json:"due_date"`
}

type TaskResponse struct {
	TaskID         string  `json:"task_id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Status         string  `json:"status"`
	TeamID         *string `json:"team_id"`
	CommissionRate string  `json:"commission_rate"`
	DueDate        string  `json:"due_date"`
	Observation    string  `json:"observation"`
	AmountCharged  *string `json:"amount_charged,omitempty"`
	PaymentMethod  *string `json:"payment_method,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type TasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

type CompleteTaskResponse struct {
	Task       TaskResponse `json:"task"`
	Commission string       `json:"commission"`
	Total      string       `json:"total"`
}

type CommissionLineResponse struct {
	TaskID     string `json:"task_id"`
	Title      string `json:"title"`
	Amount     string `json:"amount"`
	Commission string `json:"commission"`
	Total      string `json:"total"`
}

type CommissionReportResponse struct {
	EmployeeID      string                   `json:"employee_id"`
	Username        string                   `json:"username"`
	Lines           []CommissionLineResponse `json:"lines"`
	TotalAmount     string                   `json:"total_amount"`
	TotalCommission string                   `json:"total_commission"`
	GrandTotal      string                   `json:"grand_total"`
}

type CommissionReportsResponse struct {
	Reports []CommissionReportResponse `json:"reports"`
}

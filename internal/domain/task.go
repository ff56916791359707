package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
)

// ParseStatus принимает также испанские значения (pendiente, completada, vencida)
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "pendiente":
		return StatusPending, true
	case "completed", "completada":
		return StatusCompleted, true
	case "overdue", "vencida":
		return StatusOverdue, true
	default:
		return "", false
	}
}

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash", "efectivo":
		return PaymentCash, true
	case "card", "tarjeta":
		return PaymentCard, true
	default:
		return "", false
	}
}

// Payment - результат оплаты. Сумма и способ существуют только вместе.
type Payment struct {
	AmountCharged decimal.Decimal
	Method        PaymentMethod
}

type Task struct {
	ID             string
	Title          string
	Description    string
	Status         Status
	TeamID         *string
	CommissionRate decimal.Decimal
	DueDate        time.Time
	Observation    string
	Payment        *Payment
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type CreateTaskCommand struct {
	Title          string
	Description    string
	TeamID         string
	CommissionRate decimal.Decimal
	DueDate        time.Time
}

type CompleteTaskCommand struct {
	AmountCharged decimal.Decimal
	Method        PaymentMethod
}

type TaskFilter struct {
	Status *Status
	TeamID *string
}

// CommissionLine - строка отчета о комиссии по завершенной задаче
type CommissionLine struct {
	Task       *Task
	Amount     decimal.Decimal
	Commission decimal.Decimal
	Total      decimal.Decimal
}

type CommissionReport struct {
	EmployeeID      string
	Username        string
	Lines           []CommissionLine
	TotalAmount     decimal.Decimal
	TotalCommission decimal.Decimal
	GrandTotal      decimal.Decimal
}

// CompletionReceipt возвращается при завершении задачи
type CompletionReceipt struct {
	Task       *Task
	Commission decimal.Decimal
	Total      decimal.Decimal
}

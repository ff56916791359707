package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// ParseRole принимает также испанские значения из старых клиентов
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, true
	case "employee", "empleado", "":
		return RoleEmployee, true
	default:
		return "", false
	}
}

// User - учетная запись (сотрудник или администратор).
// TeamID - ссылка сотрудника на его команду, nil если команды нет.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	TeamID       *string
	IsConnected  bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type RegisterUserCommand struct {
	Username string
	Password string
	Role     Role
}

// Session - явный объект сессии, который передается обработчикам команд
type Session struct {
	UserID   string
	Username string
	Role     Role
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

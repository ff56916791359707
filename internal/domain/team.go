package domain

import "time"

// Team - бригада сотрудников. Members - неупорядоченное множество ID сотрудников.
type Team struct {
	ID        string
	Name      string
	Color     string
	Members   []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasMember проверяет, входит ли сотрудник в состав команды
func (t *Team) HasMember(employeeID string) bool {
	for _, id := range t.Members {
		if id == employeeID {
			return true
		}
	}
	return false
}

type CreateTeamCommand struct {
	Name  string
	Color string
}

type UpdateTeamCommand struct {
	Name  string
	Color string
}

// DefaultTeamColor используется, если цвет не передан
const DefaultTeamColor = "#000000"

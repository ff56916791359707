package domain

import "time"

type Client struct {
	ID        string
	Name      string
	Phone     string
	Address   string
	Needs     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateClientCommand struct {
	Name    string
	Phone   string
	Address string
	Needs   string
}

type UpdateClientCommand struct {
	Name    string
	Phone   string
	Address string
	Needs   string
}

package entity

import "time"

// Employee representa um funcionário da oficina (mecânico, executor de OS).
// Não faz login; quem acessa o sistema é User.
type Employee struct {
	ID        string
	CompanyID string
	Name      string
	Phone     string
	Email     string
	HiredOn   *time.Time // data de ingresso, opcional
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

package entity

import "time"

// Client representa um cliente da oficina (dono dos veículos).
// Name é gravado em maiúsculas para busca e deduplicação consistentes.
type Client struct {
	ID        string
	CompanyID string
	Name      string
	Phone     string
	Email     string
	Document  string // CPF/CNPJ sem máscara, opcional

	CEP      string
	Street   string
	Number   string
	District string
	City     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

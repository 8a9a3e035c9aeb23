package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateClientRequest cadastro de cliente. Nome é gravado em maiúsculas.
type CreateClientRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Phone    string `json:"phone"`
	Email    string `json:"email" validate:"omitempty,email"`
	Document string `json:"document"` // CPF ou CNPJ, com ou sem máscara
	CEP      string `json:"cep"`
	Street   string `json:"street"`
	Number   string `json:"number"`
	District string `json:"district"`
	City     string `json:"city"`
}

// UpdateClientRequest atualização parcial do cliente.
type UpdateClientRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Document *string `json:"document"`
	CEP      *string `json:"cep"`
	Street   *string `json:"street"`
	Number   *string `json:"number"`
	District *string `json:"district"`
	City     *string `json:"city"`
}

// ClientResponse saída de um cliente.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Document  string    `json:"document,omitempty"`
	CEP       string    `json:"cep,omitempty"`
	Street    string    `json:"street,omitempty"`
	Number    string    `json:"number,omitempty"`
	District  string    `json:"district,omitempty"`
	City      string    `json:"city,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientDetailResponse cliente com veículos e o resumo de OS em aberto.
type ClientDetailResponse struct {
	Client      ClientResponse    `json:"client"`
	Vehicles    []VehicleResponse `json:"vehicles"`
	OpenOrders  int               `json:"open_orders"`
	OpenBalance decimal.Decimal   `json:"open_balance"`
}

// ClientListResponse lista paginada de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// CreateVehicleRequest cadastro de veículo. Placa única por empresa.
type CreateVehicleRequest struct {
	ClientID string `json:"client_id" validate:"required,uuid"`
	Type     string `json:"type" validate:"required,oneof=MOTO CARRO CAMINHAO"`
	Plate    string `json:"plate" validate:"required,min=1,max=12"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Year     string `json:"year"` // texto livre, aceita "2023/2024"
	Color    string `json:"color"`
	Mileage  int    `json:"mileage" validate:"min=0"`
}

// UpdateVehicleRequest atualização parcial do veículo.
type UpdateVehicleRequest struct {
	Type    *string `json:"type" validate:"omitempty,oneof=MOTO CARRO CAMINHAO"`
	Plate   *string `json:"plate" validate:"omitempty,min=1,max=12"`
	Brand   *string `json:"brand"`
	Model   *string `json:"model"`
	Year    *string `json:"year"`
	Color   *string `json:"color"`
	Mileage *int    `json:"mileage" validate:"omitempty,min=0"`
}

// VehicleResponse saída de um veículo.
type VehicleResponse struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	Type      string    `json:"type"`
	Plate     string    `json:"plate"`
	Brand     string    `json:"brand,omitempty"`
	Model     string    `json:"model,omitempty"`
	Year      string    `json:"year,omitempty"`
	Color     string    `json:"color,omitempty"`
	Mileage   int       `json:"mileage"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VehicleListResponse lista paginada de veículos.
type VehicleListResponse struct {
	Items []VehicleResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

package dto

import "time"

// CreateEmployeeRequest cadastro de um funcionário (mecânico) da oficina.
type CreateEmployeeRequest struct {
	Name    string  `json:"name" validate:"required"`
	Phone   string  `json:"phone"`
	Email   string  `json:"email" validate:"omitempty,email"`
	HiredOn *string `json:"hired_on"` // "2006-01-02", opcional
}

// UpdateEmployeeRequest atualização parcial de um funcionário.
type UpdateEmployeeRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" validate:"omitempty,email"`
	HiredOn *string `json:"hired_on"`
}

// EmployeeResponse representação pública de um funcionário.
type EmployeeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	HiredOn   string    `json:"hired_on,omitempty"` // data "2006-01-02"
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// EmployeeListResponse funcionários da empresa.
type EmployeeListResponse struct {
	Items []EmployeeResponse `json:"items"`
	Total int                `json:"total"`
}

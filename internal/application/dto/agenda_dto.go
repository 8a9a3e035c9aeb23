package dto

import "time"

// CreateAppointmentRequest agendamento com cliente e veículo já cadastrados.
// Time vazio = compromisso de dia inteiro.
type CreateAppointmentRequest struct {
	ClientID  string `json:"client_id" validate:"required,uuid"`
	VehicleID string `json:"vehicle_id" validate:"required,uuid"`
	Date      string `json:"date" validate:"required"` // "2006-01-02"
	Time      string `json:"time"`                     // "15:04"
	Type      string `json:"type" validate:"omitempty,oneof=ENTREGA RETIRADA NOTA"`
	Notes     string `json:"notes"`
}

// QuickAppointmentRequest criação rápida: texto livre, cadastro mínimo na hora.
// Sem placa, o veículo nasce com placa temporária.
type QuickAppointmentRequest struct {
	ClientName  string `json:"client_name" validate:"required,min=1,max=200"`
	Phone       string `json:"phone"`
	Plate       string `json:"plate"`
	VehicleType string `json:"vehicle_type"` // padrão CARRO
	Model       string `json:"model"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required"`
	Type        string `json:"type"` // padrão NOTA
	Notes       string `json:"notes"`
}

// UpdateAppointmentRequest remarca ou edita um compromisso.
type UpdateAppointmentRequest struct {
	Date  *string `json:"date"`
	Time  *string `json:"time"`
	Type  *string `json:"type" validate:"omitempty,oneof=ENTREGA RETIRADA NOTA"`
	Notes *string `json:"notes"`
}

// AppointmentResponse compromisso com cliente e veículo resolvidos.
type AppointmentResponse struct {
	ID           string    `json:"id"`
	ClientID     string    `json:"client_id"`
	ClientName   string    `json:"client_name"`
	ClientPhone  string    `json:"client_phone,omitempty"`
	VehicleID    string    `json:"vehicle_id"`
	VehiclePlate string    `json:"vehicle_plate"`
	VehicleModel string    `json:"vehicle_model,omitempty"`
	Date         string    `json:"date"`
	Time         string    `json:"time,omitempty"`
	Type         string    `json:"type"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// AppointmentListResponse compromissos do período consultado.
type AppointmentListResponse struct {
	From  string                `json:"from"`
	To    string                `json:"to"`
	Items []AppointmentResponse `json:"items"`
}

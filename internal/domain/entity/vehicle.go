package entity

import "time"

// Tipos de veículo aceitos.
const (
	VehicleMoto     = "MOTO"
	VehicleCarro    = "CARRO"
	VehicleCaminhao = "CAMINHAO"
)

// Vehicle representa um veículo de um cliente.
// Plate é gravada em maiúsculas e é única por empresa; veículos entram pela
// agenda rápida com placa provisória "TEMP-xxxxxx" quando o atendente não a tem em mãos.
type Vehicle struct {
	ID        string
	CompanyID string
	ClientID  string
	Type      string // MOTO, CARRO, CAMINHAO
	Plate     string
	Brand     string
	Model     string
	Year      string // texto livre, aceita "2023/2024"
	Color     string
	Mileage   int // km no último atendimento
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidVehicleType informa se o tipo é um dos aceitos.
func ValidVehicleType(t string) bool {
	return t == VehicleMoto || t == VehicleCarro || t == VehicleCaminhao
}

package repository

import (
	"time"

	"github.com/alpsistemas/oficina-api/internal/domain/entity"
)

// AppointmentSummary linha da agenda com cliente e veículo resolvidos,
// pronta para o calendário.
type AppointmentSummary struct {
	Appointment  entity.Appointment
	ClientName   string
	ClientPhone  string
	VehiclePlate string
	VehicleModel string
}

// AppointmentRepository define o porto de persistência para Appointment (agenda).
type AppointmentRepository interface {
	Create(appointment *entity.Appointment) error
	GetByID(id string) (*entity.Appointment, error)
	Update(appointment *entity.Appointment) error
	Delete(id string) error
	// ListBetween devolve os compromissos com data em [from, to], ordenados por data e hora.
	ListBetween(companyID string, from, to time.Time) ([]AppointmentSummary, error)
}

package entity

import "time"

// Tipos de compromisso da agenda.
const (
	AgendaEntrega  = "ENTREGA"  // devolução do veículo ao cliente
	AgendaRetirada = "RETIRADA" // busca do veículo
	AgendaNota     = "NOTA"     // lembrete livre
)

// Appointment representa um compromisso na agenda da oficina.
// A combinação (empresa, cliente, veículo, data, hora) é única; remarcar é
// atualizar o registro, não duplicá-lo.
type Appointment struct {
	ID        string
	CompanyID string
	ClientID  string
	VehicleID string
	Date      time.Time // somente a data
	TimeOfDay string    // "HH:MM"; vazio = dia inteiro
	Type      string    // ENTREGA, RETIRADA, NOTA
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidAgendaType informa se o tipo é um dos aceitos.
func ValidAgendaType(t string) bool {
	return t == AgendaEntrega || t == AgendaRetirada || t == AgendaNota
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/alpsistemas/oficina-api/internal/domain"
	"github.com/alpsistemas/oficina-api/internal/domain/entity"
	"github.com/alpsistemas/oficina-api/internal/domain/repository"
)

var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

const appointmentColumns = `
	id, company_id, client_id, vehicle_id, date, at_time, type, notes, created_at, updated_at`

// AppointmentRepo implementação de AppointmentRepository (usável com pool ou tx).
type AppointmentRepo struct {
	q Querier
}

// NewAppointmentRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewAppointmentRepository(q Querier) *AppointmentRepo {
	return &AppointmentRepo{q: q}
}

// Create persiste um compromisso. A 5-upla duplicada vira ErrDuplicate.
func (r *AppointmentRepo) Create(appointment *entity.Appointment) error {
	query := `
		INSERT INTO appointments (id, company_id, client_id, vehicle_id, date, at_time, type, notes,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		appointment.ID, appointment.CompanyID, appointment.ClientID, appointment.VehicleID,
		appointment.Date, appointment.TimeOfDay, appointment.Type, appointment.Notes,
		appointment.CreatedAt, appointment.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

// GetByID busca um compromisso por ID.
func (r *AppointmentRepo) GetByID(id string) (*entity.Appointment, error) {
	query := `SELECT` + appointmentColumns + ` FROM appointments WHERE id = $1`
	var a entity.Appointment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.CompanyID, &a.ClientID, &a.VehicleID, &a.Date, &a.TimeOfDay, &a.Type, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return &a, nil
}

// Update remarca/edita um compromisso.
func (r *AppointmentRepo) Update(appointment *entity.Appointment) error {
	query := `
		UPDATE appointments SET date = $2, at_time = $3, type = $4, notes = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		appointment.ID, appointment.Date, appointment.TimeOfDay, appointment.Type,
		appointment.Notes, appointment.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update appointment: %w", err)
	}
	return nil
}

// Delete remove um compromisso.
func (r *AppointmentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	return nil
}

// ListBetween devolve os compromissos com data em [from, to] já com cliente e
// veículo resolvidos, ordenados por data e hora.
func (r *AppointmentRepo) ListBetween(companyID string, from, to time.Time) ([]repository.AppointmentSummary, error) {
	query := `
		SELECT a.id, a.company_id, a.client_id, a.vehicle_id, a.date, a.at_time, a.type, a.notes,
			a.created_at, a.updated_at,
			c.name, c.phone, v.plate, v.model
		FROM appointments a
		JOIN clients c ON c.id = a.client_id
		JOIN vehicles v ON v.id = a.vehicle_id
		WHERE a.company_id = $1 AND a.date BETWEEN $2::date AND $3::date
		ORDER BY a.date, a.at_time`
	rows, err := r.q.Query(context.Background(), query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var list []repository.AppointmentSummary
	for rows.Next() {
		var s repository.AppointmentSummary
		a := &s.Appointment
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.ClientID, &a.VehicleID, &a.Date, &a.TimeOfDay,
			&a.Type, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
			&s.ClientName, &s.ClientPhone, &s.VehiclePlate, &s.VehicleModel); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

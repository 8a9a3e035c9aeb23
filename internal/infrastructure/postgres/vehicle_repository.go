package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/alpsistemas/oficina-api/internal/domain"
	"github.com/alpsistemas/oficina-api/internal/domain/entity"
	"github.com/alpsistemas/oficina-api/internal/domain/repository"
)

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

const vehicleColumns = `
	v.id, v.company_id, v.client_id, v.type, v.plate, v.brand, v.model, v.year, v.color,
	v.mileage, v.created_at, v.updated_at`

// VehicleRepo implementação de VehicleRepository (usável com pool ou tx).
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

// Create persiste um novo veículo. Placa duplicada na empresa vira ErrDuplicate.
func (r *VehicleRepo) Create(vehicle *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, company_id, client_id, type, plate, brand, model, year, color,
			mileage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		vehicle.ID, vehicle.CompanyID, vehicle.ClientID, vehicle.Type, vehicle.Plate,
		vehicle.Brand, vehicle.Model, vehicle.Year, vehicle.Color, vehicle.Mileage,
		vehicle.CreatedAt, vehicle.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// GetByID busca um veículo por ID.
func (r *VehicleRepo) GetByID(id string) (*entity.Vehicle, error) {
	query := `SELECT` + vehicleColumns + ` FROM vehicles v WHERE v.id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByPlate busca pela placa exata (já em maiúsculas) dentro da empresa.
func (r *VehicleRepo) GetByPlate(companyID, plate string) (*entity.Vehicle, error) {
	query := `SELECT` + vehicleColumns + ` FROM vehicles v WHERE v.company_id = $1 AND v.plate = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, plate))
}

// Update atualiza um veículo.
func (r *VehicleRepo) Update(vehicle *entity.Vehicle) error {
	query := `
		UPDATE vehicles SET client_id = $2, type = $3, plate = $4, brand = $5, model = $6,
			year = $7, color = $8, mileage = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		vehicle.ID, vehicle.ClientID, vehicle.Type, vehicle.Plate, vehicle.Brand, vehicle.Model,
		vehicle.Year, vehicle.Color, vehicle.Mileage, vehicle.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update vehicle: %w", err)
	}
	return nil
}

// ListByClient lista os veículos de um cliente.
func (r *VehicleRepo) ListByClient(clientID string) ([]*entity.Vehicle, error) {
	query := `SELECT` + vehicleColumns + ` FROM vehicles v WHERE v.client_id = $1 ORDER BY v.plate`
	rows, err := r.q.Query(context.Background(), query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()
	return collectVehicles(rows)
}

// Search busca por placa, marca, modelo ou nome do cliente.
func (r *VehicleRepo) Search(companyID, q, clientID string, limit, offset int) ([]*entity.Vehicle, error) {
	query := `SELECT` + vehicleColumns + vehicleSearchFrom
	args := []any{companyID}
	query, args = appendVehicleFilters(query, args, q, clientID)
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY v.plate LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("search vehicles: %w", err)
	}
	defer rows.Close()
	return collectVehicles(rows)
}

// CountSearch conta o total da busca para a paginação.
func (r *VehicleRepo) CountSearch(companyID, q, clientID string) (int, error) {
	query := `SELECT COUNT(*)` + vehicleSearchFrom
	args := []any{companyID}
	query, args = appendVehicleFilters(query, args, q, clientID)

	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count vehicles: %w", err)
	}
	return total, nil
}

const vehicleSearchFrom = `
	FROM vehicles v JOIN clients c ON c.id = v.client_id
	WHERE v.company_id = $1`

func appendVehicleFilters(query string, args []any, q, clientID string) (string, []any) {
	if q != "" {
		args = append(args, "%"+q+"%")
		n := len(args)
		query += fmt.Sprintf(` AND (v.plate ILIKE $%d OR v.brand ILIKE $%d OR v.model ILIKE $%d OR c.name ILIKE $%d)`, n, n, n, n)
	}
	if clientID != "" {
		args = append(args, clientID)
		query += fmt.Sprintf(` AND v.client_id = $%d`, len(args))
	}
	return query, args
}

func collectVehicles(rows pgx.Rows) ([]*entity.Vehicle, error) {
	var list []*entity.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func (r *VehicleRepo) scanOne(row pgx.Row) (*entity.Vehicle, error) {
	v, err := scanVehicle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return v, nil
}

func scanVehicle(row pgx.Row) (*entity.Vehicle, error) {
	var v entity.Vehicle
	err := row.Scan(
		&v.ID, &v.CompanyID, &v.ClientID, &v.Type, &v.Plate, &v.Brand, &v.Model, &v.Year,
		&v.Color, &v.Mileage, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

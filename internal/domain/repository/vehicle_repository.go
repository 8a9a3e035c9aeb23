package repository

import "github.com/alpsistemas/oficina-api/internal/domain/entity"

// VehicleRepository define o porto de persistência para Vehicle.
type VehicleRepository interface {
	Create(vehicle *entity.Vehicle) error
	GetByID(id string) (*entity.Vehicle, error)
	// GetByPlate busca pela placa exata (já em maiúsculas) dentro da empresa.
	GetByPlate(companyID, plate string) (*entity.Vehicle, error)
	Update(vehicle *entity.Vehicle) error
	ListByClient(clientID string) ([]*entity.Vehicle, error)
	// Search busca por placa, marca, modelo ou nome do cliente; clientID filtra quando não vazio.
	Search(companyID, q, clientID string, limit, offset int) ([]*entity.Vehicle, error)
	CountSearch(companyID, q, clientID string) (int, error)
}

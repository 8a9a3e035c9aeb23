package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/domain"
	"github.com/alpsistemas/oficina-api/internal/domain/entity"
	"github.com/alpsistemas/oficina-api/internal/domain/repository"
	"github.com/google/uuid"
)

// VehicleUseCase cadastro e consulta de veículos dos clientes.
type VehicleUseCase struct {
	repo       repository.VehicleRepository
	clientRepo repository.ClientRepository
}

// NewVehicleUseCase constrói o caso de uso de veículos.
func NewVehicleUseCase(repo repository.VehicleRepository, clientRepo repository.ClientRepository) *VehicleUseCase {
	return &VehicleUseCase{repo: repo, clientRepo: clientRepo}
}

// Search busca veículos por placa, marca, modelo ou nome do cliente.
// clientID restringe aos veículos de um cliente.
func (uc *VehicleUseCase) Search(companyID, q, clientID string, page dto.PageRequest) (*dto.VehicleListResponse, error) {
	page.DefaultPage()
	q = strings.TrimSpace(q)

	list, err := uc.repo.Search(companyID, q, clientID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountSearch(companyID, q, clientID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.VehicleResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *toVehicleResponse(v))
	}
	return &dto.VehicleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Create cadastra um veículo para um cliente da empresa. A placa vai para
// maiúsculas e precisa ser única na empresa.
func (uc *VehicleUseCase) Create(companyID string, in dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	plate := strings.ToUpper(strings.TrimSpace(in.Plate))
	if plate == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidVehicleType(in.Type) {
		return nil, fmt.Errorf("%w: tipo de veículo desconhecido %q", domain.ErrInvalidInput, in.Type)
	}
	if in.Mileage < 0 {
		return nil, domain.ErrInvalidInput
	}

	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	vehicle := &entity.Vehicle{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		ClientID:  client.ID,
		Type:      in.Type,
		Plate:     plate,
		Brand:     strings.TrimSpace(in.Brand),
		Model:     strings.TrimSpace(in.Model),
		Year:      strings.TrimSpace(in.Year),
		Color:     strings.TrimSpace(in.Color),
		Mileage:   in.Mileage,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(vehicle); err != nil {
		return nil, err
	}
	return toVehicleResponse(vehicle), nil
}

// Update altera um veículo da empresa. Trocar a placa repassa pela
// unicidade, ignorando o próprio veículo.
func (uc *VehicleUseCase) Update(companyID, vehicleID string, in dto.UpdateVehicleRequest) (*dto.VehicleResponse, error) {
	vehicle, err := uc.repo.GetByID(vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil || vehicle.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	if in.Type != nil {
		if !entity.ValidVehicleType(*in.Type) {
			return nil, fmt.Errorf("%w: tipo de veículo desconhecido %q", domain.ErrInvalidInput, *in.Type)
		}
		vehicle.Type = *in.Type
	}
	if in.Plate != nil {
		plate := strings.ToUpper(strings.TrimSpace(*in.Plate))
		if plate == "" {
			return nil, domain.ErrInvalidInput
		}
		if plate != vehicle.Plate {
			existing, err := uc.repo.GetByPlate(companyID, plate)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != vehicle.ID {
				return nil, fmt.Errorf("%w: placa %s já cadastrada", domain.ErrDuplicate, plate)
			}
		}
		vehicle.Plate = plate
	}
	if in.Brand != nil {
		vehicle.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.Model != nil {
		vehicle.Model = strings.TrimSpace(*in.Model)
	}
	if in.Year != nil {
		vehicle.Year = strings.TrimSpace(*in.Year)
	}
	if in.Color != nil {
		vehicle.Color = strings.TrimSpace(*in.Color)
	}
	if in.Mileage != nil {
		if *in.Mileage < 0 {
			return nil, domain.ErrInvalidInput
		}
		vehicle.Mileage = *in.Mileage
	}
	vehicle.UpdatedAt = time.Now()

	if err := uc.repo.Update(vehicle); err != nil {
		return nil, err
	}
	return toVehicleResponse(vehicle), nil
}

func toVehicleResponse(v *entity.Vehicle) *dto.VehicleResponse {
	if v == nil {
		return nil
	}
	return &dto.VehicleResponse{
		ID:        v.ID,
		ClientID:  v.ClientID,
		Type:      v.Type,
		Plate:     v.Plate,
		Brand:     v.Brand,
		Model:     v.Model,
		Year:      v.Year,
		Color:     v.Color,
		Mileage:   v.Mileage,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

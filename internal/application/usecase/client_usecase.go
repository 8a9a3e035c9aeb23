package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/domain"
	"github.com/alpsistemas/oficina-api/internal/domain/entity"
	"github.com/alpsistemas/oficina-api/internal/domain/repository"
	"github.com/alpsistemas/oficina-api/pkg/brdoc"
	"github.com/google/uuid"
)

// ClientUseCase cadastro e consulta de clientes da oficina.
type ClientUseCase struct {
	repo        repository.ClientRepository
	vehicleRepo repository.VehicleRepository
	orderRepo   repository.ServiceOrderRepository
}

// NewClientUseCase constrói o caso de uso de clientes.
func NewClientUseCase(repo repository.ClientRepository, vehicleRepo repository.VehicleRepository, orderRepo repository.ServiceOrderRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo, vehicleRepo: vehicleRepo, orderRepo: orderRepo}
}

// Search busca clientes por nome, telefone, documento ou placa de veículo.
func (uc *ClientUseCase) Search(companyID, q string, page dto.PageRequest) (*dto.ClientListResponse, error) {
	page.DefaultPage()
	q = strings.TrimSpace(q)

	list, err := uc.repo.Search(companyID, q, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountSearch(companyID, q)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Create cadastra um cliente. O nome vai para maiúsculas e o documento é
// validado pelos dígitos verificadores.
func (uc *ClientUseCase) Create(companyID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	name := strings.ToUpper(strings.TrimSpace(in.Name))
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	document, err := brdoc.NormalizeTaxID(in.Document)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Document:  document,
		CEP:       strings.TrimSpace(in.CEP),
		Street:    strings.TrimSpace(in.Street),
		Number:    strings.TrimSpace(in.Number),
		District:  strings.TrimSpace(in.District),
		City:      strings.TrimSpace(in.City),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Get devolve o cliente com os veículos e o resumo das OS em aberto
// (quantidade e saldo devedor).
func (uc *ClientUseCase) Get(companyID, clientID string) (*dto.ClientDetailResponse, error) {
	client, err := uc.repo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	vehicles, err := uc.vehicleRepo.ListByClient(client.ID)
	if err != nil {
		return nil, err
	}
	openOrders, openBalance, err := uc.orderRepo.CountOpenByClient(client.ID)
	if err != nil {
		return nil, err
	}

	vs := make([]dto.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		vs = append(vs, *toVehicleResponse(v))
	}
	return &dto.ClientDetailResponse{
		Client:      *toClientResponse(client),
		Vehicles:    vs,
		OpenOrders:  openOrders,
		OpenBalance: openBalance,
	}, nil
}

// Update altera os dados do cliente.
func (uc *ClientUseCase) Update(companyID, clientID string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		name := strings.ToUpper(strings.TrimSpace(*in.Name))
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		client.Name = name
	}
	if in.Document != nil {
		document, err := brdoc.NormalizeTaxID(*in.Document)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		client.Document = document
	}
	if in.Phone != nil {
		client.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		client.Email = strings.TrimSpace(*in.Email)
	}
	if in.CEP != nil {
		client.CEP = strings.TrimSpace(*in.CEP)
	}
	if in.Street != nil {
		client.Street = strings.TrimSpace(*in.Street)
	}
	if in.Number != nil {
		client.Number = strings.TrimSpace(*in.Number)
	}
	if in.District != nil {
		client.District = strings.TrimSpace(*in.District)
	}
	if in.City != nil {
		client.City = strings.TrimSpace(*in.City)
	}
	client.UpdatedAt = time.Now()

	if err := uc.repo.Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Document:  c.Document,
		CEP:       c.CEP,
		Street:    c.Street,
		Number:    c.Number,
		District:  c.District,
		City:      c.City,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

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

// EmployeeUseCase funcionários da oficina (mecânicos). Não fazem login;
// existem para serem atribuídos a ordens de serviço.
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
}

// NewEmployeeUseCase constrói o caso de uso de funcionários.
func NewEmployeeUseCase(repo repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo}
}

// List devolve os funcionários da empresa; activeOnly filtra os atribuíveis.
func (uc *EmployeeUseCase) List(companyID string, activeOnly bool) (*dto.EmployeeListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, activeOnly)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEmployeeResponse(e))
	}
	return &dto.EmployeeListResponse{Items: items, Total: len(items)}, nil
}

// Create cadastra um funcionário.
func (uc *EmployeeUseCase) Create(companyID string, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	hiredOn, err := parseOptionalDate(in.HiredOn)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	employee := &entity.Employee{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		HiredOn:   hiredOn,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// Update altera os dados de um funcionário da empresa.
func (uc *EmployeeUseCase) Update(companyID, employeeID string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := uc.repo.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil || employee.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		employee.Name = name
	}
	if in.Phone != nil {
		employee.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		employee.Email = strings.TrimSpace(*in.Email)
	}
	if in.HiredOn != nil {
		hiredOn, err := parseOptionalDate(in.HiredOn)
		if err != nil {
			return nil, err
		}
		employee.HiredOn = hiredOn
	}
	employee.UpdatedAt = time.Now()

	if err := uc.repo.Update(employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// SetActive liga ou desliga um funcionário. Desativado, ele some das listas
// de atribuição mas continua nas OS antigas.
func (uc *EmployeeUseCase) SetActive(companyID, employeeID string, active bool) (*dto.EmployeeResponse, error) {
	employee, err := uc.repo.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil || employee.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	employee.Active = active
	employee.UpdatedAt = time.Now()
	if err := uc.repo.Update(employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// parseOptionalDate interpreta uma data "2006-01-02" opcional; vazia vira nil.
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, strings.TrimSpace(*s))
	if err != nil {
		return nil, fmt.Errorf("%w: data inválida %q (use %s)", domain.ErrInvalidInput, *s, dto.DateLayout)
	}
	return &t, nil
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	if e == nil {
		return nil
	}
	hiredOn := ""
	if e.HiredOn != nil {
		hiredOn = e.HiredOn.Format(dto.DateLayout)
	}
	return &dto.EmployeeResponse{
		ID:        e.ID,
		Name:      e.Name,
		Phone:     e.Phone,
		Email:     e.Email,
		HiredOn:   hiredOn,
		Active:    e.Active,
		CreatedAt: e.CreatedAt,
	}
}

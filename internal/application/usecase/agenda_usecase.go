package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/domain"
	"github.com/alpsistemas/oficina-api/internal/domain/entity"
	"github.com/alpsistemas/oficina-api/internal/domain/repository"
	"github.com/google/uuid"
)

// Valores gravados pela agenda rápida quando o atendente não informa o dado.
const (
	phonePlaceholder = "Não informado"
	modelPlaceholder = "Sem modelo"
)

// AgendaUseCase agenda de entregas, retiradas e lembretes da oficina.
type AgendaUseCase struct {
	repo        repository.AppointmentRepository
	clientRepo  repository.ClientRepository
	vehicleRepo repository.VehicleRepository
	tx          AgendaTxRunner
}

// NewAgendaUseCase constrói o caso de uso da agenda.
func NewAgendaUseCase(
	repo repository.AppointmentRepository,
	clientRepo repository.ClientRepository,
	vehicleRepo repository.VehicleRepository,
	tx AgendaTxRunner,
) *AgendaUseCase {
	return &AgendaUseCase{repo: repo, clientRepo: clientRepo, vehicleRepo: vehicleRepo, tx: tx}
}

// List devolve os compromissos do intervalo; sem intervalo, o mês corrente.
func (uc *AgendaUseCase) List(companyID, from, to string) (*dto.AppointmentListResponse, error) {
	fromDate, toDate, err := resolvePeriod(from, to)
	if err != nil {
		return nil, err
	}

	list, err := uc.repo.ListBetween(companyID, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AppointmentResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toAppointmentResponse(&s.Appointment, s.ClientName, s.ClientPhone, s.VehiclePlate, s.VehicleModel))
	}
	return &dto.AppointmentListResponse{
		From:  fromDate.Format(dto.DateLayout),
		To:    toDate.Format(dto.DateLayout),
		Items: items,
	}, nil
}

// Create agenda um compromisso para cliente e veículo já cadastrados.
// O mesmo cliente/veículo no mesmo dia e hora vira ErrDuplicate.
func (uc *AgendaUseCase) Create(companyID string, in dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	timeOfDay, err := parseTimeOfDay(in.Time)
	if err != nil {
		return nil, err
	}
	agendaType := in.Type
	if agendaType == "" {
		agendaType = entity.AgendaNota
	}
	if !entity.ValidAgendaType(agendaType) {
		return nil, fmt.Errorf("%w: tipo de compromisso desconhecido %q", domain.ErrInvalidInput, agendaType)
	}

	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	vehicle, err := uc.vehicleRepo.GetByID(in.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil || vehicle.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if vehicle.ClientID != client.ID {
		return nil, fmt.Errorf("%w: veículo não pertence ao cliente", domain.ErrInvalidInput)
	}

	now := time.Now()
	appointment := &entity.Appointment{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		ClientID:  client.ID,
		VehicleID: vehicle.ID,
		Date:      date,
		TimeOfDay: timeOfDay,
		Type:      agendaType,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(appointment); err != nil {
		return nil, err
	}
	return toAppointmentResponse(appointment, client.Name, client.Phone, vehicle.Plate, vehicle.Model), nil
}

// QuickCreate atende o balcão: nome livre, telefone e placa opcionais.
// Reaproveita cliente pelo nome e veículo pela placa; sem placa, cria o
// veículo com placa provisória. Tudo numa transação só.
func (uc *AgendaUseCase) QuickCreate(ctx context.Context, companyID string, in dto.QuickAppointmentRequest) (*dto.AppointmentResponse, error) {
	name := strings.ToUpper(strings.TrimSpace(in.ClientName))
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	timeOfDay, err := parseTimeOfDay(in.Time)
	if err != nil {
		return nil, err
	}
	if timeOfDay == "" {
		return nil, fmt.Errorf("%w: informe a hora", domain.ErrInvalidInput)
	}

	// Tipos fora da lista caem no padrão em vez de falhar; o balcão não para.
	vehicleType := in.VehicleType
	if !entity.ValidVehicleType(vehicleType) {
		vehicleType = entity.VehicleCarro
	}
	agendaType := in.Type
	if !entity.ValidAgendaType(agendaType) {
		agendaType = entity.AgendaNota
	}

	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		phone = phonePlaceholder
	}
	model := strings.TrimSpace(in.Model)
	if model == "" {
		model = modelPlaceholder
	}

	var appointment *entity.Appointment
	var client *entity.Client
	var vehicle *entity.Vehicle

	err = uc.tx.RunAgenda(ctx, func(
		clientRepo repository.ClientRepository,
		vehicleRepo repository.VehicleRepository,
		appointmentRepo repository.AppointmentRepository,
	) error {
		now := time.Now()

		c, err := clientRepo.GetByNameAndPhone(companyID, name, phone)
		if err != nil {
			return err
		}
		if c == nil {
			c = &entity.Client{
				ID:        uuid.New().String(),
				CompanyID: companyID,
				Name:      name,
				Phone:     phone,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := clientRepo.Create(c); err != nil {
				return err
			}
		}
		client = c

		plate := strings.ToUpper(strings.TrimSpace(in.Plate))
		if plate == "" {
			if plate, err = tempPlate(); err != nil {
				return err
			}
		}
		v, err := vehicleRepo.GetByPlate(companyID, plate)
		if err != nil {
			return err
		}
		if v != nil && v.ClientID != client.ID {
			return fmt.Errorf("%w: placa %s já vinculada a outro cliente", domain.ErrConflict, plate)
		}
		if v == nil {
			v = &entity.Vehicle{
				ID:        uuid.New().String(),
				CompanyID: companyID,
				ClientID:  client.ID,
				Type:      vehicleType,
				Plate:     plate,
				Model:     model,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := vehicleRepo.Create(v); err != nil {
				return err
			}
		}
		vehicle = v

		appointment = &entity.Appointment{
			ID:        uuid.New().String(),
			CompanyID: companyID,
			ClientID:  client.ID,
			VehicleID: vehicle.ID,
			Date:      date,
			TimeOfDay: timeOfDay,
			Type:      agendaType,
			Notes:     strings.TrimSpace(in.Notes),
			CreatedAt: now,
			UpdatedAt: now,
		}
		return appointmentRepo.Create(appointment)
	})
	if err != nil {
		return nil, err
	}
	return toAppointmentResponse(appointment, client.Name, client.Phone, vehicle.Plate, vehicle.Model), nil
}

// Update remarca ou edita um compromisso da empresa.
func (uc *AgendaUseCase) Update(companyID, appointmentID string, in dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := uc.repo.GetByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil || appointment.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	if in.Date != nil {
		date, err := parseDate(*in.Date)
		if err != nil {
			return nil, err
		}
		appointment.Date = date
	}
	if in.Time != nil {
		timeOfDay, err := parseTimeOfDay(*in.Time)
		if err != nil {
			return nil, err
		}
		appointment.TimeOfDay = timeOfDay
	}
	if in.Type != nil {
		if !entity.ValidAgendaType(*in.Type) {
			return nil, fmt.Errorf("%w: tipo de compromisso desconhecido %q", domain.ErrInvalidInput, *in.Type)
		}
		appointment.Type = *in.Type
	}
	if in.Notes != nil {
		appointment.Notes = strings.TrimSpace(*in.Notes)
	}
	appointment.UpdatedAt = time.Now()

	if err := uc.repo.Update(appointment); err != nil {
		return nil, err
	}

	client, err := uc.clientRepo.GetByID(appointment.ClientID)
	if err != nil {
		return nil, err
	}
	vehicle, err := uc.vehicleRepo.GetByID(appointment.VehicleID)
	if err != nil {
		return nil, err
	}
	clientName, clientPhone, plate, model := "", "", "", ""
	if client != nil {
		clientName, clientPhone = client.Name, client.Phone
	}
	if vehicle != nil {
		plate, model = vehicle.Plate, vehicle.Model
	}
	return toAppointmentResponse(appointment, clientName, clientPhone, plate, model), nil
}

// Delete remove um compromisso da empresa.
func (uc *AgendaUseCase) Delete(companyID, appointmentID string) error {
	appointment, err := uc.repo.GetByID(appointmentID)
	if err != nil {
		return err
	}
	if appointment == nil || appointment.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(appointment.ID)
}

// resolvePeriod interpreta o intervalo pedido (agenda, caixa, relatórios);
// vazio vira o mês corrente e uma ponta só vale pelas duas.
func resolvePeriod(from, to string) (time.Time, time.Time, error) {
	if from == "" && to == "" {
		now := time.Now()
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
		return first, first.AddDate(0, 1, -1), nil
	}
	if from == "" {
		from = to
	}
	if to == "" {
		to = from
	}
	fromDate, err := parseDate(from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	toDate, err := parseDate(to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if fromDate.After(toDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: intervalo invertido", domain.ErrInvalidInput)
	}
	return fromDate, toDate, nil
}

// parseDate interpreta uma data obrigatória "2006-01-02".
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dto.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: data inválida %q (use %s)", domain.ErrInvalidInput, s, dto.DateLayout)
	}
	return t, nil
}

// parseTimeOfDay valida "HH:MM"; vazio é aceito (compromisso de dia inteiro).
func parseTimeOfDay(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return "", fmt.Errorf("%w: hora inválida %q (use HH:MM)", domain.ErrInvalidInput, s)
	}
	return s, nil
}

// tempPlate gera uma placa provisória "TEMP-xxxxxx" para veículo sem placa.
func tempPlate() (string, error) {
	var b [3]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return "TEMP-" + strings.ToUpper(hex.EncodeToString(b[:])), nil
}

func toAppointmentResponse(a *entity.Appointment, clientName, clientPhone, plate, model string) *dto.AppointmentResponse {
	if a == nil {
		return nil
	}
	return &dto.AppointmentResponse{
		ID:           a.ID,
		ClientID:     a.ClientID,
		ClientName:   clientName,
		ClientPhone:  clientPhone,
		VehicleID:    a.VehicleID,
		VehiclePlate: plate,
		VehicleModel: model,
		Date:         a.Date.Format(dto.DateLayout),
		Time:         a.TimeOfDay,
		Type:         a.Type,
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt,
	}
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alpsistemas/oficina-api/internal/application/auth"
	"github.com/alpsistemas/oficina-api/internal/application/usecase"
	"github.com/alpsistemas/oficina-api/internal/domain/repository"
)

// Verificação em tempo de compilação dos portos implementados.
var (
	_ auth.TxRunner          = (*TxRunner)(nil)
	_ usecase.OrderTxRunner  = (*TxRunner)(nil)
	_ usecase.AgendaTxRunner = (*TxRunner)(nil)
)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSignup abre uma transação com repos de empresa e usuário (cadastro atômico
// da oficina com o primeiro gerente).
func (r *TxRunner) RunSignup(ctx context.Context, fn func(
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCompanyRepository(tx), NewUserRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunOrder abre uma transação com repos de OS e produto (itens com baixa de
// estoque e recálculo do total na mesma unidade atômica).
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	orderRepo repository.ServiceOrderRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewServiceOrderRepository(tx), NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAgenda abre uma transação com repos de cliente, veículo e agenda
// (criação rápida de compromisso com get-or-create de cadastro).
func (r *TxRunner) RunAgenda(ctx context.Context, fn func(
	clientRepo repository.ClientRepository,
	vehicleRepo repository.VehicleRepository,
	appointmentRepo repository.AppointmentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewClientRepository(tx), NewVehicleRepository(tx), NewAppointmentRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

package repository

import "github.com/alpsistemas/oficina-api/internal/domain/entity"

// CompanyApprovalFilter filtra a listagem administrativa de empresas.
const (
	CompanyFilterAll     = "all"
	CompanyFilterPending = "pending" // aguardando confirmação de pagamento
	CompanyFilterRenewal = "renewal" // com pedido de renovação pendente
)

// CompanyRepository define o porto de persistência para Company (DIP).
// A implementação vive em infrastructure.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByTaxID(taxID string) (*entity.Company, error)
	Update(company *entity.Company) error
	// List filtra por situação (ver constantes CompanyFilter*) e busca livre em nome/documento.
	List(filter, q string, limit, offset int) ([]*entity.Company, error)
}

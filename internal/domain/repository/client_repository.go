package repository

import "github.com/alpsistemas/oficina-api/internal/domain/entity"

// ClientRepository define o porto de persistência para Client.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	// GetByNameAndPhone serve a agenda rápida: reutiliza o cadastro antes de criar outro.
	GetByNameAndPhone(companyID, name, phone string) (*entity.Client, error)
	Update(client *entity.Client) error
	// Search busca por nome, telefone, documento ou placa de veículo do cliente.
	Search(companyID, q string, limit, offset int) ([]*entity.Client, error)
	CountSearch(companyID, q string) (int, error)
}

// Package storage guarda a logomarca da empresa em disco local ou no S3.
// O caminho devolvido por Save é o que fica persistido em companies.logo_path.
package storage

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/alpsistemas/oficina-api/internal/application/usecase"
)

// Verificação em tempo de compilação do porto implementado.
var _ usecase.LogoStore = (*LocalStore)(nil)

// LocalStore grava em MEDIA_DIR/logos/. Um upload novo da mesma empresa
// sobrescreve o anterior (a chave é o id da empresa).
type LocalStore struct {
	baseDir string
}

// NewLocalStore constrói o storage local apontando para o diretório de mídia.
func NewLocalStore(mediaDir string) *LocalStore {
	return &LocalStore{baseDir: mediaDir}
}

// Save grava os bytes e devolve o caminho relativo (ex. logos/<id>.png).
func (s *LocalStore) Save(companyID, filename string, data []byte) (string, error) {
	rel := logoKey(companyID, filename)
	full := filepath.Join(s.baseDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("storage: criar diretório de mídia: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: gravar logomarca: %w", err)
	}
	return rel, nil
}

// Open lê os bytes de um caminho salvo por Save.
func (s *LocalStore) Open(p string) ([]byte, error) {
	clean := path.Clean(p)
	if strings.HasPrefix(clean, "..") || path.IsAbs(clean) {
		return nil, fmt.Errorf("storage: caminho inválido %q", p)
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, filepath.FromSlash(clean)))
	if err != nil {
		return nil, fmt.Errorf("storage: ler logomarca: %w", err)
	}
	return data, nil
}

// logoKey monta a chave estável da logomarca mantendo só a extensão do
// arquivo enviado.
func logoKey(companyID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return "logos/" + companyID + ext
}

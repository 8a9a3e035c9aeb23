// Package csv lê e gera a planilha de produtos no layout do modelo
// distribuído para as oficinas (separador ponto e vírgula):
//
//	nome;descricao;codigo;custo;preco;estoque
//
// A leitura aceita UTF-8 (com ou sem BOM) e Latin-1, porque planilha salva
// pelo Excel antigo chega nas duas codificações.
package csv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/application/usecase"
	"github.com/alpsistemas/oficina-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Verificação em tempo de compilação do porto implementado.
var _ usecase.ProductCSVCodec = (*ProductCodec)(nil)

const columnCount = 6

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}

	// Cabeçalho esperado, já normalizado (minúsculas, sem acento).
	expectedHeader = []string{"nome", "descricao", "codigo", "custo", "preco", "estoque"}
)

// ProductCodec implementa o porto de planilha de produtos.
type ProductCodec struct{}

// NewProductCodec constrói o codec.
func NewProductCodec() *ProductCodec {
	return &ProductCodec{}
}

// Parse decodifica o arquivo e separa as linhas válidas dos erros por linha.
// O cabeçalho é opcional: a primeira linha é pulada quando bate com o modelo.
// Linhas em branco são ignoradas. A numeração conta desde a primeira linha
// do arquivo, cabeçalho incluído.
func (c *ProductCodec) Parse(data []byte) ([]usecase.ProductCSVRow, []dto.ImportLineError, error) {
	content, err := decodeCharset(data)
	if err != nil {
		return nil, nil, err
	}

	r := csv.NewReader(strings.NewReader(content))
	r.Comma = ';'
	r.FieldsPerRecord = -1 // o número de colunas é validado por linha

	var (
		rows     []usecase.ProductCSVRow
		lineErrs []dto.ImportLineError
		line     int
	)
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			lineErrs = append(lineErrs, dto.ImportLineError{Line: line, Message: "linha malformada"})
			continue
		}
		if blankRecord(record) {
			continue
		}
		if line == 1 {
			if isHeader(record) {
				continue
			}
			if len(record) != columnCount {
				return nil, nil, errors.New("colunas inválidas, use a ordem: Nome, Descrição, Código, Custo, Preço, Estoque")
			}
		}
		row, rowErr := parseRecord(line, record)
		if rowErr != nil {
			lineErrs = append(lineErrs, dto.ImportLineError{Line: line, Message: rowErr.Error()})
			continue
		}
		rows = append(rows, row)
	}
	if line == 0 {
		return nil, nil, errors.New("arquivo CSV vazio")
	}
	return rows, lineErrs, nil
}

// Render monta o CSV de exportação no mesmo layout da importação, com BOM
// para o Excel reconhecer UTF-8 e valores monetários com vírgula decimal.
func (c *ProductCodec) Render(products []*entity.Product) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	w.Comma = ';'
	if err := w.Write(expectedHeader); err != nil {
		return nil, fmt.Errorf("csv: escrever cabeçalho: %w", err)
	}
	for _, p := range products {
		record := []string{
			p.Name,
			p.Description,
			p.Code,
			nullableMoney(p.Cost),
			brMoney(p.Price),
			nullableStock(p.Stock),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("csv: escrever produto %s: %w", p.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: gerar arquivo: %w", err)
	}
	return buf.Bytes(), nil
}

// ── Decodificação e cabeçalho ────────────────────────────────────────────────

// decodeCharset devolve o conteúdo como UTF-8. Bytes que não formam UTF-8
// válido são tratados como Latin-1.
func decodeCharset(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("arquivo ilegível: %w", err)
	}
	return string(decoded), nil
}

// normalizeCell prepara uma célula de cabeçalho para comparação: minúsculas,
// sem espaços nas pontas e sem acentos (Descrição -> descricao).
func normalizeCell(s string) string {
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		stripped = s
	}
	return strings.ToLower(strings.TrimSpace(stripped))
}

func isHeader(record []string) bool {
	if len(record) != len(expectedHeader) {
		return false
	}
	for i, cell := range record {
		if normalizeCell(cell) != expectedHeader[i] {
			return false
		}
	}
	return true
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ── Linhas ───────────────────────────────────────────────────────────────────

func parseRecord(line int, record []string) (usecase.ProductCSVRow, error) {
	var row usecase.ProductCSVRow
	if len(record) != columnCount {
		return row, fmt.Errorf("número de colunas inválido (esperado %d)", columnCount)
	}

	name := strings.TrimSpace(record[0])
	if name == "" {
		return row, errors.New("campo 'Nome' é obrigatório")
	}
	cost, err := parseMoney(record[3], "Custo", false)
	if err != nil {
		return row, err
	}
	price, err := parseMoney(record[4], "Preço", true)
	if err != nil {
		return row, err
	}
	stock, err := parseStock(record[5])
	if err != nil {
		return row, err
	}

	return usecase.ProductCSVRow{
		Line:        line,
		Name:        name,
		Description: strings.TrimSpace(record[1]),
		Code:        strings.TrimSpace(record[2]),
		Cost:        cost,
		Price:       *price,
		Stock:       stock,
	}, nil
}

// parseMoney aceita as formas 1.234,56 e 1234.56, com ou sem prefixo R$.
// Quando vírgula e ponto aparecem juntos, o ponto é separador de milhar.
func parseMoney(raw, label string, required bool) (*decimal.Decimal, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		if required {
			return nil, fmt.Errorf("campo '%s' é obrigatório", label)
		}
		return nil, nil
	}
	text = strings.ReplaceAll(text, "R$", "")
	text = strings.ReplaceAll(text, " ", "")
	switch {
	case strings.Contains(text, ",") && strings.Contains(text, "."):
		text = strings.ReplaceAll(text, ".", "")
		text = strings.ReplaceAll(text, ",", ".")
	case strings.Contains(text, ","):
		text = strings.ReplaceAll(text, ",", ".")
	}
	value, err := decimal.NewFromString(text)
	if err != nil {
		return nil, fmt.Errorf("valor inválido em '%s'", label)
	}
	if value.IsNegative() {
		return nil, fmt.Errorf("'%s' não pode ser negativo", label)
	}
	return &value, nil
}

// parseStock é o parseMoney com exigência de valor inteiro; vazio significa
// produto sem controle de estoque.
func parseStock(raw string) (*decimal.Decimal, error) {
	value, err := parseMoney(raw, "Estoque", false)
	if err != nil || value == nil {
		return nil, err
	}
	if !value.IsInteger() {
		return nil, errors.New("'Estoque' deve ser inteiro")
	}
	return value, nil
}

// ── Exportação ───────────────────────────────────────────────────────────────

func brMoney(d decimal.Decimal) string {
	return strings.ReplaceAll(d.StringFixed(2), ".", ",")
}

func nullableMoney(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return brMoney(*d)
}

func nullableStock(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(0)
}

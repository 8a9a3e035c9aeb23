// Package pdf implementa a impressão da ordem de serviço em A4 usando Maroto v2.
//
// Layout da página:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: logomarca + oficina  │  OS Nº + entrada             │
//	│  ───────────────────────────────────────────────────────── │
//	│  CLIENTE (nome, contato)      │  VEÍCULO (placa, modelo)     │
//	│  SITUAÇÃO: status, previsão, atendente, mecânico             │
//	│  ───────────────────────────────────────────────────────── │
//	│  Problema relatado / Diagnóstico / Observações               │
//	│  TABELA: Qtde | Descrição | Valor unit. | Subtotal           │
//	│  TOTAIS: peças, mão de obra, desconto, TOTAL, pago, saldo    │
//	│  PAGAMENTOS: data | forma | valor                            │
//	│  Assinaturas (cliente e responsável) + rodapé                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/signature"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/alpsistemas/oficina-api/internal/application/usecase"
	"github.com/alpsistemas/oficina-api/internal/domain/entity"
	"github.com/alpsistemas/oficina-api/pkg/brdoc"
)

// Verificação em tempo de compilação do porto implementado.
var _ usecase.OrderPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 13, Green: 71, Blue: 161}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Rótulos exibidos no documento para os códigos internos.
var (
	statusLabels = map[string]string{
		entity.OrderStatusAberta:         "Aberta",
		entity.OrderStatusExecucao:       "Em execução",
		entity.OrderStatusAguardandoPeca: "Aguardando peça",
		entity.OrderStatusFinalizada:     "Finalizada",
		entity.OrderStatusCancelada:      "Cancelada",
	}
	methodLabels = map[string]string{
		entity.PaymentDebito:   "Débito",
		entity.PaymentCredito:  "Crédito",
		entity.PaymentDinheiro: "Dinheiro",
		entity.PaymentPix:      "PIX",
		entity.PaymentCheque:   "Cheque",
		entity.PaymentOutro:    "Outro",
	}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa usecase.OrderPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator constrói o gerador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateOrderPDF gera o PDF da OS e devolve seus bytes.
func (g *MarotoPDFGenerator) GenerateOrderPDF(_ context.Context, data *usecase.OrderPDFData) ([]byte, error) {
	order := data.Order
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Ordem de Serviço Nº %d", order.Number), true).
		WithAuthor(data.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(data.Client, data.Vehicle))
	m.AddRows(situationRow(order, data.AssigneeName, data.MechanicName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	for _, r := range narrativeRows(order) {
		m.AddRows(r)
	}

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(order.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(order))

	for _, r := range paymentRows(order.Payments) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(6))
	m.AddRows(signatureRow())
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// headerRow: logomarca + dados da oficina (esq) e número da OS + entrada (der).
func headerRow(data *usecase.OrderPDFData) core.Row {
	company := data.Company
	order := data.Order

	contact := "Tel: " + nonEmpty(company.Phone, "—")
	if company.TaxID != "" {
		contact = "CNPJ/CPF: " + brdoc.FormatTaxID(company.TaxID) + "   |   " + contact
	}
	nameCol := col.New(7).Add(
		text.New(company.Name, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		}),
		text.New(contact, props.Text{Size: 8, Top: 9, Color: colorGray}),
		text.New(companyAddress(company), props.Text{Size: 8, Top: 13, Color: colorGray}),
	)

	right := col.New(3).Add(
		text.New("ORDEM DE SERVIÇO", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
		}),
		text.New(fmt.Sprintf("Nº %d", order.Number), props.Text{
			Style: fontstyle.Bold, Size: 13, Align: align.Right, Top: 7,
		}),
		text.New("Entrada: "+order.OpenedOn.Format("02/01/2006"), props.Text{
			Size: 8, Align: align.Right, Top: 14, Color: colorGray,
		}),
	)

	r := row.New(20)
	if ext, ok := logoExtension(data.Logo); ok {
		r.Add(
			image.NewFromBytesCol(2, data.Logo, ext, props.Rect{Percent: 90, Center: true}),
			nameCol,
			right,
		)
		return r
	}
	// Sem logomarca o nome ocupa a coluna dela.
	r.Add(col.New(2), nameCol, right)
	return r
}

// partiesRow: cliente e veículo lado a lado.
func partiesRow(client *entity.Client, vehicle *entity.Vehicle) core.Row {
	clientContact := nonEmpty(client.Phone, "—")
	if client.Email != "" {
		clientContact += "   |   " + client.Email
	}
	clientDoc := ""
	if client.Document != "" {
		clientDoc = "Documento: " + brdoc.FormatTaxID(client.Document)
	}

	vehicleDesc := joinNonEmpty(" ", vehicle.Brand, vehicle.Model, vehicle.Year)
	vehicleExtra := joinNonEmpty("   |   ", vehicle.Color, mileage(vehicle.Mileage))

	return row.New(20).Add(
		col.New(6).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(client.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(clientContact, props.Text{Size: 8, Top: 12, Color: colorGray}),
			text.New(clientDoc, props.Text{Size: 8, Top: 16, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("VEÍCULO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(vehicle.Plate, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(nonEmpty(vehicleDesc, "—"), props.Text{Size: 8, Top: 12, Color: colorGray}),
			text.New(vehicleExtra, props.Text{Size: 8, Top: 16, Color: colorGray}),
		),
	)
}

// situationRow: status e equipe envolvida.
func situationRow(order *entity.ServiceOrder, assigneeName, mechanicName string) core.Row {
	pair := func(size int, label, value string) core.Col {
		return col.New(size).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Size: 9, Top: 5}),
		)
	}
	due := "—"
	if order.DueOn != nil {
		due = order.DueOn.Format("02/01/2006")
	}
	closed := "—"
	if order.ClosedAt != nil {
		closed = order.ClosedAt.Format("02/01/2006")
	}
	return row.New(11).Add(
		pair(3, "SITUAÇÃO", statusLabel(order.Status)),
		pair(2, "PREVISÃO", due),
		pair(2, "ENCERRADA", closed),
		pair(3, "ATENDENTE", nonEmpty(assigneeName, "—")),
		pair(2, "MECÂNICO", nonEmpty(mechanicName, "—")),
	)
}

// narrativeRows: problema relatado, diagnóstico e observações, quando houver.
func narrativeRows(order *entity.ServiceOrder) []core.Row {
	section := func(title, body string) core.Row {
		return row.New(13).Add(col.New(12).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(body, props.Text{Size: 8, Top: 5}),
		))
	}
	var rows []core.Row
	if order.Problem != "" {
		rows = append(rows, section("PROBLEMA RELATADO", order.Problem))
	}
	if order.Diagnosis != "" {
		rows = append(rows, section("DIAGNÓSTICO", order.Diagnosis))
	}
	if order.Notes != "" {
		rows = append(rows, section("OBSERVAÇÕES", order.Notes))
	}
	return rows
}

// tableHeaderRow: cabeçalho da tabela de itens.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qtde", 1, align.Center),
		h("Descrição", 6, align.Left),
		h("Valor unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableItemRows: uma linha por item da OS.
func tableItemRows(items []entity.ServiceOrderItem) []core.Row {
	if len(items) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Nenhum item lançado.", props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray}),
		))}
	}
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				quantity(it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				it.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatBRL(it.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				formatBRL(it.Subtotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloco de totais alinhado à direita. O saldo considera os
// pagamentos já carregados na OS.
func totalsRow(order *entity.ServiceOrder) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1,
		})
	}

	labels := col.New(4).Add(
		label("Peças e serviços:"),
		label("Mão de obra:"),
		label("Desconto:"),
		grandLabel("TOTAL:"),
		label("Pago:"),
		label("Saldo:"),
	)
	values := col.New(4).Add(
		value(formatBRL(order.ItemsTotal())),
		value(formatBRL(order.LaborCost)),
		value("-" + formatBRL(order.Discount)),
		grandValue(formatBRL(order.ComputeTotal())),
		value(formatBRL(order.PaidTotal())),
		value(formatBRL(order.Balance())),
	)
	return row.New(34).Add(col.New(4), labels, values)
}

// paymentRows: tabela de pagamentos recebidos, quando houver.
func paymentRows(payments []entity.Payment) []core.Row {
	if len(payments) == 0 {
		return nil
	}
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("PAGAMENTOS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
		)),
	}
	for _, p := range payments {
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(p.PaidOn.Format("02/01/2006"), props.Text{Size: 8, Top: 1})),
			col.New(7).Add(text.New(methodLabel(p.Method), props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(formatBRL(p.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

// signatureRow: linhas de assinatura do cliente e do responsável.
func signatureRow() core.Row {
	return row.New(20).Add(
		signature.NewCol(6, "Assinatura do cliente"),
		signature.NewCol(6, "Assinatura do responsável"),
	)
}

// footerRow: carimbo de geração do documento.
func footerRow() core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New("Gerado em "+time.Now().Format("02/01/2006 15:04"), props.Text{
			Size: 7, Align: align.Center, Color: colorGray, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func joinNonEmpty(sep string, parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}

func companyAddress(c *entity.Company) string {
	street := joinNonEmpty(", ", joinNonEmpty(" ", c.Street, c.Number), c.District, c.City)
	return nonEmpty(street, "—")
}

func mileage(km int) string {
	if km <= 0 {
		return ""
	}
	return fmt.Sprintf("%d km", km)
}

func statusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

func methodLabel(method string) string {
	if label, ok := methodLabels[method]; ok {
		return label
	}
	return method
}

// quantity imprime inteiros sem casas e frações com duas (0,5 h de serviço).
func quantity(q decimal.Decimal) string {
	if q.IsInteger() {
		return q.StringFixed(0)
	}
	return strings.ReplaceAll(q.StringFixed(2), ".", ",")
}

// formatBRL formata um decimal como R$ 1.234,56.
func formatBRL(d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, intPart[i])
	}
	out := "R$ " + string(buf) + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}

// logoExtension identifica o formato da logomarca pelos bytes iniciais.
// WebP não é suportado pelo renderizador; nesse caso o cabeçalho sai sem logo.
func logoExtension(data []byte) (extension.Type, bool) {
	switch {
	case len(data) == 0:
		return "", false
	case bytes.HasPrefix(data, []byte("\x89PNG")):
		return extension.Png, true
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8}):
		return extension.Jpg, true
	}
	return "", false
}

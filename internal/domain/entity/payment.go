package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formas de pagamento aceitas.
const (
	PaymentDebito   = "DEBITO"
	PaymentCredito  = "CREDITO"
	PaymentDinheiro = "DINHEIRO"
	PaymentPix      = "PIX"
	PaymentCheque   = "CHEQUE"
	PaymentOutro    = "OUTRO"
)

// Payment representa um pagamento recebido de uma OS.
// É a entrada de caixa: o relatório financeiro soma pagamentos contra despesas.
type Payment struct {
	ID        string
	CompanyID string
	OrderID   string
	Method    string // ver constantes Payment*
	Amount    decimal.Decimal
	PaidOn    time.Time // data do recebimento
	CreatedAt time.Time
}

// ValidPaymentMethod informa se a forma de pagamento é uma das aceitas.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentDebito, PaymentCredito, PaymentDinheiro, PaymentPix, PaymentCheque, PaymentOutro:
		return true
	}
	return false
}

package brdoc

import (
	"fmt"
	"unicode"
)

// pesos do segundo dígito verificador do CNPJ; o primeiro usa a mesma tabela sem o 6 inicial.
// Algoritmo módulo 11 da Receita Federal, aplicado da esquerda para a direita.
var (
	cnpjWeightsFirst  = [12]int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeightsSecond = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// NormalizeTaxID remove a máscara e valida o documento pelo comprimento:
// 11 dígitos valida como CPF, 14 como CNPJ. Devolve apenas os dígitos.
// Entrada vazia (ou só máscara) devolve "" sem erro; o documento é opcional no cadastro.
func NormalizeTaxID(doc string) (string, error) {
	digits := extractDigits(doc)
	if len(digits) == 0 {
		return "", nil
	}
	switch len(digits) {
	case 11:
		if err := validateCPFDigits(digits); err != nil {
			return "", err
		}
	case 14:
		if err := validateCNPJDigits(digits); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("brdoc: documento deve ter 11 dígitos (CPF) ou 14 (CNPJ), recebidos %d", len(digits))
	}
	return string(digits), nil
}

// FormatTaxID aplica a máscara de exibição: 000.000.000-00 para CPF,
// 00.000.000/0000-00 para CNPJ. Comprimentos fora disso voltam como estão.
func FormatTaxID(doc string) string {
	digits := extractDigits(doc)
	switch len(digits) {
	case 11:
		return fmt.Sprintf("%s.%s.%s-%s", digits[:3], digits[3:6], digits[6:9], digits[9:])
	case 14:
		return fmt.Sprintf("%s.%s.%s/%s-%s", digits[:2], digits[2:5], digits[5:8], digits[8:12], digits[12:])
	}
	return doc
}

// ValidateCPF valida o CPF (com ou sem máscara) pelos dois dígitos verificadores.
func ValidateCPF(doc string) error {
	digits := extractDigits(doc)
	if len(digits) != 11 {
		return fmt.Errorf("brdoc: CPF deve ter 11 dígitos, recebidos %d", len(digits))
	}
	return validateCPFDigits(digits)
}

// ValidateCNPJ valida o CNPJ (com ou sem máscara) pelos dois dígitos verificadores.
func ValidateCNPJ(doc string) error {
	digits := extractDigits(doc)
	if len(digits) != 14 {
		return fmt.Errorf("brdoc: CNPJ deve ter 14 dígitos, recebidos %d", len(digits))
	}
	return validateCNPJDigits(digits)
}

func validateCPFDigits(digits []byte) error {
	if allSame(digits) {
		return fmt.Errorf("brdoc: CPF inválido")
	}
	// primeiro DV: pesos 10..2 sobre os 9 primeiros dígitos
	var sum int
	for i := 0; i < 9; i++ {
		sum += int(digits[i]-'0') * (10 - i)
	}
	if checkDigitCPF(sum) != digits[9] {
		return fmt.Errorf("brdoc: CPF inválido")
	}
	// segundo DV: pesos 11..2 sobre os 10 primeiros dígitos
	sum = 0
	for i := 0; i < 10; i++ {
		sum += int(digits[i]-'0') * (11 - i)
	}
	if checkDigitCPF(sum) != digits[10] {
		return fmt.Errorf("brdoc: CPF inválido")
	}
	return nil
}

// checkDigitCPF aplica a regra (soma*10) mod 11, com 10 tratado como 0.
func checkDigitCPF(sum int) byte {
	dv := (sum * 10) % 11
	if dv == 10 {
		dv = 0
	}
	return byte('0' + dv)
}

func validateCNPJDigits(digits []byte) error {
	if allSame(digits) {
		return fmt.Errorf("brdoc: CNPJ inválido")
	}
	var sum int
	for i, w := range cnpjWeightsFirst {
		sum += int(digits[i]-'0') * w
	}
	if checkDigitCNPJ(sum) != digits[12] {
		return fmt.Errorf("brdoc: CNPJ inválido")
	}
	sum = 0
	for i, w := range cnpjWeightsSecond {
		sum += int(digits[i]-'0') * w
	}
	if checkDigitCNPJ(sum) != digits[13] {
		return fmt.Errorf("brdoc: CNPJ inválido")
	}
	return nil
}

// checkDigitCNPJ aplica a regra mod 11: resto < 2 vira 0, senão 11 menos o resto.
func checkDigitCNPJ(sum int) byte {
	mod := sum % 11
	if mod < 2 {
		return '0'
	}
	return byte('0' + (11 - mod))
}

// allSame detecta sequências como 111.111.111-11, que passariam no módulo 11.
func allSame(digits []byte) bool {
	for _, d := range digits[1:] {
		if d != digits[0] {
			return false
		}
	}
	return true
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}

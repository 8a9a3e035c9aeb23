package brdoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpsistemas/oficina-api/pkg/brdoc"
)

// ──────────────────────────────────────────────────────────────────────────────
// Vetores calculados manualmente pelo módulo 11 da Receita Federal:
//
//	CPF  529.982.247-25  → DV1: soma 295, (295*10)%11 = 2; DV2: soma 347, (347*10)%11 = 5
//	CNPJ 11.222.333/0001-81 → DV1: soma 102, 11-(102%11) = 8; DV2: soma 120, 11-(120%11) = 1
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateCPF_ValidoComMascara(t *testing.T) {
	assert.NoError(t, brdoc.ValidateCPF("529.982.247-25"), "CPF válido com máscara deve passar")
}

func TestValidateCPF_ValidoSemMascara(t *testing.T) {
	assert.NoError(t, brdoc.ValidateCPF("52998224725"), "CPF válido sem máscara deve passar")
}

func TestValidateCPF_DigitoVerificadorErrado(t *testing.T) {
	assert.Error(t, brdoc.ValidateCPF("529.982.247-24"), "CPF com DV errado deve falhar")
}

// Sequências repetidas passam no módulo 11 e por isso têm rejeição explícita.
func TestValidateCPF_TodosDigitosIguais(t *testing.T) {
	assert.Error(t, brdoc.ValidateCPF("111.111.111-11"))
	assert.Error(t, brdoc.ValidateCPF("00000000000"))
}

func TestValidateCPF_ComprimentoErrado(t *testing.T) {
	assert.Error(t, brdoc.ValidateCPF("1234567890"), "10 dígitos não é CPF")
}

func TestValidateCNPJ_ValidoComMascara(t *testing.T) {
	assert.NoError(t, brdoc.ValidateCNPJ("11.222.333/0001-81"), "CNPJ válido com máscara deve passar")
}

func TestValidateCNPJ_DigitoVerificadorErrado(t *testing.T) {
	assert.Error(t, brdoc.ValidateCNPJ("11.222.333/0001-82"), "CNPJ com DV errado deve falhar")
}

func TestValidateCNPJ_TodosDigitosIguais(t *testing.T) {
	assert.Error(t, brdoc.ValidateCNPJ("00.000.000/0000-00"))
}

// ── NormalizeTaxID ────────────────────────────────────────────────────────────

func TestNormalizeTaxID_DespachaPorComprimento(t *testing.T) {
	cpf, err := brdoc.NormalizeTaxID("529.982.247-25")
	require.NoError(t, err)
	assert.Equal(t, "52998224725", cpf, "deve devolver apenas os dígitos")

	cnpj, err := brdoc.NormalizeTaxID("11.222.333/0001-81")
	require.NoError(t, err)
	assert.Equal(t, "11222333000181", cnpj)
}

func TestNormalizeTaxID_VazioEhPermitido(t *testing.T) {
	got, err := brdoc.NormalizeTaxID("")
	require.NoError(t, err, "documento é opcional no cadastro")
	assert.Empty(t, got)

	got, err = brdoc.NormalizeTaxID("..-/")
	require.NoError(t, err, "só máscara equivale a vazio")
	assert.Empty(t, got)
}

func TestNormalizeTaxID_ComprimentoIntermediarioFalha(t *testing.T) {
	_, err := brdoc.NormalizeTaxID("123456789012")
	assert.Error(t, err, "12 dígitos não é CPF nem CNPJ")
}

func TestNormalizeTaxID_DocumentoInvalidoFalha(t *testing.T) {
	_, err := brdoc.NormalizeTaxID("529.982.247-24")
	assert.Error(t, err)
}

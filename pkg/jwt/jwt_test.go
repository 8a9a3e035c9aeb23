package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpsistemas/oficina-api/pkg/jwt"
)

const (
	testSecret  = "segredo-de-teste-nao-usar-em-producao"
	testIssuer  = "oficina-api-test"
	testUserID  = "8b9df65a-1a5c-4f8e-9d2a-0f6b7c1d2e3f"
	testCompany = "0c1d2e3f-4a5b-6c7d-8e9f-a0b1c2d3e4f5"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, err := jwt.Generate(testSecret, testUserID, testCompany, "gerente", testIssuer, 1)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, companyID, role, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, testCompany, companyID)
	assert.Equal(t, "gerente", role, "o role deve sobreviver ao round trip")
}

func TestGenerate_SecretVazioFalha(t *testing.T) {
	_, err := jwt.Generate("", testUserID, testCompany, "gerente", testIssuer, 1)
	assert.Error(t, err)
}

func TestParse_SecretErradoFalha(t *testing.T) {
	token, err := jwt.Generate(testSecret, testUserID, testCompany, "atendente", testIssuer, 1)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse("outro-segredo", token)
	assert.Error(t, err, "assinatura com outro secret deve ser rejeitada")
}

func TestParse_TokenExpiradoFalha(t *testing.T) {
	// expHours negativo produz um token já vencido
	token, err := jwt.Generate(testSecret, testUserID, testCompany, "gerente", testIssuer, -1)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse(testSecret, token)
	assert.Error(t, err, "token vencido deve ser rejeitado")
}

func TestParse_AdminSemEmpresa(t *testing.T) {
	token, err := jwt.Generate(testSecret, testUserID, "", "admin", testIssuer, 1)
	require.NoError(t, err)

	_, companyID, role, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Empty(t, companyID, "admin da plataforma não carrega empresa")
	assert.Equal(t, "admin", role)
}

// ── Tokens de redefinição de senha ────────────────────────────────────────────

func TestParseReset_RoundTrip(t *testing.T) {
	token, err := jwt.GenerateReset(testSecret, testUserID, testIssuer, 30*time.Minute)
	require.NoError(t, err)

	userID, err := jwt.ParseReset(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
}

func TestParse_RejeitaTokenDeRedefinicao(t *testing.T) {
	token, err := jwt.GenerateReset(testSecret, testUserID, testIssuer, 30*time.Minute)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse(testSecret, token)
	assert.Error(t, err, "token de redefinição não pode autenticar requisições")
}

func TestParseReset_RejeitaTokenDeAcesso(t *testing.T) {
	token, err := jwt.Generate(testSecret, testUserID, testCompany, "gerente", testIssuer, 1)
	require.NoError(t, err)

	_, err = jwt.ParseReset(testSecret, token)
	assert.Error(t, err, "token de acesso não pode redefinir senha")
}

func TestParseReset_ExpiradoFalha(t *testing.T) {
	token, err := jwt.GenerateReset(testSecret, testUserID, testIssuer, -time.Minute)
	require.NoError(t, err)

	_, err = jwt.ParseReset(testSecret, token)
	assert.Error(t, err)
}

package usecase_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/application/usecase"
	"github.com/alpsistemas/oficina-api/internal/domain"
	"github.com/alpsistemas/oficina-api/internal/domain/entity"
)

type userFixture struct {
	uc        *usecase.UserUseCase
	users     *fakeUserRepo
	companies *fakeCompanyRepo
	mailer    *fakeMailer
}

// newUserFixture sobe a empresa no plano dado com o gerente titular já ativo.
func newUserFixture(t *testing.T, plan string) *userFixture {
	t.Helper()
	users := newFakeUserRepo()
	companies := newFakeCompanyRepo()
	mailer := &fakeMailer{}
	seedCompany(companies, plan)
	seedUser(users, testManagerID, entity.RoleGerente)
	return &userFixture{
		uc:        usecase.NewUserUseCase(users, companies, mailer, testLogger()),
		users:     users,
		companies: companies,
		mailer:    mailer,
	}
}

func (f *userFixture) createAtendente(t *testing.T, username string) *dto.UserResponse {
	t.Helper()
	out, err := f.uc.Create(testCompanyID, dto.CreateUserRequest{
		Name:     "Atendente " + username,
		Username: username,
		Password: "senha-padrao-1",
		Role:     entity.RoleAtendente,
	})
	require.NoError(t, err)
	return &out.User
}

func TestUserCreate_SenhaGeradaSaiUmaVezEVaiPorEmail(t *testing.T) {
	f := newUserFixture(t, entity.PlanBasico)

	out, err := f.uc.Create(testCompanyID, dto.CreateUserRequest{
		Name:          "Carlos Lima",
		Username:      "Carlos.Lima",
		Role:          entity.RoleAtendente,
		RecoveryEmail: "carlos@gmail.com",
	})
	require.NoError(t, err)

	require.Len(t, out.GeneratedPassword, 10)
	for _, ch := range out.GeneratedPassword {
		assert.NotContains(t, "0O1lI", string(ch), "senha gerada evita caracteres ambíguos")
	}
	assert.Equal(t, "carlos.lima", out.User.Username)
	assert.True(t, out.User.Active)

	stored, err := f.users.GetByID(out.User.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(out.GeneratedPassword)),
		"a senha devolvida é a mesma que foi gravada")
	assert.Equal(t, []string{"carlos@gmail.com"}, f.mailer.credentials)
}

func TestUserCreate_SenhaPropriaNaoGeraNemEnvia(t *testing.T) {
	f := newUserFixture(t, entity.PlanBasico)

	out, err := f.uc.Create(testCompanyID, dto.CreateUserRequest{
		Name:     "Ana Souza",
		Username: "ana.souza",
		Password: "senha-escolhida",
		Role:     entity.RoleAtendente,
	})
	require.NoError(t, err)
	assert.Empty(t, out.GeneratedPassword)
	assert.Empty(t, f.mailer.credentials, "sem e-mail de recuperação não há envio de credenciais")
}

func TestUserCreate_LimiteDeUsuariosDoPlanoBasico(t *testing.T) {
	f := newUserFixture(t, entity.PlanBasico)

	// O gerente titular já ocupa 1 das 6 vagas.
	for i := 0; i < 5; i++ {
		f.createAtendente(t, "atendente"+strings.Repeat("x", i+1))
	}

	_, err := f.uc.Create(testCompanyID, dto.CreateUserRequest{
		Name:     "Sétimo Usuário",
		Username: "setimo",
		Password: "senha-padrao-1",
		Role:     entity.RoleAtendente,
	})
	assert.ErrorIs(t, err, domain.ErrPlanLimitReached)
}

func TestUserCreate_LimiteDeGerentes(t *testing.T) {
	basico := newUserFixture(t, entity.PlanBasico)
	_, err := basico.uc.Create(testCompanyID, dto.CreateUserRequest{
		Name:     "Segundo Gerente",
		Username: "gerente2",
		Password: "senha-padrao-1",
		Role:     entity.RoleGerente,
	})
	assert.ErrorIs(t, err, domain.ErrPlanLimitReached, "o BASICO só comporta um gerente")

	plus := newUserFixture(t, entity.PlanPlus)
	_, err = plus.uc.Create(testCompanyID, dto.CreateUserRequest{
		Name:     "Segundo Gerente",
		Username: "gerente2",
		Password: "senha-padrao-1",
		Role:     entity.RoleGerente,
	})
	assert.NoError(t, err, "o PLUS comporta até três gerentes")
}

func TestUserCreate_UsernameDuplicadoFalha(t *testing.T) {
	f := newUserFixture(t, entity.PlanBasico)
	f.createAtendente(t, "carlos.lima")

	_, err := f.uc.Create(testCompanyID, dto.CreateUserRequest{
		Name:     "Outro Carlos",
		Username: "CARLOS.LIMA",
		Password: "senha-padrao-1",
		Role:     entity.RoleAtendente,
	})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken, "duplicidade não diferencia maiúsculas")
}

func TestUserCreate_PerfilInvalidoFalha(t *testing.T) {
	f := newUserFixture(t, entity.PlanBasico)

	for _, role := range []string{"admin", "mecanico", ""} {
		_, err := f.uc.Create(testCompanyID, dto.CreateUserRequest{
			Name:     "Fulano",
			Username: "fulano",
			Password: "senha-padrao-1",
			Role:     role,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "perfil %q", role)
	}
}

func TestUserUpdate_PromoverAGerenteRespeitaOLimite(t *testing.T) {
	f := newUserFixture(t, entity.PlanBasico)
	atendente := f.createAtendente(t, "bruna")

	_, err := f.uc.Update(testCompanyID, atendente.ID, dto.UpdateUserRequest{Role: strPtr(entity.RoleGerente)})
	assert.ErrorIs(t, err, domain.ErrPlanLimitReached, "a vaga de gerente já está ocupada")

	// Com o titular desativado a vaga abre.
	_, err = f.uc.SetActive(testCompanyID, atendente.ID, testManagerID, false)
	require.NoError(t, err)
	out, err := f.uc.Update(testCompanyID, atendente.ID, dto.UpdateUserRequest{Role: strPtr(entity.RoleGerente)})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleGerente, out.Role)

	// E o titular não volta enquanto a vaga estiver tomada.
	_, err = f.uc.SetActive(testCompanyID, atendente.ID, testManagerID, true)
	assert.ErrorIs(t, err, domain.ErrPlanLimitReached)
}

func TestUserUpdate_DeOutraEmpresaNaoAparece(t *testing.T) {
	f := newUserFixture(t, entity.PlanBasico)
	forasteiro := &entity.User{
		ID:        uuid.New().String(),
		CompanyID: "outra-empresa",
		Username:  "forasteiro",
		Name:      "Forasteiro",
		Role:      entity.RoleAtendente,
		Active:    true,
	}
	require.NoError(t, f.users.Create(forasteiro))

	_, err := f.uc.Update(testCompanyID, forasteiro.ID, dto.UpdateUserRequest{Name: strPtr("Novo Nome")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.SetActive(testCompanyID, testManagerID, forasteiro.ID, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserSetActive_NinguemDesativaASiMesmo(t *testing.T) {
	f := newUserFixture(t, entity.PlanBasico)

	_, err := f.uc.SetActive(testCompanyID, testManagerID, testManagerID, false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserSetActive_ReativarContaContraOLimite(t *testing.T) {
	f := newUserFixture(t, entity.PlanBasico)
	var atendentes []*dto.UserResponse
	for i := 0; i < 5; i++ {
		atendentes = append(atendentes, f.createAtendente(t, "atendente"+strings.Repeat("x", i+1)))
	}

	// Desativa um, cadastra outro na vaga e tenta trazer o primeiro de volta.
	_, err := f.uc.SetActive(testCompanyID, testManagerID, atendentes[0].ID, false)
	require.NoError(t, err)
	f.createAtendente(t, "substituto")

	_, err = f.uc.SetActive(testCompanyID, testManagerID, atendentes[0].ID, true)
	assert.ErrorIs(t, err, domain.ErrPlanLimitReached)
}

func TestUserSetActive_RepetirOMesmoEstadoNaoFalha(t *testing.T) {
	f := newUserFixture(t, entity.PlanBasico)
	atendente := f.createAtendente(t, "bruna")

	_, err := f.uc.SetActive(testCompanyID, testManagerID, atendente.ID, false)
	require.NoError(t, err)
	out, err := f.uc.SetActive(testCompanyID, testManagerID, atendente.ID, false)
	require.NoError(t, err)
	assert.False(t, out.Active)
}

func TestUserList_Pagina(t *testing.T) {
	f := newUserFixture(t, entity.PlanPlus)
	for _, username := range []string{"aaa", "bbb", "ccc"} {
		f.createAtendente(t, username)
	}

	out, err := f.uc.List(testCompanyID, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "aaa", out.Items[0].Username)
	assert.Equal(t, 2, out.Page.Limit)

	resto, err := f.uc.List(testCompanyID, dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, resto.Items, 2, "ccc e o gerente titular")
	assert.Equal(t, "ccc", resto.Items[0].Username)
}

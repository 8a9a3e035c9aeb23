package usecase_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/application/usecase"
	"github.com/alpsistemas/oficina-api/internal/domain"
)

func newEmployeeFixture() (*usecase.EmployeeUseCase, *fakeEmployeeRepo) {
	employees := newFakeEmployeeRepo()
	return usecase.NewEmployeeUseCase(employees), employees
}

func TestEmployeeCreate_EntraAtivoComDataDeAdmissao(t *testing.T) {
	uc, _ := newEmployeeFixture()

	out, err := uc.Create(testCompanyID, dto.CreateEmployeeRequest{
		Name:    "  Carlos Souza ",
		Phone:   "11 97777-1111",
		HiredOn: strPtr("2026-01-15"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Carlos Souza", out.Name)
	assert.Equal(t, "2026-01-15", out.HiredOn)
	assert.True(t, out.Active, "funcionário novo já entra atribuível")

	// data de admissão é opcional
	out, err = uc.Create(testCompanyID, dto.CreateEmployeeRequest{Name: "Pedro Malta"})
	require.NoError(t, err)
	assert.Empty(t, out.HiredOn)
}

func TestEmployeeCreate_Validacoes(t *testing.T) {
	uc, _ := newEmployeeFixture()

	_, err := uc.Create(testCompanyID, dto.CreateEmployeeRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(testCompanyID, dto.CreateEmployeeRequest{
		Name:    "Carlos Souza",
		HiredOn: strPtr("15/01/2026"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "data fora do layout")
}

func TestEmployeeList_SomenteAtivosQuandoPedido(t *testing.T) {
	uc, _ := newEmployeeFixture()

	carlos, err := uc.Create(testCompanyID, dto.CreateEmployeeRequest{Name: "Carlos Souza"})
	require.NoError(t, err)
	_, err = uc.Create(testCompanyID, dto.CreateEmployeeRequest{Name: "Ana Prado"})
	require.NoError(t, err)

	_, err = uc.SetActive(testCompanyID, carlos.ID, false)
	require.NoError(t, err)

	all, err := uc.List(testCompanyID, false)
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)
	assert.Equal(t, "Ana Prado", all.Items[0].Name, "lista em ordem de nome")

	active, err := uc.List(testCompanyID, true)
	require.NoError(t, err)
	require.Equal(t, 1, active.Total)
	assert.Equal(t, "Ana Prado", active.Items[0].Name)
}

func TestEmployeeUpdate_EditaEConfereAEmpresa(t *testing.T) {
	uc, _ := newEmployeeFixture()
	carlos, err := uc.Create(testCompanyID, dto.CreateEmployeeRequest{
		Name:    "Carlos Souza",
		HiredOn: strPtr("2026-01-15"),
	})
	require.NoError(t, err)

	out, err := uc.Update(testCompanyID, carlos.ID, dto.UpdateEmployeeRequest{
		Name:  strPtr("Carlos Souza Filho"),
		Email: strPtr(" carlos@gmail.com "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Carlos Souza Filho", out.Name)
	assert.Equal(t, "carlos@gmail.com", out.Email)
	assert.Equal(t, "2026-01-15", out.HiredOn, "campo ausente não é tocado")

	// mandar a data vazia limpa a admissão
	out, err = uc.Update(testCompanyID, carlos.ID, dto.UpdateEmployeeRequest{HiredOn: strPtr("")})
	require.NoError(t, err)
	assert.Empty(t, out.HiredOn)

	_, err = uc.Update(testCompanyID, carlos.ID, dto.UpdateEmployeeRequest{Name: strPtr("  ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(testCompanyID, uuid.New().String(), dto.UpdateEmployeeRequest{Name: strPtr("Outro")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEmployeeSetActive_SomeDasListasDeAtribuicao(t *testing.T) {
	uc, employees := newEmployeeFixture()
	carlos, err := uc.Create(testCompanyID, dto.CreateEmployeeRequest{Name: "Carlos Souza"})
	require.NoError(t, err)

	out, err := uc.SetActive(testCompanyID, carlos.ID, false)
	require.NoError(t, err)
	assert.False(t, out.Active)

	stored, err := employees.GetByID(carlos.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)

	_, err = uc.SetActive(testCompanyID, uuid.New().String(), true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

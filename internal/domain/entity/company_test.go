package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpsistemas/oficina-api/internal/domain/entity"
)

func TestCompany_LimitesPorPlano(t *testing.T) {
	basico := entity.Company{Plan: entity.PlanBasico}
	plus := entity.Company{Plan: entity.PlanPlus}

	assert.Equal(t, 6, basico.UserLimit())
	assert.Equal(t, 1, basico.ManagerLimit())
	assert.Equal(t, 30, plus.UserLimit())
	assert.Equal(t, 3, plus.ManagerLimit())
}

func TestCompany_PlanExpired(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	semVencimento := entity.Company{}
	assert.False(t, semVencimento.PlanExpired(now), "sem vencimento definido não conta como vencido")

	ontem := now.AddDate(0, 0, -1)
	vencida := entity.Company{PlanExpiresAt: &ontem}
	assert.True(t, vencida.PlanExpired(now))

	amanha := now.AddDate(0, 0, 1)
	vigente := entity.Company{PlanExpiresAt: &amanha}
	assert.False(t, vigente.PlanExpired(now))
}

func TestCompany_DaysToExpiry(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	_, ok := entity.Company{}.DaysToExpiry(now)
	assert.False(t, ok)

	em10Dias := now.AddDate(0, 0, 10)
	days, ok := entity.Company{PlanExpiresAt: &em10Dias}.DaysToExpiry(now)
	require.True(t, ok)
	assert.Equal(t, 10, days)

	ontem := now.AddDate(0, 0, -1)
	days, ok = entity.Company{PlanExpiresAt: &ontem}.DaysToExpiry(now)
	require.True(t, ok)
	assert.Equal(t, 0, days, "vencido não fica negativo")
}

func TestPlanPeriodDuration_TabelaDePeriodos(t *testing.T) {
	d, ok := entity.PlanPeriodDuration(entity.PlanPeriod30D)
	require.True(t, ok)
	assert.Equal(t, 30*24*time.Hour, d)

	d, ok = entity.PlanPeriodDuration(entity.PlanPeriod6M)
	require.True(t, ok)
	assert.Equal(t, 182*24*time.Hour, d)

	d, ok = entity.PlanPeriodDuration(entity.PlanPeriod12M)
	require.True(t, ok)
	assert.Equal(t, 365*24*time.Hour, d)

	_, ok = entity.PlanPeriodDuration("90D")
	assert.False(t, ok)
}

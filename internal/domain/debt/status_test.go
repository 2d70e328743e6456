package debt_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/farmacia-pro/internal/domain/debt"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

var (
	now    = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	future = now.Add(30 * 24 * time.Hour)
	past   = now.Add(-24 * time.Hour)
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestDerive_SinAbonosEsPending(t *testing.T) {
	got := debt.Derive(d(100), d(0), future, now)
	assert.Equal(t, entity.DebtStatusPending, got)
}

func TestDerive_ConAbonoParcialEsPartial(t *testing.T) {
	got := debt.Derive(d(100), d(40), future, now)
	assert.Equal(t, entity.DebtStatusPartial, got)
}

func TestDerive_SaldoCeroEsCleared(t *testing.T) {
	got := debt.Derive(d(100), d(100), future, now)
	assert.Equal(t, entity.DebtStatusCleared, got)
}

func TestDerive_SobrepagoSigueCleared(t *testing.T) {
	got := debt.Derive(d(100), d(150), future, now)
	assert.Equal(t, entity.DebtStatusCleared, got)
}

func TestDerive_VencidaNoSaldadaEsOverdue(t *testing.T) {
	// overdue pisa tanto a pending como a partial
	assert.Equal(t, entity.DebtStatusOverdue, debt.Derive(d(100), d(0), past, now))
	assert.Equal(t, entity.DebtStatusOverdue, debt.Derive(d(100), d(40), past, now))
}

func TestDerive_VencidaPeroSaldadaEsCleared(t *testing.T) {
	// cleared no se pisa por vencimiento
	got := debt.Derive(d(100), d(100), past, now)
	assert.Equal(t, entity.DebtStatusCleared, got)
}

func TestDerive_EsIdempotente(t *testing.T) {
	// aplicar la derivación dos veces con los mismos valores no cambia nada
	first := debt.Derive(d(100), d(100), future, now)
	second := debt.Derive(d(100), d(100), future, now)
	assert.Equal(t, first, second)
	assert.Equal(t, entity.DebtStatusCleared, second)
}

func TestRemainingBalance_SePisaEnCero(t *testing.T) {
	assert.True(t, debt.RemainingBalance(d(100), d(150)).IsZero(),
		"el sobrepago debe dejar el saldo en cero, no negativo")
	assert.True(t, debt.RemainingBalance(d(100), d(40)).Equal(d(60)))
}

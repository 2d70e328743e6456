// Package debt contiene la lógica pura de estados de deuda (servicio de dominio).
package debt

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// Derive calcula el estado de una deuda a partir de sus montos y vencimiento.
// Regla: cleared si el saldo <= 0; si no, partial cuando hay abonos y pending
// cuando no; overdue pisa a cualquier estado no-cleared cuando la fecha de
// vencimiento ya pasó. Es una función pura para que el invariante sea
// testeable sin hooks implícitos de persistencia.
func Derive(totalOwed, amountPaid decimal.Decimal, dueDate, now time.Time) string {
	remaining := totalOwed.Sub(amountPaid)
	if remaining.LessThanOrEqual(decimal.Zero) {
		return entity.DebtStatusCleared
	}
	status := entity.DebtStatusPending
	if amountPaid.GreaterThan(decimal.Zero) {
		status = entity.DebtStatusPartial
	}
	if dueDate.Before(now) {
		return entity.DebtStatusOverdue
	}
	return status
}

// RemainingBalance devuelve max(0, totalOwed - amountPaid). El sobrepago no
// se rechaza: el saldo se fija en cero (comportamiento leniente observado).
func RemainingBalance(totalOwed, amountPaid decimal.Decimal) decimal.Decimal {
	remaining := totalOwed.Sub(amountPaid)
	if remaining.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return remaining
}

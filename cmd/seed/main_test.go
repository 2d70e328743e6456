package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceOrZero_SoloEmiteLiteralesNumericos(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"decimal válido", "12.50", "12.5"},
		{"entero", "980", "980"},
		{"con espacios", " 7.25 ", "7.25"},
		{"vacío", "", "0"},
		{"no numérico", "N/A", "0"},
		{"negativo", "-3", "0"},
		{"texto hostil", "0); DROP TABLE medicines;--", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, priceOrZero("Paracetamol 500mg", tc.in))
		})
	}
}

func TestSQLEscape_DuplicaComillas(t *testing.T) {
	assert.Equal(t, "Jarabe ''Forte''", sqlEscape("Jarabe 'Forte'"))
	assert.Equal(t, "sin cambios", sqlEscape("sin cambios"))
}

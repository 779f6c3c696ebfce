package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1000", "1000"},
		{"1,000.50", "1000.5"},
		{"$1,000.50", "1000.5"},
		{"US$ 2500", "2500"},
		{"€800", "800"},
		{"(800.00)", "-800"},
		{"-42.10", "-42.1"},
		{"65.3%", "65.3"},
	}
	for _, c := range cases {
		got, ok := ParseAmount(c.in)
		require.True(t, ok, "input %q", c.in)
		assert.Equal(t, c.want, got.String(), "input %q", c.in)
	}
}

func TestParseAmount_Rejects(t *testing.T) {
	for _, in := range []string{"", "-", "Ventas", "Ene-25", "$", "n/a"} {
		_, ok := ParseAmount(in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestGrid_Cell(t *testing.T) {
	g := Grid{{" a ", "b"}, {"c"}}
	assert.Equal(t, "a", g.Cell(0, 0))
	assert.Equal(t, "", g.Cell(1, 1), "short row")
	assert.Equal(t, "", g.Cell(5, 0), "row out of range")
	assert.Equal(t, "", g.Cell(-1, 0))
}

func TestGrid_RowIsEmpty(t *testing.T) {
	g := Grid{{"", "  "}, {"", "x"}}
	assert.True(t, g.RowIsEmpty(0))
	assert.False(t, g.RowIsEmpty(1))
	assert.True(t, g.RowIsEmpty(99), "out of range counts as empty")
}

func TestGrid_NumericCells(t *testing.T) {
	g := Grid{{"Total", "$100", "200", "-"}}
	assert.Equal(t, 2, g.NumericCells(0))
}

func TestGrid_Flatten(t *testing.T) {
	g := Grid{{"Cuenta", ""}, {"Total Ingresos", "1000"}}
	flat := g.Flatten()
	assert.Contains(t, flat, "total ingresos")
	assert.Contains(t, flat, "1000")
}

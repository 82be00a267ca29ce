package movement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magazzino-pro/magazzino-api/internal/domain/movement"
)

// TestNormalizeDecimal_SeparatoriEquivalenti verifica che virgola e punto
// producano lo stesso decimale canonico: "12,5" e "12.5" devono essere
// indistinguibili a valle della normalizzazione.
func TestNormalizeDecimal_SeparatoriEquivalenti(t *testing.T) {
	comma, err := movement.NormalizeDecimal("12,5", movement.QuantityFractionDigits)
	require.NoError(t, err)
	dot, err := movement.NormalizeDecimal("12.5", movement.QuantityFractionDigits)
	require.NoError(t, err)

	assert.True(t, comma.Equal(dot), "12,5 e 12.5 devono normalizzare allo stesso valore")
	assert.Equal(t, "12.5", comma.String())
}

func TestNormalizeDecimal_ValoriValidi(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"0", "0"},
		{"100", "100"},
		{"0,001", "0.001"},
		{"1.25", "1.25"},
		{"-2,5", "-2.5"},
		{"  3,20 ", "3.2"},
		{"+7", "7"},
	}
	for _, tc := range cases {
		d, err := movement.NormalizeDecimal(tc.raw, movement.QuantityFractionDigits)
		require.NoError(t, err, "input %q deve essere accettato", tc.raw)
		assert.Equal(t, tc.want, d.String(), "input %q", tc.raw)
	}
}

func TestNormalizeDecimal_InputNonNumerici(t *testing.T) {
	cases := []string{"", "   ", "abc", "1,2,3", "1.2.3", "1,2.3", "12,", "12.", ",5", ".5", "-", "+", "--1", "1a"}
	for _, raw := range cases {
		_, err := movement.NormalizeDecimal(raw, movement.QuantityFractionDigits)
		assert.ErrorIs(t, err, movement.ErrInvalidNumber, "input %q deve essere rifiutato", raw)
	}
}

// TestNormalizeDecimal_PrecisioneEccessiva: le quantità ammettono al massimo
// 3 cifre decimali, i valori monetari 2. L'eccesso è un errore tipizzato,
// mai un arrotondamento silenzioso.
func TestNormalizeDecimal_PrecisioneEccessiva(t *testing.T) {
	_, err := movement.NormalizeDecimal("1,2345", movement.QuantityFractionDigits)
	var pe *movement.PrecisionError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 3, pe.MaxFractionDigits)

	_, err = movement.NormalizeDecimal("3,205", movement.MoneyFractionDigits)
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.MaxFractionDigits)

	// Al limite esatto passa.
	_, err = movement.NormalizeDecimal("1,234", movement.QuantityFractionDigits)
	assert.NoError(t, err)
	_, err = movement.NormalizeDecimal("3,20", movement.MoneyFractionDigits)
	assert.NoError(t, err)
}

func TestWithinPrecision(t *testing.T) {
	d, err := movement.NormalizeDecimal("1,234", movement.QuantityFractionDigits)
	require.NoError(t, err)
	assert.True(t, movement.WithinPrecision(d, 3))
	assert.False(t, movement.WithinPrecision(d, 2))
}

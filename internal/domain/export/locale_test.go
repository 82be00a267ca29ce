package export_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/magazzino-pro/magazzino-api/internal/domain/export"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// TestFormatQuantity_Italiano: esattamente 3 cifre decimali con la virgola,
// punto per le migliaia. 12.5 deve sempre rendere "12,500".
func TestFormatQuantity_Italiano(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"12.5", "12,500"},
		{"0", "0,000"},
		{"1234.567", "1.234,567"},
		{"1000000", "1.000.000,000"},
		{"-2.5", "-2,500"},
		{"0.001", "0,001"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, export.Italian.FormatQuantity(dec(t, tc.in)), "quantità %s", tc.in)
	}
}

// TestFormatCurrency_Italiano: 2 cifre decimali e prefisso valuta.
// 3.2 deve rendere "€ 3,20".
func TestFormatCurrency_Italiano(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"3.2", "€ 3,20"},
		{"0", "€ 0,00"},
		{"1234.5", "€ 1.234,50"},
		{"-15.75", "€ -15,75"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, export.Italian.FormatCurrency(dec(t, tc.in)), "valore %s", tc.in)
	}
}

func TestFormatDate_Italiano(t *testing.T) {
	d := time.Date(2026, 3, 25, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "25/03/2026", export.Italian.FormatDate(d))
}

func TestFormatBool_Italiano(t *testing.T) {
	assert.Equal(t, "Sì", export.Italian.FormatBool(true))
	assert.Equal(t, "No", export.Italian.FormatBool(false))
}

// TestForTag: locale registrato per tag, fallback italiano per tag ignoti.
func TestForTag(t *testing.T) {
	assert.Equal(t, export.Italian, export.ForTag(language.Italian))
	assert.Equal(t, export.Italian, export.ForTag(language.German), "tag non registrato -> fallback italiano")
}

// Package movement contiene il motore di dominio dei movimenti di magazzino:
// normalizzazione decimale, validazione dei campi, calcolo del delta di
// rettifica e la macchina a stati di conferma dello scarico. Nessun I/O.
package movement

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Cifre decimali massime ammesse per campo.
const (
	QuantityFractionDigits = 3 // quantità e giacenze
	MoneyFractionDigits    = 2 // valori monetari
)

// ErrInvalidNumber segnala un input non numerico.
var ErrInvalidNumber = errors.New("valore non numerico")

// PrecisionError segnala più cifre decimali del massimo consentito.
type PrecisionError struct {
	MaxFractionDigits int
}

func (e *PrecisionError) Error() string {
	return "troppe cifre decimali"
}

// NormalizeDecimal interpreta l'input utente come decimale esatto, accettando
// sia la virgola che il punto come separatore decimale, e lo canonicalizza
// nella rappresentazione interna punto-decimale. Rifiuta input non numerici,
// separatori multipli e più di maxFractionDigits cifre dopo il separatore.
func NormalizeDecimal(raw string, maxFractionDigits int) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Decimal{}, ErrInvalidNumber
	}

	// Un solo separatore frazionario, virgola o punto.
	if strings.Count(s, ",")+strings.Count(s, ".") > 1 {
		return decimal.Decimal{}, ErrInvalidNumber
	}
	s = strings.ReplaceAll(s, ",", ".")

	intPart := s
	var fracPart string
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
		if fracPart == "" {
			return decimal.Decimal{}, ErrInvalidNumber
		}
	}
	if intPart == "" || intPart == "-" || intPart == "+" {
		return decimal.Decimal{}, ErrInvalidNumber
	}
	for i, r := range intPart {
		if r >= '0' && r <= '9' {
			continue
		}
		if i == 0 && (r == '-' || r == '+') {
			continue
		}
		return decimal.Decimal{}, ErrInvalidNumber
	}
	for _, r := range fracPart {
		if r < '0' || r > '9' {
			return decimal.Decimal{}, ErrInvalidNumber
		}
	}
	if len(fracPart) > maxFractionDigits {
		return decimal.Decimal{}, &PrecisionError{MaxFractionDigits: maxFractionDigits}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidNumber
	}
	return d, nil
}

// WithinPrecision verifica che un decimale già parsato non superi il numero
// massimo di cifre frazionarie (usato per i valori che arrivano già tipizzati).
func WithinPrecision(d decimal.Decimal, maxFractionDigits int) bool {
	return d.Exponent() >= int32(-maxFractionDigits)
}

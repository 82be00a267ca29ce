// Package export contiene il motore di export: trasforma uno snapshot di
// inventario e storico movimenti in un workbook a due fogli con formattazione
// locale-corretta. Funzione pura: stesso input, stesso contenuto di celle.
package export

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// Locale è la strategia di formattazione per l'export: separatori numerici,
// valuta, data e booleani localizzati. Solo presentazione: i decimali
// sottostanti non vengono mai alterati.
type Locale struct {
	Tag          language.Tag
	DecimalSep   string
	ThousandsSep string
	CurrencyMark string // prefisso valuta, es. "€ "
	Yes          string
	No           string
	NoCategory   string // testo per categoria assente
	Placeholder  string // testo per valore assente, es. costo non registrato
	DateLayout   string
}

// Italian è il locale di riferimento del deployment: virgola decimale, punto
// per le migliaia, data giorno/mese/anno.
var Italian = Locale{
	Tag:          language.Italian,
	DecimalSep:   ",",
	ThousandsSep: ".",
	CurrencyMark: "€ ",
	Yes:          "Sì",
	No:           "No",
	NoCategory:   "Senza categoria",
	Placeholder:  "-",
	DateLayout:   "02/01/2006",
}

var locales = []Locale{Italian}

// ForTag restituisce il locale registrato per il tag indicato; un deployment
// non italiano è una voce in più qui, non una riscrittura. Fallback: Italian.
func ForTag(tag language.Tag) Locale {
	for _, l := range locales {
		if l.Tag == tag {
			return l
		}
	}
	return Italian
}

// FormatQuantity formatta una quantità con esattamente 3 cifre decimali e le
// convenzioni di raggruppamento del locale. Es. it: 12.5 -> "12,500".
func (l Locale) FormatQuantity(d decimal.Decimal) string {
	return l.formatFixed(d, 3)
}

// FormatCurrency formatta un valore monetario con esattamente 2 cifre
// decimali e il simbolo valuta. Es. it: 3.2 -> "€ 3,20".
func (l Locale) FormatCurrency(d decimal.Decimal) string {
	return l.CurrencyMark + l.formatFixed(d, 2)
}

// FormatDate formatta una data di calendario. Es. it: "25/03/2026".
func (l Locale) FormatDate(t time.Time) string {
	return t.Format(l.DateLayout)
}

// FormatBool formatta un booleano localizzato. Es. it: "Sì"/"No".
func (l Locale) FormatBool(v bool) string {
	if v {
		return l.Yes
	}
	return l.No
}

// formatFixed rende il decimale esatto a places cifre frazionarie e applica i
// separatori del locale. Il raggruppamento è fatto sulla stringa esatta di
// shopspring/decimal, mai passando da float.
func (l Locale) formatFixed(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)

	var sign string
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(l.ThousandsSep)
		}
		b.WriteRune(r)
	}
	if fracPart != "" {
		b.WriteString(l.DecimalSep)
		b.WriteString(fracPart)
	}
	return b.String()
}

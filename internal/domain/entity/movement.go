package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipi di movimento di magazzino (insieme chiuso).
const (
	MovementKindIN         = "IN"         // carico
	MovementKindOUT        = "OUT"        // scarico
	MovementKindADJUSTMENT = "ADJUSTMENT" // rettifica
)

// ValidMovementKind verifica che il tipo appartenga all'insieme chiuso.
func ValidMovementKind(kind string) bool {
	switch kind {
	case MovementKindIN, MovementKindOUT, MovementKindADJUSTMENT:
		return true
	}
	return false
}

// Movement rappresenta un movimento di magazzino: un fatto immutabile, append-only.
// Quantity è firmata: positiva per IN, negativa per OUT (lo store nega la quantità
// inserita dall'utente), delta firmato per ADJUSTMENT.
type Movement struct {
	ID               string
	ItemID           string
	Kind             string
	Quantity         decimal.Decimal  // max 3 cifre decimali
	MovementDate     time.Time        // solo data, default oggi
	UnitCostOverride *decimal.Decimal // override costo unitario, solo IN
	Note             string           // obbligatoria per ADJUSTMENT
	CreatedAt        time.Time
}

// MovementDetail arricchisce il movimento con i campi denormalizzati
// dell'articolo, per storico ed export.
type MovementDetail struct {
	Movement
	ItemName string
	ItemUnit string
}

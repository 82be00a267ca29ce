package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item rappresenta un articolo di magazzino.
// StockQuantity, StockValue, IsUnderMinStock e LastMovementAt sono derivati:
// lo store li ricalcola come fold sui movimenti a ogni lettura, mai in cache.
type Item struct {
	ID       string
	Name     string
	Category string // vuoto = senza categoria
	Unit     string // etichetta unità di misura, es. "pz", "kg"
	Notes    string

	MinStock decimal.Decimal // soglia scorta minima, >= 0
	UnitCost decimal.Decimal // costo unitario corrente, >= 0

	StockQuantity   decimal.Decimal // somma dei movimenti, mai negativa
	StockValue      decimal.Decimal // StockQuantity * UnitCost
	IsUnderMinStock bool            // StockQuantity < MinStock
	LastMovementAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

package entity

import "github.com/shopspring/decimal"

// DashboardStats indicatori aggregati del magazzino, calcolati dallo store
// come fold su articoli e movimenti.
type DashboardStats struct {
	TotalWarehouseValue decimal.Decimal // somma di StockValue su tutti gli articoli (EUR)
	UnderStockCount     int             // articoli con giacenza sotto la scorta minima
	TotalItemsCount     int
	ZeroStockCount      int // articoli senza movimenti o a giacenza zero
}

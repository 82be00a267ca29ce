package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errori di dominio (senza dipendenze esterne).
var (
	ErrNotFound             = errors.New("risorsa non trovata")
	ErrItemNotFound         = errors.New("articolo non trovato")
	ErrInvalidInput         = errors.New("dati non validi")
	ErrDuplicateName        = errors.New("esiste già un articolo con questo nome")
	ErrInsufficientStock    = errors.New("giacenza insufficiente")
	ErrAdjustmentNotNeeded  = errors.New("nessuna rettifica necessaria")
	ErrConfirmationRequired = errors.New("conferma richiesta per lo scarico")
	ErrInvalidDateRange     = errors.New("data movimento fuori intervallo")
	ErrItemHasStock         = errors.New("articolo con giacenza non nulla")
	ErrItemHasMovements     = errors.New("articolo con movimenti recenti")
)

// InsufficientStockError riporta il conflitto di scarico con il contesto necessario
// al messaggio utente: quantità richiesta, giacenza disponibile e unità di misura.
type InsufficientStockError struct {
	Requested decimal.Decimal
	Available decimal.Decimal
	Unit      string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("impossibile scaricare %s %s: giacenza disponibile %s %s",
		e.Requested.String(), e.Unit, e.Available.String(), e.Unit)
}

// Unwrap permette errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// AdjustmentNotNeededError segnala una rettifica con delta zero: il target coincide
// già con la giacenza corrente.
type AdjustmentNotNeededError struct {
	CurrentStock decimal.Decimal
	Unit         string
}

func (e *AdjustmentNotNeededError) Error() string {
	return fmt.Sprintf("nessuna rettifica necessaria: la giacenza è già %s %s",
		e.CurrentStock.String(), e.Unit)
}

func (e *AdjustmentNotNeededError) Unwrap() error { return ErrAdjustmentNotNeeded }

// ItemHasStockError blocca l'eliminazione di un articolo con giacenza non nulla.
type ItemHasStockError struct {
	CurrentStock decimal.Decimal
	Unit         string
}

func (e *ItemHasStockError) Error() string {
	return fmt.Sprintf("impossibile eliminare l'articolo: giacenza attuale %s %s",
		e.CurrentStock.String(), e.Unit)
}

func (e *ItemHasStockError) Unwrap() error { return ErrItemHasStock }

// ItemHasMovementsError blocca l'eliminazione di un articolo con movimenti negli
// ultimi 12 mesi.
type ItemHasMovementsError struct {
	MovementCount int
}

func (e *ItemHasMovementsError) Error() string {
	return fmt.Sprintf("impossibile eliminare l'articolo: esistono %d movimenti associati", e.MovementCount)
}

func (e *ItemHasMovementsError) Unwrap() error { return ErrItemHasMovements }

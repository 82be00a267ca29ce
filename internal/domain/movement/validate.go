package movement

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magazzino-pro/magazzino-api/internal/domain/entity"
)

// FieldErrors è l'esito di una validazione fallita: messaggio per campo,
// nella lingua dell'utente. Non raggiunge mai lo store.
type FieldErrors map[string]string

func (fe FieldErrors) add(field, msg string) {
	if _, ok := fe[field]; !ok {
		fe[field] = msg
	}
}

// Error implementa error per comodità di propagazione nei handler.
func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// Payload è il movimento normalizzato pronto per lo store. Per OUT Quantity è
// la magnitudine positiva (lo store la nega alla persistenza); per ADJUSTMENT
// Quantity è il delta firmato derivato e TargetStock il livello richiesto,
// che lo store riusa per riderivare il delta sulla giacenza bloccata in tx.
type Payload struct {
	ItemID           string
	Kind             string
	Quantity         decimal.Decimal
	TargetStock      *decimal.Decimal
	MovementDate     time.Time
	UnitCostOverride *decimal.Decimal
	Note             string
	Confirmed        bool // solo OUT; impostata esclusivamente dal flusso di conferma
}

// InInput input grezzo per un carico (IN).
type InInput struct {
	ItemID           string
	Quantity         string
	UnitCostOverride string // opzionale
	MovementDate     time.Time
	Note             string
}

// OutInput input grezzo per uno scarico (OUT).
type OutInput struct {
	ItemID       string
	Quantity     string
	MovementDate time.Time
	Note         string
}

// AdjustmentInput input grezzo per una rettifica (ADJUSTMENT). CurrentStock è
// la giacenza letta dallo snapshot, usata solo per l'anteprima del delta.
type AdjustmentInput struct {
	ItemID       string
	TargetStock  string
	MovementDate time.Time
	Note         string
	CurrentStock decimal.Decimal
}

func quantityError(err error) string {
	var pe *PrecisionError
	if errors.As(err, &pe) {
		return fmt.Sprintf("massimo %d cifre decimali consentite", pe.MaxFractionDigits)
	}
	return "deve essere un numero valido"
}

// orToday restituisce la data indicata oppure oggi se zero.
func orToday(d time.Time) time.Time {
	if d.IsZero() {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	return d
}

// ValidateIn valida e normalizza un carico. Richiede articolo, quantità > 0
// entro 3 decimali e override costo (se presente) >= 0 entro 2 decimali.
func ValidateIn(in InInput) (*Payload, FieldErrors) {
	fe := FieldErrors{}
	if strings.TrimSpace(in.ItemID) == "" {
		fe.add("item_id", "seleziona un articolo")
	}

	qty, err := NormalizeDecimal(in.Quantity, QuantityFractionDigits)
	if err != nil {
		fe.add("quantity", quantityError(err))
	} else if !qty.GreaterThan(decimal.Zero) {
		fe.add("quantity", "la quantità deve essere maggiore di zero")
	}

	var override *decimal.Decimal
	if strings.TrimSpace(in.UnitCostOverride) != "" {
		cost, err := NormalizeDecimal(in.UnitCostOverride, MoneyFractionDigits)
		switch {
		case err != nil:
			fe.add("unit_cost_override", quantityError(err))
		case cost.LessThan(decimal.Zero):
			fe.add("unit_cost_override", "il costo deve essere maggiore o uguale a zero")
		default:
			override = &cost
		}
	}

	if len(fe) > 0 {
		return nil, fe
	}
	return &Payload{
		ItemID:           in.ItemID,
		Kind:             entity.MovementKindIN,
		Quantity:         qty,
		MovementDate:     orToday(in.MovementDate),
		UnitCostOverride: override,
		Note:             strings.TrimSpace(in.Note),
	}, nil
}

// ValidateOut valida e normalizza uno scarico. I soli controlli locali sono
// positività e precisione: la sufficienza della giacenza è autoritativa solo
// allo store e non viene mai riderivata da uno snapshot potenzialmente stantio.
func ValidateOut(in OutInput) (*Payload, FieldErrors) {
	fe := FieldErrors{}
	if strings.TrimSpace(in.ItemID) == "" {
		fe.add("item_id", "seleziona un articolo")
	}

	qty, err := NormalizeDecimal(in.Quantity, QuantityFractionDigits)
	if err != nil {
		fe.add("quantity", quantityError(err))
	} else if !qty.GreaterThan(decimal.Zero) {
		fe.add("quantity", "la quantità deve essere maggiore di zero")
	}

	if len(fe) > 0 {
		return nil, fe
	}
	return &Payload{
		ItemID:       in.ItemID,
		Kind:         entity.MovementKindOUT,
		Quantity:     qty,
		MovementDate: orToday(in.MovementDate),
		Note:         strings.TrimSpace(in.Note),
	}, nil
}

// ComputeAdjustmentDelta deriva il delta di rettifica: target - corrente,
// sottrazione decimale esatta, senza arrotondamenti binari.
func ComputeAdjustmentDelta(currentStock, targetStock decimal.Decimal) decimal.Decimal {
	return targetStock.Sub(currentStock)
}

// ValidateAdjustment valida e normalizza una rettifica. Il target deve essere
// >= 0 entro 3 decimali, il delta derivato diverso da zero (uguaglianza
// decimale esatta, nessuna tolleranza) e la nota obbligatoria non vuota.
func ValidateAdjustment(in AdjustmentInput) (*Payload, FieldErrors) {
	fe := FieldErrors{}
	if strings.TrimSpace(in.ItemID) == "" {
		fe.add("item_id", "seleziona un articolo")
	}

	target, err := NormalizeDecimal(in.TargetStock, QuantityFractionDigits)
	switch {
	case err != nil:
		fe.add("target_stock", quantityError(err))
	case target.LessThan(decimal.Zero):
		fe.add("target_stock", "la giacenza target deve essere maggiore o uguale a zero")
	case ComputeAdjustmentDelta(in.CurrentStock, target).IsZero():
		fe.add("target_stock", "nessuna rettifica necessaria: il target coincide con la giacenza attuale")
	}

	if strings.TrimSpace(in.Note) == "" {
		fe.add("note", "la nota è obbligatoria per le rettifiche")
	}

	if len(fe) > 0 {
		return nil, fe
	}
	return &Payload{
		ItemID:       in.ItemID,
		Kind:         entity.MovementKindADJUSTMENT,
		Quantity:     ComputeAdjustmentDelta(in.CurrentStock, target),
		TargetStock:  &target,
		MovementDate: orToday(in.MovementDate),
		Note:         strings.TrimSpace(in.Note),
	}, nil
}

package dto

import (
	"time"

	"github.com/magazzino-pro/magazzino-api/internal/domain/entity"
)

// RegisterMovementRequest body per POST /api/movements. I campi numerici
// arrivano come stringhe grezze (separatore decimale virgola o punto) e
// passano dal motore di normalizzazione; il significato di quantity dipende
// dal tipo: carico per IN, scarico per OUT, mentre ADJUSTMENT usa TargetStock.
type RegisterMovementRequest struct {
	ItemID           string `json:"item_id"`
	Kind             string `json:"kind"`
	Quantity         string `json:"quantity,omitempty"`
	TargetStock      string `json:"target_stock,omitempty"`
	MovementDate     string `json:"movement_date,omitempty"` // YYYY-MM-DD, default oggi
	UnitCostOverride string `json:"unit_cost_override,omitempty"`
	Note             string `json:"note,omitempty"`
	Confirmed        bool   `json:"confirmed,omitempty"` // obbligatorio true per OUT
}

// MovementResponse movimento registrato, con i campi denormalizzati
// dell'articolo per lo storico.
type MovementResponse struct {
	ID               string    `json:"id"`
	ItemID           string    `json:"item_id"`
	ItemName         string    `json:"item_name,omitempty"`
	ItemUnit         string    `json:"item_unit,omitempty"`
	Kind             string    `json:"kind"`
	Quantity         string    `json:"quantity"`
	MovementDate     string    `json:"movement_date"`
	UnitCostOverride string    `json:"unit_cost_override,omitempty"`
	Note             string    `json:"note,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewMovementResponse converte il dettaglio movimento in DTO.
func NewMovementResponse(mov *entity.MovementDetail) MovementResponse {
	out := MovementResponse{
		ID:           mov.ID,
		ItemID:       mov.ItemID,
		ItemName:     mov.ItemName,
		ItemUnit:     mov.ItemUnit,
		Kind:         mov.Kind,
		Quantity:     mov.Quantity.String(),
		MovementDate: mov.MovementDate.Format("2006-01-02"),
		Note:         mov.Note,
		CreatedAt:    mov.CreatedAt,
	}
	if mov.UnitCostOverride != nil {
		out.UnitCostOverride = mov.UnitCostOverride.String()
	}
	return out
}

// MovementListResponse risposta di GET /api/movements.
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
	Total     int                `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/magazzino-pro/magazzino-api/internal/application/dto"
	"github.com/magazzino-pro/magazzino-api/internal/domain"
	"github.com/magazzino-pro/magazzino-api/internal/domain/entity"
	"github.com/magazzino-pro/magazzino-api/internal/domain/movement"
	"github.com/magazzino-pro/magazzino-api/internal/domain/repository"
)

// maxDateOffsetDays finestra ammessa per la data movimento: lo store rifiuta
// date oltre un anno nel passato o nel futuro.
const maxDateOffsetDays = 365

// RegisterMovementUseCase registra movimenti di magazzino in modo
// transazionale (IN, OUT, ADJUSTMENT) con blocco di riga (SELECT FOR UPDATE)
// e Commit/Rollback. La giacenza è sempre riderivata come fold sui movimenti
// dentro la transazione, mai letta da una cache.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
}

// NewRegisterMovementUseCase costruisce il caso d'uso.
func NewRegisterMovementUseCase(txRunner TxRunner, itemRepo repository.ItemRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, itemRepo: itemRepo}
}

// Compile-time: il caso d'uso soddisfa il Submitter del flusso di scarico.
var _ movement.Submitter = (*RegisterMovementUseCase)(nil)

// Submit implementa movement.Submitter: una richiesta per conferma, nessun
// retry, nessuna deduplica.
func (uc *RegisterMovementUseCase) Submit(ctx context.Context, payload movement.Payload) error {
	_, err := uc.Register(ctx, payload)
	return err
}

// RegisterFromRequest adatta il body HTTP grezzo al payload normalizzato:
// passa dal motore di validazione (mai dallo store) e poi da Register.
// Restituisce gli errori per campo quando la validazione locale fallisce.
func (uc *RegisterMovementUseCase) RegisterFromRequest(ctx context.Context, in dto.RegisterMovementRequest) (*entity.Item, movement.FieldErrors, error) {
	if !entity.ValidMovementKind(in.Kind) {
		return nil, nil, domain.ErrInvalidInput
	}

	movementDate, fe := parseMovementDate(in.MovementDate)
	if fe != nil {
		return nil, fe, nil
	}

	var payload *movement.Payload
	switch in.Kind {
	case entity.MovementKindIN:
		payload, fe = movement.ValidateIn(movement.InInput{
			ItemID:           in.ItemID,
			Quantity:         in.Quantity,
			UnitCostOverride: in.UnitCostOverride,
			MovementDate:     movementDate,
			Note:             in.Note,
		})
	case entity.MovementKindOUT:
		payload, fe = movement.ValidateOut(movement.OutInput{
			ItemID:       in.ItemID,
			Quantity:     in.Quantity,
			MovementDate: movementDate,
			Note:         in.Note,
		})
		if fe == nil {
			payload.Confirmed = in.Confirmed
		}
	case entity.MovementKindADJUSTMENT:
		// Unica lettura della giacenza fuori transazione: serve solo
		// all'anteprima del delta; il valore autoritativo è ricalcolato
		// dentro la tx in Register.
		currentStock, err := uc.itemRepo.CurrentStock(ctx, in.ItemID)
		if err != nil {
			return nil, nil, err
		}
		payload, fe = movement.ValidateAdjustment(movement.AdjustmentInput{
			ItemID:       in.ItemID,
			TargetStock:  in.TargetStock,
			MovementDate: movementDate,
			Note:         in.Note,
			CurrentStock: currentStock,
		})
	}
	if fe != nil {
		return nil, fe, nil
	}

	item, err := uc.Register(ctx, *payload)
	return item, nil, err
}

// Register applica un payload normalizzato: valida il contratto, apre la
// transazione, blocca la riga dell'articolo, ricalcola la giacenza e
// persiste il movimento. Restituisce l'articolo aggiornato.
func (uc *RegisterMovementUseCase) Register(ctx context.Context, payload movement.Payload) (*entity.Item, error) {
	if !entity.ValidMovementKind(payload.Kind) || payload.ItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	// Violazione di contratto, non errore utente: uno scarico non deve poter
	// raggiungere lo store senza la conferma esplicita.
	if payload.Kind == entity.MovementKindOUT && !payload.Confirmed {
		return nil, domain.ErrConfirmationRequired
	}
	if err := checkDateRange(payload.MovementDate); err != nil {
		return nil, err
	}

	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		item, err := itemRepo.GetForUpdate(ctx, payload.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotFound
		}

		stock, err := itemRepo.CurrentStock(ctx, payload.ItemID)
		if err != nil {
			return err
		}

		switch payload.Kind {
		case entity.MovementKindIN:
			return uc.doIN(ctx, itemRepo, movRepo, payload)
		case entity.MovementKindOUT:
			return uc.doOUT(ctx, movRepo, item, stock, payload)
		case entity.MovementKindADJUSTMENT:
			return uc.doADJUSTMENT(ctx, movRepo, item, stock, payload)
		}
		return domain.ErrInvalidInput
	})
	if err != nil {
		return nil, err
	}

	return uc.itemRepo.GetByID(ctx, payload.ItemID)
}

// doIN: quantità positiva, override costo opzionale che aggiorna il costo
// unitario dell'articolo.
func (uc *RegisterMovementUseCase) doIN(ctx context.Context, itemRepo repository.ItemRepository, movRepo repository.MovementRepository, payload movement.Payload) error {
	if !payload.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if payload.UnitCostOverride != nil {
		if payload.UnitCostOverride.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		if err := itemRepo.UpdateUnitCost(ctx, payload.ItemID, *payload.UnitCostOverride); err != nil {
			return err
		}
	}
	return movRepo.Create(ctx, newMovement(payload, payload.Quantity))
}

// doOUT: verifica giacenza sufficiente sulla somma bloccata in tx e registra
// la quantità negata. Il conflitto porta quantità richiesta, disponibile e
// unità per il messaggio utente.
func (uc *RegisterMovementUseCase) doOUT(ctx context.Context, movRepo repository.MovementRepository, item *entity.Item, stock decimal.Decimal, payload movement.Payload) error {
	if !payload.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if stock.LessThan(payload.Quantity) {
		return &domain.InsufficientStockError{
			Requested: payload.Quantity,
			Available: stock,
			Unit:      item.Unit,
		}
	}
	return movRepo.Create(ctx, newMovement(payload, payload.Quantity.Neg()))
}

// doADJUSTMENT: rideriva il delta sul target rispetto alla giacenza bloccata
// in tx (lo snapshot del client può essere stantio) e registra il delta
// firmato. Delta zero è rifiutato; la nota è obbligatoria.
func (uc *RegisterMovementUseCase) doADJUSTMENT(ctx context.Context, movRepo repository.MovementRepository, item *entity.Item, stock decimal.Decimal, payload movement.Payload) error {
	if payload.Note == "" {
		return domain.ErrInvalidInput
	}

	delta := payload.Quantity
	if payload.TargetStock != nil {
		if payload.TargetStock.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		delta = movement.ComputeAdjustmentDelta(stock, *payload.TargetStock)
	}
	if delta.IsZero() {
		return &domain.AdjustmentNotNeededError{CurrentStock: stock, Unit: item.Unit}
	}
	// La giacenza non può mai diventare negativa dopo un movimento accettato.
	if stock.Add(delta).LessThan(decimal.Zero) {
		return &domain.InsufficientStockError{
			Requested: delta.Neg(),
			Available: stock,
			Unit:      item.Unit,
		}
	}
	return movRepo.Create(ctx, newMovement(payload, delta))
}

func newMovement(payload movement.Payload, quantity decimal.Decimal) *entity.Movement {
	return &entity.Movement{
		ID:               uuid.New().String(),
		ItemID:           payload.ItemID,
		Kind:             payload.Kind,
		Quantity:         quantity,
		MovementDate:     payload.MovementDate,
		UnitCostOverride: payload.UnitCostOverride,
		Note:             payload.Note,
		CreatedAt:        time.Now(),
	}
}

func checkDateRange(movementDate time.Time) error {
	today := time.Now()
	min := today.AddDate(0, 0, -maxDateOffsetDays)
	max := today.AddDate(0, 0, maxDateOffsetDays)
	if movementDate.Before(min) || movementDate.After(max) {
		return domain.ErrInvalidDateRange
	}
	return nil
}

func parseMovementDate(raw string) (time.Time, movement.FieldErrors) {
	if raw == "" {
		return time.Time{}, nil // il motore applica il default "oggi"
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, movement.FieldErrors{"movement_date": "la data deve essere nel formato AAAA-MM-GG"}
	}
	return d, nil
}

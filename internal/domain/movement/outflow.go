package movement

import (
	"context"
	"errors"
	"fmt"

	"github.com/magazzino-pro/magazzino-api/internal/domain"
)

// OutState stato del flusso di scarico.
type OutState int

const (
	StateEditing OutState = iota
	StateValidated
	StateAwaitingConfirmation
	StateSubmitting
	StateAccepted
)

func (s OutState) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateValidated:
		return "validated"
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	case StateSubmitting:
		return "submitting"
	case StateAccepted:
		return "accepted"
	}
	return "unknown"
}

// OutOutcome esito dell'ultimo tentativo di invio.
type OutOutcome int

const (
	OutcomeNone OutOutcome = iota
	OutcomeAccepted
	OutcomeRejectedInsufficientStock
	OutcomeRejectedError
)

// ErrIllegalTransition segnala una violazione di contratto del flusso di
// scarico: transizione richiesta da uno stato che non la ammette. Non è un
// errore utente e non deve essere raggiungibile dall'API pubblica.
var ErrIllegalTransition = errors.New("transizione di stato non ammessa")

// Submitter invia il payload confermato allo store. Una sola richiesta per
// conferma: il flusso non ritenta, non raggruppa, non deduplica.
type Submitter interface {
	Submit(ctx context.Context, payload Payload) error
}

// OutFlow è la macchina a stati dello scarico:
//
//	Editing → Validated → AwaitingConfirmation → Submitting → {Accepted | Rejected}
//
// Confirmed sul payload è impostabile esclusivamente da ConfirmAndSubmit: non
// esiste altro percorso che porti un payload confermato allo store. Dopo un
// rifiuto il flusso torna a Editing con l'input preservato.
type OutFlow struct {
	submitter Submitter
	itemUnit  string

	state   OutState
	input   OutInput
	payload *Payload
	outcome OutOutcome
	message string
}

// NewOutFlow costruisce il flusso in stato Editing. itemUnit è l'unità di
// misura dell'articolo, usata nel messaggio di conflitto.
func NewOutFlow(submitter Submitter, itemUnit string) *OutFlow {
	return &OutFlow{submitter: submitter, itemUnit: itemUnit, state: StateEditing}
}

// Edit aggiorna l'input e riporta il flusso a Editing (da qualunque stato
// precedente all'invio). Azzera l'esito precedente.
func (f *OutFlow) Edit(in OutInput) error {
	if f.state == StateSubmitting {
		return ErrIllegalTransition
	}
	f.input = in
	f.payload = nil
	f.state = StateEditing
	f.outcome = OutcomeNone
	f.message = ""
	return nil
}

// Validate esegue la validazione locale dei campi: Editing → Validated se
// passa, altrimenti resta in Editing e restituisce gli errori per campo.
func (f *OutFlow) Validate() FieldErrors {
	if f.state != StateEditing {
		return FieldErrors{"state": ErrIllegalTransition.Error()}
	}
	payload, fe := ValidateOut(f.input)
	if fe != nil {
		return fe
	}
	f.payload = payload
	f.state = StateValidated
	return nil
}

// RequestConfirmation: Validated → AwaitingConfirmation. L'invio resta
// bloccato finché l'utente non conferma esplicitamente.
func (f *OutFlow) RequestConfirmation() error {
	if f.state != StateValidated {
		return ErrIllegalTransition
	}
	f.state = StateAwaitingConfirmation
	return nil
}

// Cancel abbandona la conferma: AwaitingConfirmation → Editing, nessun invio,
// nessun effetto collaterale, input conservato.
func (f *OutFlow) Cancel() error {
	if f.state != StateAwaitingConfirmation {
		return ErrIllegalTransition
	}
	f.payload.Confirmed = false
	f.state = StateEditing
	return nil
}

// ConfirmAndSubmit registra la conferma dell'utente e invia il payload:
// AwaitingConfirmation → Submitting → esito. È l'unico punto del motore che
// attraversa il confine verso lo store. Una volta entrati in Submitting
// l'esito va atteso: non è offerta cancellazione.
func (f *OutFlow) ConfirmAndSubmit(ctx context.Context) error {
	if f.state == StateSubmitting {
		// Invariante: al più un invio in volo per istanza di flusso.
		return ErrIllegalTransition
	}
	if f.state != StateAwaitingConfirmation {
		return ErrIllegalTransition
	}

	f.payload.Confirmed = true
	f.state = StateSubmitting

	err := f.submitter.Submit(ctx, *f.payload)
	switch {
	case err == nil:
		// Terminale: il modulo si resetta.
		f.state = StateAccepted
		f.outcome = OutcomeAccepted
		f.input = OutInput{}
		f.payload = nil
	case errors.Is(err, domain.ErrInsufficientStock):
		// Conflitto lato store: messaggio con quantità tentata e unità,
		// ritorno a Editing con la quantità ancora popolata.
		f.state = StateEditing
		f.outcome = OutcomeRejectedInsufficientStock
		f.message = f.conflictMessage(err)
		f.payload = nil
	default:
		f.state = StateEditing
		f.outcome = OutcomeRejectedError
		f.message = "errore durante la registrazione del movimento"
		f.payload = nil
	}
	return nil
}

func (f *OutFlow) conflictMessage(err error) string {
	var ise *domain.InsufficientStockError
	if errors.As(err, &ise) {
		return fmt.Sprintf("impossibile scaricare %s %s: giacenza disponibile %s %s",
			ise.Requested.String(), f.itemUnit, ise.Available.String(), f.itemUnit)
	}
	return fmt.Sprintf("impossibile scaricare %s %s: giacenza insufficiente",
		f.input.Quantity, f.itemUnit)
}

// State stato corrente del flusso.
func (f *OutFlow) State() OutState { return f.state }

// Outcome esito dell'ultimo invio (OutcomeNone se nessuno).
func (f *OutFlow) Outcome() OutOutcome { return f.outcome }

// Message messaggio utente dell'ultimo esito negativo.
func (f *OutFlow) Message() string { return f.message }

// Input input corrente, preservato dopo un rifiuto per la correzione.
func (f *OutFlow) Input() OutInput { return f.input }

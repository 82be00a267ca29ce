package dto

// PageRequest paginazione per i listati.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage applica i valori di default se Limit/Offset non sono validi.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Limit > 500 {
		p.Limit = 500
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse corpo di errore HTTP. Fields è valorizzato solo per gli
// errori di validazione locale (messaggio per campo); Context porta i dati
// strutturati dei conflitti (es. quantità richiesta, giacenza disponibile).
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Context map[string]any    `json:"context,omitempty"`
}

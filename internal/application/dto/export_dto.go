package dto

// ExportPreviewResponse risposta di GET /api/export/preview: lo snapshot che
// il collaboratore consuma così com'è per la generazione lato client.
type ExportPreviewResponse struct {
	ExportDate  string             `json:"export_date"`  // YYYY-MM-DD
	PeriodStart string             `json:"period_start"` // inizio finestra 12 mesi
	PeriodEnd   string             `json:"period_end"`
	Inventory   []ItemResponse     `json:"inventory"`
	Movements   []MovementResponse `json:"movements"`
}

package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/magazzino-pro/magazzino-api/internal/domain/entity"
)

// Nomi dei fogli e prefisso del nome file.
const (
	SheetInventory = "Inventario"
	SheetMovements = "Movimenti_ultimi_12_mesi"
	filenamePrefix = "magazzino"
)

// Snapshot è la lettura puntuale di inventario e finestra movimenti fornita
// dallo store, consumata così com'è. Il motore si fida della sua forma e non
// ne valida la coerenza: uno snapshot malformato è una violazione di
// contratto del chiamante, non un errore di dominio.
type Snapshot struct {
	ExportDate  time.Time
	PeriodStart time.Time
	PeriodEnd   time.Time
	Inventory   []entity.Item
	Movements   []entity.MovementDetail
}

// Filename applica il contratto del nome file: magazzino_YYYYMMDD.xlsx, dove
// la data è quella di generazione dell'export, non di alcun movimento.
func Filename(exportDate time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", filenamePrefix, exportDate.Format("20060102"))
}

var inventoryHeader = []string{
	"Nome", "Categoria", "Unità", "Giacenza", "Min. Scorta",
	"Sotto Scorta", "Costo Unitario", "Valore", "Note",
}

var inventoryWidths = []float64{30, 20, 10, 12, 12, 12, 15, 15, 40}

var movementsHeader = []string{
	"Data", "Articolo", "Tipo", "Quantità", "Unità", "Costo Unitario", "Nota",
}

var movementsWidths = []float64{12, 30, 12, 12, 10, 15, 50}

// BuildWorkbook genera il workbook a due fogli dallo snapshot. Deterministico:
// ordine righe = ordine di input (determinato dallo store, il motore non
// riordina), layout colonne fisso, valori formattati secondo il locale.
func BuildWorkbook(snap Snapshot, loc Locale) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", SheetInventory)
	if _, err := f.NewSheet(SheetMovements); err != nil {
		return nil, fmt.Errorf("crea foglio movimenti: %w", err)
	}

	if err := writeSheet(f, SheetInventory, inventoryHeader, inventoryWidths, len(snap.Inventory), func(i int) []string {
		return inventoryRow(snap.Inventory[i], loc)
	}); err != nil {
		return nil, err
	}
	if err := writeSheet(f, SheetMovements, movementsHeader, movementsWidths, len(snap.Movements), func(i int) []string {
		return movementRow(snap.Movements[i], loc)
	}); err != nil {
		return nil, err
	}
	return f, nil
}

func inventoryRow(item entity.Item, loc Locale) []string {
	category := item.Category
	if category == "" {
		category = loc.NoCategory
	}
	return []string{
		item.Name,
		category,
		item.Unit,
		loc.FormatQuantity(item.StockQuantity),
		loc.FormatQuantity(item.MinStock),
		loc.FormatBool(item.IsUnderMinStock),
		loc.FormatCurrency(item.UnitCost),
		loc.FormatCurrency(item.StockValue),
		item.Notes,
	}
}

func movementRow(mov entity.MovementDetail, loc Locale) []string {
	// Per ADJUSTMENT la quantità è il delta firmato, non una magnitudine:
	// viene formattata così come registrata.
	unitCost := loc.Placeholder
	if mov.UnitCostOverride != nil {
		unitCost = loc.FormatCurrency(*mov.UnitCostOverride)
	}
	unit := mov.ItemUnit
	if unit == "" {
		unit = loc.Placeholder
	}
	return []string{
		loc.FormatDate(mov.MovementDate),
		mov.ItemName,
		mov.Kind,
		loc.FormatQuantity(mov.Quantity),
		unit,
		unitCost,
		mov.Note,
	}
}

func writeSheet(f *excelize.File, sheet string, header []string, widths []float64, rows int, row func(i int) []string) error {
	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return fmt.Errorf("intestazione %s: %w", sheet, err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, widths[col]); err != nil {
			return fmt.Errorf("larghezza colonna %s: %w", sheet, err)
		}
	}
	for i := 0; i < rows; i++ {
		values := row(i)
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("riga %d foglio %s: %w", i+2, sheet, err)
			}
		}
	}
	return nil
}

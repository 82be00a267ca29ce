package export_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magazzino-pro/magazzino-api/internal/domain/entity"
	"github.com/magazzino-pro/magazzino-api/internal/domain/export"
)

func snapshotDiProva(t *testing.T) export.Snapshot {
	t.Helper()
	override := dec(t, "3.20")
	return export.Snapshot{
		ExportDate:  time.Date(2026, 3, 25, 10, 0, 0, 0, time.UTC),
		PeriodStart: time.Date(2025, 3, 25, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC),
		Inventory: []entity.Item{
			{
				Name:            "Filtro olio",
				Category:        "",
				Unit:            "pz",
				Notes:           "scaffale B3",
				MinStock:        dec(t, "10"),
				UnitCost:        dec(t, "3.2"),
				StockQuantity:   dec(t, "12.5"),
				StockValue:      dec(t, "40"),
				IsUnderMinStock: false,
			},
			{
				Name:            "Guarnizione testata",
				Category:        "Ricambi motore",
				Unit:            "pz",
				MinStock:        dec(t, "5"),
				UnitCost:        dec(t, "18.5"),
				StockQuantity:   dec(t, "2"),
				StockValue:      dec(t, "37"),
				IsUnderMinStock: true,
			},
		},
		Movements: []entity.MovementDetail{
			{
				Movement: entity.Movement{
					Kind:             entity.MovementKindIN,
					Quantity:         dec(t, "12.5"),
					MovementDate:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
					UnitCostOverride: &override,
					Note:             "consegna fornitore",
				},
				ItemName: "Filtro olio",
				ItemUnit: "pz",
			},
			{
				Movement: entity.Movement{
					Kind:         entity.MovementKindADJUSTMENT,
					Quantity:     dec(t, "-2.5"),
					MovementDate: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
					Note:         "inventario fisico",
				},
				ItemName: "Guarnizione testata",
				ItemUnit: "pz",
			},
		},
	}
}

func TestFilename(t *testing.T) {
	d := time.Date(2026, 3, 25, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "magazzino_20260325.xlsx", export.Filename(d))
}

// TestBuildWorkbook_DueFogli: il workbook contiene esattamente i due fogli
// con i nomi del contratto.
func TestBuildWorkbook_DueFogli(t *testing.T) {
	f, err := export.BuildWorkbook(snapshotDiProva(t), export.Italian)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Equal(t, []string{"Inventario", "Movimenti_ultimi_12_mesi"}, sheets)
}

// TestBuildWorkbook_RigaInventario valida il vettore di riferimento della
// formattazione italiana: giacenza "12,500", costo "€ 3,20", categoria
// assente resa come "Senza categoria".
func TestBuildWorkbook_RigaInventario(t *testing.T) {
	f, err := export.BuildWorkbook(snapshotDiProva(t), export.Italian)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetInventory)
	require.NoError(t, err)
	require.Len(t, rows, 3, "intestazione + 2 articoli")

	assert.Equal(t, []string{
		"Nome", "Categoria", "Unità", "Giacenza", "Min. Scorta",
		"Sotto Scorta", "Costo Unitario", "Valore", "Note",
	}, rows[0])

	assert.Equal(t, []string{
		"Filtro olio", "Senza categoria", "pz", "12,500", "10,000",
		"No", "€ 3,20", "€ 40,00", "scaffale B3",
	}, rows[1])

	// Secondo articolo: sotto scorta, con categoria, note assenti.
	riga := rows[2]
	assert.Equal(t, "Ricambi motore", riga[1])
	assert.Equal(t, "Sì", riga[5])
}

// TestBuildWorkbook_RigaMovimenti: data gg/mm/aaaa, delta firmato formattato
// così come registrato, costo assente reso con il placeholder.
func TestBuildWorkbook_RigaMovimenti(t *testing.T) {
	f, err := export.BuildWorkbook(snapshotDiProva(t), export.Italian)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetMovements)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"Data", "Articolo", "Tipo", "Quantità", "Unità", "Costo Unitario", "Nota",
	}, rows[0])

	assert.Equal(t, []string{
		"10/03/2026", "Filtro olio", "IN", "12,500", "pz", "€ 3,20", "consegna fornitore",
	}, rows[1])

	assert.Equal(t, []string{
		"12/03/2026", "Guarnizione testata", "ADJUSTMENT", "-2,500", "pz", "-", "inventario fisico",
	}, rows[2])
}

// TestBuildWorkbook_Deterministico: due generazioni dallo stesso snapshot
// producono celle identiche.
func TestBuildWorkbook_Deterministico(t *testing.T) {
	snap := snapshotDiProva(t)

	f1, err := export.BuildWorkbook(snap, export.Italian)
	require.NoError(t, err)
	defer f1.Close()
	f2, err := export.BuildWorkbook(snap, export.Italian)
	require.NoError(t, err)
	defer f2.Close()

	for _, sheet := range []string{export.SheetInventory, export.SheetMovements} {
		rows1, err := f1.GetRows(sheet)
		require.NoError(t, err)
		rows2, err := f2.GetRows(sheet)
		require.NoError(t, err)
		assert.Equal(t, rows1, rows2, "foglio %s", sheet)
	}
}

func TestBuildWorkbook_SnapshotVuoto(t *testing.T) {
	f, err := export.BuildWorkbook(export.Snapshot{}, export.Italian)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetInventory)
	require.NoError(t, err)
	require.Len(t, rows, 1, "solo intestazione")
}

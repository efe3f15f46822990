package planning_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Industria-api/internal/domain"
	"github.com/jhoicas/Industria-api/internal/domain/entity"
	domplanning "github.com/jhoicas/Industria-api/internal/domain/planning"
	"github.com/jhoicas/Industria-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	widgetID int32 = 101
	gadgetID int32 = 102
	oreID    int32 = 103
)

// buildTestCatalog arma un catálogo en memoria con tres tipos conocidos.
func buildTestCatalog() *memory.CatalogRepo {
	catalog := memory.NewCatalogRepository()
	catalog.AddItem(entity.TypeInfo{TypeID: widgetID, TypeName: "Widget", GroupID: 1, GroupName: "Productos", UnitVolume: decimal.NewFromInt(10)})
	catalog.AddItem(entity.TypeInfo{TypeID: gadgetID, TypeName: "Gadget", GroupID: 2, GroupName: "Componentes", UnitVolume: decimal.NewFromFloat(0.5)})
	catalog.AddItem(entity.TypeInfo{TypeID: oreID, TypeName: "Ore", GroupID: 3, GroupName: "Minerales", UnitVolume: decimal.NewFromFloat(0.1)})
	return catalog
}

func demandOf(typeID int32, name string, qty int64) entity.MaterialDemand {
	return entity.MaterialDemand{
		TypeInfo:       entity.TypeInfo{TypeID: typeID, TypeName: name},
		QuantityNeeded: qty,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// AddStock
// ──────────────────────────────────────────────────────────────────────────────

// El stock con nombre conocido se resuelve contra el catálogo y entra al libro.
func TestAddStock_ResuelveNombreYAcumula(t *testing.T) {
	plan := domplanning.NewBuildPlan()
	catalog := buildTestCatalog()

	rejected, err := plan.AddStock(context.Background(), []entity.Item{
		{TypeName: "Gadget", Quantity: 4},
		{TypeName: "gadget", Quantity: 6}, // mismo tipo, insensible a mayúsculas
	}, catalog)
	require.NoError(t, err)
	assert.Empty(t, rejected)

	entry := plan.Entry(gadgetID)
	require.NotNil(t, entry, "debe existir la entrada del Gadget")
	assert.Equal(t, int64(10), entry.OpeningStockQuantity, "el stock del mismo tipo se acumula")
	assert.Equal(t, "Gadget", entry.TypeName)
	assert.Equal(t, "Componentes", entry.GroupName)
}

// Un nombre desconocido va a la lista de rechazados sin crear entrada ni abortar.
func TestAddStock_NombreDesconocidoRechazado(t *testing.T) {
	plan := domplanning.NewBuildPlan()
	catalog := buildTestCatalog()

	rejected, err := plan.AddStock(context.Background(), []entity.Item{
		{TypeName: "Nonexistent Item", Quantity: 1},
		{TypeName: "Widget", Quantity: 2},
	}, catalog)
	require.NoError(t, err)

	require.Len(t, rejected, 1)
	assert.Equal(t, "Nonexistent Item", rejected[0].TypeName)
	assert.Len(t, plan.OpeningStock(), 1, "solo el Widget entra al libro")
}

// ──────────────────────────────────────────────────────────────────────────────
// Identidad de neteo
// ──────────────────────────────────────────────────────────────────────────────

// Para toda entrada: inicial + producido + a comprar >= necesario, con igualdad
// cuando la fórmula de toBuy no se recortó en cero.
func TestLedger_IdentidadDeNeteo(t *testing.T) {
	cases := []struct {
		name                        string
		opening, needed, produced   int64
		wantToBuy, wantClosingStock int64
	}{
		{"compra pura", 0, 65, 0, 65, 0},
		{"cubierto por stock", 10, 4, 0, 0, 6},
		{"cubierto por producción", 0, 5, 5, 0, 0},
		{"mixto", 4, 10, 3, 3, 0},
		{"sobreproducción", 0, 5, 8, 0, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := entity.InventoryLedgerEntry{
				TypeID:               widgetID,
				OpeningStockQuantity: tc.opening,
				QuantityNeeded:       tc.needed,
				QuantityProduced:     tc.produced,
			}
			assert.Equal(t, tc.wantToBuy, e.QuantityToBuy())
			assert.Equal(t, tc.wantClosingStock, e.ClosingStockQuantity())
			assert.GreaterOrEqual(t,
				e.OpeningStockQuantity+e.QuantityProduced+e.QuantityToBuy(),
				e.QuantityNeeded,
				"el suministro total nunca queda por debajo de la demanda")
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// AddJob
// ──────────────────────────────────────────────────────────────────────────────

// Un trabajo sobre un tipo sin demanda previa es un bug del motor, no un error
// de usuario: ErrLedgerInvariant.
func TestAddJob_SinDemandaPrevia_ViolaInvariante(t *testing.T) {
	plan := domplanning.NewBuildPlan()

	err := plan.AddJob(entity.Job{OutputTypeID: widgetID, OutputQuantity: 5})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrLedgerInvariant))
	assert.Empty(t, plan.Jobs())
}

func TestAddJob_AcreditaProduccion(t *testing.T) {
	plan := domplanning.NewBuildPlan()
	plan.AddNeededDemand(demandOf(widgetID, "Widget", 5))

	require.NoError(t, plan.AddJob(entity.Job{OutputTypeID: widgetID, OutputQuantity: 5}))

	entry := plan.Entry(widgetID)
	assert.Equal(t, int64(5), entry.QuantityProduced)
	assert.Equal(t, int64(0), entry.QuantityToBuy(), "la producción cubre la demanda")
	assert.Len(t, plan.Jobs(), 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Merge
// ──────────────────────────────────────────────────────────────────────────────

// Merge es conmutativo sobre el libro: P1+P2 y P2+P1 producen las mismas
// cantidades, y coinciden con una sola pasada que agregara ambas demandas.
func TestMerge_Conmutativo(t *testing.T) {
	mkPlan := func(qtyGadget, qtyOre int64) *domplanning.BuildPlan {
		p := domplanning.NewBuildPlan()
		if qtyGadget > 0 {
			p.AddNeededDemand(demandOf(gadgetID, "Gadget", qtyGadget))
		}
		if qtyOre > 0 {
			p.AddNeededDemand(demandOf(oreID, "Ore", qtyOre))
		}
		return p
	}

	ab := mkPlan(10, 0)
	require.NoError(t, ab.Merge(mkPlan(5, 7)))

	ba := mkPlan(5, 7)
	require.NoError(t, ba.Merge(mkPlan(10, 0)))

	direct := mkPlan(15, 7)

	for _, typeID := range []int32{gadgetID, oreID} {
		wantNeeded := direct.Entry(typeID).QuantityNeeded
		assert.Equal(t, wantNeeded, ab.Entry(typeID).QuantityNeeded, "tipo %d en P1+P2", typeID)
		assert.Equal(t, wantNeeded, ba.Entry(typeID).QuantityNeeded, "tipo %d en P2+P1", typeID)
	}
}

// Merge repite los trabajos del subplan y acredita su producción una sola vez.
func TestMerge_RepiteTrabajos(t *testing.T) {
	main := domplanning.NewBuildPlan()
	main.AddNeededDemand(demandOf(widgetID, "Widget", 5))

	sub := domplanning.NewBuildPlan()
	sub.AddNeededDemand(demandOf(widgetID, "Widget", 3))
	require.NoError(t, sub.AddJob(entity.Job{OutputTypeID: widgetID, OutputQuantity: 3}))

	require.NoError(t, main.Merge(sub))

	entry := main.Entry(widgetID)
	assert.Equal(t, int64(8), entry.QuantityNeeded)
	assert.Equal(t, int64(3), entry.QuantityProduced)
	assert.Len(t, main.Jobs(), 1)
}

// PlannedSupplyOf devuelve inicial + producido + a comprar; 0 fuera del plan.
func TestPlannedSupplyOf(t *testing.T) {
	plan := domplanning.NewBuildPlan()
	plan.AddNeededDemand(demandOf(gadgetID, "Gadget", 10))

	assert.Equal(t, int64(10), plan.PlannedSupplyOf(gadgetID), "toda la demanda se compra")
	assert.Equal(t, int64(0), plan.PlannedSupplyOf(oreID), "tipo ausente")
}

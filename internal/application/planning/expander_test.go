package planning_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	planning "github.com/jhoicas/Industria-api/internal/application/planning"
	"github.com/jhoicas/Industria-api/internal/domain/entity"
	"github.com/jhoicas/Industria-api/internal/infrastructure/memory"
)

const (
	productID  int32 = 201
	materialID int32 = 202
)

// catálogo con un producto y su material; la receta se parametriza por test.
func expanderCatalog(recipe entity.Blueprint) *memory.CatalogRepo {
	catalog := memory.NewCatalogRepository()
	catalog.AddItem(entity.TypeInfo{TypeID: productID, TypeName: "Producto", GroupID: 1, GroupName: "Productos", UnitVolume: decimal.NewFromInt(1)})
	catalog.AddItem(entity.TypeInfo{TypeID: materialID, TypeName: "Material", GroupID: 2, GroupName: "Materiales", UnitVolume: decimal.NewFromInt(1)})
	catalog.AddRecipe(recipe)
	return catalog
}

// Semántica de techo: con salida 3 por corrida y 1 unidad pedida, una corrida
// completa consume la receta base entera.
func TestExpand_RedondeoDeCorridasHaciaArriba(t *testing.T) {
	catalog := expanderCatalog(entity.Blueprint{
		BlueprintTypeID:      productID,
		ActivityID:           entity.ActivityManufacturing,
		ProductTypeID:        productID,
		OutputQuantityPerRun: 3,
		Materials:            []entity.BlueprintMaterial{{MaterialTypeID: materialID, BaseQuantity: 10}},
	})
	expander := planning.NewBOMExpander(catalog, zerolog.Nop())

	demands, err := expander.Expand(context.Background(), productID, 0, 1)
	require.NoError(t, err)

	require.Len(t, demands, 1)
	assert.Equal(t, materialID, demands[0].TypeID)
	assert.Equal(t, int64(10), demands[0].QuantityNeeded, "una corrida = receta base completa")
}

// ME reduce el consumo con techo: ceil(10*100 * 90/100) = 900.
func TestExpand_EficienciaDeMateriales(t *testing.T) {
	catalog := expanderCatalog(entity.Blueprint{
		BlueprintTypeID:      productID,
		ActivityID:           entity.ActivityManufacturing,
		ProductTypeID:        productID,
		OutputQuantityPerRun: 1,
		Materials:            []entity.BlueprintMaterial{{MaterialTypeID: materialID, BaseQuantity: 100}},
	})
	expander := planning.NewBOMExpander(catalog, zerolog.Nop())

	demands, err := expander.Expand(context.Background(), productID, 10, 10)
	require.NoError(t, err)

	require.Len(t, demands, 1)
	assert.Equal(t, int64(900), demands[0].QuantityNeeded)
}

// ME 0 reproduce la receta base exactamente.
func TestExpand_MECeroReproduceLaBase(t *testing.T) {
	catalog := expanderCatalog(entity.Blueprint{
		BlueprintTypeID:      productID,
		ActivityID:           entity.ActivityManufacturing,
		ProductTypeID:        productID,
		OutputQuantityPerRun: 1,
		Materials:            []entity.BlueprintMaterial{{MaterialTypeID: materialID, BaseQuantity: 7}},
	})
	expander := planning.NewBOMExpander(catalog, zerolog.Nop())

	demands, err := expander.Expand(context.Background(), productID, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(21), demands[0].QuantityNeeded)
}

// Sin receta la expansión devuelve lista vacía: condición terminal de materias
// primas, no un error.
func TestExpand_SinRecetaDevuelveVacio(t *testing.T) {
	catalog := memory.NewCatalogRepository()
	catalog.AddItem(entity.TypeInfo{TypeID: productID, TypeName: "Materia Prima"})
	expander := planning.NewBOMExpander(catalog, zerolog.Nop())

	demands, err := expander.Expand(context.Background(), productID, 0, 100)
	require.NoError(t, err)
	assert.Empty(t, demands)
}

// Una línea de materiales sin entrada de catálogo falla sola: la expansión
// continúa con las demás líneas.
func TestExpand_LineaSinCatalogoSeOmite(t *testing.T) {
	const missingID int32 = 999
	catalog := expanderCatalog(entity.Blueprint{
		BlueprintTypeID:      productID,
		ActivityID:           entity.ActivityManufacturing,
		ProductTypeID:        productID,
		OutputQuantityPerRun: 1,
		Materials: []entity.BlueprintMaterial{
			{MaterialTypeID: missingID, BaseQuantity: 5},
			{MaterialTypeID: materialID, BaseQuantity: 10},
		},
	})
	expander := planning.NewBOMExpander(catalog, zerolog.Nop())

	demands, err := expander.Expand(context.Background(), productID, 0, 1)
	require.NoError(t, err)

	require.Len(t, demands, 1, "solo la línea resoluble sobrevive")
	assert.Equal(t, materialID, demands[0].TypeID)
}

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Industria-api/internal/domain/entity"
	"github.com/jhoicas/Industria-api/internal/domain/repository"
	"github.com/jhoicas/Industria-api/internal/infrastructure/cache"
	"github.com/jhoicas/Industria-api/internal/infrastructure/memory"
)

var _ repository.CatalogRepository = (*countingCatalog)(nil)

// countingCatalog cuenta las llamadas que llegan al repositorio interno.
type countingCatalog struct {
	inner *memory.CatalogRepo

	lookups    int
	items      int
	recipes    int
	schematics int
}

func (c *countingCatalog) LookupTypeID(ctx context.Context, typeName string) (int32, error) {
	c.lookups++
	return c.inner.LookupTypeID(ctx, typeName)
}

func (c *countingCatalog) GetItem(ctx context.Context, typeID int32) (*entity.TypeInfo, error) {
	c.items++
	return c.inner.GetItem(ctx, typeID)
}

func (c *countingCatalog) GetRecipe(ctx context.Context, productTypeID int32) (*entity.Blueprint, error) {
	c.recipes++
	return c.inner.GetRecipe(ctx, productTypeID)
}

func (c *countingCatalog) BlueprintTypeForProduct(ctx context.Context, productTypeID int32) (int32, error) {
	return c.inner.BlueprintTypeForProduct(ctx, productTypeID)
}

func (c *countingCatalog) SchematicInputs(ctx context.Context, typeID int32) ([]int32, error) {
	c.schematics++
	return c.inner.SchematicInputs(ctx, typeID)
}

func newCountingCatalog() *countingCatalog {
	inner := memory.NewCatalogRepository()
	inner.AddItem(entity.TypeInfo{TypeID: 34, TypeName: "Tritanium", GroupID: 18, GroupName: "Mineral", UnitVolume: decimal.NewFromFloat(0.01)})
	inner.AddRecipe(entity.Blueprint{
		BlueprintTypeID:      691,
		ActivityID:           entity.ActivityManufacturing,
		ProductTypeID:        608,
		OutputQuantityPerRun: 1,
		Materials:            []entity.BlueprintMaterial{{MaterialTypeID: 34, BaseQuantity: 1000}},
	})
	return &countingCatalog{inner: inner}
}

// La segunda consulta del mismo tipo no toca el repositorio interno.
func TestCatalogCache_MemoizaLecturas(t *testing.T) {
	counting := newCountingCatalog()
	cached := cache.NewCatalogCache(counting, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		info, err := cached.GetItem(ctx, 34)
		require.NoError(t, err)
		require.NotNil(t, info)
		assert.Equal(t, "Tritanium", info.TypeName)
	}
	assert.Equal(t, 1, counting.items, "una sola lectura real por tipo")

	for i := 0; i < 3; i++ {
		id, err := cached.LookupTypeID(ctx, "Tritanium")
		require.NoError(t, err)
		assert.Equal(t, int32(34), id)
	}
	assert.Equal(t, 1, counting.lookups)

	for i := 0; i < 3; i++ {
		bp, err := cached.GetRecipe(ctx, 608)
		require.NoError(t, err)
		require.NotNil(t, bp)
	}
	assert.Equal(t, 1, counting.recipes)
}

// Las ausencias también se memoizan: "sin receta" es la respuesta más
// consultada del recorrido.
func TestCatalogCache_MemoizaAusencias(t *testing.T) {
	counting := newCountingCatalog()
	cached := cache.NewCatalogCache(counting, time.Hour)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		bp, err := cached.GetRecipe(ctx, 34) // el mineral no tiene receta
		require.NoError(t, err)
		assert.Nil(t, bp)
	}
	assert.Equal(t, 1, counting.recipes, "la ausencia se consulta una sola vez")

	for i := 0; i < 5; i++ {
		info, err := cached.GetItem(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, info)
	}
	assert.Equal(t, 1, counting.items, "el tipo inexistente también se memoiza")
}

// SchematicInputs con memoización.
func TestCatalogCache_MemoizaEsquemas(t *testing.T) {
	counting := newCountingCatalog()
	counting.inner.AddSchematic(2398, []int32{2393, 9838})
	cached := cache.NewCatalogCache(counting, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		inputs, err := cached.SchematicInputs(ctx, 2398)
		require.NoError(t, err)
		assert.Equal(t, []int32{2393, 9838}, inputs)
	}
	assert.Equal(t, 1, counting.schematics)
}

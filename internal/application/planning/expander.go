package planning

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Industria-api/internal/domain/entity"
	"github.com/jhoicas/Industria-api/internal/domain/repository"
)

// BOMExpander calcula la lista directa de materiales para producir una
// cantidad de un producto, ajustada por corridas y eficiencia de materiales.
type BOMExpander struct {
	catalog repository.CatalogRepository
	log     zerolog.Logger
}

// NewBOMExpander construye el expansor.
func NewBOMExpander(catalog repository.CatalogRepository, log zerolog.Logger) *BOMExpander {
	return &BOMExpander{catalog: catalog, log: log}
}

// Expand devuelve la demanda directa de materiales para producir
// requiredQuantity unidades de productTypeID con la ME indicada.
//
// Sin receta de fabricación/reacción devuelve lista vacía: es la condición de
// terminación para materias primas, no un error. La ME reduce estrictamente el
// consumo (0% reproduce la receta base); el valor no se valida aquí, el borde
// es responsable.
func (e *BOMExpander) Expand(ctx context.Context, productTypeID int32, mePercent int, requiredQuantity int64) ([]entity.MaterialDemand, error) {
	recipe, err := e.catalog.GetRecipe(ctx, productTypeID)
	if err != nil {
		return nil, fmt.Errorf("receta de %d: %w", productTypeID, err)
	}
	if recipe == nil {
		return nil, nil
	}

	runsRequired := ceilDiv(requiredQuantity, recipe.OutputQuantityPerRun)

	demands := make([]entity.MaterialDemand, 0, len(recipe.Materials))
	for _, line := range recipe.Materials {
		info, err := e.catalog.GetItem(ctx, line.MaterialTypeID)
		if err != nil {
			return nil, fmt.Errorf("catálogo material %d: %w", line.MaterialTypeID, err)
		}
		if info == nil {
			// Imposible con un SDE consistente; falla solo esta línea, no la expansión.
			e.log.Warn().
				Int32("material_type_id", line.MaterialTypeID).
				Int32("product_type_id", productTypeID).
				Msg("línea de materiales sin entrada de catálogo, omitida")
			continue
		}
		demands = append(demands, entity.MaterialDemand{
			TypeInfo:       *info,
			QuantityNeeded: applyEfficiency(runsRequired*line.BaseQuantity, mePercent),
		})
	}

	return demands, nil
}

// applyEfficiency aplica la reducción de ME redondeando hacia arriba:
// ceil(base * (100 - me) / 100).
func applyEfficiency(baseQuantity int64, mePercent int) int64 {
	reduced := baseQuantity * int64(100-mePercent)
	return ceilDiv(reduced, 100)
}

// ceilDiv divide redondeando hacia arriba; un divisor no positivo se trata
// como 1 (recetas sin cantidad por corrida en el SDE).
func ceilDiv(n, d int64) int64 {
	if d < 1 {
		d = 1
	}
	return (n + d - 1) / d
}

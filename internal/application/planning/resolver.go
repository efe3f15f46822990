package planning

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Industria-api/internal/domain/entity"
	"github.com/jhoicas/Industria-api/internal/domain/repository"
)

// JobResolver sintetiza el trabajo de fabricación/reacción que produce una
// cantidad requerida de un producto: corridas, tiempo base y EIV. Cómputo puro
// sobre catálogo + precios, sin efectos secundarios.
type JobResolver struct {
	catalog repository.CatalogRepository
	prices  PriceSource
}

// NewJobResolver construye el resolutor.
func NewJobResolver(catalog repository.CatalogRepository, prices PriceSource) *JobResolver {
	return &JobResolver{catalog: catalog, prices: prices}
}

// Resolve devuelve el trabajo para producir requiredQuantity unidades de
// productTypeID, o (nil, nil) si el tipo no tiene receta (materia prima:
// nada que fabricar, el caller debe comprarla).
func (r *JobResolver) Resolve(ctx context.Context, productTypeID int32, mePercent int, requiredQuantity int64) (*entity.Job, error) {
	recipe, err := r.catalog.GetRecipe(ctx, productTypeID)
	if err != nil {
		return nil, fmt.Errorf("receta de %d: %w", productTypeID, err)
	}
	if recipe == nil {
		return nil, nil
	}

	eiv, err := r.estimatedItemValue(ctx, recipe)
	if err != nil {
		return nil, err
	}

	product, err := r.catalog.GetItem(ctx, productTypeID)
	if err != nil {
		return nil, fmt.Errorf("catálogo producto %d: %w", productTypeID, err)
	}

	outputPerRun := recipe.OutputQuantityPerRun
	if outputPerRun < 1 {
		outputPerRun = 1
	}
	totalRuns := ceilDiv(requiredQuantity, outputPerRun)

	maxRuns := recipe.MaxProductionLimit
	if maxRuns < 1 {
		maxRuns = 1
	}
	baseTime := recipe.BaseTimeSeconds
	if baseTime < 1 {
		baseTime = 1
	}

	job := &entity.Job{
		BlueprintTypeID:    recipe.BlueprintTypeID,
		BlueprintTypeName:  recipe.BlueprintTypeName,
		ActivityID:         recipe.ActivityID,
		TotalRunsToInstall: totalRuns,
		MaxRunsPerInstall:  maxRuns,
		BaseTimeSeconds:    baseTime,
		EstimatedItemValue: eiv,
		OutputTypeID:       recipe.ProductTypeID,
		// Siempre granularidad de corridas completas: el plan sobreproduce
		// antes que subproducir.
		OutputQuantity: totalRuns * outputPerRun,
	}
	if product != nil {
		job.OutputGroupID = product.GroupID
		job.OutputGroupName = product.GroupName
	}
	return job, nil
}

// estimatedItemValue calcula el EIV de una receta: suma de
// adjustedPrice(material) * cantidad base, redondeada hacia arriba a la unidad
// de moneda. Las consultas de precio se lanzan en paralelo (son lecturas puras
// sin dependencia de orden) con barrera por trabajo: se espera a todas antes
// de sumar.
func (r *JobResolver) estimatedItemValue(ctx context.Context, recipe *entity.Blueprint) (decimal.Decimal, error) {
	// Cada goroutine escribe solo su índice; no hace falta sincronización
	// adicional más allá del Wait.
	lineCosts := make([]decimal.Decimal, len(recipe.Materials))

	g, gctx := errgroup.WithContext(ctx)
	for i, line := range recipe.Materials {
		i, line := i, line
		g.Go(func() error {
			price, err := r.prices.AdjustedPrice(gctx, line.MaterialTypeID)
			if err != nil {
				return fmt.Errorf("precio de %d: %w", line.MaterialTypeID, err)
			}
			lineCosts[i] = price.Mul(decimal.NewFromInt(line.BaseQuantity))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, c := range lineCosts {
		total = total.Add(c)
	}
	return total.Ceil(), nil
}

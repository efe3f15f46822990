package planning

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Industria-api/internal/domain"
	"github.com/jhoicas/Industria-api/internal/domain/entity"
	domplanning "github.com/jhoicas/Industria-api/internal/domain/planning"
	"github.com/jhoicas/Industria-api/internal/domain/repository"
)

// DefaultMaxReconcileIterations acota el bucle de reconciliación de stock de
// cierre: en un catálogo sano una pasada extra basta, pero satisfacer el
// déficit de un objetivo puede alterar el de otro.
const DefaultMaxReconcileIterations = 5

// BuildPlanner orquesta la planificación: expande los items solicitados en el
// libro mediante un recorrido en anchura del grafo de productos, resuelve un
// trabajo por intermedio fabricable y reconcilia los objetivos de stock de
// cierre hasta punto fijo.
type BuildPlanner struct {
	catalog  repository.CatalogRepository
	expander *BOMExpander
	resolver *JobResolver
	maxIters int
	log      zerolog.Logger
}

// NewBuildPlanner construye el planificador. maxReconcileIterations <= 0 usa
// DefaultMaxReconcileIterations.
func NewBuildPlanner(catalog repository.CatalogRepository, expander *BOMExpander, resolver *JobResolver, maxReconcileIterations int, log zerolog.Logger) *BuildPlanner {
	if maxReconcileIterations <= 0 {
		maxReconcileIterations = DefaultMaxReconcileIterations
	}
	return &BuildPlanner{
		catalog:  catalog,
		expander: expander,
		resolver: resolver,
		maxIters: maxReconcileIterations,
		log:      log,
	}
}

// queuedDemand es un elemento de la cola BFS: la demanda, la ME con la que se
// fabrica y el conjunto de ancestros de esta rama para detectar ciclos.
type queuedDemand struct {
	demand    entity.MaterialDemand
	mePercent int
	ancestors map[int32]bool
}

// Plan calcula el plan de fabricación para itemsToBuild partiendo de
// openingStock, y agrega lo necesario para alcanzar closingStockTargets.
// Devuelve además los items de stock que no resolvieron contra el catálogo;
// esos rechazos se reportan, no abortan la planificación.
func (bp *BuildPlanner) Plan(ctx context.Context, itemsToBuild, openingStock, closingStockTargets []entity.Item) (*domplanning.BuildPlan, []entity.Item, error) {
	plan := domplanning.NewBuildPlan()

	rejected, err := plan.AddStock(ctx, openingStock, bp.catalog)
	if err != nil {
		return nil, rejected, err
	}

	if err := bp.planPass(ctx, plan, itemsToBuild); err != nil {
		return nil, rejected, err
	}

	// Reconciliación de stock de cierre iterada a punto fijo: cada déficit se
	// planifica como una pasada interna sin objetivos propios y se fusiona.
	for iter := 0; ; iter++ {
		shortfall, err := bp.closingStockShortfall(ctx, plan, closingStockTargets)
		if err != nil {
			return nil, rejected, err
		}
		if len(shortfall) == 0 {
			break
		}
		if iter >= bp.maxIters {
			bp.log.Warn().
				Int("iterations", iter).
				Int("pending_targets", len(shortfall)).
				Msg("reconciliación de stock de cierre sin punto fijo, se devuelve el plan parcial")
			break
		}

		sub := domplanning.NewBuildPlan()
		if err := bp.planPass(ctx, sub, shortfall); err != nil {
			return nil, rejected, err
		}
		if err := plan.Merge(sub); err != nil {
			return nil, rejected, err
		}
	}

	return plan, rejected, nil
}

// planPass ejecuta una pasada completa de planificación sobre plan: expansión
// BFS de itemsToBuild al libro y resolución de trabajos para toda entrada con
// demanda positiva.
func (bp *BuildPlanner) planPass(ctx context.Context, plan *domplanning.BuildPlan, itemsToBuild []entity.Item) error {
	queue, meByType, err := bp.seedQueue(ctx, itemsToBuild)
	if err != nil {
		return err
	}

	// Recorrido en anchura: cada demanda entra al libro y se expande un nivel
	// más; termina de forma natural en materias primas sin receta. El guardia
	// de ciclos falla rápido en vez de confiar en el catálogo.
	for len(queue) > 0 {
		qd := queue[0]
		queue = queue[1:]

		if qd.demand.TypeID < 1 {
			continue // material sin resolver, descarte defensivo
		}
		if qd.ancestors[qd.demand.TypeID] {
			return fmt.Errorf("tipo %d (%s): %w", qd.demand.TypeID, qd.demand.TypeName, domain.ErrCyclicRecipe)
		}

		plan.AddNeededDemand(qd.demand)

		subDemands, err := bp.expander.Expand(ctx, qd.demand.TypeID, qd.mePercent, qd.demand.QuantityNeeded)
		if err != nil {
			return err
		}
		if len(subDemands) == 0 {
			continue
		}

		ancestors := make(map[int32]bool, len(qd.ancestors)+1)
		for id := range qd.ancestors {
			ancestors[id] = true
		}
		ancestors[qd.demand.TypeID] = true

		for _, sub := range subDemands {
			queue = append(queue, queuedDemand{
				demand: sub,
				// La ME es por blueprint: aplica solo a los tipos que el caller
				// listó con ME propia; los demás intermedios fabrican a ME 0.
				mePercent: meFor(meByType, sub.TypeID, 0),
				ancestors: ancestors,
			})
		}
	}

	// Segunda pasada: un trabajo por cada entrada con demanda positiva. Las
	// entradas sin receta quedan como compra pura.
	for _, e := range plan.PartsToBuild() {
		job, err := bp.resolver.Resolve(ctx, e.TypeID, meFor(meByType, e.TypeID, 0), e.QuantityNeeded)
		if err != nil {
			return err
		}
		if job == nil {
			continue
		}
		if err := plan.AddJob(*job); err != nil {
			return err
		}
	}

	return nil
}

// seedQueue resuelve los items a fabricar y los encola como demandas raíz.
// Los nombres que no resuelven se descartan de la demanda (se registran en el
// log; nunca fueron encolados).
func (bp *BuildPlanner) seedQueue(ctx context.Context, itemsToBuild []entity.Item) ([]queuedDemand, map[int32]int, error) {
	var queue []queuedDemand
	meByType := make(map[int32]int, len(itemsToBuild))

	for _, item := range itemsToBuild {
		typeID := item.TypeID
		if typeID < 1 && item.TypeName != "" {
			id, err := bp.catalog.LookupTypeID(ctx, item.TypeName)
			if err != nil {
				return nil, nil, fmt.Errorf("resolver tipo %q: %w", item.TypeName, err)
			}
			typeID = id
		}
		if typeID < 1 {
			bp.log.Warn().Str("type_name", item.TypeName).Msg("item a fabricar sin tipo de catálogo, descartado")
			continue
		}
		info, err := bp.catalog.GetItem(ctx, typeID)
		if err != nil {
			return nil, nil, fmt.Errorf("catálogo tipo %d: %w", typeID, err)
		}
		if info == nil {
			bp.log.Warn().Int32("type_id", typeID).Msg("item a fabricar sin entrada de catálogo, descartado")
			continue
		}
		meByType[typeID] = item.MaterialEfficiency
		queue = append(queue, queuedDemand{
			demand:    entity.MaterialDemand{TypeInfo: *info, QuantityNeeded: item.Quantity},
			mePercent: item.MaterialEfficiency,
			ancestors: map[int32]bool{},
		})
	}

	return queue, meByType, nil
}

// closingStockShortfall calcula el déficit frente a cada objetivo de stock de
// cierre. El déficit se mide contra el suministro total del plan (stock
// inicial + producido + a comprar): medirlo contra el stock de cierre neto no
// converge, porque cada merge vuelve a contabilizar lo inyectado como demanda.
// Un objetivo cuyo tipo no aparece en el plan usa su cantidad completa como
// déficit.
func (bp *BuildPlanner) closingStockShortfall(ctx context.Context, plan *domplanning.BuildPlan, targets []entity.Item) ([]entity.Item, error) {
	var shortfall []entity.Item
	for _, target := range targets {
		typeID := target.TypeID
		if typeID < 1 && target.TypeName != "" {
			id, err := bp.catalog.LookupTypeID(ctx, target.TypeName)
			if err != nil {
				return nil, fmt.Errorf("resolver tipo %q: %w", target.TypeName, err)
			}
			typeID = id
		}
		if typeID < 1 {
			bp.log.Warn().Str("type_name", target.TypeName).Msg("objetivo de stock sin tipo de catálogo, descartado")
			continue
		}
		missing := target.Quantity - plan.PlannedSupplyOf(typeID)
		if missing > 0 {
			shortfall = append(shortfall, entity.Item{
				TypeID:             typeID,
				TypeName:           target.TypeName,
				Quantity:           missing,
				MaterialEfficiency: target.MaterialEfficiency,
			})
		}
	}
	return shortfall, nil
}

// meFor devuelve la ME fijada por el caller para un tipo, o fallback.
func meFor(meByType map[int32]int, typeID int32, fallback int) int {
	if me, ok := meByType[typeID]; ok {
		return me
	}
	return fallback
}

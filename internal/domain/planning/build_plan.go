// Package planning contiene el agregado BuildPlan: el libro de inventario del
// plan de fabricación (una entrada por tipo de item) más la lista ordenada de
// trabajos a instalar. Es la única superficie de mutación del plan; todas las
// actualizaciones de cantidades son sumas (merge aditivo), de modo que la
// demanda total se conserva sin importar desde cuántas ramas del grafo de
// productos llegue cada contribución.
package planning

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Industria-api/internal/domain"
	"github.com/jhoicas/Industria-api/internal/domain/entity"
	"github.com/jhoicas/Industria-api/internal/domain/repository"
)

// BuildPlan es el resultado de una planificación: libro por tipo + trabajos.
// Se crea vacío por invocación de Plan y se devuelve al caller como resultado;
// el motor no retiene referencias después de devolverlo.
type BuildPlan struct {
	id      uuid.UUID
	entries map[int32]*entity.InventoryLedgerEntry
	// order conserva el orden de inserción para que las vistas y el merge
	// sean deterministas (los maps de Go no lo son).
	order []int32
	jobs  []entity.Job
}

// NewBuildPlan crea un plan vacío con id propio.
func NewBuildPlan() *BuildPlan {
	return &BuildPlan{
		id:      uuid.New(),
		entries: make(map[int32]*entity.InventoryLedgerEntry),
	}
}

// ID devuelve el identificador del plan.
func (p *BuildPlan) ID() uuid.UUID { return p.id }

// AddStock incorpora stock inicial al libro. Resuelve TypeID desde TypeName
// cuando falta; los items que no resuelven (o con id no positivo) se devuelven
// en la lista de rechazados para que el caller los reporte sin abortar la carga.
func (p *BuildPlan) AddStock(ctx context.Context, items []entity.Item, catalog repository.CatalogRepository) ([]entity.Item, error) {
	var rejected []entity.Item

	for _, item := range items {
		typeID := item.TypeID
		if typeID < 1 && item.TypeName != "" {
			id, err := catalog.LookupTypeID(ctx, item.TypeName)
			if err != nil {
				return rejected, fmt.Errorf("resolver tipo %q: %w", item.TypeName, err)
			}
			typeID = id
		}
		if typeID < 1 {
			rejected = append(rejected, item)
			continue
		}

		if existing, ok := p.entries[typeID]; ok {
			existing.OpeningStockQuantity += item.Quantity
			continue
		}

		info, err := catalog.GetItem(ctx, typeID)
		if err != nil {
			return rejected, fmt.Errorf("catálogo tipo %d: %w", typeID, err)
		}
		if info == nil {
			rejected = append(rejected, item)
			continue
		}
		p.insert(&entity.InventoryLedgerEntry{
			TypeID:               info.TypeID,
			TypeName:             info.TypeName,
			GroupID:              info.GroupID,
			GroupName:            info.GroupName,
			UnitVolume:           info.UnitVolume,
			OpeningStockQuantity: item.Quantity,
		})
	}

	return rejected, nil
}

// AddNeededDemand suma demanda al libro, creando la entrada si no existe.
func (p *BuildPlan) AddNeededDemand(demand entity.MaterialDemand) {
	if existing, ok := p.entries[demand.TypeID]; ok {
		existing.QuantityNeeded += demand.QuantityNeeded
		return
	}
	p.insert(&entity.InventoryLedgerEntry{
		TypeID:         demand.TypeID,
		TypeName:       demand.TypeName,
		GroupID:        demand.GroupID,
		GroupName:      demand.GroupName,
		UnitVolume:     demand.UnitVolume,
		QuantityNeeded: demand.QuantityNeeded,
	})
}

// AddJob registra un trabajo resuelto y acredita su producción en el libro.
// La entrada del tipo de salida debe existir: por construcción su demanda se
// registró antes de resolver el trabajo. Si no existe es un bug del motor, no
// un error de usuario, y se devuelve ErrLedgerInvariant.
func (p *BuildPlan) AddJob(job entity.Job) error {
	existing, ok := p.entries[job.OutputTypeID]
	if !ok {
		return fmt.Errorf("tipo %d (%s): %w", job.OutputTypeID, job.BlueprintTypeName, domain.ErrLedgerInvariant)
	}
	existing.QuantityProduced += job.OutputQuantity
	p.jobs = append(p.jobs, job)
	return nil
}

// Merge incorpora otro plan a este: repite una sola vez la demanda de cada
// entrada con demanda positiva y luego repite sus trabajos. Como todas las
// actualizaciones del libro son sumas, el merge es conmutativo y asociativo
// sobre el libro resultante.
func (p *BuildPlan) Merge(other *BuildPlan) error {
	for _, e := range other.PartsToBuild() {
		p.AddNeededDemand(entity.MaterialDemand{
			TypeInfo: entity.TypeInfo{
				TypeID:     e.TypeID,
				TypeName:   e.TypeName,
				GroupID:    e.GroupID,
				GroupName:  e.GroupName,
				UnitVolume: e.UnitVolume,
			},
			QuantityNeeded: e.QuantityNeeded,
		})
	}
	for _, job := range other.Jobs() {
		if err := p.AddJob(job); err != nil {
			return err
		}
	}
	return nil
}

// OpeningStock devuelve las entradas con stock inicial positivo.
func (p *BuildPlan) OpeningStock() []*entity.InventoryLedgerEntry {
	return p.filter(func(e *entity.InventoryLedgerEntry) bool { return e.OpeningStockQuantity > 0 })
}

// PartsToBuy devuelve las entradas con cantidad a comprar positiva.
func (p *BuildPlan) PartsToBuy() []*entity.InventoryLedgerEntry {
	return p.filter(func(e *entity.InventoryLedgerEntry) bool { return e.QuantityToBuy() > 0 })
}

// PartsToBuild devuelve las entradas con demanda positiva (todo lo tocado por
// la expansión de materiales).
func (p *BuildPlan) PartsToBuild() []*entity.InventoryLedgerEntry {
	return p.filter(func(e *entity.InventoryLedgerEntry) bool { return e.QuantityNeeded > 0 })
}

// ClosingStock devuelve las entradas con stock de cierre positivo.
func (p *BuildPlan) ClosingStock() []*entity.InventoryLedgerEntry {
	return p.filter(func(e *entity.InventoryLedgerEntry) bool { return e.ClosingStockQuantity() > 0 })
}

// ClosingStockQuantityOf devuelve el stock de cierre de un tipo, 0 si el tipo
// no está en el plan.
func (p *BuildPlan) ClosingStockQuantityOf(typeID int32) int64 {
	if e, ok := p.entries[typeID]; ok {
		return e.ClosingStockQuantity()
	}
	return 0
}

// PlannedSupplyOf devuelve el suministro total que el plan procura para un
// tipo (stock inicial + producido + a comprar), 0 si el tipo no está en el
// plan. Es la medida contra la que se reconcilian los objetivos de stock de
// cierre.
func (p *BuildPlan) PlannedSupplyOf(typeID int32) int64 {
	if e, ok := p.entries[typeID]; ok {
		return e.OpeningStockQuantity + e.QuantityProduced + e.QuantityToBuy()
	}
	return 0
}

// Entry devuelve la entrada del libro para un tipo, nil si no existe.
func (p *BuildPlan) Entry(typeID int32) *entity.InventoryLedgerEntry {
	return p.entries[typeID]
}

// Jobs devuelve los trabajos en orden de resolución.
func (p *BuildPlan) Jobs() []entity.Job {
	out := make([]entity.Job, len(p.jobs))
	copy(out, p.jobs)
	return out
}

func (p *BuildPlan) insert(e *entity.InventoryLedgerEntry) {
	p.entries[e.TypeID] = e
	p.order = append(p.order, e.TypeID)
}

func (p *BuildPlan) filter(keep func(*entity.InventoryLedgerEntry) bool) []*entity.InventoryLedgerEntry {
	var out []*entity.InventoryLedgerEntry
	for _, typeID := range p.order {
		if e := p.entries[typeID]; keep(e) {
			out = append(out, e)
		}
	}
	return out
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Industria-api/internal/domain/entity"
	"github.com/jhoicas/Industria-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo implementación del puerto CatalogRepository sobre las tablas
// del SDE importadas a PostgreSQL (inv_types, inv_groups, industry_*,
// planet_schematics_type_maps). Solo lectura.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador de catálogo. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// LookupTypeID resuelve un nombre de tipo a su id; 0 si no existe.
func (r *CatalogRepo) LookupTypeID(ctx context.Context, typeName string) (int32, error) {
	var typeID int32
	err := r.q.QueryRow(ctx,
		`SELECT type_id FROM inv_types WHERE type_name = $1`,
		typeName,
	).Scan(&typeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("lookup type id: %w", err)
	}
	return typeID, nil
}

// GetItem devuelve la identidad de catálogo de un tipo; (nil, nil) si no existe.
func (r *CatalogRepo) GetItem(ctx context.Context, typeID int32) (*entity.TypeInfo, error) {
	query := `
		SELECT t.type_id, t.type_name, COALESCE(t.group_id, -1), COALESCE(g.group_name, 'Unknown Group'), COALESCE(t.volume, 0)
		FROM inv_types t
		LEFT JOIN inv_groups g ON g.group_id = t.group_id
		WHERE t.type_id = $1`
	var info entity.TypeInfo
	err := r.q.QueryRow(ctx, query, typeID).Scan(
		&info.TypeID, &info.TypeName, &info.GroupID, &info.GroupName, &info.UnitVolume,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &info, nil
}

// GetRecipe devuelve la receta de fabricación o reacción que produce el tipo;
// (nil, nil) si el tipo no es fabricable (materia prima).
func (r *CatalogRepo) GetRecipe(ctx context.Context, productTypeID int32) (*entity.Blueprint, error) {
	query := `
		SELECT p.type_id, COALESCE(t.type_name, 'Unknown Item'), p.activity_id, p.product_type_id,
		       COALESCE(p.quantity, 1), COALESCE(a.time, 0), COALESCE(b.max_production_limit, 0)
		FROM industry_activity_products p
		JOIN inv_types t ON t.type_id = p.type_id
		LEFT JOIN industry_activities a ON a.type_id = p.type_id AND a.activity_id = p.activity_id
		LEFT JOIN industry_blueprints b ON b.type_id = p.type_id
		WHERE p.product_type_id = $1 AND p.activity_id IN ($2, $3)
		LIMIT 1`
	var bp entity.Blueprint
	err := r.q.QueryRow(ctx, query, productTypeID, entity.ActivityManufacturing, entity.ActivityReaction).Scan(
		&bp.BlueprintTypeID, &bp.BlueprintTypeName, &bp.ActivityID, &bp.ProductTypeID,
		&bp.OutputQuantityPerRun, &bp.BaseTimeSeconds, &bp.MaxProductionLimit,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}

	rows, err := r.q.Query(ctx,
		`SELECT material_type_id, COALESCE(quantity, 0)
		 FROM industry_activity_materials
		 WHERE type_id = $1 AND activity_id = $2`,
		bp.BlueprintTypeID, bp.ActivityID,
	)
	if err != nil {
		return nil, fmt.Errorf("get recipe materials: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m entity.BlueprintMaterial
		if err := rows.Scan(&m.MaterialTypeID, &m.BaseQuantity); err != nil {
			return nil, fmt.Errorf("scan recipe material: %w", err)
		}
		bp.Materials = append(bp.Materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get recipe materials: %w", err)
	}
	return &bp, nil
}

// BlueprintTypeForProduct devuelve el id del blueprint que produce el tipo; 0 si no hay.
func (r *CatalogRepo) BlueprintTypeForProduct(ctx context.Context, productTypeID int32) (int32, error) {
	var blueprintTypeID int32
	err := r.q.QueryRow(ctx,
		`SELECT type_id FROM industry_activity_products WHERE product_type_id = $1 LIMIT 1`,
		productTypeID,
	).Scan(&blueprintTypeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("blueprint for product: %w", err)
	}
	return blueprintTypeID, nil
}

// SchematicInputs devuelve los tipos de entrada del esquema planetario que
// produce el tipo indicado.
func (r *CatalogRepo) SchematicInputs(ctx context.Context, typeID int32) ([]int32, error) {
	query := `
		SELECT input.type_id
		FROM planet_schematics_type_maps output
		JOIN planet_schematics_type_maps input ON input.schematic_id = output.schematic_id AND input.is_input = true
		WHERE output.type_id = $1 AND output.is_input = false`
	rows, err := r.q.Query(ctx, query, typeID)
	if err != nil {
		return nil, fmt.Errorf("schematic inputs: %w", err)
	}
	defer rows.Close()
	var inputs []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan schematic input: %w", err)
		}
		inputs = append(inputs, id)
	}
	return inputs, rows.Err()
}

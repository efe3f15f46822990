// Package memory ofrece adaptadores en memoria del catálogo y del feed de
// precios, para tests y para correr el servicio sin base de datos.
package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/Industria-api/internal/domain/entity"
	"github.com/jhoicas/Industria-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo catálogo en memoria. Se puebla con AddItem/AddRecipe/AddSchematic
// antes de usarse; las lecturas posteriores son seguras para concurrencia.
type CatalogRepo struct {
	itemsByID   map[int32]entity.TypeInfo
	idsByName   map[string]int32
	recipes     map[int32]entity.Blueprint // por product_type_id
	schematics  map[int32][]int32
}

// NewCatalogRepository construye un catálogo vacío.
func NewCatalogRepository() *CatalogRepo {
	return &CatalogRepo{
		itemsByID:  make(map[int32]entity.TypeInfo),
		idsByName:  make(map[string]int32),
		recipes:    make(map[int32]entity.Blueprint),
		schematics: make(map[int32][]int32),
	}
}

// AddItem registra un tipo en el catálogo.
func (r *CatalogRepo) AddItem(info entity.TypeInfo) {
	r.itemsByID[info.TypeID] = info
	r.idsByName[strings.ToLower(info.TypeName)] = info.TypeID
}

// AddRecipe registra la receta que produce recipe.ProductTypeID.
func (r *CatalogRepo) AddRecipe(recipe entity.Blueprint) {
	r.recipes[recipe.ProductTypeID] = recipe
}

// AddSchematic registra las entradas planetarias de un tipo.
func (r *CatalogRepo) AddSchematic(typeID int32, inputs []int32) {
	r.schematics[typeID] = inputs
}

// LookupTypeID resuelve nombre → id (insensible a mayúsculas); 0 si no existe.
func (r *CatalogRepo) LookupTypeID(_ context.Context, typeName string) (int32, error) {
	return r.idsByName[strings.ToLower(typeName)], nil
}

// GetItem devuelve la identidad de un tipo; (nil, nil) si no existe.
func (r *CatalogRepo) GetItem(_ context.Context, typeID int32) (*entity.TypeInfo, error) {
	if info, ok := r.itemsByID[typeID]; ok {
		return &info, nil
	}
	return nil, nil
}

// GetRecipe devuelve la receta que produce el tipo; (nil, nil) si no hay.
func (r *CatalogRepo) GetRecipe(_ context.Context, productTypeID int32) (*entity.Blueprint, error) {
	if bp, ok := r.recipes[productTypeID]; ok {
		recipe := bp
		return &recipe, nil
	}
	return nil, nil
}

// BlueprintTypeForProduct devuelve el blueprint que produce el tipo; 0 si no hay.
func (r *CatalogRepo) BlueprintTypeForProduct(_ context.Context, productTypeID int32) (int32, error) {
	if bp, ok := r.recipes[productTypeID]; ok {
		return bp.BlueprintTypeID, nil
	}
	return 0, nil
}

// SchematicInputs devuelve las entradas planetarias registradas para el tipo.
func (r *CatalogRepo) SchematicInputs(_ context.Context, typeID int32) ([]int32, error) {
	return r.schematics[typeID], nil
}

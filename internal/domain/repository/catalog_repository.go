package repository

import (
	"context"

	"github.com/jhoicas/Industria-api/internal/domain/entity"
)

// CatalogRepository define el puerto de consulta al catálogo de tipos/grupos
// y recetas (SDE). Solo lectura; se asume internamente consistente: toda línea
// de materiales de una receta referencia un tipo válido del catálogo.
//
// Convención de ausencia: los métodos Get* devuelven (nil, nil) cuando el
// registro no existe — ausencia de receta es un estado terminal válido
// ("materia prima, se compra"), no un error.
type CatalogRepository interface {
	// LookupTypeID resuelve un nombre de tipo a su id; 0 si no existe.
	LookupTypeID(ctx context.Context, typeName string) (int32, error)
	// GetItem devuelve la identidad de catálogo de un tipo (nombre, grupo, volumen).
	GetItem(ctx context.Context, typeID int32) (*entity.TypeInfo, error)
	// GetRecipe devuelve la receta de fabricación o reacción que produce el
	// tipo indicado, restringida a esas dos actividades.
	GetRecipe(ctx context.Context, productTypeID int32) (*entity.Blueprint, error)
	// BlueprintTypeForProduct devuelve el id del blueprint que produce el tipo; 0 si no hay.
	BlueprintTypeForProduct(ctx context.Context, productTypeID int32) (int32, error)
	// SchematicInputs devuelve los tipos de entrada del esquema planetario que
	// produce el tipo indicado (industria planetaria).
	SchematicInputs(ctx context.Context, typeID int32) ([]int32, error)
}

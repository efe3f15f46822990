package entity

// Actividades de industria reconocidas como "fabricables". Cualquier otra
// actividad sobre el mismo producto (copia, invención, etc.) se ignora.
const (
	ActivityManufacturing int32 = 1
	ActivityReaction      int32 = 11
)

// BlueprintMaterial es una línea de materiales de una receta: cuánto consume
// una corrida base del material indicado.
type BlueprintMaterial struct {
	MaterialTypeID int32
	BaseQuantity   int64
}

// Blueprint es la definición de una receta: el blueprint/fórmula que produce
// un tipo de item mediante una actividad (fabricación o reacción), con sus
// materiales por corrida y la cantidad de producto por corrida.
type Blueprint struct {
	BlueprintTypeID    int32
	BlueprintTypeName  string
	ActivityID         int32
	ProductTypeID      int32
	OutputQuantityPerRun int64
	// BaseTimeSeconds es la duración base de una corrida; 0 si el SDE no la trae.
	BaseTimeSeconds int64
	// MaxProductionLimit es el máximo de corridas por instalación; 0 si ausente.
	MaxProductionLimit int64
	Materials          []BlueprintMaterial
}

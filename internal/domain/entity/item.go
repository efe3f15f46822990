package entity

// Item es una petición de cantidad por nombre, tal como la entrega el caller
// (lista de stock pegada del portapapeles, items a fabricar, objetivos de stock).
// TypeID = 0 significa "sin resolver"; la resolución nombre → id se hace contra
// el catálogo al entrar al plan.
type Item struct {
	TypeID   int32
	TypeName string
	Quantity int64
	// MaterialEfficiency es el porcentaje de eficiencia de materiales (ME)
	// aplicado al fabricar este item. 0 = receta base. Se valida en el borde
	// HTTP a [0,100]; el motor no lo re-valida.
	MaterialEfficiency int
}

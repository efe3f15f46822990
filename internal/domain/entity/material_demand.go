package entity

// MaterialDemand es una línea de demanda producida por la expansión de una
// receta: identidad de catálogo del material más la cantidad requerida ya
// ajustada por corridas y eficiencia de materiales.
type MaterialDemand struct {
	TypeInfo
	QuantityNeeded int64
}

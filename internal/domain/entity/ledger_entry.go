package entity

import "github.com/shopspring/decimal"

// InventoryLedgerEntry es el agregado por tipo de item dentro de un plan:
// stock inicial, demanda acumulada por la expansión de materiales y producción
// acumulada por los trabajos resueltos. Las cantidades derivadas (a comprar,
// stock de cierre) se calculan siempre desde los acumuladores, nunca se
// almacenan. Toda mutación pasa por las operaciones de BuildPlan y es aditiva.
type InventoryLedgerEntry struct {
	TypeID     int32
	TypeName   string
	GroupID    int32
	GroupName  string
	UnitVolume decimal.Decimal

	OpeningStockQuantity int64
	QuantityNeeded       int64
	QuantityProduced     int64
}

// QuantityToBuy es lo que falta tras descontar stock inicial y producción.
func (e *InventoryLedgerEntry) QuantityToBuy() int64 {
	return max64(0, e.QuantityNeeded-e.OpeningStockQuantity-e.QuantityProduced)
}

// ClosingStockQuantity es el inventario que queda después de aplicar compras
// y trabajos del plan.
func (e *InventoryLedgerEntry) ClosingStockQuantity() int64 {
	return max64(0, e.OpeningStockQuantity+e.QuantityProduced+e.QuantityToBuy()-e.QuantityNeeded)
}

// ToBuyVolume es el volumen (m3) de la cantidad a comprar.
func (e *InventoryLedgerEntry) ToBuyVolume() decimal.Decimal {
	return e.UnitVolume.Mul(decimal.NewFromInt(e.QuantityToBuy()))
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

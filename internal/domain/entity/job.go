package entity

import "github.com/shopspring/decimal"

// Job es una orden de fabricación o reacción resuelta para el plan.
// Inmutable una vez creada; OutputQuantity es siempre múltiplo de la cantidad
// por corrida de la receta (el plan redondea hacia arriba, nunca subproduce).
type Job struct {
	BlueprintTypeID   int32
	BlueprintTypeName string
	ActivityID        int32
	// TotalRunsToInstall son las corridas totales necesarias; pueden repartirse
	// en varias instalaciones de hasta MaxRunsPerInstall corridas cada una.
	TotalRunsToInstall int64
	MaxRunsPerInstall  int64
	BaseTimeSeconds    int64
	// EstimatedItemValue (EIV) es el piso de costo del trabajo: suma de
	// adjustedPrice * cantidad base por material, redondeada hacia arriba.
	EstimatedItemValue decimal.Decimal
	OutputTypeID       int32
	OutputQuantity     int64
	OutputGroupID      int32
	OutputGroupName    string
}

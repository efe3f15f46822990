package entity

import "github.com/shopspring/decimal"

// TypeInfo es la identidad de catálogo de un tipo de item (tabla inv_types +
// inv_groups del SDE). Solo lectura para este servicio.
type TypeInfo struct {
	TypeID     int32
	TypeName   string
	GroupID    int32
	GroupName  string
	UnitVolume decimal.Decimal // m3 por unidad
}

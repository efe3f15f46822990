package entity

import "github.com/shopspring/decimal"

// MarketPrice es una entrada del feed externo de precios de mercado.
// Solo lectura para este servicio; se cachea con TTL.
type MarketPrice struct {
	TypeID        int32           `json:"type_id"`
	AdjustedPrice decimal.Decimal `json:"adjusted_price"`
	AveragePrice  decimal.Decimal `json:"average_price"`
}

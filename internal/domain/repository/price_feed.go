package repository

import (
	"context"

	"github.com/jhoicas/Industria-api/internal/domain/entity"
)

// PriceFeed define el puerto de lectura masiva del feed externo de precios
// de mercado. Una llamada trae la lista completa; el caching con TTL es
// responsabilidad del caso de uso (pricing.PriceCache), no del adaptador.
type PriceFeed interface {
	FetchPrices(ctx context.Context) ([]entity.MarketPrice, error)
}

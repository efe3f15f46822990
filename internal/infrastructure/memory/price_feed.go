package memory

import (
	"context"

	"github.com/jhoicas/Industria-api/internal/domain/entity"
	"github.com/jhoicas/Industria-api/internal/domain/repository"
)

var _ repository.PriceFeed = (*StaticPriceFeed)(nil)

// StaticPriceFeed feed de precios fijo, para tests y modo sin red.
type StaticPriceFeed struct {
	prices []entity.MarketPrice
}

// NewStaticPriceFeed construye el feed con la lista dada.
func NewStaticPriceFeed(prices []entity.MarketPrice) *StaticPriceFeed {
	return &StaticPriceFeed{prices: prices}
}

// FetchPrices devuelve siempre la misma lista.
func (f *StaticPriceFeed) FetchPrices(_ context.Context) ([]entity.MarketPrice, error) {
	out := make([]entity.MarketPrice, len(f.prices))
	copy(out, f.prices)
	return out, nil
}

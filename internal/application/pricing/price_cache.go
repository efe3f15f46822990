// Package pricing implementa la caché de precios de mercado: una instancia
// por proceso, creada en el arranque e inyectada en el planificador (nada de
// singletons ambientales). Los datos viejos valen más que ningún dato: un
// refresh fallido conserva la lista anterior.
package pricing

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/Industria-api/internal/domain/entity"
	"github.com/jhoicas/Industria-api/internal/domain/repository"
)

// DefaultTTL es la vigencia de la lista de precios antes de refrescar.
const DefaultTTL = time.Hour

// PriceCache cachea la lista completa del feed de precios con TTL.
// Varios planes concurrentes pueden necesitar refrescar a la vez: los refresh
// se coalescen con singleflight, de modo que los que esperan despiertan al
// terminar el fetch compartido y re-verifican frescura en lugar de asumir que
// ese fetch tuvo éxito.
type PriceCache struct {
	feed repository.PriceFeed
	ttl  time.Duration
	log  zerolog.Logger
	// now es inyectable para tests de expiración.
	now func() time.Time

	group singleflight.Group

	mu        sync.RWMutex
	prices    map[int32]entity.MarketPrice
	fetchedAt time.Time
}

// NewPriceCache construye la caché. ttl <= 0 usa DefaultTTL.
func NewPriceCache(feed repository.PriceFeed, ttl time.Duration, log zerolog.Logger) *PriceCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &PriceCache{
		feed: feed,
		ttl:  ttl,
		log:  log,
		now:  time.Now,
	}
}

// AdjustedPrice devuelve el precio ajustado de un tipo. Id desconocido o no
// positivo devuelve cero: el material se trata como gratis/desconocido en vez
// de fallar el cálculo de EIV completo.
func (c *PriceCache) AdjustedPrice(ctx context.Context, typeID int32) (decimal.Decimal, error) {
	p, ok, err := c.lookup(ctx, typeID)
	if err != nil || !ok {
		return decimal.Zero, err
	}
	return p.AdjustedPrice, nil
}

// AveragePrice devuelve el precio promedio de un tipo, cero si no se conoce.
func (c *PriceCache) AveragePrice(ctx context.Context, typeID int32) (decimal.Decimal, error) {
	p, ok, err := c.lookup(ctx, typeID)
	if err != nil || !ok {
		return decimal.Zero, err
	}
	return p.AveragePrice, nil
}

func (c *PriceCache) lookup(ctx context.Context, typeID int32) (entity.MarketPrice, bool, error) {
	if typeID < 1 {
		return entity.MarketPrice{}, false, nil
	}
	if err := c.ensureFresh(ctx); err != nil {
		return entity.MarketPrice{}, false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.prices[typeID]
	return p, ok, nil
}

// ensureFresh refresca la lista si está vencida o vacía. El error de fetch
// nunca se propaga: con datos viejos se conservan; sin datos previos los
// lookups devuelven precio cero y la planificación sigue (aproximación
// aceptada, no violación de corrección).
func (c *PriceCache) ensureFresh(ctx context.Context) error {
	if c.fresh() {
		return nil
	}

	_, err, _ := c.group.Do("refresh", func() (interface{}, error) {
		// Re-verificar bajo el vuelo compartido: otro caller pudo refrescar
		// entre la comprobación y la entrada al grupo.
		if c.fresh() {
			return nil, nil
		}

		prices, err := c.feed.FetchPrices(ctx)
		if err != nil {
			c.log.Warn().Err(err).Msg("refresh de precios fallido, se conserva la lista anterior")
			return nil, nil
		}

		byType := make(map[int32]entity.MarketPrice, len(prices))
		for _, p := range prices {
			byType[p.TypeID] = p
		}

		c.mu.Lock()
		c.prices = byType
		c.fetchedAt = c.now()
		c.mu.Unlock()

		c.log.Debug().Int("types", len(byType)).Msg("lista de precios refrescada")
		return nil, nil
	})
	return err
}

func (c *PriceCache) fresh() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.prices) > 0 && c.now().Sub(c.fetchedAt) < c.ttl
}

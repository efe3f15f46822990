package pricing

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Industria-api/internal/domain/entity"
)

// countingFeed cuenta los fetch y puede fallar o bloquear a demanda.
type countingFeed struct {
	mu     sync.Mutex
	calls  int32
	prices []entity.MarketPrice
	err    error
	delay  time.Duration
}

func (f *countingFeed) FetchPrices(_ context.Context) ([]entity.MarketPrice, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]entity.MarketPrice, len(f.prices))
	copy(out, f.prices)
	return out, nil
}

func (f *countingFeed) fetchCount() int32 { return atomic.LoadInt32(&f.calls) }

func feedWith(prices ...entity.MarketPrice) *countingFeed {
	return &countingFeed{prices: prices}
}

func price(typeID int32, adjusted float64) entity.MarketPrice {
	return entity.MarketPrice{
		TypeID:        typeID,
		AdjustedPrice: decimal.NewFromFloat(adjusted),
		AveragePrice:  decimal.NewFromFloat(adjusted * 1.1),
	}
}

// La primera consulta llena la caché; las siguientes dentro del TTL no tocan
// el feed.
func TestPriceCache_CargaPerezosaYTTL(t *testing.T) {
	feed := feedWith(price(34, 4.5))
	cache := NewPriceCache(feed, time.Hour, zerolog.Nop())

	p, err := cache.AdjustedPrice(context.Background(), 34)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(4.5).Equal(p))
	assert.Equal(t, int32(1), feed.fetchCount())

	_, err = cache.AdjustedPrice(context.Background(), 34)
	require.NoError(t, err)
	assert.Equal(t, int32(1), feed.fetchCount(), "dentro del TTL no se refresca")
}

// Pasado el TTL (reloj inyectado) la siguiente consulta refresca.
func TestPriceCache_RefrescaAlVencer(t *testing.T) {
	feed := feedWith(price(34, 4.5))
	cache := NewPriceCache(feed, time.Hour, zerolog.Nop())

	clock := time.Now()
	cache.now = func() time.Time { return clock }

	_, err := cache.AdjustedPrice(context.Background(), 34)
	require.NoError(t, err)
	require.Equal(t, int32(1), feed.fetchCount())

	clock = clock.Add(2 * time.Hour)
	_, err = cache.AdjustedPrice(context.Background(), 34)
	require.NoError(t, err)
	assert.Equal(t, int32(2), feed.fetchCount(), "el TTL vencido dispara un refresh")
}

// Un refresh fallido conserva la lista anterior: datos viejos valen más que
// ningún dato.
func TestPriceCache_FalloConservaListaAnterior(t *testing.T) {
	feed := feedWith(price(34, 4.5))
	cache := NewPriceCache(feed, time.Hour, zerolog.Nop())

	clock := time.Now()
	cache.now = func() time.Time { return clock }

	p, err := cache.AdjustedPrice(context.Background(), 34)
	require.NoError(t, err)
	require.True(t, decimal.NewFromFloat(4.5).Equal(p))

	feed.mu.Lock()
	feed.err = errors.New("feed caído")
	feed.mu.Unlock()
	clock = clock.Add(2 * time.Hour)

	p, err = cache.AdjustedPrice(context.Background(), 34)
	require.NoError(t, err, "el fallo del feed nunca se propaga")
	assert.True(t, decimal.NewFromFloat(4.5).Equal(p), "se sirve la lista vieja")
}

// Sin datos previos y con el feed caído, los lookups devuelven cero y la
// planificación puede continuar.
func TestPriceCache_SinDatosYFeedCaidoDevuelveCero(t *testing.T) {
	feed := &countingFeed{err: errors.New("feed caído")}
	cache := NewPriceCache(feed, time.Hour, zerolog.Nop())

	p, err := cache.AdjustedPrice(context.Background(), 34)
	require.NoError(t, err)
	assert.True(t, p.IsZero())
}

// Id desconocido o no positivo vale cero; el id no positivo ni siquiera toca
// el feed.
func TestPriceCache_IdDesconocidoOCero(t *testing.T) {
	feed := feedWith(price(34, 4.5))
	cache := NewPriceCache(feed, time.Hour, zerolog.Nop())

	p, err := cache.AdjustedPrice(context.Background(), -7)
	require.NoError(t, err)
	assert.True(t, p.IsZero())
	assert.Equal(t, int32(0), feed.fetchCount(), "id no positivo no dispara fetch")

	p, err = cache.AdjustedPrice(context.Background(), 999)
	require.NoError(t, err)
	assert.True(t, p.IsZero(), "tipo ausente de la lista vale cero")
}

// Refrescos concurrentes se coalescen: N consultas simultáneas sobre caché
// vacía producen un solo fetch.
func TestPriceCache_RefrescosCoalescidos(t *testing.T) {
	feed := feedWith(price(34, 4.5))
	feed.delay = 50 * time.Millisecond
	cache := NewPriceCache(feed, time.Hour, zerolog.Nop())

	const callers = 16
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			p, err := cache.AdjustedPrice(context.Background(), 34)
			assert.NoError(t, err)
			assert.True(t, decimal.NewFromFloat(4.5).Equal(p))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), feed.fetchCount(), "un solo fetch compartido")
}

// AveragePrice usa la misma caché que AdjustedPrice.
func TestPriceCache_PrecioPromedio(t *testing.T) {
	feed := feedWith(entity.MarketPrice{
		TypeID:        34,
		AdjustedPrice: decimal.NewFromInt(4),
		AveragePrice:  decimal.NewFromInt(5),
	})
	cache := NewPriceCache(feed, time.Hour, zerolog.Nop())

	p, err := cache.AveragePrice(context.Background(), 34)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5).Equal(p))
	assert.Equal(t, int32(1), feed.fetchCount())
}

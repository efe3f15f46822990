// Package esi implementa el cliente HTTP del feed público de precios de
// mercado (endpoint /markets/prices de ESI). Sin autenticación; un GET trae la
// lista completa.
package esi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jhoicas/Industria-api/internal/domain/entity"
	"github.com/jhoicas/Industria-api/internal/domain/repository"
)

var _ repository.PriceFeed = (*PriceClient)(nil)

// PriceClient adaptador del puerto PriceFeed sobre HTTP.
type PriceClient struct {
	baseURL string
	client  *http.Client
}

// NewPriceClient construye el cliente. timeout <= 0 usa 30s.
func NewPriceClient(baseURL string, timeout time.Duration) *PriceClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &PriceClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchPrices descarga la lista completa de precios. Cualquier fallo de
// transporte o decodificación se devuelve como error; el caller (PriceCache)
// decide conservar datos viejos.
func (c *PriceClient) FetchPrices(ctx context.Context) ([]entity.MarketPrice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("esi: crear petición: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("esi: obtener precios: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("esi: obtener precios: status %d", resp.StatusCode)
	}

	var prices []entity.MarketPrice
	if err := json.NewDecoder(resp.Body).Decode(&prices); err != nil {
		return nil, fmt.Errorf("esi: decodificar precios: %w", err)
	}
	return prices, nil
}

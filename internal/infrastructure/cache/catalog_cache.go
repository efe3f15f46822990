// Package cache decora el catálogo con memoización TTL en memoria: el SDE
// cambia solo con parches del juego, pero la expansión de un plan grande
// repite miles de lookups sobre los mismos tipos y recetas.
package cache

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jhoicas/Industria-api/internal/domain/entity"
	"github.com/jhoicas/Industria-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogCache)(nil)

// CatalogCache envuelve un CatalogRepository con go-cache. También se cachean
// las ausencias (nil/0): "sin receta" es la respuesta más consultada del
// recorrido BFS.
type CatalogCache struct {
	inner repository.CatalogRepository
	store *gocache.Cache
}

// NewCatalogCache construye el decorador. ttl <= 0 usa 24h.
func NewCatalogCache(inner repository.CatalogRepository, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CatalogCache{
		inner: inner,
		store: gocache.New(ttl, 2*ttl),
	}
}

// LookupTypeID resuelve un nombre con memoización.
func (c *CatalogCache) LookupTypeID(ctx context.Context, typeName string) (int32, error) {
	key := "name:" + typeName
	if v, ok := c.store.Get(key); ok {
		return v.(int32), nil
	}
	id, err := c.inner.LookupTypeID(ctx, typeName)
	if err != nil {
		return 0, err
	}
	c.store.SetDefault(key, id)
	return id, nil
}

// GetItem devuelve la identidad de catálogo con memoización.
func (c *CatalogCache) GetItem(ctx context.Context, typeID int32) (*entity.TypeInfo, error) {
	key := fmt.Sprintf("item:%d", typeID)
	if v, ok := c.store.Get(key); ok {
		return v.(*entity.TypeInfo), nil
	}
	info, err := c.inner.GetItem(ctx, typeID)
	if err != nil {
		return nil, err
	}
	c.store.SetDefault(key, info)
	return info, nil
}

// GetRecipe devuelve la receta con memoización.
func (c *CatalogCache) GetRecipe(ctx context.Context, productTypeID int32) (*entity.Blueprint, error) {
	key := fmt.Sprintf("recipe:%d", productTypeID)
	if v, ok := c.store.Get(key); ok {
		return v.(*entity.Blueprint), nil
	}
	bp, err := c.inner.GetRecipe(ctx, productTypeID)
	if err != nil {
		return nil, err
	}
	c.store.SetDefault(key, bp)
	return bp, nil
}

// BlueprintTypeForProduct con memoización.
func (c *CatalogCache) BlueprintTypeForProduct(ctx context.Context, productTypeID int32) (int32, error) {
	key := fmt.Sprintf("bp:%d", productTypeID)
	if v, ok := c.store.Get(key); ok {
		return v.(int32), nil
	}
	id, err := c.inner.BlueprintTypeForProduct(ctx, productTypeID)
	if err != nil {
		return 0, err
	}
	c.store.SetDefault(key, id)
	return id, nil
}

// SchematicInputs con memoización.
func (c *CatalogCache) SchematicInputs(ctx context.Context, typeID int32) ([]int32, error) {
	key := fmt.Sprintf("schematic:%d", typeID)
	if v, ok := c.store.Get(key); ok {
		return v.([]int32), nil
	}
	inputs, err := c.inner.SchematicInputs(ctx, typeID)
	if err != nil {
		return nil, err
	}
	c.store.SetDefault(key, inputs)
	return inputs, nil
}

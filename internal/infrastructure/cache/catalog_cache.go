// Package cache decora el cliente del data tier con una caché Redis de
// lecturas (cache-aside). La caché nunca tumba una petición: cualquier error
// de Redis se registra y la llamada sigue contra el data tier.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/catalogo-stock/internal/application/dto"
	"github.com/jhoicas/catalogo-stock/internal/application/remote"
	"github.com/jhoicas/catalogo-stock/pkg/config"
	"github.com/jhoicas/catalogo-stock/pkg/logger"
)

// Claves de caché. Las escrituras invalidan el grupo completo afectado.
const (
	keyProducts      = "catalogo:productos"
	keyProductValues = "catalogo:productos:valores"
	keyCategories    = "catalogo:categorias"
	keyCategoryStats = "catalogo:categorias:estadisticas"
	keyInventory     = "catalogo:inventario"
	keyStockStats    = "catalogo:inventario:estadisticas"
	keyTotalValue    = "catalogo:inventario:valor-total"
)

var _ remote.CatalogClient = (*CachingClient)(nil)

// CachingClient decora un CatalogClient con caché de lecturas frecuentes.
// Los métodos no sobreescritos pasan directo al cliente embebido.
type CachingClient struct {
	remote.CatalogClient

	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

// New construye el decorador de caché sobre el cliente dado.
func New(inner remote.CatalogClient, cfg config.RedisConfig, log *logger.Logger) *CachingClient {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &CachingClient{CatalogClient: inner, rdb: rdb, ttl: cfg.TTL(), log: log}
}

// lookup intenta leer la clave y decodificarla en out. false en miss o error.
func (c *CachingClient) lookup(ctx context.Context, key string, out any) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("key", key).Msg("lectura de caché falló, se consulta el data tier")
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("entrada de caché corrupta, se descarta")
		c.rdb.Del(ctx, key)
		return false
	}
	return true
}

// store guarda el valor con TTL; un fallo solo se registra.
func (c *CachingClient) store(ctx context.Context, key string, val any) {
	raw, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("escritura de caché falló")
	}
}

func (c *CachingClient) invalidate(ctx context.Context, keys ...string) {
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Msg("invalidación de caché falló")
	}
}

// ── Lecturas cacheadas ───────────────────────────────────────────────────────

func (c *CachingClient) ListProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	var cached []dto.ProductResponse
	if c.lookup(ctx, keyProducts, &cached) {
		return cached, nil
	}
	out, err := c.CatalogClient.ListProducts(ctx)
	if err == nil {
		c.store(ctx, keyProducts, out)
	}
	return out, err
}

func (c *CachingClient) ListProductValues(ctx context.Context) ([]dto.ProductValueDTO, error) {
	var cached []dto.ProductValueDTO
	if c.lookup(ctx, keyProductValues, &cached) {
		return cached, nil
	}
	out, err := c.CatalogClient.ListProductValues(ctx)
	if err == nil {
		c.store(ctx, keyProductValues, out)
	}
	return out, err
}

func (c *CachingClient) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	var cached []dto.CategoryResponse
	if c.lookup(ctx, keyCategories, &cached) {
		return cached, nil
	}
	out, err := c.CatalogClient.ListCategories(ctx)
	if err == nil {
		c.store(ctx, keyCategories, out)
	}
	return out, err
}

func (c *CachingClient) CategoryStats(ctx context.Context) ([]dto.CategoryStatsDTO, error) {
	var cached []dto.CategoryStatsDTO
	if c.lookup(ctx, keyCategoryStats, &cached) {
		return cached, nil
	}
	out, err := c.CatalogClient.CategoryStats(ctx)
	if err == nil {
		c.store(ctx, keyCategoryStats, out)
	}
	return out, err
}

func (c *CachingClient) ListInventory(ctx context.Context) ([]dto.LedgerResponse, error) {
	var cached []dto.LedgerResponse
	if c.lookup(ctx, keyInventory, &cached) {
		return cached, nil
	}
	out, err := c.CatalogClient.ListInventory(ctx)
	if err == nil {
		c.store(ctx, keyInventory, out)
	}
	return out, err
}

func (c *CachingClient) StockStats(ctx context.Context) (*dto.StockStatsResponse, error) {
	var cached dto.StockStatsResponse
	if c.lookup(ctx, keyStockStats, &cached) {
		return &cached, nil
	}
	out, err := c.CatalogClient.StockStats(ctx)
	if err == nil && out != nil {
		c.store(ctx, keyStockStats, out)
	}
	return out, err
}

func (c *CachingClient) TotalValue(ctx context.Context) (*dto.TotalValueResponse, error) {
	var cached dto.TotalValueResponse
	if c.lookup(ctx, keyTotalValue, &cached) {
		return &cached, nil
	}
	out, err := c.CatalogClient.TotalValue(ctx)
	if err == nil && out != nil {
		c.store(ctx, keyTotalValue, out)
	}
	return out, err
}

// ── Escrituras con invalidación ──────────────────────────────────────────────

func (c *CachingClient) productKeys() []string {
	return []string{keyProducts, keyProductValues, keyCategoryStats, keyInventory}
}

func (c *CachingClient) stockKeys() []string {
	return []string{keyInventory, keyStockStats, keyTotalValue, keyProductValues, keyCategoryStats}
}

func (c *CachingClient) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	out, err := c.CatalogClient.CreateProduct(ctx, in)
	if err == nil {
		c.invalidate(ctx, c.productKeys()...)
	}
	return out, err
}

func (c *CachingClient) UpdateProduct(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	out, err := c.CatalogClient.UpdateProduct(ctx, id, in)
	if err == nil {
		c.invalidate(ctx, c.productKeys()...)
	}
	return out, err
}

func (c *CachingClient) DeactivateProduct(ctx context.Context, id string) error {
	err := c.CatalogClient.DeactivateProduct(ctx, id)
	if err == nil {
		c.invalidate(ctx, c.productKeys()...)
	}
	return err
}

func (c *CachingClient) ReactivateProduct(ctx context.Context, id string) error {
	err := c.CatalogClient.ReactivateProduct(ctx, id)
	if err == nil {
		c.invalidate(ctx, c.productKeys()...)
	}
	return err
}

func (c *CachingClient) CreateCategory(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	out, err := c.CatalogClient.CreateCategory(ctx, in)
	if err == nil {
		c.invalidate(ctx, keyCategories, keyCategoryStats)
	}
	return out, err
}

func (c *CachingClient) UpdateCategory(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	out, err := c.CatalogClient.UpdateCategory(ctx, id, in)
	if err == nil {
		c.invalidate(ctx, keyCategories, keyCategoryStats, keyInventory)
	}
	return out, err
}

func (c *CachingClient) DeleteCategory(ctx context.Context, id string) error {
	err := c.CatalogClient.DeleteCategory(ctx, id)
	if err == nil {
		c.invalidate(ctx, keyCategories, keyCategoryStats)
	}
	return err
}

func (c *CachingClient) CreateLedger(ctx context.Context, in dto.CreateLedgerRequest) (*dto.LedgerResponse, error) {
	out, err := c.CatalogClient.CreateLedger(ctx, in)
	if err == nil {
		c.invalidate(ctx, c.stockKeys()...)
	}
	return out, err
}

func (c *CachingClient) SetStock(ctx context.Context, productID string, quantity int64) (*dto.MutationResponse, error) {
	out, err := c.CatalogClient.SetStock(ctx, productID, quantity)
	if err == nil {
		c.invalidate(ctx, c.stockKeys()...)
	}
	return out, err
}

func (c *CachingClient) IncreaseStock(ctx context.Context, productID string, amount int64) (*dto.MutationResponse, error) {
	out, err := c.CatalogClient.IncreaseStock(ctx, productID, amount)
	if err == nil {
		c.invalidate(ctx, c.stockKeys()...)
	}
	return out, err
}

func (c *CachingClient) DecreaseStock(ctx context.Context, productID string, amount int64) (*dto.MutationResponse, error) {
	out, err := c.CatalogClient.DecreaseStock(ctx, productID, amount)
	if err == nil {
		c.invalidate(ctx, c.stockKeys()...)
	}
	return out, err
}

func (c *CachingClient) UpdateThreshold(ctx context.Context, productID string, threshold int64) (*dto.MutationResponse, error) {
	out, err := c.CatalogClient.UpdateThreshold(ctx, productID, threshold)
	if err == nil {
		c.invalidate(ctx, c.stockKeys()...)
	}
	return out, err
}

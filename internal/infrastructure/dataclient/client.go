// Package dataclient implementa el CatalogClient sobre HTTP: es el adaptador
// con el que el business tier consume la API del data tier. Autentica cada
// llamada con un token de servicio de corta vida y traduce los estados HTTP a
// los errores de dominio que la fachada resiliente sabe interpretar.
package dataclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-stock/internal/application/dto"
	"github.com/jhoicas/catalogo-stock/internal/application/remote"
	"github.com/jhoicas/catalogo-stock/internal/domain"
	"github.com/jhoicas/catalogo-stock/pkg/config"
	"github.com/jhoicas/catalogo-stock/pkg/jwt"
	"github.com/jhoicas/catalogo-stock/pkg/logger"
)

var _ remote.CatalogClient = (*Client)(nil)

// serviceName identifica a este servicio en el token entre tiers.
const serviceName = "business-service"

// Client cliente HTTP del data tier.
type Client struct {
	baseURL    string
	httpClient *http.Client
	jwtCfg     config.JWTConfig
	log        *logger.Logger
}

// New construye el cliente. El timeout de cfg aplica a cada llamada; al
// vencerse, la llamada se reporta como dependencia no disponible.
func New(cfg config.DataServiceConfig, jwtCfg config.JWTConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		jwtCfg:     jwtCfg,
		log:        log,
	}
}

// do ejecuta la llamada y decodifica la respuesta en out (si out no es nil).
// Fallos de red, timeouts y 5xx vuelven envueltos en ErrDependencyUnavailable;
// los 4xx se traducen al error de dominio según el código del cuerpo.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("serializar cuerpo: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("crear petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	token, err := jwt.GenerateServiceToken(c.jwtCfg.Secret, serviceName, c.jwtCfg.Issuer, c.jwtCfg.TTL())
	if err != nil {
		return fmt.Errorf("token de servicio: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("llamada %s %s: %v: %w", method, path, err, domain.ErrDependencyUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("data tier respondió %d en %s %s: %w",
			resp.StatusCode, method, path, domain.ErrDependencyUnavailable)
	}
	if resp.StatusCode >= 400 {
		return c.mapClientError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decodificar respuesta de %s %s: %w", method, path, err)
	}
	return nil
}

// mapClientError traduce un 4xx del data tier al error de dominio equivalente.
func (c *Client) mapClientError(resp *http.Response) error {
	var body dto.ErrorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = json.Unmarshal(raw, &body)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", body.Message, domain.ErrNotFound)
	case http.StatusBadRequest:
		return fmt.Errorf("%s: %w", body.Message, domain.ErrInvalidInput)
	case http.StatusConflict:
		switch body.Code {
		case "INSUFFICIENT_STOCK":
			stockErr := &domain.InsufficientStockError{}
			if body.Available != nil {
				stockErr.Available = *body.Available
			}
			if body.Requested != nil {
				stockErr.Requested = *body.Requested
			}
			return stockErr
		case "DUPLICATE":
			return fmt.Errorf("%s: %w", body.Message, domain.ErrDuplicate)
		default:
			return fmt.Errorf("%s: %w", body.Message, domain.ErrConflict)
		}
	default:
		return errors.New("data tier: " + resp.Status + ": " + body.Message)
	}
}

// ── Productos ────────────────────────────────────────────────────────────────

func (c *Client) ListProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	var out []dto.ProductResponse
	err := c.do(ctx, http.MethodGet, "/data/productos", nil, &out)
	return out, err
}

func (c *Client) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	if err := c.do(ctx, http.MethodGet, "/data/productos/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	if err := c.do(ctx, http.MethodPost, "/data/productos", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	if err := c.do(ctx, http.MethodPut, "/data/productos/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeactivateProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/data/productos/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ReactivateProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/data/productos/"+url.PathEscape(id)+"/reactivar", nil, nil)
}

func (c *Client) SearchProducts(ctx context.Context, text string) ([]dto.ProductResponse, error) {
	var out []dto.ProductResponse
	err := c.do(ctx, http.MethodGet, "/data/productos/buscar?q="+url.QueryEscape(text), nil, &out)
	return out, err
}

func (c *Client) ListProductsByCategory(ctx context.Context, categoryName string) ([]dto.ProductResponse, error) {
	var out []dto.ProductResponse
	err := c.do(ctx, http.MethodGet, "/data/productos/categoria/"+url.PathEscape(categoryName), nil, &out)
	return out, err
}

func (c *Client) ListProductsByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]dto.ProductResponse, error) {
	var out []dto.ProductResponse
	path := fmt.Sprintf("/data/productos/precio?min=%s&max=%s", min.String(), max.String())
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) ListProductValues(ctx context.Context) ([]dto.ProductValueDTO, error) {
	var out []dto.ProductValueDTO
	err := c.do(ctx, http.MethodGet, "/data/productos/valores", nil, &out)
	return out, err
}

// ── Categorías ───────────────────────────────────────────────────────────────

func (c *Client) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	var out []dto.CategoryResponse
	err := c.do(ctx, http.MethodGet, "/data/categorias", nil, &out)
	return out, err
}

func (c *Client) GetCategory(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	var out dto.CategoryResponse
	if err := c.do(ctx, http.MethodGet, "/data/categorias/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCategory(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	var out dto.CategoryResponse
	if err := c.do(ctx, http.MethodPost, "/data/categorias", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	var out dto.CategoryResponse
	if err := c.do(ctx, http.MethodPut, "/data/categorias/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/data/categorias/"+url.PathEscape(id), nil, nil)
}

func (c *Client) CategoryStats(ctx context.Context) ([]dto.CategoryStatsDTO, error) {
	var out []dto.CategoryStatsDTO
	err := c.do(ctx, http.MethodGet, "/data/categorias/estadisticas", nil, &out)
	return out, err
}

// ── Inventario ───────────────────────────────────────────────────────────────

func (c *Client) GetLedgerByProduct(ctx context.Context, productID string) (*dto.LedgerResponse, error) {
	var out dto.LedgerResponse
	if err := c.do(ctx, http.MethodGet, "/data/inventario/producto/"+url.PathEscape(productID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateLedger(ctx context.Context, in dto.CreateLedgerRequest) (*dto.LedgerResponse, error) {
	var out dto.LedgerResponse
	if err := c.do(ctx, http.MethodPost, "/data/inventario", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetStock(ctx context.Context, productID string, quantity int64) (*dto.MutationResponse, error) {
	return c.mutate(ctx, http.MethodPatch,
		"/data/inventario/producto/"+url.PathEscape(productID)+"/stock",
		dto.SetStockRequest{Quantity: quantity})
}

func (c *Client) IncreaseStock(ctx context.Context, productID string, amount int64) (*dto.MutationResponse, error) {
	return c.mutate(ctx, http.MethodPost,
		"/data/inventario/producto/"+url.PathEscape(productID)+"/incrementar",
		dto.AdjustStockRequest{Amount: amount})
}

func (c *Client) DecreaseStock(ctx context.Context, productID string, amount int64) (*dto.MutationResponse, error) {
	return c.mutate(ctx, http.MethodPost,
		"/data/inventario/producto/"+url.PathEscape(productID)+"/decrementar",
		dto.AdjustStockRequest{Amount: amount})
}

func (c *Client) UpdateThreshold(ctx context.Context, productID string, threshold int64) (*dto.MutationResponse, error) {
	return c.mutate(ctx, http.MethodPatch,
		"/data/inventario/producto/"+url.PathEscape(productID)+"/umbral",
		dto.ThresholdRequest{Threshold: threshold})
}

func (c *Client) mutate(ctx context.Context, method, path string, body any) (*dto.MutationResponse, error) {
	var out dto.MutationResponse
	if err := c.do(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListInventory(ctx context.Context) ([]dto.LedgerResponse, error) {
	return c.listLedgers(ctx, "/data/inventario")
}

func (c *Client) ListLowStock(ctx context.Context) ([]dto.LedgerResponse, error) {
	return c.listLedgers(ctx, "/data/inventario/bajo")
}

func (c *Client) ListCriticalStock(ctx context.Context) ([]dto.LedgerResponse, error) {
	return c.listLedgers(ctx, "/data/inventario/critico")
}

func (c *Client) ListZeroStock(ctx context.Context) ([]dto.LedgerResponse, error) {
	return c.listLedgers(ctx, "/data/inventario/sin-stock")
}

func (c *Client) ListForReplenishment(ctx context.Context) ([]dto.LedgerResponse, error) {
	return c.listLedgers(ctx, "/data/inventario/reabastecer")
}

func (c *Client) ListInventoryByCategory(ctx context.Context, categoryName string) ([]dto.LedgerResponse, error) {
	return c.listLedgers(ctx, "/data/inventario/categoria/"+url.PathEscape(categoryName))
}

func (c *Client) ListUpdatedSince(ctx context.Context, since time.Time) ([]dto.LedgerResponse, error) {
	return c.listLedgers(ctx, "/data/inventario/actualizados?desde="+url.QueryEscape(since.Format(time.RFC3339)))
}

func (c *Client) listLedgers(ctx context.Context, path string) ([]dto.LedgerResponse, error) {
	var out []dto.LedgerResponse
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) StockStats(ctx context.Context) (*dto.StockStatsResponse, error) {
	var out dto.StockStatsResponse
	if err := c.do(ctx, http.MethodGet, "/data/inventario/estadisticas", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TotalValue(ctx context.Context) (*dto.TotalValueResponse, error) {
	var out dto.TotalValueResponse
	if err := c.do(ctx, http.MethodGet, "/data/inventario/valor-total", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CountLowStockByCategory(ctx context.Context) ([]dto.CategoryLowStockDTO, error) {
	var out []dto.CategoryLowStockDTO
	err := c.do(ctx, http.MethodGet, "/data/inventario/bajo-por-categoria", nil, &out)
	return out, err
}

func (c *Client) HasSufficientStock(ctx context.Context, productID string, required int64) (*dto.SufficiencyResponse, error) {
	var out dto.SufficiencyResponse
	path := fmt.Sprintf("/data/inventario/producto/%s/suficiente?cantidad=%d", url.PathEscape(productID), required)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ping consulta el health del data tier.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}
